package moxfield

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/dvidal/manaforge/internal/colors"
	"github.com/dvidal/manaforge/internal/deck"
)

// deckSize is the Commander deck size enforced before any remote call.
const deckSize = 100

// Action is the outcome of syncing one deck.
type Action string

const (
	ActionSkipped  Action = "skipped"
	ActionUpToDate Action = "up-to-date"
	ActionCreated  Action = "created"
	ActionUpdated  Action = "updated"
	ActionDryRun   Action = "dry-run"
)

// Result reports what happened to one local deck.
type Result struct {
	Path      string `json:"path"`
	DeckName  string `json:"deck_name"`
	PublicID  string `json:"public_id,omitempty"`
	Action    Action `json:"action"`
	Cards     int    `json:"cards"`
	Commander string `json:"commander,omitempty"`
	Reason    string `json:"reason,omitempty"`
}

// URL returns the deck's Moxfield web URL, or empty when unknown.
func (r *Result) URL() string {
	if r.PublicID == "" {
		return ""
	}
	return "https://www.moxfield.com/decks/" + r.PublicID
}

// Syncer pushes local decklists to Moxfield and pulls remote decks
// into local files.
type Syncer struct {
	client *Client
	logger *slog.Logger
}

// NewSyncer creates a syncer. A nil logger discards nothing and uses
// the default.
func NewSyncer(client *Client, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{client: client, logger: logger}
}

// SyncFile syncs one local deck file against the remote listing.
//
// The local file is authoritative: the remote deck is resolved by the
// stored public ID first and by name second, created when absent, and
// replaced wholesale when its cards differ. The commander always ends
// up in the commanders zone. The resulting link is written back into
// the file's metadata table.
func (s *Syncer) SyncFile(ctx context.Context, path string, remoteDecks []DeckSummary, dryRun bool) (*Result, error) {
	d, err := deck.ParseFile(path)
	if err != nil {
		return nil, err
	}
	title := d.Name(strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	commander := d.Commander()

	stored, err := deck.ReadSyncMeta(path)
	if err != nil {
		return nil, err
	}
	moxName := stored.Name
	if moxName == "" {
		moxName = title
	}

	result := &Result{Path: path, DeckName: title, Commander: commander, Cards: d.TotalCards()}

	// Validate before touching the network at all.
	if total := d.TotalCards(); total != deckSize {
		result.Action = ActionSkipped
		result.Reason = fmt.Sprintf("card count is %d, must be exactly %d", total, deckSize)
		return result, nil
	}

	remote := resolveRemote(remoteDecks, stored.PublicID, moxName)
	if remote != nil {
		result.PublicID = remote.PublicID
	}
	if stored.PublicID != "" && remote == nil {
		s.logger.Warn("stored deck id not found remotely", "public_id", stored.PublicID, "deck", title)
	}

	if dryRun {
		result.Action = ActionDryRun
		return result, nil
	}

	if remote != nil {
		match, err := s.remoteMatches(ctx, remote.PublicID, d, commander)
		if err != nil {
			return nil, err
		}
		if match {
			result.Action = ActionUpToDate
			if err := deck.WriteSyncMeta(path, deck.SyncMeta{PublicID: remote.PublicID, Name: moxName}); err != nil {
				return nil, err
			}
			return result, nil
		}
	}

	// All cards go through the mainboard first, commander included;
	// the zone move happens afterwards so a failed move still leaves
	// a complete deck.
	var lines []string
	for _, e := range d.Cards {
		lines = append(lines, formatLine(e.Quantity, e.Name))
	}
	mainboardText := strings.Join(lines, "\n")

	var publicID string
	if remote != nil {
		publicID = remote.PublicID
		result.Action = ActionUpdated
	} else {
		created, err := s.client.CreateDeck(ctx, moxName, "commander")
		if err != nil {
			return nil, err
		}
		publicID = created.PublicID
		if publicID == "" {
			return nil, fmt.Errorf("deck create returned no public id")
		}
		result.Action = ActionCreated
	}
	result.PublicID = publicID

	full, err := s.client.GetDeck(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := s.client.BulkEdit(ctx, publicID, full.Version, "", mainboardText); err != nil {
		return nil, err
	}

	if commander != "" {
		if err := s.client.MoveToCommanders(ctx, publicID, commander); err != nil {
			s.logger.Warn("commander zone assignment failed", "deck", title, "commander", commander, "error", err)
		}
	}

	if err := deck.WriteSyncMeta(path, deck.SyncMeta{PublicID: publicID, Name: moxName}); err != nil {
		return nil, err
	}
	return result, nil
}

// resolveRemote finds the remote deck by stored ID first, name second.
func resolveRemote(remoteDecks []DeckSummary, publicID, name string) *DeckSummary {
	if publicID != "" {
		for i := range remoteDecks {
			if remoteDecks[i].PublicID == publicID {
				return &remoteDecks[i]
			}
		}
	}
	for i := range remoteDecks {
		if strings.EqualFold(remoteDecks[i].Name, name) {
			return &remoteDecks[i]
		}
	}
	return nil
}

// remoteMatches reports whether the remote deck carries exactly the
// local cards, counted across mainboard and commanders, with the
// commander in the commanders zone.
func (s *Syncer) remoteMatches(ctx context.Context, publicID string, d *deck.Deck, commander string) (bool, error) {
	full, err := s.client.GetDeck(ctx, publicID)
	if err != nil {
		return false, err
	}

	remote := full.Counts("mainboard", "commanders")
	local := d.Counts()
	if len(remote) != len(local) {
		return false, nil
	}
	for name, qty := range local {
		if remote[name] != qty {
			return false, nil
		}
	}

	if commander != "" {
		inZone := false
		for _, entry := range full.Boards["commanders"].Cards {
			if strings.EqualFold(entry.Card.Name, commander) {
				inZone = true
				break
			}
		}
		if !inZone {
			return false, nil
		}
	}
	return true, nil
}

// PullResult reports one remote deck pulled to a local file.
type PullResult struct {
	Name     string `json:"name"`
	PublicID string `json:"public_id"`
	Path     string `json:"path,omitempty"`
	Skipped  bool   `json:"skipped"`
	Cards    int    `json:"cards,omitempty"`
}

// Pull downloads remote decks into dir as markdown files. Decks whose
// public ID is already linked by a local file are skipped. When
// nameFilters is non-empty, only decks whose name contains one of the
// filters (case-insensitive) are pulled.
func (s *Syncer) Pull(ctx context.Context, dir string, nameFilters []string) ([]PullResult, error) {
	remoteDecks, err := s.client.ListUserDecks(ctx)
	if err != nil {
		return nil, err
	}

	linked := make(map[string]bool)
	matches, _ := filepath.Glob(filepath.Join(dir, "*.md"))
	for _, path := range matches {
		if meta, err := deck.ReadSyncMeta(path); err == nil && meta.PublicID != "" {
			linked[meta.PublicID] = true
		}
	}

	var results []PullResult
	for _, rd := range remoteDecks {
		if len(nameFilters) > 0 && !matchesAny(rd.Name, nameFilters) {
			continue
		}
		if linked[rd.PublicID] {
			results = append(results, PullResult{Name: rd.Name, PublicID: rd.PublicID, Skipped: true})
			continue
		}

		full, err := s.client.GetDeck(ctx, rd.PublicID)
		if err != nil {
			return results, fmt.Errorf("failed to pull %q: %w", rd.Name, err)
		}

		commanderLines := full.BoardLines("commanders")
		mainboardLines := full.BoardLines("mainboard")
		commanderName := ""
		for _, entry := range full.Boards["commanders"].Cards {
			commanderName = entry.Card.Name
			break
		}

		doc := &deck.Document{
			Title:          rd.Name,
			Commander:      commanderName,
			ColorIdentity:  colors.Parse(strings.Join(full.ColorIdentity, "")),
			Sync:           deck.SyncMeta{PublicID: rd.PublicID, Name: rd.Name},
			CommanderLines: commanderLines,
			MainboardLines: mainboardLines,
		}
		path, err := doc.WriteFile(dir)
		if err != nil {
			return results, err
		}

		total := 0
		for _, entry := range full.Boards["commanders"].Cards {
			total += entry.Quantity
		}
		for _, entry := range full.Boards["mainboard"].Cards {
			total += entry.Quantity
		}
		results = append(results, PullResult{Name: rd.Name, PublicID: rd.PublicID, Path: path, Cards: total})
		s.logger.Info("pulled deck", "name", rd.Name, "cards", total, "path", path)
	}
	return results, nil
}

func matchesAny(name string, filters []string) bool {
	for _, f := range filters {
		if strings.Contains(strings.ToLower(name), strings.ToLower(f)) {
			return true
		}
	}
	return false
}
