package deck

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	moxfieldIDRe   = regexp.MustCompile(`(?m)^\|\s*\*\*Moxfield\s+ID\*\*\s*\|\s*(.+?)\s*\|`)
	moxfieldNameRe = regexp.MustCompile(`(?m)^\|\s*\*\*Moxfield\s+Name\*\*\s*\|\s*(.+?)\s*\|`)
	dateRowRe      = regexp.MustCompile(`\|\s*\*\*Date\*\*\s*\|.+?\|`)
	slugStripRe    = regexp.MustCompile(`['’‘]`)
	slugDashRe     = regexp.MustCompile(`[^a-z0-9]+`)
)

// SyncMeta is the remote-deck link stored in a decklist's metadata
// table.
type SyncMeta struct {
	PublicID string
	Name     string
}

// ReadSyncMeta reads the stored Moxfield link from a markdown deck
// file. Missing rows come back as empty strings.
func ReadSyncMeta(path string) (SyncMeta, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return SyncMeta{}, fmt.Errorf("failed to read decklist: %w", err)
	}
	return parseSyncMeta(string(content)), nil
}

func parseSyncMeta(content string) SyncMeta {
	var meta SyncMeta
	if m := moxfieldIDRe.FindStringSubmatch(content); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" && v != "|" {
			meta.PublicID = v
		}
	}
	if m := moxfieldNameRe.FindStringSubmatch(content); m != nil {
		if v := strings.TrimSpace(m[1]); v != "" && v != "|" {
			meta.Name = v
		}
	}
	return meta
}

// WriteSyncMeta inserts or updates the Moxfield ID and Moxfield Name
// rows in a deck file's metadata table. Existing rows are replaced in
// place; new rows are inserted after the Date row.
func WriteSyncMeta(path string, meta SyncMeta) error {
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read decklist: %w", err)
	}
	updated := upsertSyncMeta(string(content), meta)
	if err := os.WriteFile(path, []byte(updated), 0o644); err != nil {
		return fmt.Errorf("failed to write decklist: %w", err)
	}
	return nil
}

func upsertSyncMeta(content string, meta SyncMeta) string {
	idRow := fmt.Sprintf("| **Moxfield ID** | %s |", meta.PublicID)
	nameRow := fmt.Sprintf("| **Moxfield Name** | %s |", meta.Name)

	if moxfieldIDRe.MatchString(content) {
		content = moxfieldIDRe.ReplaceAllString(content, idRow)
	} else if loc := dateRowRe.FindStringIndex(content); loc != nil {
		content = content[:loc[1]] + "\n" + idRow + content[loc[1]:]
	} else {
		content += "\n" + idRow + "\n"
	}

	if moxfieldNameRe.MatchString(content) {
		content = moxfieldNameRe.ReplaceAllString(content, nameRow)
	} else {
		content = strings.Replace(content, idRow, idRow+"\n"+nameRow, 1)
	}
	return content
}

// Slugify converts a deck name to a filename slug: lowercase, with
// apostrophes removed and non-alphanumeric runs collapsed to dashes.
func Slugify(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = slugStripRe.ReplaceAllString(s, "")
	s = slugDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
