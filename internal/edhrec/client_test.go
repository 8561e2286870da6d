package edhrec

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Meren of Clan Nel Toth", "meren-of-clan-nel-toth"},
		{"Atraxa, Praetors' Voice", "atraxa-praetors-voice"},
		{"Korvold, Fae-Cursed King", "korvold-fae-cursed-king"},
		{"Wilson, Refined Grizzly", "wilson-refined-grizzly"},
		{"Bruna, the Fading Light // Brisela, Voice of Nightmares", "bruna-the-fading-light"},
	}
	for _, tt := range tests {
		if got := Slug(tt.name); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

const commanderPageJSON = `{
	"container": {
		"json_dict": {
			"card": {"name": "Meren of Clan Nel Toth", "num_decks": 14520},
			"cardlists": [
				{
					"header": "High Synergy Cards",
					"tag": "highsynergycards",
					"cardviews": [
						{"name": "Spore Frog", "num_decks": 9800, "potential_decks": 14000, "synergy": 0.62},
						{"name": "Sakura-Tribe Elder", "num_decks": 9100, "potential_decks": 14000, "synergy": 0.31}
					]
				},
				{
					"header": "Top Cards",
					"tag": "topcards",
					"cardviews": [
						{"name": "Sol Ring", "num_decks": 12000, "potential_decks": 14000}
					]
				}
			]
		}
	}
}`

func testServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	config := DefaultConfig()
	config.BaseURL = server.URL
	config.RequestsPerSecond = 1000
	return NewClient(config)
}

func TestCommanderPage(t *testing.T) {
	var gotPath string
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(commanderPageJSON))
	})

	page, err := client.CommanderPage(context.Background(), "Meren of Clan Nel Toth")
	if err != nil {
		t.Fatalf("CommanderPage error: %v", err)
	}
	if gotPath != "/pages/commanders/meren-of-clan-nel-toth.json" {
		t.Errorf("path = %q", gotPath)
	}
	if page.NumDecks() != 14520 {
		t.Errorf("NumDecks = %d", page.NumDecks())
	}

	synergy := page.Section("highsynergycards")
	if synergy == nil || len(synergy.CardViews) != 2 {
		t.Fatalf("high synergy section = %+v", synergy)
	}
	if synergy.CardViews[0].Name != "Spore Frog" {
		t.Errorf("first synergy card = %q", synergy.CardViews[0].Name)
	}
	if got := synergy.CardViews[0].InclusionPercent(); got < 69 || got > 71 {
		t.Errorf("InclusionPercent = %f", got)
	}
	if page.Section("lands") != nil {
		t.Error("missing section should be nil")
	}
}

func TestCommanderPageCached(t *testing.T) {
	var hits atomic.Int32
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(commanderPageJSON))
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		if _, err := client.CommanderPage(ctx, "Meren of Clan Nel Toth"); err != nil {
			t.Fatal(err)
		}
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1 (cached)", hits.Load())
	}
}

func TestCommanderPageCacheExpiry(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(commanderPageJSON))
	}))
	t.Cleanup(server.Close)

	config := DefaultConfig()
	config.BaseURL = server.URL
	config.RequestsPerSecond = 1000
	config.CacheTTL = time.Duration(0)
	client := NewClient(config)

	ctx := context.Background()
	client.CommanderPage(ctx, "Meren of Clan Nel Toth")
	client.CommanderPage(ctx, "Meren of Clan Nel Toth")
	if hits.Load() != 2 {
		t.Errorf("server hits = %d, want 2 with zero TTL", hits.Load())
	}
}

func TestCommanderOverview(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(commanderPageJSON))
	})

	overview, err := client.CommanderOverview(context.Background(), "Meren of Clan Nel Toth")
	if err != nil {
		t.Fatalf("CommanderOverview error: %v", err)
	}
	if overview.NumDecks != 14520 {
		t.Errorf("NumDecks = %d", overview.NumDecks)
	}
	if overview.URL != "https://edhrec.com/commanders/meren-of-clan-nel-toth" {
		t.Errorf("URL = %q", overview.URL)
	}
}

func TestAverageDeck(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pages/average-decks/meren-of-clan-nel-toth.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"deck": ["Sol Ring", "Spore Frog", "Swamp"]}`))
	})

	cards, err := client.AverageDeck(context.Background(), "Meren of Clan Nel Toth")
	if err != nil {
		t.Fatalf("AverageDeck error: %v", err)
	}
	if len(cards) != 3 || cards[1] != "Spore Frog" {
		t.Errorf("cards = %v", cards)
	}
}

func TestPageNotFound(t *testing.T) {
	client := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	_, err := client.CommanderPage(context.Background(), "Not A Real Card")
	if err == nil || !strings.Contains(err.Error(), "no page") {
		t.Errorf("err = %v, want not-found message", err)
	}
}

func TestFormatCardView(t *testing.T) {
	synergy := 0.62
	line := FormatCardView(CardView{
		Name:           "Spore Frog",
		NumDecks:       9800,
		PotentialDecks: 14000,
		Synergy:        &synergy,
	}, 1)
	for _, want := range []string{"Spore Frog", "9800 decks", "70%", "[synergy: +62%]"} {
		if !strings.Contains(line, want) {
			t.Errorf("line %q missing %q", line, want)
		}
	}
}

func TestFormatCardListsCaps(t *testing.T) {
	lists := []CardList{
		{Header: "Top Cards", Tag: "topcards", CardViews: []CardView{
			{Name: "A"}, {Name: "B"}, {Name: "C"},
		}},
		{Header: "Empty", Tag: "empty"},
	}
	out := FormatCardLists(lists, 2)
	if !strings.Contains(out, "Top Cards") {
		t.Error("missing section header")
	}
	if strings.Contains(out, "3. C") {
		t.Error("cap not applied")
	}
	if !strings.Contains(out, "and 1 more") {
		t.Errorf("missing overflow note in %q", out)
	}
	if strings.Contains(out, "Empty") {
		t.Error("empty section should be skipped")
	}
}
