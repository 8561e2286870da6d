package deck

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Document describes a deck to render as a markdown file.
type Document struct {
	Title         string
	Commander     string
	ColorIdentity string
	Date          time.Time
	Sync          SyncMeta

	// CommanderLines and MainboardLines are "N Card Name" strings,
	// written command zone first.
	CommanderLines []string
	MainboardLines []string
}

// Render produces the markdown deck file content.
func (doc *Document) Render() string {
	date := doc.Date
	if date.IsZero() {
		date = time.Now()
	}
	ci := doc.ColorIdentity
	if ci == "" {
		ci = "?"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	b.WriteString("| | |\n|---|---|\n")
	fmt.Fprintf(&b, "| **Commander** | %s |\n", doc.Commander)
	fmt.Fprintf(&b, "| **Color Identity** | %s |\n", ci)
	fmt.Fprintf(&b, "| **Date** | %s |\n", date.Format("2006-01-02"))
	if doc.Sync.PublicID != "" {
		fmt.Fprintf(&b, "| **Moxfield ID** | %s |\n", doc.Sync.PublicID)
		fmt.Fprintf(&b, "| **Moxfield Name** | %s |\n", doc.Sync.Name)
	}
	b.WriteString("\n## Strategy\n\n_Imported from Moxfield. Add strategy notes here._\n\n## Decklist\n\n```\n")
	for _, line := range doc.CommanderLines {
		b.WriteString(line + "\n")
	}
	for _, line := range doc.MainboardLines {
		b.WriteString(line + "\n")
	}
	b.WriteString("```\n")
	return b.String()
}

// WriteFile renders the document into dir using a slug of the title,
// appending a numeric suffix when a different deck already owns the
// slug. An existing file linked to the same remote deck is reused.
// Returns the file path written.
func (doc *Document) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create deck directory: %w", err)
	}

	slug := Slugify(doc.Title)
	path := filepath.Join(dir, slug+".md")
	if _, err := os.Stat(path); err == nil && doc.Sync.PublicID != "" {
		existing, err := ReadSyncMeta(path)
		if err == nil && existing.PublicID != doc.Sync.PublicID {
			for i := 2; ; i++ {
				path = filepath.Join(dir, fmt.Sprintf("%s-%d.md", slug, i))
				if _, err := os.Stat(path); os.IsNotExist(err) {
					break
				}
			}
		}
	}

	if err := os.WriteFile(path, []byte(doc.Render()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write decklist: %w", err)
	}
	return path, nil
}
