package assembler

import (
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/MikeSquared-Agency/onesheet/internal/textparse"
)

// List extracts a flat list from bullet or numbered lines, attaching quoted
// lines to the preceding entry as evidence. When the text has no list
// markers at all, every non-heading line is an entry.
func List(raw string) []ListItem {
	lines := textparse.Lines(raw)
	marked := lo.SomeBy(lines, isListLine)

	items := []ListItem{}
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if marked && !isListLine(line) {
			if n := len(items); n > 0 && textparse.HasQuote(line) {
				items[n-1].Evidence = append(items[n-1].Evidence, textparse.EvidenceText(line))
			}
			continue
		}
		if !marked && textparse.LooksLikeHeading(line) {
			continue
		}
		text := textparse.TrimQuotes(contentLine(listText(line)))
		if text == "" {
			continue
		}
		items = append(items, ListItem{
			ID:       uuid.New().String(),
			Text:     text,
			Evidence: []string{},
			Position: len(items) + 1,
		})
	}
	return items
}

func isListLine(line string) bool {
	if _, ok := textparse.Bullet(line); ok {
		return true
	}
	_, ok := textparse.Numbered(line)
	return ok
}

func listText(line string) string {
	if text, ok := textparse.Numbered(line); ok {
		return text
	}
	return line
}
