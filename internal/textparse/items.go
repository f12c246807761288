package textparse

import "strings"

// Item is one bullet from a list, together with the quoted lines that
// followed it.
type Item struct {
	Text     string   `json:"text"`
	Evidence []string `json:"evidence"`
}

// ExtractItems returns the bullet items of a section in document order.
//
// A bullet line (see Bullet) opens an item. Lines up to the next bullet that
// contain a double quote are attached to the open item as evidence. Any other line is ignored, including quoted lines
// seen before the first bullet.
func ExtractItems(section string) []Item {
	items := []Item{}
	open := -1
	for _, line := range Lines(section) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if text, ok := Bullet(line); ok {
			items = append(items, Item{Text: text, Evidence: []string{}})
			open = len(items) - 1
			continue
		}
		if open < 0 || !HasQuote(line) {
			continue
		}
		items[open].Evidence = append(items[open].Evidence, EvidenceText(line))
	}
	return items
}

// EvidenceText trims an evidence line and drops blockquote markers.
func EvidenceText(line string) string {
	s := strings.TrimSpace(line)
	for strings.HasPrefix(s, ">") {
		s = strings.TrimSpace(s[1:])
	}
	return s
}
