package product

import "strings"

// listSeparator joins list fields in the products table.
const listSeparator = ", "

// JoinList encodes a list field for storage.
func JoinList(items []string) string {
	return strings.Join(items, listSeparator)
}

// ParseList decodes a stored list field. It splits on the separator only,
// so ParseList(JoinList(xs)) == xs when no item contains the separator.
// An empty input yields nil, which is also how [""] reads back.
func ParseList(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSeparator)
}

// ParseInput reads a comma separated list typed by a user.
// Items are trimmed and empty items dropped, so "P, M,,G" yields [P M G].
// Input with no items yields nil.
func ParseInput(s string) []string {
	var items []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		items = append(items, p)
	}
	return items
}

// DisplayList renders a list field for humans.
func DisplayList(items []string) string {
	return strings.Join(items, ", ")
}
