package contextmenu

import "strings"

// SearchItemID identifies the selection search entry
const SearchItemID = "search-selection"

// SearchLabel is the label of the selection search entry
const SearchLabel = "Search Google for “{selection}”"

// SearchEntry returns a PrependFunc adding the selection search entry. The
// entry is visible only for a non-blank selection; clicking it hands the
// query URL to open.
func SearchEntry(searchURL string, open func(url string)) PrependFunc {
	return func(_ []Item, params Params) []Item {
		target := SearchURL(searchURL, params.SelectionText)
		return []Item{{
			ID:      SearchItemID,
			Label:   SearchLabel,
			Visible: params.HasSelection(),
			Enabled: true,
			Click: func() {
				open(target)
			},
		}}
	}
}

// SearchURL appends the percent-encoded selection to prefix
func SearchURL(prefix, selection string) string {
	return prefix + EncodeURIComponent(selection)
}

// EncodeURIComponent escapes s the way browsers escape a URI component:
// every byte except A-Z a-z 0-9 - _ . ! ~ * ' ( ) is percent-encoded.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}

func unreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
