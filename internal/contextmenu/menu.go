// Package contextmenu builds the shell's right-click menu: a set of page-side
// default actions plus entries prepended by the shell, rebuilt on every click
// from the click's parameters.
package contextmenu

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Params describes one right-click as reported by the page
type Params struct {
	SelectionText string `json:"selectionText" mapstructure:"selectionText"`
	IsEditable    bool   `json:"isEditable" mapstructure:"isEditable"`
	MediaType     string `json:"mediaType" mapstructure:"mediaType"`
	LinkURL       string `json:"linkURL" mapstructure:"linkURL"`
	X             int    `json:"x" mapstructure:"x"`
	Y             int    `json:"y" mapstructure:"y"`
}

// HasSelection reports whether the selection has any non-whitespace text
func (p Params) HasSelection() bool {
	return TrimSelection(p.SelectionText) != ""
}

// TrimSelection trims s the way the page's String.prototype.trim does.
// The set differs from unicode.IsSpace: U+FEFF is trimmed, U+0085 is not.
func TrimSelection(s string) string {
	return strings.TrimFunc(s, isPageSpace)
}

func isPageSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// Page-side roles, executed by the renderer without a round trip
const (
	RoleCut       = "cut"
	RoleCopy      = "copy"
	RolePaste     = "paste"
	RoleSelectAll = "selectAll"
)

// Item is one context-menu entry. Items with a Role run in the page;
// items with Click run in the shell.
type Item struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Role      string `json:"role,omitempty"`
	Visible   bool   `json:"-"`
	Enabled   bool   `json:"enabled"`
	Separator bool   `json:"separator,omitempty"`
	Click     func() `json:"-"`
}

// PrependFunc returns the items placed before the default actions
type PrependFunc func(defaults []Item, params Params) []Item

// Options configures a Menu
type Options struct {
	Prepend PrependFunc
	// ShowDefaults keeps the cut/copy/paste/select-all block
	ShowDefaults bool
}

// Menu builds the item list for a click
type Menu struct {
	opts Options
}

// New creates a Menu
func New(opts Options) *Menu {
	return &Menu{opts: opts}
}

// selectionPlaceholder in a label is replaced with the truncated selection
const selectionPlaceholder = "{selection}"

const maxSelectionLabel = 25

// Build returns the visible items for params in display order, with
// separators collapsed.
func (m *Menu) Build(params Params) []Item {
	var defaults []Item
	if m.opts.ShowDefaults {
		defaults = DefaultActions(params)
	}

	var items []Item
	if m.opts.Prepend != nil {
		for _, it := range m.opts.Prepend(defaults, params) {
			it.Label = strings.ReplaceAll(it.Label, selectionPlaceholder, truncate(TrimSelection(params.SelectionText), maxSelectionLabel))
			items = append(items, it)
		}
	}
	if len(items) > 0 && len(defaults) > 0 {
		items = append(items, separator("prepend-separator"))
	}
	items = append(items, defaults...)

	return compact(items)
}

// DefaultActions returns the editing actions for params
func DefaultActions(params Params) []Item {
	hasText := params.HasSelection()
	return []Item{
		{ID: "cut", Label: "Cut", Role: RoleCut, Visible: params.IsEditable, Enabled: hasText},
		{ID: "copy", Label: "Copy", Role: RoleCopy, Visible: params.IsEditable || hasText, Enabled: hasText},
		{ID: "paste", Label: "Paste", Role: RolePaste, Visible: params.IsEditable, Enabled: true},
		separator("edit-separator"),
		{ID: "select-all", Label: "Select All", Role: RoleSelectAll, Visible: params.IsEditable, Enabled: true},
	}
}

func separator(id string) Item {
	return Item{ID: id, Separator: true, Visible: true}
}

// compact drops invisible items and leading, trailing or repeated separators
func compact(items []Item) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !it.Visible {
			continue
		}
		if it.Separator && (len(out) == 0 || out[len(out)-1].Separator) {
			continue
		}
		out = append(out, it)
	}
	for len(out) > 0 && out[len(out)-1].Separator {
		out = out[:len(out)-1]
	}
	return out
}

// truncate shortens s to at most n runes, ending in an ellipsis when cut
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
