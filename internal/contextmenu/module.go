package contextmenu

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"text/template"
)

// Names shared with the page-side scripts
const (
	// EventRequest carries a right-click's Params from the page
	EventRequest = "shell:context-menu"
	// EventAction carries the id of a clicked Go-side item
	EventAction = "shell:menu-action"
	// ShowHook is the page global the shell calls with a ShowPayload
	ShowHook = "__shellShowContextMenu"
	// EmitHook is the page global that sends an event to the shell
	EmitHook = "__shellEmit"
)

//go:embed assets/renderer.js.tmpl
var assets embed.FS

// Theme colours the page-side menu
type Theme struct {
	Background string
	Foreground string
	Highlight  string
	Separator  string
}

// DefaultTheme matches the shell's dark window background
func DefaultTheme() Theme {
	return Theme{
		Background: "#2C2C2C",
		Foreground: "#F1F1F2",
		Highlight:  "#FE2C55",
		Separator:  "#444444",
	}
}

// Module is a loaded context menu: the Go-side builder and the script that
// renders it in the page
type Module struct {
	Menu   *Menu
	Script string
}

// ShowPayload is what the page receives for one right-click
type ShowPayload struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Items []Item `json:"items"`
}

// Payload builds the show payload for params
func (m *Module) Payload(params Params) ShowPayload {
	return ShowPayload{X: params.X, Y: params.Y, Items: m.Menu.Build(params)}
}

// Find returns the built item with id for params
func (m *Module) Find(params Params, id string) (Item, bool) {
	for _, it := range m.Menu.Build(params) {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// Load prepares the module. It is called off the startup path; until it
// returns, right-clicks show nothing.
func Load(ctx context.Context, opts Options, theme Theme) (*Module, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	script, err := renderScript(theme)
	if err != nil {
		return nil, err
	}

	return &Module{Menu: New(opts), Script: script}, nil
}

func renderScript(theme Theme) (string, error) {
	tmpl, err := template.ParseFS(assets, "assets/renderer.js.tmpl")
	if err != nil {
		return "", fmt.Errorf("parse renderer: %w", err)
	}

	var buf bytes.Buffer
	err = tmpl.Execute(&buf, struct {
		Theme
		ShowHook    string
		EmitHook    string
		ActionEvent string
	}{theme, ShowHook, EmitHook, EventAction})
	if err != nil {
		return "", fmt.Errorf("render renderer: %w", err)
	}
	return buf.String(), nil
}
