package ui

import (
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"glide/internal/scroll"
)

// Pager actions handled by the model itself rather than the scroll controller.
const (
	actionLineUp   = "line-up"
	actionLineDown = "line-down"
	actionTop      = "top"
	actionBottom   = "bottom"
	actionHelp     = "help"
	actionQuit     = "quit"
)

var pagerActions = []struct {
	id, name string
}{
	{actionLineDown, "Line down"},
	{actionLineUp, "Line up"},
	{actionTop, "Go to top"},
	{actionBottom, "Go to bottom"},
	{actionHelp, "Command reference"},
	{actionQuit, "Quit"},
}

var defaultKeys = map[string][]string{
	scroll.CommandPageDown:             {"space", "pgdown", "f"},
	scroll.CommandPageUp:               {"b", "pgup"},
	scroll.CommandSectionNext:          {"n", "]"},
	scroll.CommandSectionPrevious:      {"p", "["},
	scroll.CommandEdgeUp:               {"H"},
	scroll.CommandEdgeDown:             {"L"},
	scroll.CommandAutoScrollDown:       {"a"},
	scroll.CommandAutoScrollUp:         {"A"},
	scroll.CommandToggleAutoScrollDown: {"t"},
	scroll.CommandToggleAutoScrollUp:   {"T"},
	scroll.CommandStop:                 {"esc", "x"},
	actionLineDown:                     {"j", "down"},
	actionLineUp:                       {"k", "up"},
	actionTop:                          {"g", "home"},
	actionBottom:                       {"G", "end"},
	actionHelp:                         {"?"},
	actionQuit:                         {"q", "ctrl+c"},
}

type binding struct {
	id string
	key.Binding
}

// keyMap resolves key presses to action ids. Earlier bindings win when two
// actions share a key.
type keyMap struct {
	bindings []binding
}

// newKeyMap merges overrides (action id -> keys) onto the defaults. Unknown
// ids are logged and ignored.
func newKeyMap(overrides map[string][]string, log *slog.Logger) keyMap {
	known := make(map[string]string)
	var order []string
	for _, cmd := range scroll.Catalog() {
		known[cmd.ID] = cmd.Name
		order = append(order, cmd.ID)
	}
	for _, a := range pagerActions {
		known[a.id] = a.name
		order = append(order, a.id)
	}
	for id := range overrides {
		if _, ok := known[id]; !ok && log != nil {
			log.Warn("ignoring key binding for unknown action", "action", id)
		}
	}

	km := keyMap{}
	for _, id := range order {
		keys := defaultKeys[id]
		if o, ok := overrides[id]; ok && len(o) > 0 {
			keys = o
		}
		if len(keys) == 0 {
			continue
		}
		km.bindings = append(km.bindings, binding{
			id: id,
			Binding: key.NewBinding(
				key.WithKeys(normalizeKeys(keys)...),
				key.WithHelp(strings.Join(keys, "/"), known[id]),
			),
		})
	}
	return km
}

// normalizeKeys maps config spellings to bubbletea key names.
func normalizeKeys(keys []string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		switch strings.ToLower(k) {
		case "space":
			k = " "
		case "escape":
			k = "esc"
		case "pagedown":
			k = "pgdown"
		case "pageup":
			k = "pgup"
		}
		out = append(out, k)
	}
	return out
}

// action returns the id bound to msg.
func (km keyMap) action(msg tea.KeyMsg) (string, bool) {
	for _, b := range km.bindings {
		if key.Matches(msg, b.Binding) {
			return b.id, true
		}
	}
	return "", false
}

func (km keyMap) get(id string) (key.Binding, bool) {
	for _, b := range km.bindings {
		if b.id == id {
			return b.Binding, true
		}
	}
	return key.Binding{}, false
}

// ShortHelp implements help.KeyMap.
func (km keyMap) ShortHelp() []key.Binding {
	var out []key.Binding
	for _, id := range []string{
		scroll.CommandPageDown,
		scroll.CommandSectionNext,
		scroll.CommandToggleAutoScrollDown,
		actionHelp,
		actionQuit,
	} {
		if b, ok := km.get(id); ok {
			out = append(out, b)
		}
	}
	return out
}

// FullHelp implements help.KeyMap.
func (km keyMap) FullHelp() [][]key.Binding {
	var scrolling, pager []key.Binding
	for _, b := range km.bindings {
		if _, ok := scroll.LookupCommand(b.id); ok {
			scrolling = append(scrolling, b.Binding)
		} else {
			pager = append(pager, b.Binding)
		}
	}
	return [][]key.Binding{scrolling, pager}
}
