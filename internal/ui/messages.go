package ui

import (
	"glide/internal/config"
	"glide/internal/eventbus"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// ConfigChangedMsg delivers a reloaded configuration.
type ConfigChangedMsg struct {
	Config *config.Config
}

// positionLoadedMsg carries the saved reading position, if any.
type positionLoadedMsg struct {
	offset float64
	found  bool
	err    error
}

// noticeExpiredMsg clears the notice it was scheduled for.
type noticeExpiredMsg struct {
	id int
}
