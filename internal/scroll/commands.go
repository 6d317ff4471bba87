package scroll

import "time"

// Command ids understood by the controller.
const (
	CommandPageUp               = "page-up"
	CommandPageDown             = "page-down"
	CommandSectionPrevious      = "section-previous"
	CommandSectionNext          = "section-next"
	CommandEdgeUp               = "edge-up"
	CommandEdgeDown             = "edge-down"
	CommandAutoScrollUp         = "auto-scroll-up"
	CommandAutoScrollDown       = "auto-scroll-down"
	CommandStop                 = "stop"
	CommandToggleAutoScrollUp   = "toggle-auto-scroll-up"
	CommandToggleAutoScrollDown = "toggle-auto-scroll-down"
)

// Command describes an entry of the command catalog.
type Command struct {
	ID          string
	Name        string
	Description string
}

var catalog = []Command{
	{CommandPageUp, "Page up", "Smoothly scroll up by a share of the visible height"},
	{CommandPageDown, "Page down", "Smoothly scroll down by a share of the visible height"},
	{CommandSectionPrevious, "Previous section", "Scroll to the closest section above"},
	{CommandSectionNext, "Next section", "Scroll to the closest section below"},
	{CommandEdgeUp, "Top visible section", "Bring the topmost visible section to the top"},
	{CommandEdgeDown, "Bottom visible section", "Bring the bottommost visible section to the top"},
	{CommandAutoScrollUp, "Auto-scroll up", "Scroll up continuously until the top"},
	{CommandAutoScrollDown, "Auto-scroll down", "Scroll down continuously until the end"},
	{CommandStop, "Stop scrolling", "Stop any running scroll"},
	{CommandToggleAutoScrollUp, "Toggle auto-scroll up", "Start or stop scrolling up"},
	{CommandToggleAutoScrollDown, "Toggle auto-scroll down", "Start or stop scrolling down"},
}

// Catalog returns the commands in display order.
func Catalog() []Command {
	return append([]Command(nil), catalog...)
}

// LookupCommand finds a catalog entry by id.
func LookupCommand(id string) (Command, bool) {
	for _, c := range catalog {
		if c.ID == id {
			return c, true
		}
	}
	return Command{}, false
}

// Settings parameterize the strategies built by a controller. A settings
// change builds a new controller rather than touching existing strategies.
type Settings struct {
	PagePercent      float64
	PageDuration     time.Duration
	SectionDuration  time.Duration
	AutoScrollSpeed  float64 // pixels per second
	EaseIn           float64
	EaseOut          float64
	EdgeMargin       float64
	SectionSelectors []string
}

// DefaultSettings returns the settings used when none are configured.
func DefaultSettings() Settings {
	return Settings{
		PagePercent:      50,
		PageDuration:     250 * time.Millisecond,
		SectionDuration:  350 * time.Millisecond,
		AutoScrollSpeed:  100,
		EaseIn:           1,
		EaseOut:          1,
		EdgeMargin:       16,
		SectionSelectors: []string{"h1", "h2", "h3", "hr"},
	}
}

// buildStrategies creates one strategy per catalog command.
func buildStrategies(engine *Engine, locator SectionLocator, cfg Settings) map[string]Strategy {
	autoUp := NewAutoScroller(engine, Up, cfg.AutoScrollSpeed)
	autoDown := NewAutoScroller(engine, Down, cfg.AutoScrollSpeed)

	return map[string]Strategy{
		CommandPageUp:               NewPageScroller(engine, Up, cfg.PagePercent, cfg.PageDuration),
		CommandPageDown:             NewPageScroller(engine, Down, cfg.PagePercent, cfg.PageDuration),
		CommandSectionPrevious:      NewSectionScroller(engine, locator, cfg.SectionSelectors, Up, cfg.SectionDuration),
		CommandSectionNext:          NewSectionScroller(engine, locator, cfg.SectionSelectors, Down, cfg.SectionDuration),
		CommandEdgeUp:               NewEdgeScroller(engine, locator, cfg.SectionSelectors, Up, cfg.EdgeMargin, cfg.SectionDuration),
		CommandEdgeDown:             NewEdgeScroller(engine, locator, cfg.SectionSelectors, Down, cfg.EdgeMargin, cfg.SectionDuration),
		CommandAutoScrollUp:         autoUp,
		CommandAutoScrollDown:       autoDown,
		CommandStop:                 NewStopper(engine),
		CommandToggleAutoScrollUp:   NewToggler(engine, autoUp),
		CommandToggleAutoScrollDown: NewToggler(engine, autoDown),
	}
}
