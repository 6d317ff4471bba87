package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventScrollCommandExecuted EventType = "ScrollCommandExecuted"
	EventScrollCommandFailed   EventType = "ScrollCommandFailed"
	EventScrollSettled         EventType = "ScrollSettled"
	EventDocumentOpened        EventType = "DocumentOpened"
	EventError                 EventType = "Error"
	EventConfigLoaded          EventType = "ConfigLoaded"
	EventConfigSaved           EventType = "ConfigSaved"
	EventConfigChanged         EventType = "ConfigChanged"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ScrollCommandExecutedEvent is emitted when a scroll command starts successfully
type ScrollCommandExecutedEvent struct {
	CommandID string
}

func (e ScrollCommandExecutedEvent) Type() EventType { return EventScrollCommandExecuted }

// ScrollCommandFailedEvent is emitted when a scroll command fails
type ScrollCommandFailedEvent struct {
	CommandID string
	Err       error
}

func (e ScrollCommandFailedEvent) Type() EventType { return EventScrollCommandFailed }

// ScrollSettledEvent is emitted when a scroll command's animation has finished
type ScrollSettledEvent struct {
	Path   string
	Offset float64
}

func (e ScrollSettledEvent) Type() EventType { return EventScrollSettled }

// DocumentOpenedEvent is emitted once a document has been loaded into the pager
type DocumentOpenedEvent struct {
	Path     string
	Language string
	Lines    int
	Sections int
}

func (e DocumentOpenedEvent) Type() EventType { return EventDocumentOpened }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	Path string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }

// ConfigChangedEvent is emitted when the configuration file changed on disk
type ConfigChangedEvent struct {
	Path string
}

func (e ConfigChangedEvent) Type() EventType { return EventConfigChanged }
