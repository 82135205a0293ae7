package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventNoticeRaised      EventType = "NoticeRaised"
	EventHistoryRecorded   EventType = "HistoryRecorded"
	EventDownloadStarted   EventType = "DownloadStarted"
	EventDownloadCompleted EventType = "DownloadCompleted"
	EventDownloadFailed    EventType = "DownloadFailed"
	EventTempReleased      EventType = "TempReleased"
	EventConfigSaved       EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// NoticeRaisedEvent is emitted whenever a widget produces a toast
type NoticeRaisedEvent struct {
	Widget Widget
	Notice Notice
}

func (e NoticeRaisedEvent) Type() EventType { return EventNoticeRaised }

// HistoryRecordedEvent is emitted when a new search-history chip is inserted
type HistoryRecordedEvent struct {
	Query string
}

func (e HistoryRecordedEvent) Type() EventType { return EventHistoryRecorded }

// DownloadStartedEvent is emitted when an image download begins
type DownloadStartedEvent struct {
	ID  string
	URL string
}

func (e DownloadStartedEvent) Type() EventType { return EventDownloadStarted }

// DownloadCompletedEvent is emitted when the image has been saved
type DownloadCompletedEvent struct {
	ID    string
	URL   string
	Path  string
	Bytes int64
}

func (e DownloadCompletedEvent) Type() EventType { return EventDownloadCompleted }

// DownloadFailedEvent is emitted when a download could not be completed
type DownloadFailedEvent struct {
	ID  string
	URL string
	Err error
}

func (e DownloadFailedEvent) Type() EventType { return EventDownloadFailed }

// TempReleasedEvent is emitted once the temporary file of a download is removed
type TempReleasedEvent struct {
	ID   string
	Path string
}

func (e TempReleasedEvent) Type() EventType { return EventTempReleased }

// ConfigSavedEvent is emitted after the configuration is written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
