package domain

import "time"

// EventType defines the type of event that occurred.
type EventType string

const (
	EventRunStarted        EventType = "retention.run_started"
	EventRepositoryPlanned EventType = "retention.repository_planned"
	EventRepositorySkipped EventType = "retention.repository_skipped"
	EventTagProcessed      EventType = "retention.tag_processed"
	EventRunFinished       EventType = "retention.run_finished"
	EventRunAborted        EventType = "retention.run_aborted"
)

// Event represents a domain event emitted during a retention run.
type Event struct {
	ID         string
	RunID      string
	Type       EventType
	Timestamp  time.Time
	Repository string
	Tag        string
	Data       any
}

// RunStartedPayload contains data for retention.run_started events.
type RunStartedPayload struct {
	RunID        string
	Registry     string
	Mode         RunMode
	Keep         int
	Repositories []string
}

// RepositoryPlannedPayload contains data for retention.repository_planned events.
type RepositoryPlannedPayload struct {
	RunID        string
	Repository   string
	TagsListed   int
	TagsFiltered int
	Unresolved   []string
	Plan         RetentionPlan
}

// RepositorySkippedPayload contains data for retention.repository_skipped events.
type RepositorySkippedPayload struct {
	RunID      string
	Repository string
	TagsListed int
}

// TagProcessedPayload contains data for retention.tag_processed events.
type TagProcessedPayload struct {
	RunID      string
	Repository string
	Result     DeletionResult
}

// RunFinishedPayload contains data for retention.run_finished events.
type RunFinishedPayload struct {
	Report *RunReport
}

// RunAbortedPayload contains data for retention.run_aborted events.
type RunAbortedPayload struct {
	RunID string
	Err   error
}
