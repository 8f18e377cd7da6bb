package pipeline

import "time"

// Stage describes a high-level conversion phase.
type Stage string

const (
	// StageRules is the deterministic rule-engine stage.
	StageRules Stage = "rules"
	// StageAI is the Groq-backed conversion stage.
	StageAI Stage = "ai"
	// StageWrite is the output-writing stage.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the file is being converted.
	StatusWorking Status = "working"
	// StatusDone indicates the file converted successfully.
	StatusDone Status = "done"
	// StatusError indicates the conversion failed.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the overall run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
	Cached  bool
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}
