// Package state implements the finite state machine that is the single
// source of truth for the user-visible mode of the kiosk.
package state

// AppState is the closed set of user-visible kiosk modes. Exactly one state
// is current at any time and only the Machine mutates it.
type AppState int

const (
	// Ready: camera on, waiting for a product on the counter.
	Ready AppState = iota
	// Scanning: a stable object was detected, pipeline running.
	Scanning
	// ResultAuto: product identified, result shown with auto-advance.
	ResultAuto
	// ResultManualNav: user is manually navigating results.
	ResultManualNav
	// ResultPaused: result screen frozen for discussion.
	ResultPaused
	// UnknownNote: no confident identification, fallback guidance shown.
	UnknownNote
	// Idle: no activity for a long time, attract content playing.
	Idle
)

// String returns the state name.
func (s AppState) String() string {
	switch s {
	case Ready:
		return "READY"
	case Scanning:
		return "SCANNING"
	case ResultAuto:
		return "RESULT_AUTO"
	case ResultManualNav:
		return "RESULT_MANUAL_NAV"
	case ResultPaused:
		return "RESULT_PAUSED"
	case UnknownNote:
		return "UNKNOWN_NOTE"
	case Idle:
		return "IDLE"
	default:
		return "UNKNOWN"
	}
}

// Event is a semantic trigger for state transitions. Events describe what
// happened, never what should happen; no low-level camera or model signals
// belong here.
type Event int

const (
	ObjectDetected Event = iota
	ObjectRemoved
	NewScanRequested
	MatchFound
	MatchNotFound
	ManualSelection
	ResultTimeout
	PauseRequested
	ResumeRequested
	IdleTimeout
	ActivityDetected
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case ObjectDetected:
		return "OBJECT_DETECTED"
	case ObjectRemoved:
		return "OBJECT_REMOVED"
	case NewScanRequested:
		return "NEW_SCAN_REQUESTED"
	case MatchFound:
		return "MATCH_FOUND"
	case MatchNotFound:
		return "MATCH_NOT_FOUND"
	case ManualSelection:
		return "MANUAL_SELECTION"
	case ResultTimeout:
		return "RESULT_TIMEOUT"
	case PauseRequested:
		return "PAUSE_REQUESTED"
	case ResumeRequested:
		return "RESUME_REQUESTED"
	case IdleTimeout:
		return "IDLE_TIMEOUT"
	case ActivityDetected:
		return "ACTIVITY_DETECTED"
	default:
		return "UNKNOWN"
	}
}
