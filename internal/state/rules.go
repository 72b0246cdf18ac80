package state

// transitionKey identifies one (state, event) pair in the rules table.
type transitionKey struct {
	from  AppState
	event Event
}

// rules is the full set of legal transitions, built once at package init and
// never modified. A (state, event) pair absent from the table is silently
// ignored by the machine.
var rules = map[transitionKey]AppState{
	{Ready, ObjectDetected}: Scanning,
	{Ready, IdleTimeout}:    Idle,

	{Scanning, MatchFound}:     ResultAuto,
	{Scanning, MatchNotFound}:  UnknownNote,
	{Scanning, ObjectRemoved}:  Ready,
	{Scanning, PauseRequested}: ResultPaused,

	{ResultAuto, ResultTimeout}:    Ready,
	{ResultAuto, NewScanRequested}: Scanning,
	{ResultAuto, PauseRequested}:   ResultPaused,

	{ResultManualNav, NewScanRequested}: Scanning,
	{ResultManualNav, ResultTimeout}:    Ready,

	{ResultPaused, ResumeRequested}:  ResultAuto,
	{ResultPaused, NewScanRequested}: Scanning,
	{ResultPaused, ObjectRemoved}:    Ready,

	{UnknownNote, ManualSelection}:  ResultManualNav,
	{UnknownNote, ObjectRemoved}:    Ready,
	{UnknownNote, NewScanRequested}: Scanning,

	{Idle, ActivityDetected}: Ready,
}

// NextState returns the state resulting from applying event in the current
// state. Illegal transitions return the current state unchanged.
func NextState(current AppState, event Event) AppState {
	if next, ok := rules[transitionKey{current, event}]; ok {
		return next
	}
	return current
}
