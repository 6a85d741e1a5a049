package forms

// StartSessionParams is the validated input for starting a pomodoro
// session.
type StartSessionParams struct {
	TaskID string
}

// StopSessionParams is the validated input for stopping a session.
type StopSessionParams struct {
	SessionID string
}

// ParseStartSession validates session-start input: a single required
// task_id field that must be a well-formed UUID.
func ParseStartSession(v Values) (StartSessionParams, FieldErrors) {
	fe := FieldErrors{}
	id := parseID(v, "task_id", fe)
	if len(fe) > 0 {
		return StartSessionParams{}, fe
	}
	return StartSessionParams{TaskID: id}, nil
}

// ParseStopSession validates session-stop input: a single required
// session_id field that must be a well-formed UUID.
func ParseStopSession(v Values) (StopSessionParams, FieldErrors) {
	fe := FieldErrors{}
	id := parseID(v, "session_id", fe)
	if len(fe) > 0 {
		return StopSessionParams{}, fe
	}
	return StopSessionParams{SessionID: id}, nil
}
