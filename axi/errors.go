package axi

import "fmt"

// A BadResponseError reports a beat that completed with a response code other
// than OKAY. It is attached to the result of the command that owned the beat
// and does not affect sibling commands.
type BadResponseError struct {
	Description string
	Resp        RespCode
}

func (e *BadResponseError) Error() string {
	return fmt.Sprintf("bad response %s in %q", e.Resp, e.Description)
}

// A ProtocolViolationError reports malformed peer behavior: a handshake that
// no one expected, response lengths that do not add up to a command's length,
// or an unresolvable signal. It indicates a bug in the simulation or the
// design under test and is never retried.
type ProtocolViolationError struct {
	Reason string
}

func (e *ProtocolViolationError) Error() string {
	return "protocol violation: " + e.Reason
}

// An ExhaustedResponsesError reports that a response stream ended before a
// command received responses for all its beats.
type ExhaustedResponsesError struct {
	Description string
}

func (e *ExhaustedResponsesError) Error() string {
	return fmt.Sprintf("ran out of responses in %q", e.Description)
}
