package models

import "fmt"

// SessionStatus is the lifecycle state of a virtual session.
type SessionStatus string

const (
	SessionConnecting SessionStatus = "connecting"
	SessionActive     SessionStatus = "active"
	SessionEnded      SessionStatus = "ended"
)

// SessionState is a point-in-time view of an active session, owned by its
// lifecycle instance.
type SessionState struct {
	MeetingID        string        `json:"meetingId"`
	Status           SessionStatus `json:"status"`
	Muted            bool          `json:"muted"`
	VideoOff         bool          `json:"videoOff"`
	ParticipantCount int           `json:"participantCount"`
	ElapsedSeconds   int           `json:"elapsedSeconds"`
	ElapsedDisplay   string        `json:"elapsedDisplay"`
}

// FormatElapsed renders a second count as MM:SS for display.
func FormatElapsed(seconds int) string {
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
