package booking

import "fmt"

// ConfirmationPublisher produces the opaque session-access link for a
// confirmed booking. Two strategies ship; a deployment picks exactly one.
type ConfirmationPublisher interface {
	SessionLink(meetingID string) string
	// Notifies reports whether a confirmation under this strategy carries a
	// mail side effect.
	Notifies() bool
}

// ExternalMeetingPublisher links the session to a meeting room on an
// external video endpoint and mails the details to the client.
type ExternalMeetingPublisher struct {
	BaseURL string
}

func (p ExternalMeetingPublisher) SessionLink(meetingID string) string {
	return fmt.Sprintf("%s/%s", p.BaseURL, meetingID)
}

func (p ExternalMeetingPublisher) Notifies() bool { return true }

// InternalRoutePublisher links the session to the in-app session route, with
// no notification side effect.
type InternalRoutePublisher struct{}

func (p InternalRoutePublisher) SessionLink(meetingID string) string {
	return "/session/" + meetingID
}

func (p InternalRoutePublisher) Notifies() bool { return false }
