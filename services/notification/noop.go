package notification

import (
	"context"

	"mindhaven/models"
)

// NoopNotifier discards notifications. Used when the deployment publishes an
// internal session route, which carries no mail side effect.
type NoopNotifier struct{}

func (NoopNotifier) SendMeetingDetails(_ context.Context, _ string, _ models.MeetingDetails) error {
	return nil
}
