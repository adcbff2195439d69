package notification

import (
	"context"

	"mindhaven/models"
)

// Notifier delivers meeting details to the client after a confirmed booking.
// Delivery is best-effort: a failure is logged by the caller and never rolls
// back the booking.
type Notifier interface {
	SendMeetingDetails(ctx context.Context, recipient string, details models.MeetingDetails) error
}
