package notification

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"mindhaven/models"
)

// SMTPConfig carries the mail relay settings.
type SMTPConfig struct {
	Host string
	Port int
	User string
	Pass string
}

// EmailNotifier sends meeting details over SMTP.
type EmailNotifier struct {
	cfg    SMTPConfig
	logger *zap.Logger
}

func NewEmailNotifier(cfg SMTPConfig, logger *zap.Logger) *EmailNotifier {
	return &EmailNotifier{cfg: cfg, logger: logger}
}

// SendMeetingDetails mails the confirmation with the session link.
func (n *EmailNotifier) SendMeetingDetails(ctx context.Context, recipient string, details models.MeetingDetails) error {
	if recipient == "" {
		return fmt.Errorf("missing recipient address")
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.User)
	m.SetHeader("To", recipient)
	m.SetHeader("Subject", "Your therapy session is booked")
	m.SetBody("text/plain", fmt.Sprintf(
		"Your appointment with %s is confirmed for %s at %s.\n\nMeeting ID: %s\nJoin here: %s\n",
		details.TherapistName, details.Day, details.TimeSlot, details.MeetingID, details.MeetingURL,
	))

	d := gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.User, n.cfg.Pass)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send confirmation mail: %w", err)
	}

	n.logger.Info("Meeting details mailed",
		zap.String("recipient", recipient),
		zap.String("meetingId", details.MeetingID))
	return nil
}
