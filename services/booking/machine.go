package booking

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindhaven/models"
	"mindhaven/services/directory"
	"mindhaven/services/notification"
	"mindhaven/services/payment"
	"mindhaven/services/session"
)

// State identifies a stage of the booking flow.
type State string

const (
	StateSearchIdle        State = "search_idle"
	StateResultsShown      State = "results_shown"
	StateTherapistSelected State = "therapist_selected"
	StateSlotChosen        State = "slot_chosen"
	StateAwaitingPayment   State = "awaiting_payment"
	StatePaymentRejected   State = "payment_rejected"
	StateConfirmed         State = "confirmed"
)

// ErrPaymentCancelled is delivered on the outcome channel when a submission
// completes after the attempt was cancelled or superseded.
var ErrPaymentCancelled = errors.New("booking: payment attempt cancelled")

// PaymentOutcome is the single completion of an asynchronous payment
// submission.
type PaymentOutcome struct {
	Booking *models.Booking
	Err     error
}

// Machine drives one client through search, selection, slot choice, payment
// and confirmation. Events are serialized on a single mutex: a new event is
// processed only after the prior transition fully completed, so transitions
// never race. The payment settlement is the only long-latency operation; it
// runs off the mutex and re-validates the attempt on completion.
type Machine struct {
	directory directory.TherapistDirectory
	payments  payment.PaymentSimulator
	sessions  *session.Manager
	notifier  notification.Notifier
	publisher ConfirmationPublisher
	recipient string
	logger    *zap.Logger

	mu        sync.Mutex
	state     State
	criteria  models.SearchCriteria
	results   []models.Therapist
	selected  *models.Therapist
	day       string
	slot      string
	slots     []string
	attempt   int
	inFlight  bool
	rejection string
	booking   *models.Booking
}

// NewMachine builds a booking machine for one client. The recipient address
// is where meeting details are sent when the active publisher notifies.
func NewMachine(
	dir directory.TherapistDirectory,
	payments payment.PaymentSimulator,
	sessions *session.Manager,
	notifier notification.Notifier,
	publisher ConfirmationPublisher,
	recipient string,
	logger *zap.Logger,
) *Machine {
	return &Machine{
		directory: dir,
		payments:  payments,
		sessions:  sessions,
		notifier:  notifier,
		publisher: publisher,
		recipient: recipient,
		logger:    logger,
		state:     StateSearchIdle,
	}
}

// Search runs a directory query and shows the results. An empty result set
// is a valid outcome; the stored criteria let the caller echo what was
// applied. Any prior selection is discarded.
func (m *Machine) Search(criteria models.SearchCriteria) ([]models.Therapist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateSearchIdle && m.state != StateResultsShown {
		return nil, ErrInvalidTransition
	}

	m.criteria = criteria
	m.results = m.directory.Search(criteria)
	m.clearSelection()
	m.state = StateResultsShown
	return m.results, nil
}

// SelectTherapist picks one therapist out of the current result set. The
// default day becomes the first entry of that therapist's availability and
// the slot resets to empty. A malformed availability range is returned so
// the caller can surface it, but it only empties the slot set; the selection
// itself stands.
func (m *Machine) SelectTherapist(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateResultsShown {
		return ErrInvalidTransition
	}

	var picked *models.Therapist
	for i := range m.results {
		if m.results[i].ID == id {
			picked = &m.results[i]
			break
		}
	}
	if picked == nil {
		return ErrUnknownTherapist
	}

	m.selected = picked
	m.day = picked.FirstDay()
	m.slot = ""
	m.state = StateTherapistSelected
	return m.deriveSlotsLocked()
}

// SelectDay switches the booking to another of the therapist's working days,
// resetting the chosen slot.
func (m *Machine) SelectDay(day string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateTherapistSelected && m.state != StateSlotChosen {
		return ErrInvalidTransition
	}
	if _, ok := m.selected.AvailabilityFor(day); !ok {
		return ErrUnknownDay
	}

	m.day = day
	m.slot = ""
	m.state = StateTherapistSelected
	return m.deriveSlotsLocked()
}

// deriveSlotsLocked recomputes the slot set for the current (therapist, day)
// pair. A malformed range empties the set and is reported; it must not take
// the whole flow down.
func (m *Machine) deriveSlotsLocked() error {
	m.slots = nil
	if m.selected == nil || m.day == "" {
		return nil
	}
	hours, _ := m.selected.AvailabilityFor(m.day)
	slots, err := DeriveSlots(hours)
	if err != nil {
		m.logger.Warn("Skipping slot derivation for malformed availability",
			zap.String("therapistId", m.selected.ID),
			zap.String("day", m.day),
			zap.Error(err))
		return err
	}
	m.slots = slots
	return nil
}

// SelectSlot chooses a bookable time. The slot must be an element of the
// derived slot set for the current day; anything else is rejected before
// payment is ever reachable.
func (m *Machine) SelectSlot(slot string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateTherapistSelected && m.state != StateSlotChosen {
		return ErrInvalidTransition
	}

	valid := false
	for _, s := range m.slots {
		if s == slot {
			valid = true
			break
		}
	}
	if !valid {
		return ErrSlotUnavailable
	}

	m.slot = slot
	m.state = StateSlotChosen
	return nil
}

// ProceedToPayment submits the booking form. With both a day and a slot set
// it unconditionally moves to awaiting payment; without them it is a silent
// no-op, not an error.
func (m *Machine) ProceedToPayment() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateSlotChosen {
		if m.state == StateTherapistSelected {
			// No day/slot chosen yet: stay put.
			return nil
		}
		return ErrInvalidTransition
	}

	m.state = StateAwaitingPayment
	m.rejection = ""
	return nil
}

// SubmitPayment hands the instrument to the payment simulator. It returns a
// single-completion outcome channel and keeps the machine responsive while
// the settlement is in flight; a second submission for the same attempt is
// rejected rather than run concurrently.
func (m *Machine) SubmitPayment(ctx context.Context, instrument models.PaymentInstrument) (<-chan PaymentOutcome, error) {
	m.mu.Lock()
	if m.state != StateAwaitingPayment && m.state != StatePaymentRejected {
		m.mu.Unlock()
		return nil, ErrInvalidTransition
	}
	if m.inFlight {
		m.mu.Unlock()
		return nil, ErrPaymentInFlight
	}
	m.inFlight = true
	m.attempt++
	attempt := m.attempt
	m.state = StateAwaitingPayment
	m.rejection = ""
	m.mu.Unlock()

	outcome := make(chan PaymentOutcome, 1)
	go func() {
		record, err := m.payments.Submit(ctx, instrument)

		m.mu.Lock()
		defer m.mu.Unlock()

		if attempt != m.attempt {
			// Cancelled or superseded while settling; the result is dropped
			// so one booking can never hold two transaction records.
			outcome <- PaymentOutcome{Err: ErrPaymentCancelled}
			return
		}
		m.inFlight = false

		if err != nil {
			var invalid *payment.InvalidInstrumentError
			if errors.As(err, &invalid) {
				m.state = StatePaymentRejected
				m.rejection = invalid.Reason
			}
			outcome <- PaymentOutcome{Err: err}
			return
		}

		outcome <- PaymentOutcome{Booking: m.confirmLocked(record)}
	}()
	return outcome, nil
}

// confirmLocked finalizes the booking after a successful settlement: it
// mints the meeting id, binds the booking record, starts the session
// lifecycle and publishes the session link, then fires the notification.
func (m *Machine) confirmLocked(record *models.PaymentRecord) *models.Booking {
	meetingID := uuid.New().String()
	link := m.publisher.SessionLink(meetingID)

	booking := &models.Booking{
		Therapist:   *m.selected,
		Day:         m.day,
		TimeSlot:    m.slot,
		Payment:     *record,
		MeetingID:   meetingID,
		SessionLink: link,
	}

	if _, err := m.sessions.Create(meetingID); err != nil {
		// Ids are minted per confirmation, so this only fires on a registry
		// bug; the booking itself already stands.
		m.logger.Error("Failed to start session lifecycle",
			zap.String("meetingId", meetingID), zap.Error(err))
	}

	m.booking = booking
	m.state = StateConfirmed
	m.logger.Info("Booking confirmed",
		zap.String("meetingId", meetingID),
		zap.String("therapistId", booking.Therapist.ID),
		zap.String("transactionId", record.TransactionID))

	if m.publisher.Notifies() {
		details := models.MeetingDetails{
			TherapistName: booking.Therapist.Name,
			Day:           booking.Day,
			TimeSlot:      booking.TimeSlot,
			MeetingID:     meetingID,
			MeetingURL:    link,
		}
		recipient := m.recipient
		// Best effort, exactly once: a delivery failure never rolls back the
		// confirmed booking.
		go func() {
			if err := m.notifier.SendMeetingDetails(context.Background(), recipient, details); err != nil {
				m.logger.Warn("Confirmation mail failed", zap.Error(err))
			}
		}()
	}
	return booking
}

// CancelPayment abandons the current payment attempt and returns to the slot
// review stage. An in-flight settlement completing afterwards is discarded.
func (m *Machine) CancelPayment() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateAwaitingPayment && m.state != StatePaymentRejected {
		return ErrInvalidTransition
	}
	m.attempt++
	m.inFlight = false
	m.rejection = ""
	m.state = StateSlotChosen
	return nil
}

// Reset returns the machine to the idle search state, discarding all
// ephemeral selection state and the booking binding. A live session
// lifecycle keeps running independently of the machine.
func (m *Machine) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempt++
	m.inFlight = false
	m.criteria = models.SearchCriteria{}
	m.results = nil
	m.booking = nil
	m.rejection = ""
	m.clearSelection()
	m.state = StateSearchIdle
}

func (m *Machine) clearSelection() {
	m.selected = nil
	m.day = ""
	m.slot = ""
	m.slots = nil
}

// State returns the current stage of the flow.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Criteria echoes the filters applied to the last search.
func (m *Machine) Criteria() models.SearchCriteria {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.criteria
}

// Results returns the current result set in catalog order.
func (m *Machine) Results() []models.Therapist {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]models.Therapist(nil), m.results...)
}

// SelectedTherapist returns the current selection, or
// ErrMissingTherapistContext when the booking stage was entered without one.
func (m *Machine) SelectedTherapist() (models.Therapist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.selected == nil {
		return models.Therapist{}, ErrMissingTherapistContext
	}
	return *m.selected, nil
}

// Day returns the currently selected day.
func (m *Machine) Day() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.day
}

// Slot returns the currently chosen slot label.
func (m *Machine) Slot() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slot
}

// Slots returns the derived slot set for the current (therapist, day) pair.
// An empty set means slot selection is disabled.
func (m *Machine) Slots() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.slots...)
}

// RejectionReason returns the reason of the last payment rejection, if any.
func (m *Machine) RejectionReason() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rejection
}

// Booking returns the confirmed booking record, if the flow reached
// confirmation.
func (m *Machine) Booking() *models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.booking == nil {
		return nil
	}
	b := *m.booking
	return &b
}
