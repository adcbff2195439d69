package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"mindhaven/models"
	"mindhaven/services/booking"
	"mindhaven/services/directory"
	"mindhaven/services/notification"
	"mindhaven/services/payment"
	"mindhaven/services/session"
	"mindhaven/utils"
)

// BookingHandler exposes the booking flow over HTTP. Every client flow gets
// its own state machine, kept in an in-process registry keyed by a minted
// session id; machines hold live timers and are never serialized.
type BookingHandler struct {
	directory directory.TherapistDirectory
	payments  payment.PaymentSimulator
	sessions  *session.Manager
	notifier  notification.Notifier
	publisher booking.ConfirmationPublisher
	logger    *zap.Logger

	mu       sync.RWMutex
	machines map[string]*booking.Machine
}

func NewBookingHandler(
	dir directory.TherapistDirectory,
	payments payment.PaymentSimulator,
	sessions *session.Manager,
	notifier notification.Notifier,
	publisher booking.ConfirmationPublisher,
	logger *zap.Logger,
) *BookingHandler {
	return &BookingHandler{
		directory: dir,
		payments:  payments,
		sessions:  sessions,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger,
		machines:  make(map[string]*booking.Machine),
	}
}

func (h *BookingHandler) machine(c *gin.Context) (*booking.Machine, bool) {
	h.mu.RLock()
	m, ok := h.machines[c.Param("sessionID")]
	h.mu.RUnlock()
	if !ok {
		utils.JSONError(c, http.StatusNotFound, "booking session not found", c.Param("sessionID"))
	}
	return m, ok
}

// StartBookingSession creates a fresh machine for one client flow and
// returns the filter choices used to populate the search form.
func (h *BookingHandler) StartBookingSession(c *gin.Context) {
	var input struct {
		Email string `json:"email"`
	}
	// The body is optional; without an address the mail notifier has no
	// recipient and delivery is skipped.
	_ = c.ShouldBindJSON(&input)

	m := booking.NewMachine(h.directory, h.payments, h.sessions, h.notifier, h.publisher, input.Email, h.logger)
	sessionID := uuid.New().String()

	h.mu.Lock()
	h.machines[sessionID] = m
	h.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"sessionID":   sessionID,
		"specialties": h.directory.DistinctSpecialties(),
		"days":        h.directory.DistinctAvailabilityDays(),
	})
}

// SearchTherapists runs a filtered directory query. No match is not an
// error: the response echoes the applied criteria so the client can render
// the empty state.
func (h *BookingHandler) SearchTherapists(c *gin.Context) {
	m, ok := h.machine(c)
	if !ok {
		return
	}

	var criteria models.SearchCriteria
	if err := c.ShouldBindJSON(&criteria); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid search criteria", err.Error())
		return
	}

	results, err := m.Search(criteria)
	if err != nil {
		utils.JSONError(c, http.StatusConflict, "search not allowed now", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"criteria": criteria,
		"results":  results,
		"count":    len(results),
	})
}

// SelectTherapist picks a therapist from the current results and returns the
// default day plus its derived slot set.
func (h *BookingHandler) SelectTherapist(c *gin.Context) {
	m, ok := h.machine(c)
	if !ok {
		return
	}

	var input struct {
		TherapistID string `json:"therapistId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := m.SelectTherapist(input.TherapistID)
	var malformed *booking.MalformedAvailabilityError
	switch {
	case errors.Is(err, booking.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "selection not allowed now", err.Error())
		return
	case errors.Is(err, booking.ErrUnknownTherapist):
		utils.JSONError(c, http.StatusBadRequest, "therapist not in current results", input.TherapistID)
		return
	case errors.As(err, &malformed):
		// The selection stands; slot choice is disabled for this day.
		h.respondSelection(c, m, malformed.Error())
		return
	}
	h.respondSelection(c, m, "")
}

// SelectDay switches the booking day and rederives the slot set.
func (h *BookingHandler) SelectDay(c *gin.Context) {
	m, ok := h.machine(c)
	if !ok {
		return
	}

	var input struct {
		Day string `json:"day"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	err := m.SelectDay(input.Day)
	var malformed *booking.MalformedAvailabilityError
	switch {
	case errors.Is(err, booking.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "day selection not allowed now", err.Error())
		return
	case errors.Is(err, booking.ErrUnknownDay):
		utils.JSONError(c, http.StatusBadRequest, "day not in therapist availability", input.Day)
		return
	case errors.As(err, &malformed):
		h.respondSelection(c, m, malformed.Error())
		return
	}
	h.respondSelection(c, m, "")
}

func (h *BookingHandler) respondSelection(c *gin.Context, m *booking.Machine, warning string) {
	therapist, err := m.SelectedTherapist()
	if err != nil {
		// Booking stage without a selection: send the client back to search.
		utils.JSONError(c, http.StatusConflict, "no therapist selected", "return to /search")
		return
	}

	resp := gin.H{
		"therapist": therapist,
		"day":       m.Day(),
		"slots":     m.Slots(),
		"state":     m.State(),
	}
	if warning != "" {
		resp["warning"] = warning
	}
	c.JSON(http.StatusOK, resp)
}

// SelectSlot chooses a bookable time from the derived slot set.
func (h *BookingHandler) SelectSlot(c *gin.Context) {
	m, ok := h.machine(c)
	if !ok {
		return
	}

	var input struct {
		TimeSlot string `json:"timeSlot"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	switch err := m.SelectSlot(input.TimeSlot); {
	case errors.Is(err, booking.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "slot selection not allowed now", err.Error())
		return
	case errors.Is(err, booking.ErrSlotUnavailable):
		utils.JSONError(c, http.StatusBadRequest, "slot not available for the chosen day", input.TimeSlot)
		return
	}

	c.JSON(http.StatusOK, gin.H{"state": m.State(), "day": m.Day(), "timeSlot": m.Slot()})
}

// Checkout submits the booking form and moves the flow to payment. Without a
// chosen day and slot this is a no-op and the state is simply echoed back.
func (h *BookingHandler) Checkout(c *gin.Context) {
	m, ok := h.machine(c)
	if !ok {
		return
	}

	if err := m.ProceedToPayment(); err != nil {
		utils.JSONError(c, http.StatusConflict, "checkout not allowed now", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":    m.State(),
		"fee":      payment.ConsultationFee,
		"currency": payment.Currency,
	})
}

// SubmitPayment settles the instrument and, on success, returns the
// confirmed booking with its session link.
func (h *BookingHandler) SubmitPayment(c *gin.Context) {
	m, ok := h.machine(c)
	if !ok {
		return
	}

	var instrument models.PaymentInstrument
	if err := c.ShouldBindJSON(&instrument); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payment input", err.Error())
		return
	}

	outcomeCh, err := m.SubmitPayment(c.Request.Context(), instrument)
	switch {
	case errors.Is(err, booking.ErrPaymentInFlight):
		utils.JSONError(c, http.StatusConflict, "a payment is already being processed", err.Error())
		return
	case errors.Is(err, booking.ErrInvalidTransition):
		utils.JSONError(c, http.StatusConflict, "payment not allowed now", err.Error())
		return
	}

	outcome := <-outcomeCh
	if outcome.Err != nil {
		var invalid *payment.InvalidInstrumentError
		if errors.As(outcome.Err, &invalid) {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"state":  m.State(),
				"reason": invalid.Reason,
			})
			return
		}
		utils.JSONError(c, http.StatusBadGateway, "payment did not complete", outcome.Err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"state":   booking.StateConfirmed,
		"booking": outcome.Booking,
	})
}

// CancelPayment abandons the payment attempt and returns to slot review.
func (h *BookingHandler) CancelPayment(c *gin.Context) {
	m, ok := h.machine(c)
	if !ok {
		return
	}

	if err := m.CancelPayment(); err != nil {
		utils.JSONError(c, http.StatusConflict, "nothing to cancel", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": m.State()})
}

// ResetSession starts the flow over ("book another appointment"). Any live
// video session keeps running on its own.
func (h *BookingHandler) ResetSession(c *gin.Context) {
	m, ok := h.machine(c)
	if !ok {
		return
	}
	m.Reset()
	c.JSON(http.StatusOK, gin.H{"state": m.State()})
}
