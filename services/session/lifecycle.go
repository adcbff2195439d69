package session

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"mindhaven/models"
)

// Config carries the simulated timings of a session.
type Config struct {
	// ConnectDelay is how long a session stays in Connecting before the
	// second participant joins.
	ConnectDelay time.Duration
	// TickInterval is the period of the elapsed-time counter.
	TickInterval time.Duration
}

// DefaultConfig mirrors the product's simulated timings.
func DefaultConfig() Config {
	return Config{
		ConnectDelay: 2 * time.Second,
		TickInterval: time.Second,
	}
}

// Lifecycle owns the ephemeral state of one virtual session, keyed by its
// meeting id: connection state, the elapsed-time counter, and the local
// media toggles. It holds at most one pending connect timer and one
// repeating ticker; both are released on End.
type Lifecycle struct {
	meetingID string
	cfg       Config
	logger    *zap.Logger

	mu           sync.Mutex
	status       models.SessionStatus
	muted        bool
	videoOff     bool
	participants int
	elapsed      int

	connectTimer *time.Timer
	done         chan struct{}
}

// NewLifecycle creates a session in Connecting with a single participant and
// schedules the simulated connection.
func NewLifecycle(meetingID string, cfg Config, logger *zap.Logger) *Lifecycle {
	s := &Lifecycle{
		meetingID:    meetingID,
		cfg:          cfg,
		logger:       logger,
		status:       models.SessionConnecting,
		participants: 1,
		done:         make(chan struct{}),
	}
	s.connectTimer = time.AfterFunc(cfg.ConnectDelay, s.connect)
	return s
}

func (s *Lifecycle) MeetingID() string { return s.meetingID }

// connect moves the session to Active and models the other participant
// joining. If the session was torn down before the delay elapsed, the
// pending transition is dropped.
func (s *Lifecycle) connect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != models.SessionConnecting {
		return
	}
	s.status = models.SessionActive
	s.participants = 2
	s.logger.Info("Session connected", zap.String("meetingId", s.meetingID))

	go s.runTicker()
}

// runTicker advances the elapsed counter once per tick until the session
// ends. The ticker rather than repeated sleeps keeps drift within tick
// granularity.
func (s *Lifecycle) runTicker() {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			if s.status == models.SessionActive {
				s.elapsed++
			}
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}

// ToggleMute flips the local mute flag and returns the new value. The flag
// is presentation state only; it never affects participants or connection.
// Once the session has ended the flag is frozen.
func (s *Lifecycle) ToggleMute() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != models.SessionEnded {
		s.muted = !s.muted
	}
	return s.muted
}

// ToggleVideo flips the local video-off flag and returns the new value.
func (s *Lifecycle) ToggleVideo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != models.SessionEnded {
		s.videoOff = !s.videoOff
	}
	return s.videoOff
}

// End terminates the session. The elapsed counter freezes, the pending
// connect timer is cancelled and the ticker is stopped. Ended is terminal;
// calling End again is a no-op.
func (s *Lifecycle) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status == models.SessionEnded {
		return
	}
	s.connectTimer.Stop()
	close(s.done)
	s.status = models.SessionEnded
	s.logger.Info("Session ended",
		zap.String("meetingId", s.meetingID),
		zap.Int("elapsedSeconds", s.elapsed))
}

// Snapshot returns a point-in-time view of the session state.
func (s *Lifecycle) Snapshot() models.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SessionState{
		MeetingID:        s.meetingID,
		Status:           s.status,
		Muted:            s.muted,
		VideoOff:         s.videoOff,
		ParticipantCount: s.participants,
		ElapsedSeconds:   s.elapsed,
		ElapsedDisplay:   models.FormatElapsed(s.elapsed),
	}
}
