package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mindhaven/services/session"
	"mindhaven/utils"
)

// SessionHandler exposes the virtual-session controls keyed by meeting id.
type SessionHandler struct {
	sessions *session.Manager
	logger   *zap.Logger
}

func NewSessionHandler(sessions *session.Manager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, logger: logger}
}

func (h *SessionHandler) lifecycle(c *gin.Context) (*session.Lifecycle, bool) {
	s, err := h.sessions.Get(c.Param("meetingID"))
	if err != nil {
		utils.JSONError(c, http.StatusNotFound, "session not found", c.Param("meetingID"))
		return nil, false
	}
	return s, true
}

// GetSession returns a snapshot of the session state.
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, ok := h.lifecycle(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot())
}

// ToggleMute flips the local mute flag.
func (h *SessionHandler) ToggleMute(c *gin.Context) {
	s, ok := h.lifecycle(c)
	if !ok {
		return
	}
	muted := s.ToggleMute()
	c.JSON(http.StatusOK, gin.H{"muted": muted})
}

// ToggleVideo flips the local video-off flag.
func (h *SessionHandler) ToggleVideo(c *gin.Context) {
	s, ok := h.lifecycle(c)
	if !ok {
		return
	}
	videoOff := s.ToggleVideo()
	c.JSON(http.StatusOK, gin.H{"videoOff": videoOff})
}

// EndSession terminates the session after the client confirmed the action on
// their side. The session stays queryable in its ended state.
func (h *SessionHandler) EndSession(c *gin.Context) {
	s, ok := h.lifecycle(c)
	if !ok {
		return
	}
	s.End()
	c.JSON(http.StatusOK, s.Snapshot())
}

// TeardownSession ends the session and drops it from the registry, used
// when the client navigates away.
func (h *SessionHandler) TeardownSession(c *gin.Context) {
	meetingID := c.Param("meetingID")
	if err := h.sessions.Teardown(meetingID); err != nil {
		utils.JSONError(c, http.StatusNotFound, "session not found", meetingID)
		return
	}
	h.logger.Info("Session torn down", zap.String("meetingId", meetingID))
	c.Status(http.StatusNoContent)
}
