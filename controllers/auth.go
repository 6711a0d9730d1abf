package controllers

import (
	"errors"
	"io"
	"log"
	"net/http"

	"studio-backend/session"
	"studio-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SessionController drives the view state machine and exchanges a correct
// PIN for an admin token.
type SessionController struct {
	*Deps
}

type PinInput struct {
	Pin string `json:"pin"`
}

func (sc *SessionController) lookup(c *gin.Context) (*session.Session, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid session ID format")
		return nil, false
	}
	s, ok := sc.Sessions.Get(id)
	if !ok {
		utils.RespondWithError(c, http.StatusNotFound, "Session not found")
		return nil, false
	}
	return s, true
}

func (sc *SessionController) CreateSession(c *gin.Context) {
	now := sc.now()
	s := sc.Sessions.Create(now)
	c.JSON(http.StatusCreated, s.Snapshot(now))
}

func (sc *SessionController) GetSession(c *gin.Context) {
	s, ok := sc.lookup(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.Snapshot(sc.now()))
}

func (sc *SessionController) ApplyEvent(c *gin.Context) {
	s, ok := sc.lookup(c)
	if !ok {
		return
	}
	var ev session.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}
	snap, err := s.Apply(ev, sc.now())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error(), "session": snap})
		return
	}
	c.JSON(http.StatusOK, snap)
}

// RequireAdmin runs after utils.AuthMiddleware. The token only names a
// session; access lasts while that session stays on the admin dashboard, so
// logging out or an expired session closes it.
func (sc *SessionController) RequireAdmin(c *gin.Context) {
	id, err := uuid.Parse(c.GetString(utils.ContextSessionID))
	if err != nil || sc.Sessions == nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid session")
		return
	}
	s, ok := sc.Sessions.Get(id)
	if !ok || !s.Authorize(sc.now()) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Session is not signed in")
		return
	}
	c.Next()
}

// SubmitPin checks the PIN. A wrong PIN clears the input and raises the
// error indicator; there is no lockout.
func (sc *SessionController) SubmitPin(c *gin.Context) {
	s, ok := sc.lookup(c)
	if !ok {
		return
	}
	var input PinInput
	// an empty body submits the digits typed through press_digit events
	if err := c.ShouldBindJSON(&input); err != nil && !errors.Is(err, io.EOF) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	granted, snap, err := s.SubmitPin(c.Request.Context(), sc.Gate, input.Pin, sc.now())
	switch {
	case errors.Is(err, session.ErrInvalidTransition):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "PIN entry is not open", "session": snap})
		return
	case err != nil:
		log.Printf("[AUTH] pin check failed: %v", err)
		utils.RespondWithError(c, http.StatusInternalServerError, "Could not verify PIN")
		return
	case !granted:
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "PIN incorrecto", "session": snap})
		return
	}

	token, err := utils.GenerateToken(sc.JWT.Secret, s.ID.String(), sc.JWT.Expiry)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresIn": int(sc.JWT.Expiry.Seconds()),
		"session":   snap,
	})
}
