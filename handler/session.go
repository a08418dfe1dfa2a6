package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shruti0731/MiniProject2/model"
	"github.com/shruti0731/MiniProject2/pkg/logger"
	"github.com/shruti0731/MiniProject2/service"
)

// SessionHandler exposes upload sessions to the browser page
type SessionHandler struct {
	store          *service.SessionStore
	maxUploadBytes int64
}

func NewSessionHandler(store *service.SessionStore, maxUploadBytes int64) *SessionHandler {
	return &SessionHandler{
		store:          store,
		maxUploadBytes: maxUploadBytes,
	}
}

type ModeRequest struct {
	Mode string `json:"mode" binding:"required"`
}

type TextRequest struct {
	Text string `json:"text"`
}

// Create starts a session for a new page view
func (h *SessionHandler) Create(c *gin.Context) {
	sess := h.store.Create()
	logger.Info(c.Request.Context(), "session created", "session_id", sess.ID)

	c.JSON(http.StatusCreated, gin.H{
		"id":    sess.ID,
		"state": sess.Client.State(),
	})
}

// Get returns the current view state
func (h *SessionHandler) Get(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": sess.ID, "state": sess.Client.State()})
}

// Delete discards the session when the page goes away
func (h *SessionHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session deleted"})
}

// SetMode switches between the file and text panes
func (h *SessionHandler) SetMode(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req ModeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	state, err := sess.Client.SelectMode(model.InputMode(req.Mode))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mode must be 'file' or 'text'", "state": state})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": sess.ID, "state": state})
}

// SelectFile takes the multipart field "file" as the new upload
func (h *SessionHandler) SelectFile(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		if isTooLarge(err) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read file"})
		return
	}

	state := sess.Client.SelectFile(header.Filename, data)
	logger.Info(c.Request.Context(), "file selected", "filename", header.Filename, "size", len(data))

	c.JSON(http.StatusOK, gin.H{"id": sess.ID, "state": state})
}

// ClearFile removes the chosen file
func (h *SessionHandler) ClearFile(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": sess.ID, "state": sess.Client.ClearFile()})
}

// SetText replaces the raw text
func (h *SessionHandler) SetText(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	var req TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": sess.ID, "state": sess.Client.SelectText(req.Text)})
}

// Submit sends the current input to the OCR backend and waits for the answer.
// The view state is returned in every case; the status code tells the outcome.
func (h *SessionHandler) Submit(c *gin.Context) {
	sess, ok := h.session(c)
	if !ok {
		return
	}

	// A page that navigates away does not cancel the backend call; the
	// backend client timeout bounds it.
	ctx := context.WithoutCancel(c.Request.Context())

	state, err := sess.Client.Submit(ctx)

	if err == nil {
		c.JSON(http.StatusOK, gin.H{"id": sess.ID, "state": state})
		return
	}

	_ = c.Error(err)

	// Backend details stay in the logs; the page only sees the status message
	status, msg := http.StatusBadGateway, state.Result.StatusMessage
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, service.ErrSuperseded):
		status, msg = http.StatusConflict, "Superseded by a newer submission"
	}

	c.JSON(status, gin.H{"id": sess.ID, "state": state, "error": msg})
}

func (h *SessionHandler) session(c *gin.Context) (*service.Session, bool) {
	sess, err := h.store.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		return nil, false
	}
	return sess, true
}

func isTooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return true
	}
	return strings.Contains(err.Error(), "request body too large")
}
