package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shruti0731/MiniProject2/model"
	"github.com/shruti0731/MiniProject2/pkg/logger"
)

var (
	// ErrValidation means the input was rejected locally and nothing was sent
	ErrValidation = errors.New("input not ready for submission")
	// ErrSuperseded means a newer submission started before this one resolved;
	// its result was discarded
	ErrSuperseded = errors.New("submission superseded")
)

// UploadClient is the form controller for one page view. It owns the view
// state and performs submissions against the backend.
type UploadClient struct {
	mu      sync.Mutex
	state   model.ViewState
	backend Backend
	newID   func() string
}

func NewUploadClient(backend Backend) *UploadClient {
	return &UploadClient{
		state:   model.NewViewState(),
		backend: backend,
		newID:   uuid.NewString,
	}
}

// State returns a snapshot of the view state
func (u *UploadClient) State() model.ViewState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// SelectFile replaces the chosen file; see model.ViewState.SelectFile
func (u *UploadClient) SelectFile(name string, data []byte) model.ViewState {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state = u.state.SelectFile(model.File{Name: name, Size: int64(len(data)), Data: data})
	return u.state
}

func (u *UploadClient) ClearFile() model.ViewState {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state = u.state.ClearFile()
	return u.state
}

func (u *UploadClient) SelectText(text string) model.ViewState {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.state = u.state.SelectText(text)
	return u.state
}

func (u *UploadClient) SelectMode(m model.InputMode) (model.ViewState, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	next, err := u.state.SelectMode(m)
	if err != nil {
		return u.state, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	u.state = next
	return u.state, nil
}

// Submit sends the current input to the backend and returns the resulting view.
// Validation failures return ErrValidation without any network call. Transport
// and server failures return ErrBackend; the view then carries the failure message.
// If another submission started in the meantime this one's result is dropped
// and ErrSuperseded is returned.
func (u *UploadClient) Submit(ctx context.Context) (model.ViewState, error) {
	u.mu.Lock()
	id := u.newID()
	next, ok := u.state.BeginSubmit(id)
	u.state = next
	u.mu.Unlock()

	if !ok {
		return next, fmt.Errorf("%w: %s", ErrValidation, next.Result.StatusMessage)
	}

	ctx = logger.WithValue(ctx, logger.SubmissionIDKey, id)
	logger.Info(ctx, "submission started", "mode", next.Input.Mode)

	outcome, callErr := u.call(ctx, next.Input)

	u.mu.Lock()
	defer u.mu.Unlock()

	var applied bool
	if callErr != nil {
		u.state, applied = u.state.ResolveFailure(id)
	} else {
		u.state, applied = u.state.ResolveSuccess(id, outcome)
	}

	if !applied {
		logger.Warn(ctx, "discarding superseded submission result", "error", callErr)
		return u.state, ErrSuperseded
	}

	if callErr != nil {
		logger.Error(ctx, "submission failed", "error", callErr)
		return u.state, callErr
	}

	logger.Info(ctx, "submission completed",
		"source_chars", len([]rune(outcome.SourceText)),
		"translation_chars", len([]rune(outcome.TranslatedText)),
	)
	return u.state, nil
}

func (u *UploadClient) call(ctx context.Context, in model.InputSelection) (model.Outcome, error) {
	if in.Mode == model.ModeText {
		resp, err := u.backend.Translate(ctx, in.RawText)
		if err != nil {
			return model.Outcome{}, err
		}
		return model.Outcome{
			SourceText:     in.RawText,
			TranslatedText: resp.Translation,
		}, nil
	}

	resp, err := u.backend.Upload(ctx, in.File.Name, bytes.NewReader(in.File.Data))
	if err != nil {
		return model.Outcome{}, err
	}

	// The backend answers 200 with only a message when the image had no readable text
	if resp.Text == "" && resp.Message != "" {
		return model.Outcome{Message: resp.Message}, nil
	}

	return model.Outcome{
		SourceText:     resp.Text,
		TranslatedText: resp.Translation,
	}, nil
}
