package model

import (
	"errors"
	"strings"
)

// InputMode selects which pane of the form is submitted
type InputMode string

const (
	ModeFile InputMode = "file"
	ModeText InputMode = "text"
)

// Valid reports whether m is a known mode
func (m InputMode) Valid() bool {
	return m == ModeFile || m == ModeText
}

// Status is the lifecycle of the latest submission
type Status string

// Status constants
const (
	StatusIdle    Status = "idle"
	StatusPending Status = "pending"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Tone tells the page how to style the status message
type Tone string

const (
	ToneNone    Tone = ""
	ToneWarning Tone = "warning"
	ToneSuccess Tone = "success"
	ToneFailure Tone = "failure"
)

// ErrUnknownMode is returned when switching to a mode other than file or text
var ErrUnknownMode = errors.New("unknown input mode")

// File is a user-selected upload. The content is never serialized.
type File struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Data []byte `json:"-"`
}

// InputSelection is what the user has chosen to submit
type InputSelection struct {
	Mode    InputMode `json:"mode"`
	File    *File     `json:"file,omitempty"`
	RawText string    `json:"raw_text"`
}

// SubmissionResult is what the page renders below the form
type SubmissionResult struct {
	Status         Status `json:"status"`
	SourceText     string `json:"source_text"`
	TranslatedText string `json:"translated_text"`
	StatusMessage  string `json:"status_message"`
	Tone           Tone   `json:"tone"`
}

// Submission identifies the outstanding request. Only a response carrying
// the same ID may resolve the view.
type Submission struct {
	ID   string    `json:"id"`
	Mode InputMode `json:"mode"`
}

// Outcome is the backend answer for a successful submission
type Outcome struct {
	SourceText     string
	TranslatedText string
	// Message overrides the default success message when set
	Message string
}

// ViewState is the complete, serializable state of one upload form.
// All transitions are pure: they return a new value and never mutate the receiver.
type ViewState struct {
	Input      InputSelection   `json:"input"`
	Result     SubmissionResult `json:"result"`
	Submission *Submission      `json:"submission,omitempty"`
}

// NewViewState returns the initial state: file mode, nothing selected, idle
func NewViewState() ViewState {
	return ViewState{
		Input:  InputSelection{Mode: ModeFile},
		Result: SubmissionResult{Status: StatusIdle},
	}
}

// Pending reports whether a submission is outstanding; the submit control is disabled while true
func (v ViewState) Pending() bool {
	return v.Submission != nil
}

// SelectFile replaces the chosen file and clears the previous text, translation and message
func (v ViewState) SelectFile(f File) ViewState {
	if f.Size == 0 {
		f.Size = int64(len(f.Data))
	}
	v.Input.File = &f
	v.Result = clearedResult(v)
	return v
}

// ClearFile drops the chosen file
func (v ViewState) ClearFile() ViewState {
	v.Input.File = nil
	return v
}

// SelectText replaces the raw text. Nothing is validated or cleared.
func (v ViewState) SelectText(text string) ViewState {
	v.Input.RawText = text
	return v
}

// SelectMode switches panes. The other pane keeps its input.
func (v ViewState) SelectMode(m InputMode) (ViewState, error) {
	if !m.Valid() {
		return v, ErrUnknownMode
	}
	v.Input.Mode = m
	return v, nil
}

// Validate returns the warning to show when the current input cannot be submitted
func (v ViewState) Validate() (string, bool) {
	switch v.Input.Mode {
	case ModeText:
		if strings.TrimSpace(v.Input.RawText) == "" {
			return MsgEnterText, false
		}
	default:
		if v.Input.File == nil {
			return MsgSelectFile, false
		}
	}
	return "", true
}

// BeginSubmit validates the input and, if it is acceptable, marks the view pending
// under the given submission id. On validation failure the returned view carries
// a warning and the status is left alone.
func (v ViewState) BeginSubmit(id string) (ViewState, bool) {
	if warning, ok := v.Validate(); !ok {
		v.Result.StatusMessage = warning
		v.Result.Tone = ToneWarning
		return v, false
	}

	v.Submission = &Submission{ID: id, Mode: v.Input.Mode}
	v.Result.Status = StatusPending
	return v, true
}

// ResolveSuccess applies a backend answer. Answers for a submission other than the
// latest one are discarded and reported as not applied.
func (v ViewState) ResolveSuccess(id string, out Outcome) (ViewState, bool) {
	if !v.owns(id) {
		return v, false
	}

	msg := out.Message
	if msg == "" {
		msg = successMessage(v.Submission.Mode)
	}

	v.Result = SubmissionResult{
		Status:         StatusSuccess,
		SourceText:     out.SourceText,
		TranslatedText: out.TranslatedText,
		StatusMessage:  msg,
		Tone:           ToneSuccess,
	}
	v.Submission = nil
	return v, true
}

// ResolveFailure records a transport or server failure. Displayed texts are kept.
func (v ViewState) ResolveFailure(id string) (ViewState, bool) {
	if !v.owns(id) {
		return v, false
	}

	v.Result.Status = StatusFailure
	v.Result.StatusMessage = failureMessage(v.Submission.Mode)
	v.Result.Tone = ToneFailure
	v.Submission = nil
	return v, true
}

func (v ViewState) owns(id string) bool {
	return v.Submission != nil && v.Submission.ID == id
}

// clearedResult empties the rendered output. A pending submission stays pending.
func clearedResult(v ViewState) SubmissionResult {
	status := StatusIdle
	if v.Pending() {
		status = StatusPending
	}
	return SubmissionResult{Status: status}
}
