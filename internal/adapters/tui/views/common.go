package views

import (
	"errors"

	"sortable/internal/application"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetError shows err as an error message. Rejections the user can fix are
// shown as is; anything else is prefixed so it stands out.
func (s *ViewState) SetError(err error) {
	switch {
	case errors.Is(err, application.ErrInvalidOperation),
		errors.Is(err, application.ErrPageOutOfRange),
		errors.Is(err, application.ErrCapacity),
		errors.Is(err, application.ErrNotFound):
		s.SetMessage(err.Error(), true)
	default:
		s.SetMessage("error: "+err.Error(), true)
	}
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}
