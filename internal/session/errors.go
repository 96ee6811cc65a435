package session

import "errors"

const (
	MsgEmptyAnswer     = "Please provide an answer before submitting."
	MsgAlreadyAnswered = "This question has already been answered. Move on to the next question."
	MsgFinished        = "This interview has already finished."
	MsgNoMoreQuestions = "All questions for this interview have been asked. Finish the interview to see your summary."
)

// ValidationError is a rejected caller action. The message is safe to show
// to the user as a warning.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(msg string) error {
	return &ValidationError{Message: msg}
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
