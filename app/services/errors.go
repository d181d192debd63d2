package services

// ValidationError marks bad or missing input. Handlers map it to a 400
// response with the message as the body.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationErr(msg string) error {
	return &ValidationError{Msg: msg}
}
