package apperr

// ValidationError reports input that was rejected rather than normalized, such
// as a malformed catalog fixture. Field locates the offending entry, e.g.
// "stories[2]", and is empty when the whole input is at fault.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	msg := e.Message
	if e.Field != "" {
		msg = e.Field + ": " + msg
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func NewValidation(msg string) *ValidationError {
	return &ValidationError{Message: msg}
}

func NewValidationWrap(msg string, err error) *ValidationError {
	return &ValidationError{Message: msg, Err: err}
}

// NewFieldValidation is NewValidationWrap for a single entry of the input.
func NewFieldValidation(field, msg string, err error) *ValidationError {
	return &ValidationError{Field: field, Message: msg, Err: err}
}
