package booking

import "fmt"

// NonFieldErrors is the error key for failures that are not attributable
// to a single request field, such as a seat that is already taken.
const NonFieldErrors = "non_field_errors"

// FieldError is a client-facing validation failure keyed by the request
// field that caused it. Handlers render it as {"<field>": "<message>"}
// with a bad-request status.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func seatOutOfRange(field, boundName string, max int) *FieldError {
	return &FieldError{
		Field: field,
		Message: fmt.Sprintf("%s number must be in available range: (1, %s): (1, %d)",
			field, boundName, max),
	}
}

func seatTaken() *FieldError {
	return &FieldError{Field: NonFieldErrors, Message: "seat already taken"}
}

func emptyOrder() *FieldError {
	return &FieldError{Field: "tickets", Message: "an order must contain at least one ticket"}
}

func flightDoesNotExist() *FieldError {
	return &FieldError{Field: "flight", Message: "flight does not exist"}
}
