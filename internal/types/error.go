package types

import "fmt"

type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// ValidationErrors is a field -> message map produced by create/edit
// validation. A non-empty map means the operation was not attempted.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(v))
}

// NotFoundError marks a reference to a missing or soft-deleted record.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found", e.Entity, e.ID)
}

// ConflictError marks a state transition refused by a conditional write.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}
