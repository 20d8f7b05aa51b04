package extraction

import "fmt"

// DocumentError represents a failure to read or convert the source document
type DocumentError struct {
	Message string
	Cause   error
}

func (e *DocumentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("document error: %s", e.Message)
}

func (e *DocumentError) Unwrap() error {
	return e.Cause
}

// APICallError represents an error from the LLM provider
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// RecordError represents a failure to interpret the extraction output as a
// candidate record
type RecordError struct {
	Message string
	Cause   error
}

func (e *RecordError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("record error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("record error: %s", e.Message)
}

func (e *RecordError) Unwrap() error {
	return e.Cause
}
