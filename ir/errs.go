package ir

import "fmt"

// UnmarshalError reports a failed structured decode of a node tree.
type UnmarshalError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}
