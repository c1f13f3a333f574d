package token

import (
	"errors"
	"fmt"
)

var (
	ErrEmpty        = errors.New("empty query")
	ErrUnterminated = errors.New("unterminated")
	ErrBadEscape    = errors.New("bad escape")
	ErrUnexpected   = errors.New("unexpected input")
)

type SyntaxError struct {
	Off  int
	Near string
	Err  error
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func (e *SyntaxError) Error() string {
	if e.Near == "" {
		return fmt.Sprintf("%s at offset %d", e.Err.Error(), e.Off)
	}
	return fmt.Sprintf("%s at offset %d near %q", e.Err.Error(), e.Off, e.Near)
}

func syntaxErr(err error, off int, near string) error {
	return &SyntaxError{Off: off, Near: near, Err: err}
}
