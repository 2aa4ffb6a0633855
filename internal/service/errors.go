package service

import "errors"

// Kind classifies failures so the HTTP layer can pick a status code.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindAuth
	KindRemote
	KindLocalIO
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindRemote:
		return "remote"
	case KindLocalIO:
		return "local_io"
	default:
		return "internal"
	}
}

var (
	ErrNoImage    = errors.New("No image file provided")
	ErrNoFilename = errors.New("No file selected")
)

// Error tags an underlying error with its Kind. The message is the underlying
// error's text unchanged so callers see exactly what the remote service said.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

func wrap(kind Kind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf reports the Kind of err, or KindInternal if it carries none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}
