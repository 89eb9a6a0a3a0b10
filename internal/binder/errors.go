package binder

import (
	"errors"
	"fmt"

	"nkl/internal/diag"
	"nkl/internal/source"
)

// Error is a binding failure with its resolved location.
type Error struct {
	Code    diag.Code
	Span    source.Span
	Path    string
	Pos     source.LineCol
	Message string
	Notes   []diag.Note
	// Err is the underlying cause, if any (e.g. an eval failure).
	Err error
}

// Errorf builds an Error at sp, resolving the position through files.
func Errorf(files *source.FileSet, code diag.Code, sp source.Span, format string, args ...any) *Error {
	e := &Error{
		Code:    code,
		Span:    sp,
		Message: fmt.Sprintf(format, args...),
	}
	if files != nil && int(sp.File) < files.Len() {
		f := files.Get(sp.File)
		e.Path = f.Path
		e.Pos, _ = f.Resolve(sp)
	}
	return e
}

func (e *Error) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.Path, e.Pos.Line, e.Pos.Col, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) WithNote(sp source.Span, msg string) *Error {
	e.Notes = append(e.Notes, diag.Note{Span: sp, Msg: msg})
	return e
}

// Diagnostic converts the error for a diag.Bag.
func (e *Error) Diagnostic() *diag.Diagnostic {
	d := diag.NewError(e.Code, e.Span, e.Message)
	for _, n := range e.Notes {
		d.WithNote(n.Span, n.Msg)
	}
	return d
}

// IsUnimplemented reports whether err comes from a construct the binder
// recognises but does not handle yet.
func IsUnimplemented(err error) bool {
	var be *Error
	return errors.As(err, &be) && be.Code == diag.SemaUnimplemented
}

// CodeOf returns the diagnostic code carried by err, or diag.UnknownCode.
func CodeOf(err error) diag.Code {
	var be *Error
	if errors.As(err, &be) {
		return be.Code
	}
	return diag.UnknownCode
}
