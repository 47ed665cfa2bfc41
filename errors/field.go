package errors

import (
	"fmt"

	"github.com/pkg/errors"
)

// Field wraps err with the name of the message attribute it was found for.
// A nil err results in a nil error. The description is optional and may be
// a format string.
//
// Field names follow Go naming, for example SeriesID or Receiver. Nested
// attributes are joined with a dot, for example Metadata.Copies.
func Field(name string, err error, description string, args ...interface{}) error {
	if isNilErr(err) {
		return nil
	}
	if stackTrace(err) == nil {
		err = errors.WithStack(err)
	}
	if len(args) != 0 {
		description = fmt.Sprintf(description, args...)
	}
	return &fieldError{parent: err, field: name, desc: description}
}

// AppendField adds a field error for name to errs. Nothing is added when
// err is nil.
func AppendField(errs error, name string, err error) error {
	return Append(errs, Field(name, err, ""))
}

type fieldError struct {
	parent error
	field  string
	desc   string
}

func (e *fieldError) Error() string {
	if e.desc == "" {
		return fmt.Sprintf("field %q: %s", e.field, e.parent)
	}
	return fmt.Sprintf("field %q: %s: %s", e.field, e.desc, e.parent)
}

func (e *fieldError) Cause() error  { return e.parent }
func (e *fieldError) Field() string { return e.field }

type fielder interface {
	Field() string
}

// FieldErrors collects all field errors reported for name, walking through
// both wrapped and appended errors.
func FieldErrors(err error, name string) []error {
	var res []error
	for !isNilErr(err) {
		if f, ok := err.(fielder); ok && f.Field() == name {
			return append(res, err)
		}
		switch e := err.(type) {
		case unpacker:
			// Unpack covers every child, including the cause.
			for _, child := range e.Unpack() {
				res = append(res, FieldErrors(child, name)...)
			}
			return res
		case causer:
			err = e.Cause()
		default:
			return res
		}
	}
	return res
}
