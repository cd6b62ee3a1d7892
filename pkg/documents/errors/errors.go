package errors

import "fmt"

var ErrUnknownType = fmt.Errorf("unknown type")
var ErrConversion = fmt.Errorf("conversion failed")
var ErrInvalidEnumerationValue = fmt.Errorf("invalid enumeration value")
var ErrUnknownAttribute = fmt.Errorf("unknown attribute")
var ErrUnknownRelation = fmt.Errorf("unknown relation")

type myError struct {
	msg    string
	target error
}

func (m myError) Error() string        { return m.msg }
func (m myError) Is(target error) bool { return target == m.target }

// NewUnknownTypeError is returned when a type name has no registered
// descriptor. It is raised at definition time, not at first use.
func NewUnknownTypeError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrUnknownType,
	}
}

// NewConversionError is returned when a value falls outside a type's
// dump/load domain. It is never caught internally.
func NewConversionError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrConversion,
	}
}

func NewInvalidEnumerationValueError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrInvalidEnumerationValue,
	}
}

func NewUnknownAttributeError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrUnknownAttribute,
	}
}

func NewUnknownRelationError(msg string) error {
	return &myError{
		msg:    msg,
		target: ErrUnknownRelation,
	}
}
