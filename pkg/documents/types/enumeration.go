package types

import (
	"fmt"

	dmerrors "github.com/diwise/document-model/pkg/documents/errors"
)

// Choice is one selectable token, exported for form rendering collaborators.
type Choice struct {
	Label string
	Value string
}

// Enumeration stores one token (or an ordered set of tokens in multiple
// mode) out of a configured value list. Strict mode rejects unknown tokens
// on write, non strict mode lets free text values through untouched.
type Enumeration struct {
	values   []string
	multiple bool
	strict   bool
}

type EnumerationOption func(e *Enumeration)

func Multiple() EnumerationOption {
	return func(e *Enumeration) { e.multiple = true }
}

func Strict() EnumerationOption {
	return func(e *Enumeration) { e.strict = true }
}

func NewEnumeration(values []string, options ...EnumerationOption) *Enumeration {
	e := &Enumeration{
		values: append([]string{}, values...),
	}

	for _, option := range options {
		option(e)
	}

	return e
}

func (e *Enumeration) Name() string { return "enumeration" }

func (e *Enumeration) PredicateHint() string {
	if e.multiple {
		return HintArray
	}
	return HintString
}

// Choices returns the configured values as ordered (label, value) pairs.
func (e *Enumeration) Choices() []Choice {
	choices := make([]Choice, 0, len(e.values))
	for _, v := range e.values {
		choices = append(choices, Choice{Label: v, Value: v})
	}
	return choices
}

func (e *Enumeration) Dump(value any) (any, error) {
	if !e.multiple {
		token, ok := value.(string)
		if !ok {
			return nil, dmerrors.NewConversionError(
				fmt.Sprintf("value of type %T is not an enumeration token", value),
			)
		}

		if err := e.check(token); err != nil {
			return nil, err
		}

		return token, nil
	}

	tokens, err := tokensOf(value)
	if err != nil {
		return nil, err
	}

	// order and duplicates are preserved verbatim
	dumped := make([]any, 0, len(tokens))
	for _, token := range tokens {
		if err := e.check(token); err != nil {
			return nil, err
		}
		dumped = append(dumped, token)
	}

	return dumped, nil
}

func (e *Enumeration) Load(raw any) (any, error) {
	if !e.multiple {
		token, ok := raw.(string)
		if !ok {
			return nil, dmerrors.NewConversionError(
				fmt.Sprintf("stored value of type %T is not an enumeration token", raw),
			)
		}
		return token, nil
	}

	return tokensOf(raw)
}

func (e *Enumeration) check(token string) error {
	if !e.strict {
		return nil
	}

	for _, v := range e.values {
		if v == token {
			return nil
		}
	}

	return dmerrors.NewInvalidEnumerationValueError(
		fmt.Sprintf("%q is not one of the allowed values %v", token, e.values),
	)
}

func tokensOf(value any) ([]string, error) {
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []string:
		return append([]string{}, v...), nil
	case []any:
		tokens := make([]string, 0, len(v))
		for _, elem := range v {
			token, ok := elem.(string)
			if !ok {
				return nil, dmerrors.NewConversionError(
					fmt.Sprintf("element of type %T is not an enumeration token", elem),
				)
			}
			tokens = append(tokens, token)
		}
		return tokens, nil
	default:
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("value of type %T is not an enumeration token list", value),
		)
	}
}

func newEnumerationFromConfig(cfg Config) (Type, error) {
	values, err := configuredValues(cfg["values"])
	if err != nil {
		return nil, err
	}

	options := []EnumerationOption{}

	if b, ok := cfg["multiple"].(bool); ok && b {
		options = append(options, Multiple())
	}

	if b, ok := cfg["strict"].(bool); ok && b {
		options = append(options, Strict())
	}

	return NewEnumeration(values, options...), nil
}

func configuredValues(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return v, nil
	case []any:
		return tokensOf(v)
	default:
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("enumeration values of type %T are not supported", raw),
		)
	}
}
