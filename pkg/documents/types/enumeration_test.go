package types

import (
	"errors"
	"testing"

	dmerrors "github.com/diwise/document-model/pkg/documents/errors"
	"github.com/matryer/is"
)

var materials = []string{"wood", "plaster", "mud", "brick"}

func TestEnumerationAcceptsMemberToken(t *testing.T) {
	is := is.New(t)
	enum := NewEnumeration(materials, Strict())

	dumped, err := enum.Dump("wood")
	is.NoErr(err)

	loaded, err := enum.Load(dumped)
	is.NoErr(err)
	is.Equal(loaded, "wood")
}

func TestEnumerationStrictRejectsUnknownToken(t *testing.T) {
	is := is.New(t)
	enum := NewEnumeration(materials, Strict())

	_, err := enum.Dump("glass")
	is.True(errors.Is(err, dmerrors.ErrInvalidEnumerationValue))
}

func TestEnumerationNonStrictStoresUnknownToken(t *testing.T) {
	is := is.New(t)
	enum := NewEnumeration(materials)

	dumped, err := enum.Dump("glass")
	is.NoErr(err)
	is.Equal(dumped, "glass")
}

func TestEnumerationMultiplePreservesOrder(t *testing.T) {
	is := is.New(t)
	enum := NewEnumeration(materials, Multiple())

	dumped, err := enum.Dump([]string{"mud", "brick"})
	is.NoErr(err)

	loaded, err := enum.Load(dumped)
	is.NoErr(err)
	is.Equal(loaded, []string{"mud", "brick"})
}

func TestEnumerationMultipleKeepsDuplicates(t *testing.T) {
	is := is.New(t)
	enum := NewEnumeration(materials, Multiple())

	dumped, err := enum.Dump([]string{"mud", "mud"})
	is.NoErr(err)

	loaded, err := enum.Load(dumped)
	is.NoErr(err)
	is.Equal(loaded, []string{"mud", "mud"})
}

func TestEnumerationMultipleStrictRejectsAnyUnknownToken(t *testing.T) {
	is := is.New(t)
	enum := NewEnumeration(materials, Multiple(), Strict())

	_, err := enum.Dump([]string{"mud", "glass"})
	is.True(errors.Is(err, dmerrors.ErrInvalidEnumerationValue))
}

func TestEnumerationPredicateHint(t *testing.T) {
	is := is.New(t)

	is.Equal(NewEnumeration(materials).PredicateHint(), HintString)
	is.Equal(NewEnumeration(materials, Multiple()).PredicateHint(), HintArray)
}

func TestEnumerationChoices(t *testing.T) {
	is := is.New(t)
	enum := NewEnumeration(materials)

	choices := enum.Choices()
	is.Equal(len(choices), 4)
	is.Equal(choices[0], Choice{Label: "wood", Value: "wood"})
	is.Equal(choices[3], Choice{Label: "brick", Value: "brick"})
}

func TestEnumerationFromConfig(t *testing.T) {
	is := is.New(t)

	typ, err := Default().Resolve("enumeration", Config{
		"values":   []any{"wood", "plaster"},
		"multiple": true,
		"strict":   true,
	})
	is.NoErr(err)
	is.Equal(typ.PredicateHint(), HintArray)

	_, err = typ.Dump([]string{"glass"})
	is.True(errors.Is(err, dmerrors.ErrInvalidEnumerationValue))
}
