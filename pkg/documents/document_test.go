package documents

import (
	"encoding/json"
	"errors"
	"testing"

	dmerrors "github.com/diwise/document-model/pkg/documents/errors"
	"github.com/diwise/document-model/pkg/documents/types"
	"github.com/matryer/is"
)

func newHouseDefinition(t *testing.T) *Definition {
	t.Helper()

	door, err := NewDefinition("door",
		Attribute("material", "enumeration", WithTypeConfig(types.Config{
			"values": []string{"wood", "plaster", "mud", "brick"},
			"strict": true,
		})),
		Attribute("locked", "boolean"),
	)
	if err != nil {
		t.Fatal(err)
	}

	room, err := NewDefinition("room",
		Attribute("name", "string"),
		Attribute("area", "float"),
	)
	if err != nil {
		t.Fatal(err)
	}

	house, err := NewDefinition("house",
		Attribute("name", "string"),
		Attribute("storeys", "integer", WithDefault(1)),
		Attribute("height", "float"),
		Attribute("material", "enumeration", WithTypeConfig(types.Config{
			"values": []string{"wood", "plaster", "mud", "brick"},
			"strict": true,
		})),
		Attribute("features", "array"),
		EmbedsOne("door", door),
		EmbedsMany("rooms", room),
	)
	if err != nil {
		t.Fatal(err)
	}

	return house
}

func TestUnknownTypeFailsAtDefinitionTime(t *testing.T) {
	is := is.New(t)

	_, err := NewDefinition("house", Attribute("built", "datetime"))
	is.True(errors.Is(err, dmerrors.ErrUnknownType))
}

func TestReadAbsentAttributeReturnsNil(t *testing.T) {
	is := is.New(t)
	house := newHouseDefinition(t).New()

	value, err := house.Get("name")
	is.NoErr(err)
	is.Equal(value, nil)
}

func TestDefaultIsWrittenOnFirstRead(t *testing.T) {
	is := is.New(t)
	house := newHouseDefinition(t).New()

	value, err := house.Get("storeys")
	is.NoErr(err)
	is.Equal(value, int64(1))

	// the dumped default is memoized into the container
	raw, ok := house.Container().GetSlot("storeys")
	is.True(ok)
	is.Equal(raw, int64(1))
}

func TestWriteAndReadBack(t *testing.T) {
	is := is.New(t)
	house := newHouseDefinition(t).New()

	is.NoErr(house.Set("height", 6.5))

	value, err := house.Get("height")
	is.NoErr(err)
	is.Equal(value, 6.5)
}

func TestWritingEmptyStringClearsSlot(t *testing.T) {
	is := is.New(t)
	house := newHouseDefinition(t).New()

	is.NoErr(house.Set("name", "villa"))
	is.NoErr(house.Set("name", ""))

	value, err := house.Get("name")
	is.NoErr(err)
	is.Equal(value, nil)

	_, ok := house.Container().GetSlot("name")
	is.True(!ok)
}

func TestWritingNilClearsSlot(t *testing.T) {
	is := is.New(t)
	house := newHouseDefinition(t).New()

	is.NoErr(house.Set("height", 6.5))
	is.NoErr(house.Set("height", nil))

	_, ok := house.Container().GetSlot("height")
	is.True(!ok)
}

func TestConversionErrorPropagatesOnWrite(t *testing.T) {
	is := is.New(t)
	house := newHouseDefinition(t).New()

	err := house.Set("storeys", "twenty")
	is.True(errors.Is(err, dmerrors.ErrConversion))
}

func TestStrictEnumerationRejectsOnWrite(t *testing.T) {
	is := is.New(t)
	house := newHouseDefinition(t).New()

	err := house.Set("material", "glass")
	is.True(errors.Is(err, dmerrors.ErrInvalidEnumerationValue))

	is.NoErr(house.Set("material", "wood"))

	value, err := house.Get("material")
	is.NoErr(err)
	is.Equal(value, "wood")
}

func TestUnknownAttributeAccessFails(t *testing.T) {
	is := is.New(t)
	house := newHouseDefinition(t).New()

	_, err := house.Get("colour")
	is.True(errors.Is(err, dmerrors.ErrUnknownAttribute))

	err = house.Set("colour", "red")
	is.True(errors.Is(err, dmerrors.ErrUnknownAttribute))
}

func TestPredicateHintRegistration(t *testing.T) {
	is := is.New(t)
	house := newHouseDefinition(t)

	hints := house.PredicateHints()
	is.Equal(hints["storeys"], "int")
	is.Equal(hints["height"], "float")
	is.Equal(hints["name"], "str")
	is.Equal(hints["features"], "array")
	is.Equal(hints["material"], "str")
}

func TestRebindingReRegistersHint(t *testing.T) {
	is := is.New(t)
	house := newHouseDefinition(t)

	is.NoErr(house.Bind("height", "integer"))

	hint, ok := house.PredicateHint("height")
	is.True(ok)
	is.Equal(hint, "int")
}

func TestChoicesExport(t *testing.T) {
	is := is.New(t)
	house := newHouseDefinition(t)

	choices, ok := house.Choices("material")
	is.True(ok)
	is.Equal(len(choices), 4)
	is.Equal(choices[2], types.Choice{Label: "mud", Value: "mud"})

	_, ok = house.Choices("height")
	is.True(!ok)
}

func TestApplyIgnoresUnknownFields(t *testing.T) {
	is := is.New(t)
	house := newHouseDefinition(t).New()

	err := house.Apply(map[string]any{
		"name":   "villa",
		"colour": "red",
	})
	is.NoErr(err)

	value, err := house.Get("name")
	is.NoErr(err)
	is.Equal(value, "villa")
}

func TestApplyStopsAtFirstConversionError(t *testing.T) {
	is := is.New(t)
	house := newHouseDefinition(t).New()

	// fields apply in sorted name order, so height and name land before
	// the storeys conversion fails
	err := house.Apply(map[string]any{
		"height":  "6.5",
		"storeys": "twenty",
		"name":    "villa",
	})
	is.True(errors.Is(err, dmerrors.ErrConversion))

	height, err := house.Get("height")
	is.NoErr(err)
	is.Equal(height, 6.5)

	name, err := house.Get("name")
	is.NoErr(err)
	is.Equal(name, "villa")

	_, ok := house.Container().GetSlot("storeys")
	is.True(!ok)
}

func TestJSONRoundTrip(t *testing.T) {
	is := is.New(t)
	def := newHouseDefinition(t)

	house, err := def.FromJSON([]byte(`{"name":"villa","storeys":2,"height":6.5}`))
	is.NoErr(err)

	storeys, err := house.Get("storeys")
	is.NoErr(err)
	is.Equal(storeys, int64(2))

	b, err := json.Marshal(house)
	is.NoErr(err)
	is.Equal(string(b), `{"height":6.5,"name":"villa","storeys":2}`)
}

func TestWrapReflectsExternalMutation(t *testing.T) {
	is := is.New(t)
	def := newHouseDefinition(t)

	contents := map[string]any{"name": "villa"}
	house := def.WrapMap(contents)

	contents["name"] = "cabin"

	value, err := house.Get("name")
	is.NoErr(err)
	is.Equal(value, "cabin")
}
