package housing

import (
	"fmt"

	"github.com/diwise/document-model/pkg/documents"
	"github.com/diwise/document-model/pkg/documents/types"
	"github.com/google/uuid"
)

const (
	HouseTypeName  string = "House"
	DoorTypeName   string = "Door"
	RoomTypeName   string = "Room"
	WindowTypeName string = "Window"

	HouseIDPrefix string = "urn:housing:House:"
)

// Materials lists the wall materials a house or door may be built from.
var Materials = []string{"wood", "plaster", "mud", "brick"}

// Model bundles the document definitions of the housing datamodel: a house
// with one door and any number of rooms, each room with its own windows.
type Model struct {
	House  *documents.Definition
	Door   *documents.Definition
	Room   *documents.Definition
	Window *documents.Definition
}

func NewModel() (*Model, error) {
	window, err := documents.NewDefinition(WindowTypeName,
		documents.Attribute("width", "float"),
		documents.Attribute("height", "float"),
	)
	if err != nil {
		return nil, err
	}

	room, err := documents.NewDefinition(RoomTypeName,
		documents.Attribute("name", "string"),
		documents.Attribute("area", "float"),
		documents.EmbedsMany("windows", window),
	)
	if err != nil {
		return nil, err
	}

	door, err := documents.NewDefinition(DoorTypeName,
		documents.Attribute("material", "enumeration", documents.WithTypeConfig(types.Config{
			"values": Materials,
			"strict": true,
		})),
		documents.Attribute("locked", "boolean"),
	)
	if err != nil {
		return nil, err
	}

	house, err := documents.NewDefinition(HouseTypeName,
		documents.Attribute("id", "string"),
		documents.Attribute("name", "string"),
		documents.Attribute("storeys", "integer", documents.WithDefault(1)),
		documents.Attribute("height", "float"),
		documents.Attribute("material", "enumeration", documents.WithTypeConfig(types.Config{
			"values": Materials,
			"strict": true,
		})),
		documents.Attribute("features", "array"),
		documents.EmbedsOne("door", door),
		documents.EmbedsMany("rooms", room),
	)
	if err != nil {
		return nil, err
	}

	return &Model{House: house, Door: door, Room: room, Window: window}, nil
}

// NewHouse creates an empty house document with a generated identifier.
func (m *Model) NewHouse() (*documents.Document, error) {
	house := m.House.New()

	err := house.Set("id", NewHouseID())
	if err != nil {
		return nil, err
	}

	return house, nil
}

func NewHouseID() string {
	return fmt.Sprintf("%s%s", HouseIDPrefix, uuid.New().String())
}
