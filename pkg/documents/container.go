package documents

// Container is the slot protocol between a document and whatever owns the
// underlying JSON blob. Typed accessors never touch storage except through
// this interface.
type Container interface {
	GetSlot(name string) (any, bool)
	SetSlot(name string, value any)
	DeleteSlot(name string)
}

// MapContainer backs a document with a plain map. Nested documents are
// stored as map[string]any values inside their parent's map, so wrapping
// a sub container shares storage with the parent.
type MapContainer map[string]any

func NewContainer() MapContainer {
	return MapContainer{}
}

func (c MapContainer) GetSlot(name string) (any, bool) {
	value, ok := c[name]
	return value, ok
}

func (c MapContainer) SetSlot(name string, value any) {
	c[name] = value
}

func (c MapContainer) DeleteSlot(name string) {
	delete(c, name)
}
