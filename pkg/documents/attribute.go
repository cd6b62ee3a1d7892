package documents

import (
	"github.com/diwise/document-model/pkg/documents/types"
)

// Binding is the installed get/set contract for one attribute: a field
// name bound to a type descriptor, plus an optional default applied on
// first read.
type Binding struct {
	field        string
	typ          types.Type
	defaultValue any
	hasDefault   bool
}

type AttributeOption func(b *Binding, cfg types.Config)

// WithDefault configures a value to be returned, and written back into the
// container, when the slot is absent on read.
func WithDefault(value any) AttributeOption {
	return func(b *Binding, _ types.Config) {
		b.defaultValue = value
		b.hasDefault = true
	}
}

// WithTypeConfig passes settings through to the type factory, such as the
// values/multiple/strict configuration of an enumeration.
func WithTypeConfig(cfg types.Config) AttributeOption {
	return func(_ *Binding, target types.Config) {
		for k, v := range cfg {
			target[k] = v
		}
	}
}

// Read loads the slot value. An absent slot with a configured default
// memoizes the dumped default into the container before returning it, so a
// persisted document captures the default that was actually used. An absent
// slot without a default reads as nil, not as an error.
func (b *Binding) Read(c Container) (any, error) {
	raw, ok := c.GetSlot(b.field)
	if ok && raw != nil {
		return b.typ.Load(raw)
	}

	if !b.hasDefault {
		return nil, nil
	}

	dumped, err := b.typ.Dump(b.defaultValue)
	if err != nil {
		return nil, err
	}

	c.SetSlot(b.field, dumped)

	// load the dumped form so the first read returns the same shape as
	// every read after it
	return b.typ.Load(dumped)
}

// Write stores the dumped value. An empty string or nil clears the slot
// entirely, so a cleared form field erases a previously stored value
// instead of storing the literal empty string.
func (b *Binding) Write(c Container, value any) error {
	if value == nil || value == "" {
		c.DeleteSlot(b.field)
		return nil
	}

	dumped, err := b.typ.Dump(value)
	if err != nil {
		return err
	}

	c.SetSlot(b.field, dumped)

	return nil
}
