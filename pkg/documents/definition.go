package documents

import (
	"encoding/json"
	"fmt"

	"github.com/diwise/document-model/pkg/documents/types"
)

type DefinitionDecoratorFunc func(d *Definition) error

// Definition describes one document type: its named, typed attributes and
// its embedded relations. It is defined once and shared by every document
// of that type.
type Definition struct {
	name       string
	registry   *types.Registry
	attributes map[string]*Binding
	embeddings map[string]*Embedding
	hints      map[string]string
}

func NewDefinition(name string, decorators ...DefinitionDecoratorFunc) (*Definition, error) {
	d := &Definition{
		name:       name,
		registry:   types.Default(),
		attributes: map[string]*Binding{},
		embeddings: map[string]*Embedding{},
		hints:      map[string]string{},
	}

	for _, decorator := range decorators {
		if err := decorator(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// UseRegistry injects a scoped type registry. It must come before any
// Attribute decorators that should resolve against it.
func UseRegistry(registry *types.Registry) DefinitionDecoratorFunc {
	return func(d *Definition) error {
		d.registry = registry
		return nil
	}
}

func Attribute(field, typeName string, options ...AttributeOption) DefinitionDecoratorFunc {
	return func(d *Definition) error {
		return d.Bind(field, typeName, options...)
	}
}

func EmbedsOne(relation string, target *Definition) DefinitionDecoratorFunc {
	return func(d *Definition) error {
		return d.BindEmbedsOne(relation, target)
	}
}

func EmbedsMany(relation string, target *Definition) DefinitionDecoratorFunc {
	return func(d *Definition) error {
		return d.BindEmbedsMany(relation, target)
	}
}

// Bind installs (or re-installs) a typed attribute on the definition. The
// type name is resolved immediately so an unknown type fails at definition
// time, and the predicate hint table is updated with last bind wins.
func (d *Definition) Bind(field, typeName string, options ...AttributeOption) error {
	cfg := types.Config{}
	b := &Binding{field: field}

	for _, option := range options {
		option(b, cfg)
	}

	typ, err := d.registry.Resolve(typeName, cfg)
	if err != nil {
		return err
	}

	b.typ = typ
	d.attributes[field] = b
	d.hints[field] = typ.PredicateHint()

	return nil
}

func (d *Definition) BindEmbedsOne(relation string, target *Definition) error {
	if target == nil {
		return fmt.Errorf("embeds-one relation %q has no target definition", relation)
	}

	d.embeddings[relation] = &Embedding{relation: relation, target: target}
	return nil
}

func (d *Definition) BindEmbedsMany(relation string, target *Definition) error {
	if target == nil {
		return fmt.Errorf("embeds-many relation %q has no target definition", relation)
	}

	d.embeddings[relation] = &Embedding{relation: relation, target: target, many: true}
	return nil
}

func (d *Definition) Name() string {
	return d.name
}

// PredicateHints returns a copy of the field to hint table consumed by the
// external query engine.
func (d *Definition) PredicateHints() map[string]string {
	hints := make(map[string]string, len(d.hints))
	for field, hint := range d.hints {
		hints[field] = hint
	}
	return hints
}

func (d *Definition) PredicateHint(field string) (string, bool) {
	hint, ok := d.hints[field]
	return hint, ok
}

// Choices exposes the choice list of an enumeration typed attribute, or
// false for any other attribute.
func (d *Definition) Choices(field string) ([]types.Choice, bool) {
	a, ok := d.attributes[field]
	if !ok {
		return nil, false
	}

	enum, ok := a.typ.(interface{ Choices() []types.Choice })
	if !ok {
		return nil, false
	}

	return enum.Choices(), true
}

// New creates a document of this type over a fresh empty container.
func (d *Definition) New() *Document {
	return &Document{definition: d, container: NewContainer()}
}

// Wrap materializes a typed view over an existing container. Wrappers are
// transient: the container is the single source of truth and a new wrapper
// over the same container loses nothing.
func (d *Definition) Wrap(c Container) *Document {
	return &Document{definition: d, container: c}
}

func (d *Definition) WrapMap(m map[string]any) *Document {
	return d.Wrap(MapContainer(m))
}

func (d *Definition) FromJSON(body []byte) (*Document, error) {
	contents := map[string]any{}

	err := json.Unmarshal(body, &contents)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal document: %w", err)
	}

	return d.WrapMap(contents), nil
}
