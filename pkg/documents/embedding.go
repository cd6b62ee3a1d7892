package documents

import (
	"fmt"

	dmerrors "github.com/diwise/document-model/pkg/documents/errors"
)

// DestructionMarker is the reserved payload field that causes an embedded
// document to be removed (or skipped) during mass-assignment when truthy.
const DestructionMarker string = "_destroy"

// Embedding declares a named relation from one document type to an
// embeddable target type, with cardinality one or many.
type Embedding struct {
	relation string
	target   *Definition
	many     bool
}

func (doc *Document) embedding(relation string) (*Embedding, error) {
	emb, ok := doc.definition.embeddings[relation]
	if !ok {
		return nil, dmerrors.NewUnknownRelationError(
			fmt.Sprintf("%s has no embedded relation %q", doc.definition.name, relation),
		)
	}
	return emb, nil
}

// One reads an embeds-one relation. An absent slot reads as nil with no
// implicit materialization. The returned document is a fresh wrapper over
// the stored sub container on every call, never a cached instance.
func (doc *Document) One(relation string) (*Document, error) {
	emb, err := doc.embedding(relation)
	if err != nil {
		return nil, err
	}

	if emb.many {
		return nil, dmerrors.NewUnknownRelationError(
			fmt.Sprintf("%q is an embeds-many relation on %s", relation, doc.definition.name),
		)
	}

	raw, ok := doc.container.GetSlot(relation)
	if !ok || raw == nil {
		return nil, nil
	}

	sub, ok := raw.(map[string]any)
	if !ok {
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("slot %q holds a %T, not an embedded document", relation, raw),
		)
	}

	return emb.target.WrapMap(sub), nil
}

// Many reads an embeds-many relation as an ordered collection view. A
// missing slot reads as an empty collection, not as absent.
func (doc *Document) Many(relation string) (*Collection, error) {
	emb, err := doc.embedding(relation)
	if err != nil {
		return nil, err
	}

	if !emb.many {
		return nil, dmerrors.NewUnknownRelationError(
			fmt.Sprintf("%q is an embeds-one relation on %s", relation, doc.definition.name),
		)
	}

	return &Collection{owner: doc.container, slot: relation, target: emb.target}, nil
}

// Build creates a new embedded document under the relation. For embeds-one
// it replaces any prior contents (not idempotent), for embeds-many it
// appends one element to the collection.
func (doc *Document) Build(relation string) (*Document, error) {
	emb, err := doc.embedding(relation)
	if err != nil {
		return nil, err
	}

	if emb.many {
		col := &Collection{owner: doc.container, slot: relation, target: emb.target}
		return col.Build(), nil
	}

	sub := map[string]any{}
	doc.container.SetSlot(relation, sub)

	return emb.target.WrapMap(sub), nil
}

// Ensure returns the existing embedded document, building one only when
// the relation is empty. For embeds-many the first element is returned.
func (doc *Document) Ensure(relation string) (*Document, error) {
	emb, err := doc.embedding(relation)
	if err != nil {
		return nil, err
	}

	if emb.many {
		col := &Collection{owner: doc.container, slot: relation, target: emb.target}
		return col.Ensure(), nil
	}

	existing, err := doc.One(relation)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		return existing, nil
	}

	return doc.Build(relation)
}

// Assign bulk-replaces an embedded relation from an untyped payload, the
// shape a form or controller layer produces. Embeds-one takes a field map,
// embeds-many takes an ordered sequence of field maps. A truthy destruction
// marker clears (or skips) the targeted document.
func (doc *Document) Assign(relation string, payload any) error {
	emb, err := doc.embedding(relation)
	if err != nil {
		return err
	}

	if emb.many {
		return doc.assignMany(emb, payload)
	}

	return doc.assignOne(emb, payload)
}

func (doc *Document) assignOne(emb *Embedding, payload any) error {
	fields, err := payloadMap(payload)
	if err != nil {
		return err
	}

	if destroyRequested(fields) {
		doc.container.DeleteSlot(emb.relation)
		return nil
	}

	target, err := doc.Ensure(emb.relation)
	if err != nil {
		return err
	}

	return target.Apply(fields)
}

// assignMany replaces, it does not merge: the stored array is discarded and
// rebuilt from the payload in payload order, so elements the caller leaves
// out are dropped.
func (doc *Document) assignMany(emb *Embedding, payload any) error {
	elements, err := payloadList(payload)
	if err != nil {
		return err
	}

	rebuilt := make([]any, 0, len(elements))
	doc.container.SetSlot(emb.relation, rebuilt)

	for _, fields := range elements {
		if destroyRequested(fields) {
			continue
		}

		sub := map[string]any{}
		rebuilt = append(rebuilt, sub)
		doc.container.SetSlot(emb.relation, rebuilt)

		if err := emb.target.WrapMap(sub).Apply(fields); err != nil {
			return err
		}
	}

	return nil
}

func payloadMap(payload any) (map[string]any, error) {
	fields, ok := payload.(map[string]any)
	if !ok {
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("payload of type %T is not a field map", payload),
		)
	}
	return fields, nil
}

func payloadList(payload any) ([]map[string]any, error) {
	switch p := payload.(type) {
	case []map[string]any:
		return p, nil
	case []any:
		elements := make([]map[string]any, 0, len(p))
		for _, elem := range p {
			fields, err := payloadMap(elem)
			if err != nil {
				return nil, err
			}
			elements = append(elements, fields)
		}
		return elements, nil
	default:
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("payload of type %T is not a sequence of field maps", payload),
		)
	}
}

func destroyRequested(fields map[string]any) bool {
	marker, ok := fields[DestructionMarker]
	if !ok {
		return false
	}

	switch v := marker.(type) {
	case bool:
		return v
	case string:
		return v == "1" || v == "true"
	case int:
		return v != 0
	case float64:
		return v != 0
	default:
		return false
	}
}
