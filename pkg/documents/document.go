package documents

import (
	"encoding/json"
	"fmt"
	"sort"

	dmerrors "github.com/diwise/document-model/pkg/documents/errors"
)

// Document is a typed view over one container. It holds no state of its
// own: rebuilding a document from the same container loses nothing.
type Document struct {
	definition *Definition
	container  Container
}

func (doc *Document) Definition() *Definition {
	return doc.definition
}

func (doc *Document) Container() Container {
	return doc.container
}

func (doc *Document) Get(field string) (any, error) {
	a, ok := doc.definition.attributes[field]
	if !ok {
		return nil, dmerrors.NewUnknownAttributeError(
			fmt.Sprintf("%s has no attribute %q", doc.definition.name, field),
		)
	}

	return a.Read(doc.container)
}

func (doc *Document) Set(field string, value any) error {
	a, ok := doc.definition.attributes[field]
	if !ok {
		return dmerrors.NewUnknownAttributeError(
			fmt.Sprintf("%s has no attribute %q", doc.definition.name, field),
		)
	}

	return a.Write(doc.container, value)
}

// Apply mass-assigns this document's own fields from an untyped payload.
// Attributes go through their typed setters and embedded relations through
// Assign. Unrecognized field names are ignored so partial payloads from
// older clients remain forward compatible. Fields apply in sorted name
// order and a failed conversion aborts the remaining fields, leaving the
// container as it was after the last successfully applied field.
func (doc *Document) Apply(payload map[string]any) error {
	fields := make([]string, 0, len(payload))
	for field := range payload {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	for _, field := range fields {
		if _, ok := doc.definition.attributes[field]; ok {
			if err := doc.Set(field, payload[field]); err != nil {
				return err
			}
			continue
		}

		if _, ok := doc.definition.embeddings[field]; ok {
			if err := doc.Assign(field, payload[field]); err != nil {
				return err
			}
		}
	}

	return nil
}

// MarshalJSON serializes the backing container verbatim.
func (doc *Document) MarshalJSON() ([]byte, error) {
	if m, ok := doc.container.(MapContainer); ok {
		return json.Marshal(map[string]any(m))
	}

	if m, ok := doc.container.(json.Marshaler); ok {
		return m.MarshalJSON()
	}

	return nil, fmt.Errorf("container of type %T is not serializable", doc.container)
}
