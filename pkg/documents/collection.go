package documents

import (
	"fmt"

	dmerrors "github.com/diwise/document-model/pkg/documents/errors"
)

// Collection is an ordered view over the JSON array backing an embeds-many
// relation. Like documents, collections are stateless: every accessor reads
// the owner's slot anew, so external mutation is always reflected.
type Collection struct {
	owner  Container
	slot   string
	target *Definition
}

func (col *Collection) elements() []any {
	raw, ok := col.owner.GetSlot(col.slot)
	if !ok || raw == nil {
		return nil
	}

	arr, _ := raw.([]any)
	return arr
}

func (col *Collection) Len() int {
	return len(col.elements())
}

// At wraps the i:th stored element, or returns nil when out of range.
func (col *Collection) At(i int) *Document {
	arr := col.elements()
	if i < 0 || i >= len(arr) {
		return nil
	}

	sub, ok := arr[i].(map[string]any)
	if !ok {
		return nil
	}

	return col.target.WrapMap(sub)
}

// All returns one wrapper per stored element, in storage order.
func (col *Collection) All() []*Document {
	arr := col.elements()

	all := make([]*Document, 0, len(arr))
	for i := range arr {
		all = append(all, col.At(i))
	}

	return all
}

// Append inserts the document's backing container as a new element at the
// end of the array. Insertion order is preserved verbatim on every read.
func (col *Collection) Append(doc *Document) error {
	sub, ok := doc.container.(MapContainer)
	if !ok {
		return dmerrors.NewConversionError(
			fmt.Sprintf("container of type %T cannot be embedded", doc.container),
		)
	}

	col.owner.SetSlot(col.slot, append(col.elements(), map[string]any(sub)))

	return nil
}

// Build appends a fresh empty element and returns its wrapper.
func (col *Collection) Build() *Document {
	sub := map[string]any{}
	col.owner.SetSlot(col.slot, append(col.elements(), sub))

	return col.target.WrapMap(sub)
}

// Ensure adds exactly one element when the collection is empty, otherwise
// it returns the existing first element without mutating anything.
func (col *Collection) Ensure() *Document {
	if col.Len() == 0 {
		return col.Build()
	}

	return col.At(0)
}
