// Package bind bridges between documents and typed Go structs using
// struct tags.
//
// Usage:
//
//	type House struct {
//	    Name    string   `attr:"name"`
//	    Storeys int64    `attr:"storeys"`
//	    Height  float64  `attr:"height,omitempty"`
//	}
//
//	// Read: document → struct
//	var h House
//	bind.Scan(doc, &h)
//
//	// Write: struct → mass-assignment payload
//	doc.Apply(bind.From(h))
package bind

import (
	"reflect"
	"strings"

	"github.com/diwise/document-model/pkg/documents"
)

// Scan reads tagged struct fields through the document's typed accessors,
// so defaults and conversions still apply. Fields whose tag names the
// definition does not declare, and absent slots, are left at their zero
// value.
func Scan(doc *documents.Document, dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return nil
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		key := tagKey(t.Field(i))
		if key == "" {
			continue
		}

		if _, ok := doc.Definition().PredicateHint(key); !ok {
			continue
		}

		value, err := doc.Get(key)
		if err != nil {
			return err
		}

		if value == nil {
			continue
		}

		setField(v.Field(i), value)
	}

	return nil
}

// From converts a tagged struct into a mass-assignment payload. Fields
// tagged with "omitempty" are skipped at their zero value.
func From(src any) map[string]any {
	v := reflect.ValueOf(src)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return nil
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	m := make(map[string]any)

	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("attr")
		if tag == "" || tag == "-" {
			continue
		}

		key, omitempty := parseTag(tag)
		fv := v.Field(i)

		if omitempty && fv.IsZero() {
			continue
		}

		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				continue
			}
			fv = fv.Elem()
		}

		m[key] = fv.Interface()
	}

	return m
}

func tagKey(f reflect.StructField) string {
	tag := f.Tag.Get("attr")
	if tag == "" || tag == "-" {
		return ""
	}
	key, _ := parseTag(tag)
	return key
}

func parseTag(tag string) (key string, omitempty bool) {
	parts := strings.SplitN(tag, ",", 2)
	key = parts[0]
	if len(parts) > 1 && parts[1] == "omitempty" {
		omitempty = true
	}
	return
}

func setField(fv reflect.Value, value any) {
	switch fv.Kind() {
	case reflect.String:
		if s, ok := value.(string); ok {
			fv.SetString(s)
		}

	case reflect.Int, reflect.Int64:
		switch n := value.(type) {
		case int64:
			fv.SetInt(n)
		case int:
			fv.SetInt(int64(n))
		case float64:
			fv.SetInt(int64(n))
		}

	case reflect.Float64:
		switch n := value.(type) {
		case float64:
			fv.SetFloat(n)
		case int64:
			fv.SetFloat(float64(n))
		}

	case reflect.Bool:
		if b, ok := value.(bool); ok {
			fv.SetBool(b)
		}

	case reflect.Slice:
		if fv.Type().Elem().Kind() == reflect.String {
			switch items := value.(type) {
			case []string:
				fv.Set(reflect.ValueOf(items))
			case []any:
				strs := make([]string, 0, len(items))
				for _, item := range items {
					if s, ok := item.(string); ok {
						strs = append(strs, s)
					}
				}
				fv.Set(reflect.ValueOf(strs))
			}
		}
	}
}
