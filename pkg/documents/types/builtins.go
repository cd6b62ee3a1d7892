package types

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	dmerrors "github.com/diwise/document-model/pkg/documents/errors"
)

type stringType struct{}

func (t *stringType) Name() string          { return "string" }
func (t *stringType) PredicateHint() string { return HintString }

func (t *stringType) Dump(value any) (any, error) {
	s, ok := value.(string)
	if !ok {
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("value of type %T is not a string", value),
		)
	}
	return s, nil
}

func (t *stringType) Load(raw any) (any, error) {
	s, ok := raw.(string)
	if !ok {
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("stored value of type %T is not a string", raw),
		)
	}
	return s, nil
}

type integerType struct{}

func (t *integerType) Name() string          { return "integer" }
func (t *integerType) PredicateHint() string { return HintInteger }

func (t *integerType) Dump(value any) (any, error) {
	switch v := value.(type) {
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	case float64:
		if v != math.Trunc(v) {
			return nil, dmerrors.NewConversionError(
				fmt.Sprintf("%v is not an integral number", v),
			)
		}
		return int64(v), nil
	case string:
		i, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, dmerrors.NewConversionError(
				fmt.Sprintf("%q is not a valid integer", v),
			)
		}
		return i, nil
	default:
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("value of type %T is not an integer", value),
		)
	}
}

func (t *integerType) Load(raw any) (any, error) {
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	case float64:
		// raw JSON numbers arrive as float64
		return int64(v), nil
	default:
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("stored value of type %T is not an integer", raw),
		)
	}
}

type floatType struct{}

func (t *floatType) Name() string          { return "float" }
func (t *floatType) PredicateHint() string { return HintFloat }

func (t *floatType) Dump(value any) (any, error) {
	switch v := value.(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, dmerrors.NewConversionError(
				fmt.Sprintf("%q is not a valid float", v),
			)
		}
		return f, nil
	default:
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("value of type %T is not a float", value),
		)
	}
}

func (t *floatType) Load(raw any) (any, error) {
	switch v := raw.(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	case int:
		return float64(v), nil
	default:
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("stored value of type %T is not a float", raw),
		)
	}
}

type booleanType struct{}

func (t *booleanType) Name() string          { return "boolean" }
func (t *booleanType) PredicateHint() string { return HintBoolean }

func (t *booleanType) Dump(value any) (any, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, dmerrors.NewConversionError(
				fmt.Sprintf("%q is not a valid boolean", v),
			)
		}
		return b, nil
	default:
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("value of type %T is not a boolean", value),
		)
	}
}

func (t *booleanType) Load(raw any) (any, error) {
	b, ok := raw.(bool)
	if !ok {
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("stored value of type %T is not a boolean", raw),
		)
	}
	return b, nil
}

type arrayType struct{}

func (t *arrayType) Name() string          { return "array" }
func (t *arrayType) PredicateHint() string { return HintArray }

func (t *arrayType) Dump(value any) (any, error) {
	switch v := value.(type) {
	case []any:
		return v, nil
	case []string:
		arr := make([]any, 0, len(v))
		for _, e := range v {
			arr = append(arr, e)
		}
		return arr, nil
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice {
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("value of type %T is not an array", value),
		)
	}

	arr := make([]any, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		arr = append(arr, rv.Index(i).Interface())
	}

	return arr, nil
}

func (t *arrayType) Load(raw any) (any, error) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, dmerrors.NewConversionError(
			fmt.Sprintf("stored value of type %T is not an array", raw),
		)
	}
	return arr, nil
}
