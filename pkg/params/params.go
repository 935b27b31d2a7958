// Package params binds decoded parameter maps onto typed structs.
//
// Fields are matched by the `param` struct tag:
//
//	type ShowParams struct {
//	    ProductID int      `param:"productID"`
//	    Options   []string `param:"options"`
//	}
//
// The source map holds the decoder's output: strings, bools, float64
// numbers, nil, []any sequences and map[string]any objects. Bind converts
// between those and the field's Go type, so a numeric token that decoded to
// float64 still lands in a string field and vice versa.
package params

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
)

// Validator is implemented by targets that want a validation pass after
// binding. Bind calls Validate and returns its error; the binder itself
// performs no schema validation.
type Validator interface {
	Validate() error
}

// Bind populates target with values from src. The target must be a pointer
// to a struct; fields without a `param` tag, and tags absent from src, are
// left untouched.
func Bind(src map[string]any, target any) error {
	if target == nil {
		return nil
	}

	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Ptr {
		return fmt.Errorf("target must be a pointer, got %s", v.Kind())
	}
	v = v.Elem()
	if v.Kind() != reflect.Struct {
		return fmt.Errorf("target must be a pointer to struct, got pointer to %s", v.Kind())
	}

	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := field.Tag.Get("param")
		if name == "" || name == "-" {
			continue
		}

		value, ok := src[name]
		if !ok {
			continue
		}

		fieldValue := v.Field(i)
		if !fieldValue.CanSet() {
			continue
		}
		if err := setField(fieldValue, value); err != nil {
			return fmt.Errorf("binding param %q: %w", name, err)
		}
	}

	if validator, ok := target.(Validator); ok {
		if err := validator.Validate(); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
	}

	return nil
}

// Parse binds src onto a fresh value of type T.
func Parse[T any](src map[string]any) (T, error) {
	var out T
	err := Bind(src, &out)
	return out, err
}

// setField converts a decoded value into the field's type.
func setField(field reflect.Value, value any) error {
	switch field.Kind() {
	case reflect.String:
		field.SetString(stringify(value))

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := toInt64(value)
		if err != nil {
			return err
		}
		field.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := toInt64(value)
		if err != nil {
			return err
		}
		if n < 0 {
			return fmt.Errorf("negative value %d for unsigned field", n)
		}
		field.SetUint(uint64(n))

	case reflect.Float32, reflect.Float64:
		f, err := toFloat64(value)
		if err != nil {
			return err
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := toBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case reflect.Slice:
		return setSlice(field, value)

	case reflect.Ptr:
		if value == nil {
			field.Set(reflect.Zero(field.Type()))
			return nil
		}
		elem := reflect.New(field.Type().Elem())
		if err := setField(elem.Elem(), value); err != nil {
			return err
		}
		field.Set(elem)
		return nil

	default:
		// Nested objects and anything else go through a JSON round trip.
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("unsupported value for %s field: %v", field.Kind(), err)
		}
		if err := json.Unmarshal(data, field.Addr().Interface()); err != nil {
			return fmt.Errorf("cannot assign to %s field: %v", field.Kind(), err)
		}
	}

	return nil
}

// setSlice fills a slice field from a sequence. A scalar becomes a
// one-element slice, which keeps single-segment catch-alls ergonomic.
func setSlice(field reflect.Value, value any) error {
	var elems []any
	switch t := value.(type) {
	case []any:
		elems = t
	case []string:
		elems = make([]any, len(t))
		for i, s := range t {
			elems[i] = s
		}
	default:
		elems = []any{value}
	}

	slice := reflect.MakeSlice(field.Type(), len(elems), len(elems))
	for i, elem := range elems {
		if err := setField(slice.Index(i), elem); err != nil {
			return fmt.Errorf("element %d: %w", i, err)
		}
	}
	field.Set(slice)
	return nil
}

func stringify(value any) string {
	switch t := value.(type) {
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", t)
	}
}

func toInt64(value any) (int64, error) {
	switch t := value.(type) {
	case float64:
		n := int64(t)
		if float64(n) != t {
			return 0, fmt.Errorf("value %v is not an integer", t)
		}
		return n, nil
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid integer: %q", t)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to integer", value)
	}
}

func toFloat64(value any) (float64, error) {
	switch t := value.(type) {
	case float64:
		return t, nil
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid float: %q", t)
		}
		return f, nil
	default:
		return 0, fmt.Errorf("cannot convert %T to float", value)
	}
}

func toBool(value any) (bool, error) {
	switch t := value.(type) {
	case bool:
		return t, nil
	case string:
		b, err := strconv.ParseBool(t)
		if err != nil {
			return false, fmt.Errorf("invalid boolean: %q", t)
		}
		return b, nil
	default:
		return false, fmt.Errorf("cannot convert %T to boolean", value)
	}
}
