// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

// Package form decodes url.Values into structs tagged with `form:"name"`.
package form

import (
	"encoding"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// Unmarshal fills the tagged fields of target from input. Missing and empty
// values leave a field untouched. Nested structs are addressed with a dotted
// prefix, e.g. "address.city".
func Unmarshal(input url.Values, target any) error {
	val := reflect.ValueOf(target)
	if val.Kind() != reflect.Pointer || val.IsNil() {
		return &InvalidUnmarshalError{Type: reflect.TypeOf(target)}
	}
	return unmarshalStruct(input, "", val.Elem())
}

func unmarshalStruct(input url.Values, prefix string, v reflect.Value) error {
	ttype := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := ttype.Field(i)
		name := field.Tag.Get("form")
		if name == "" || name == "-" || !field.IsExported() {
			continue
		}
		key := prefix + name
		fieldVal := v.Field(i)

		if field.Type.Kind() == reflect.Struct && !reflect.PointerTo(field.Type).Implements(textUnmarshalerType) {
			if err := unmarshalStruct(input, key+".", fieldVal); err != nil {
				return err
			}
			continue
		}

		values := input[key]
		if len(values) == 0 {
			continue
		}
		if err := setField(fieldVal, values); err != nil {
			return &FieldError{Field: key, Err: err}
		}
	}
	return nil
}

func setField(fieldVal reflect.Value, values []string) error {
	if fieldVal.CanAddr() {
		if u, ok := fieldVal.Addr().Interface().(encoding.TextUnmarshaler); ok {
			if values[0] == "" {
				return nil
			}
			return u.UnmarshalText([]byte(values[0]))
		}
	}

	// NOTE: scalars take only the first value.
	raw := values[0]
	switch fieldVal.Kind() {
	case reflect.String:
		fieldVal.SetString(raw)
	case reflect.Bool:
		if raw == "" {
			return nil
		}
		b, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			// checkboxes submit "on"
			b = strings.EqualFold(raw, "on")
		}
		fieldVal.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if raw == "" {
			return nil
		}
		n, err := strconv.ParseInt(raw, 10, fieldVal.Type().Bits())
		if err != nil {
			return err
		}
		fieldVal.SetInt(n)
	case reflect.Float32, reflect.Float64:
		if raw == "" {
			return nil
		}
		f, err := strconv.ParseFloat(raw, fieldVal.Type().Bits())
		if err != nil {
			return err
		}
		fieldVal.SetFloat(f)
	case reflect.Slice:
		if fieldVal.Type().Elem().Kind() != reflect.String {
			return fmt.Errorf("unsupported slice type %s", fieldVal.Type())
		}
		fieldVal.Set(reflect.ValueOf(append([]string(nil), values...)).Convert(fieldVal.Type()))
	default:
		return fmt.Errorf("unsupported type %s", fieldVal.Type())
	}
	return nil
}

type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return "form: field " + e.Field + ": " + e.Err.Error()
}

func (e *FieldError) Unwrap() error { return e.Err }

type InvalidUnmarshalError struct {
	Type reflect.Type
}

func (e *InvalidUnmarshalError) Error() string {
	if e.Type == nil {
		return "form: Unmarshal(nil)"
	}

	if e.Type.Kind() != reflect.Pointer {
		return "form: Unmarshal(non-pointer " + e.Type.String() + ")"
	}
	return "form: Unmarshal(nil " + e.Type.String() + ")"
}
