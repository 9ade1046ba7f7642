package tourmarket

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// entityMetadata holds the parsed `doc` tag information for a specific struct type.
type entityMetadata struct {
	Name   string
	Fields []fieldMapping
}

// fieldMapping ties one struct field to its document property.
type fieldMapping struct {
	Index     int
	Prop      string
	OmitEmpty bool
}

var (
	// metaCache stores parsed entityMetadata to avoid reflection on every encode.
	metaCache sync.Map

	timeType    = reflect.TypeOf(time.Time{})
	decimalType = reflect.TypeOf(decimal.Decimal{})
)

// parseTagsFromType inspects a struct type and extracts its `doc` tags.
// A tag has the form `doc:"name"` or `doc:"name,omitempty"`; `doc:"-"` and
// untagged fields are not stored.
func parseTagsFromType(typ reflect.Type) (*entityMetadata, error) {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("type %s is not a struct", typ.Name())
	}
	if cached, ok := metaCache.Load(typ); ok {
		return cached.(*entityMetadata), nil
	}

	meta := &entityMetadata{Name: typ.Name()}
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		tag := field.Tag.Get("doc")
		if tag == "" || tag == "-" {
			continue
		}
		parts := strings.Split(tag, ",")
		if parts[0] == "" {
			return nil, fmt.Errorf("field %s of %s has an empty property name", field.Name, typ.Name())
		}
		m := fieldMapping{Index: i, Prop: parts[0]}
		for _, opt := range parts[1:] {
			if opt == "omitempty" {
				m.OmitEmpty = true
			}
		}
		meta.Fields = append(meta.Fields, m)
	}
	if len(meta.Fields) == 0 {
		return nil, fmt.Errorf("no doc tags defined for struct %s", typ.Name())
	}

	metaCache.Store(typ, meta)
	return meta, nil
}

// Encode maps a tagged struct (or pointer to one) to a Document.
// Times are kept as time.Time, decimals become float64, named string types
// become plain strings, nested tagged structs become embedded documents and
// nil pointers are stored as nil unless the field is omitempty.
func Encode(entity interface{}) (Document, error) {
	val := reflect.ValueOf(entity)
	if val.Kind() == reflect.Ptr {
		if val.IsNil() {
			return nil, fmt.Errorf("entity must be a non-nil pointer")
		}
		val = val.Elem()
	}
	return encodeStruct(val)
}

func encodeStruct(val reflect.Value) (Document, error) {
	meta, err := parseTagsFromType(val.Type())
	if err != nil {
		return nil, err
	}
	doc := make(Document, len(meta.Fields))
	for _, m := range meta.Fields {
		fv := val.Field(m.Index)
		if m.OmitEmpty && fv.IsZero() {
			continue
		}
		v, err := encodeValue(fv)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", meta.Name, m.Prop, err)
		}
		doc[m.Prop] = v
	}
	return doc, nil
}

func encodeValue(v reflect.Value) (interface{}, error) {
	switch v.Type() {
	case timeType:
		return v.Interface().(time.Time), nil
	case decimalType:
		return v.Interface().(decimal.Decimal).InexactFloat64(), nil
	}

	switch v.Kind() {
	case reflect.Ptr, reflect.Interface:
		if v.IsNil() {
			return nil, nil
		}
		return encodeValue(v.Elem())
	case reflect.Struct:
		return encodeStruct(v)
	case reflect.Slice, reflect.Array:
		out := make([]interface{}, 0, v.Len())
		for i := 0; i < v.Len(); i++ {
			e, err := encodeValue(v.Index(i))
			if err != nil {
				return nil, err
			}
			out = append(out, e)
		}
		return out, nil
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("map keys must be strings, got %s", v.Type().Key())
		}
		out := make(Document, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			e, err := encodeValue(iter.Value())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = e
		}
		return out, nil
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return v.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int64(v.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return v.Float(), nil
	}
	return nil, fmt.Errorf("unsupported kind %s", v.Kind())
}
