package tourmarket

import (
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// The accessors below read a typed field from a document. The boolean is false
// when the field is missing or holds a value of another type; callers decide
// whether that drops the record or falls back to a default.

// Text reads a string field.
func (d Document) Text(key string) (string, bool) {
	s, ok := d[key].(string)
	return s, ok
}

// Bool reads a boolean field.
func (d Document) Bool(key string) (bool, bool) {
	b, ok := d[key].(bool)
	return b, ok
}

// Float accepts any numeric representation.
func (d Document) Float(key string) (float64, bool) {
	switch n := d[key].(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// Int accepts integers and, since embedded JSON decodes numbers as floats, float64.
func (d Document) Int(key string) (int64, bool) {
	switch n := d[key].(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case float64:
		return int64(n), true
	}
	return 0, false
}

// Time accepts native datetimes and RFC 3339 text from embedded documents.
func (d Document) Time(key string) (time.Time, bool) {
	switch t := d[key].(type) {
	case time.Time:
		return t, true
	case neo4j.LocalDateTime:
		return t.Time(), true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

// Strings reads a list of strings; non-string entries are skipped.
func (d Document) Strings(key string) ([]string, bool) {
	switch l := d[key].(type) {
	case []string:
		return append([]string(nil), l...), true
	case []interface{}:
		out := make([]string, 0, len(l))
		for _, e := range l {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	return nil, false
}

// Documents reads a list of embedded documents; other entries are skipped.
func (d Document) Documents(key string) ([]Document, bool) {
	l, ok := d[key].([]interface{})
	if !ok {
		return nil, false
	}
	out := make([]Document, 0, len(l))
	for _, e := range l {
		switch m := e.(type) {
		case Document:
			out = append(out, m)
		case map[string]interface{}:
			out = append(out, Document(m))
		}
	}
	return out, true
}
