package evaluator

import (
	"strings"
)

// Array owns its elements.
type Array struct {
	Elements []Object
}

func (a *Array) Type() ObjectType { return ARRAY_OBJ }
func (a *Array) Inspect() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, el := range a.Elements {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(el.Inspect())
	}
	sb.WriteString("]")
	return sb.String()
}

// RecordEntry is one field of a record. Entries keep insertion order.
type RecordEntry struct {
	Key   string
	Value Object
}

// Record owns its fields, in insertion order.
type Record struct {
	Fields []RecordEntry
}

func NewRecord() *Record {
	return &Record{}
}

// Get returns the value for key.
func (r *Record) Get(key string) (Object, bool) {
	for _, f := range r.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}
	return nil, false
}

// Set overwrites an existing field in place or appends a new one.
func (r *Record) Set(key string, value Object) {
	for i, f := range r.Fields {
		if f.Key == key {
			r.Fields[i].Value = value
			return
		}
	}
	r.Fields = append(r.Fields, RecordEntry{Key: key, Value: value})
}

// Keys returns the field names in insertion order.
func (r *Record) Keys() []string {
	keys := make([]string, len(r.Fields))
	for i, f := range r.Fields {
		keys[i] = f.Key
	}
	return keys
}

func (r *Record) Type() ObjectType { return RECORD_OBJ }
func (r *Record) Inspect() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, f := range r.Fields {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(`"` + f.Key + `": `)
		sb.WriteString(f.Value.Inspect())
	}
	sb.WriteString("}")
	return sb.String()
}
