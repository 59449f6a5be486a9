package optional

import "encoding/json"

// Field distinguishes the three states a JSON object member can be in on a
// partial update: absent, explicit null, or a concrete value. A plain
// pointer collapses the first two, which is exactly the distinction PATCH
// semantics need.
type Field[T any] struct {
	Set   bool // the member appeared in the payload
	Null  bool // the member appeared and was null
	Value T
}

// UnmarshalJSON is only invoked by encoding/json when the member is
// present, so Set is unconditionally true here. Absent members keep the
// zero Field.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if string(data) == "null" {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	return json.Unmarshal(data, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Ptr returns the value as a pointer, nil when the field was absent or null.
func (f Field[T]) Ptr() *T {
	if !f.Set || f.Null {
		return nil
	}
	v := f.Value
	return &v
}

// Of builds a present, non-null field. Used by tests and internal callers.
func Of[T any](v T) Field[T] {
	return Field[T]{Set: true, Value: v}
}

// Null builds a present-null field.
func Null[T any]() Field[T] {
	return Field[T]{Set: true, Null: true}
}
