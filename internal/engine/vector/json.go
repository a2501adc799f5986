package vector

import "github.com/goccy/go-json"

// MarshalJSON encodes the vector as a JSON array.
func (v *Vector[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.ToSlice())
}

// UnmarshalJSON decodes a JSON array into the vector, replacing its
// contents. The result is persistent.
func (v *Vector[T]) UnmarshalJSON(data []byte) error {
	var xs []T
	if err := json.Unmarshal(data, &xs); err != nil {
		return err
	}
	*v = *FromSlice(xs)
	return nil
}
