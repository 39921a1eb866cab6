package store

import "fmt"

// Record is one key/value pair held in a container.
type Record struct {
	Key   string `json:"key"`
	Value []byte `json:"value"`
}

// String renders the record the way listings show it.
func (r Record) String() string {
	return fmt.Sprintf("%s\t%s", r.Key, r.Value)
}

// checkKey rejects the empty key. Any other string is stored byte for byte.
func checkKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: empty key", ErrInvalidKey)
	}
	return nil
}

// cloneValue copies v so callers never share backing arrays with a backend.
// A nil value is stored as an empty one.
func cloneValue(v []byte) []byte {
	out := make([]byte, len(v))
	copy(out, v)
	return out
}
