package models

import (
	"bytes"
	"encoding/json"
)

// Nullable is a patch value for an optional string field. Set records that
// the key was present in the body: an explicit null clears the field, an
// absent key keeps it.
type Nullable struct {
	Set   bool
	Value *string
}

// NewNullable returns a present value. A nil v clears the field.
func NewNullable(v *string) Nullable {
	return Nullable{Set: true, Value: cloneString(v)}
}

func (n *Nullable) UnmarshalJSON(data []byte) error {
	n.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		n.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	n.Value = &s
	return nil
}

func (n Nullable) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.Value)
}

func setNullable(dst **string, v Nullable) {
	if v.Set {
		*dst = cloneString(v.Value)
	}
}
