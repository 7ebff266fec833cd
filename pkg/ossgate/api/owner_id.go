package api

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tendant/ossgate/pkg/ossgate"
)

// OwnerID accepts either a JSON string or a JSON number.
// Falsy values (false, null, 0) decode to the empty id; true decodes to "true".
// Numbers are formatted by ossgate.OwnerIDFromNumber.
type OwnerID string

func (o *OwnerID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	switch {
	case len(data) == 0, bytes.Equal(data, []byte("null")), bytes.Equal(data, []byte("false")):
		*o = ""
	case bytes.Equal(data, []byte("true")):
		*o = "true"
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*o = OwnerID(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("owner_id must be a string or number: %w", err)
		}
		f, err := n.Float64()
		if err != nil {
			return fmt.Errorf("owner_id out of range: %w", err)
		}
		*o = OwnerID(ossgate.OwnerIDFromNumber(f))
	}
	return nil
}
