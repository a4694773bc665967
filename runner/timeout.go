package runner

import (
	"encoding/json"
	"time"
)

// Timeout is a time.Duration that renders as a human-readable duration string ("2m30s") when marshalled to JSON.
type Timeout time.Duration

func (t Timeout) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(t).String())
}
