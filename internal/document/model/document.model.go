package model

import "encoding/json"

// Document is the stored (key, payload) pair. The payload is an opaque JSON
// object; the store never inspects its members beyond the non-empty check on
// write.
type Document struct {
	Key     string          `json:"key"`
	Payload json.RawMessage `json:"payload"`
}

type StatusResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
