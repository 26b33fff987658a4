package replicas

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// functionError is the payload Lambda returns when the handler failed.
type functionError struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorType    string `json:"errorType"`
}

// ParseDecision decodes the JSON result of a resolver invocation. A payload
// describing a function error is returned as an error carrying the handler's
// message, so callers never proceed with a partial decision.
func ParseDecision(payload []byte) (Decision, error) {
	var fnErr functionError
	if err := json.Unmarshal(payload, &fnErr); err != nil {
		return Decision{}, fmt.Errorf("decode resolver result: %w", err)
	}
	if fnErr.ErrorMessage != "" {
		return Decision{}, errors.New(fnErr.ErrorMessage)
	}

	var d Decision
	if err := json.Unmarshal(payload, &d); err != nil {
		return Decision{}, fmt.Errorf("decode resolver result: %w", err)
	}
	if d.StatusCode != http.StatusOK {
		return Decision{}, fmt.Errorf("resolver returned status %d", d.StatusCode)
	}
	if d.ReplicaCount < 1 {
		return Decision{}, fmt.Errorf("resolver returned invalid replica count %d", d.ReplicaCount)
	}
	return d, nil
}
