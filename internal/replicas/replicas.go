// Package replicas maps a deployment environment to the number of ingress
// controller replicas the cluster should run.
package replicas

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidEnvironment matches any InvalidEnvironmentError via errors.Is.
var ErrInvalidEnvironment = errors.New("invalid environment")

// InvalidEnvironmentError is returned when an environment has no replica mapping.
type InvalidEnvironmentError struct {
	Environment string
}

func (e *InvalidEnvironmentError) Error() string {
	return fmt.Sprintf("Unknown environment: %s", e.Environment)
}

func (e *InvalidEnvironmentError) Is(target error) bool {
	return target == ErrInvalidEnvironment
}

// Decision is the result handed back to the provisioning engine.
type Decision struct {
	StatusCode   int `json:"StatusCode"`
	ReplicaCount int `json:"ReplicaCount"`
}

// staging and production intentionally share a count.
var replicaCounts = map[string]int{
	"development": 1,
	"staging":     2,
	"production":  2,
}

// Resolve returns the replica decision for environment. Unknown environments
// never fall back to a default.
func Resolve(environment string) (Decision, error) {
	count, ok := replicaCounts[environment]
	if !ok {
		return Decision{}, &InvalidEnvironmentError{Environment: environment}
	}
	return Decision{
		StatusCode:   http.StatusOK,
		ReplicaCount: count,
	}, nil
}
