// Package provision implements the replica resolver Lambda invoked while the
// stack is being provisioned. Each invocation reads the environment parameter
// once and resolves it to a replica decision.
package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/lambdacontext"

	"eks-replica-app/internal/paramstore"
	"eks-replica-app/internal/replicas"
)

// ParameterNameEnv names the environment variable holding the SSM parameter name.
const ParameterNameEnv = "SSM_PARAM_NAME"

// ErrParameterNameUnset is returned when ParameterNameEnv is missing or empty.
var ErrParameterNameUnset = errors.New(ParameterNameEnv + " is not set")

// Event is the payload sent by the provisioning engine. Its fields are
// informational; the environment always comes from the parameter store.
type Event struct {
	RequestType string `json:"RequestType,omitempty"`
	Stack       string `json:"Stack,omitempty"`
}

// Config configures a Handler.
type Config struct {
	// Params performs the parameter lookup.
	Params paramstore.Getter
	// LookupEnv resolves configuration bindings. Defaults to os.LookupEnv.
	LookupEnv func(key string) (string, bool)
	Logger    *slog.Logger
}

type Handler struct {
	params    paramstore.Getter
	lookupEnv func(string) (string, bool)
	logger    *slog.Logger
}

func New(cfg Config) (*Handler, error) {
	if cfg.Params == nil {
		return nil, errors.New("missing parameter store")
	}
	h := &Handler{
		params:    cfg.Params,
		lookupEnv: cfg.LookupEnv,
		logger:    cfg.Logger,
	}
	if h.lookupEnv == nil {
		h.lookupEnv = os.LookupEnv
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	return h, nil
}

// Handle reads the environment parameter and returns its replica decision.
func (h *Handler) Handle(ctx context.Context, event Event) (replicas.Decision, error) {
	logger := h.requestLogger(ctx)
	logger.Info("Request received", slog.Any("event", event))
	return h.resolve(ctx, logger)
}

// resolve does exactly one parameter lookup; the parameter name is read from
// the environment on every call.
func (h *Handler) resolve(ctx context.Context, logger *slog.Logger) (replicas.Decision, error) {
	name, ok := h.lookupEnv(ParameterNameEnv)
	if !ok || name == "" {
		logger.Error("Missing configuration", slog.String("env", ParameterNameEnv))
		return replicas.Decision{}, ErrParameterNameUnset
	}

	environment, err := h.params.Get(ctx, name)
	if err != nil {
		logger.Error("Parameter lookup failed", slog.String("parameter", name), slog.Any("error", err))
		return replicas.Decision{}, fmt.Errorf("read environment: %w", err)
	}

	decision, err := replicas.Resolve(environment)
	if err != nil {
		logger.Error("Environment rejected", slog.String("environment", environment))
		return replicas.Decision{}, err
	}

	logger.Info("Resolved replicas",
		slog.String("parameter", name),
		slog.String("environment", environment),
		slog.Int("replicas", decision.ReplicaCount),
	)
	return decision, nil
}

func (h *Handler) requestLogger(ctx context.Context) *slog.Logger {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return h.logger.With("aws_request_id", lc.AwsRequestID)
	}
	return h.logger
}
