package provision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eks-replica-app/internal/paramstore"
	"eks-replica-app/internal/replicas"
)

const paramName = "/platform/account/env"

// stubStore records lookups and serves a fixed value or error.
type stubStore struct {
	value string
	err   error
	names []string
}

func (s *stubStore) Get(_ context.Context, name string) (string, error) {
	s.names = append(s.names, name)
	if s.err != nil {
		return "", s.err
	}
	return s.value, nil
}

func env(values map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func newTestHandler(t *testing.T, store paramstore.Getter) *Handler {
	t.Helper()
	h, err := New(Config{
		Params:    store,
		LookupEnv: env(map[string]string{ParameterNameEnv: paramName}),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)
	return h
}

func TestHandle(t *testing.T) {
	tests := []struct {
		environment string
		want        replicas.Decision
	}{
		{"development", replicas.Decision{StatusCode: 200, ReplicaCount: 1}},
		{"staging", replicas.Decision{StatusCode: 200, ReplicaCount: 2}},
		{"production", replicas.Decision{StatusCode: 200, ReplicaCount: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.environment, func(t *testing.T) {
			store := &stubStore{value: tt.environment}
			h := newTestHandler(t, store)

			got, err := h.Handle(context.Background(), Event{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, []string{paramName}, store.names, "exactly one lookup of the configured parameter")
		})
	}
}

func TestHandle_UnknownEnvironment(t *testing.T) {
	store := &stubStore{value: "qa"}
	h := newTestHandler(t, store)

	got, err := h.Handle(context.Background(), Event{})
	require.Error(t, err)
	assert.EqualError(t, err, "Unknown environment: qa")
	assert.ErrorIs(t, err, replicas.ErrInvalidEnvironment)
	assert.Equal(t, replicas.Decision{}, got)
	assert.Len(t, store.names, 1)
}

func TestHandle_LookupError(t *testing.T) {
	lookupErr := &paramstore.LookupError{Name: paramName, NotFound: true, Err: errors.New("ParameterNotFound")}
	store := &stubStore{err: lookupErr}
	h := newTestHandler(t, store)

	got, err := h.Handle(context.Background(), Event{})
	require.Error(t, err)
	assert.Equal(t, replicas.Decision{}, got)
	assert.Len(t, store.names, 1, "lookup failures are not retried")

	var target *paramstore.LookupError
	require.True(t, errors.As(err, &target))
	assert.True(t, target.NotFound)
	assert.False(t, errors.Is(err, replicas.ErrInvalidEnvironment))
}

func TestHandle_ParameterNameUnset(t *testing.T) {
	for name, values := range map[string]map[string]string{
		"missing": {},
		"empty":   {ParameterNameEnv: ""},
	} {
		t.Run(name, func(t *testing.T) {
			store := &stubStore{value: "development"}
			h, err := New(Config{
				Params:    store,
				LookupEnv: env(values),
				Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
			})
			require.NoError(t, err)

			_, err = h.Handle(context.Background(), Event{})
			assert.ErrorIs(t, err, ErrParameterNameUnset)
			assert.Empty(t, store.names)
		})
	}
}

func TestHandle_ReadsParameterNamePerCall(t *testing.T) {
	current := "/first"
	store := &stubStore{value: "staging"}
	h, err := New(Config{
		Params: store,
		LookupEnv: func(string) (string, bool) {
			return current, true
		},
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	require.NoError(t, err)

	_, err = h.Handle(context.Background(), Event{})
	require.NoError(t, err)
	current = "/second"
	_, err = h.Handle(context.Background(), Event{})
	require.NoError(t, err)

	assert.Equal(t, []string{"/first", "/second"}, store.names)
}

func TestHandle_LogsRequestID(t *testing.T) {
	var buf bytes.Buffer
	h, err := New(Config{
		Params:    &stubStore{value: "production"},
		LookupEnv: env(map[string]string{ParameterNameEnv: paramName}),
		Logger:    NewLogger(&buf, "info"),
	})
	require.NoError(t, err)

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-123"})
	_, err = h.Handle(ctx, Event{RequestType: "Create"})
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.NotEmpty(t, lines)
	last := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &last))
	assert.Equal(t, "req-123", last["aws_request_id"])
	assert.Equal(t, "production", last["environment"])
	assert.EqualValues(t, 2, last["replicas"])
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHandleCustomResource(t *testing.T) {
	tests := []struct {
		name        string
		event       cfn.Event
		value       string
		wantID      string
		wantData    map[string]interface{}
		wantErr     string
		wantLookups int
	}{
		{
			name:        "create",
			event:       cfn.Event{RequestType: cfn.RequestCreate, LogicalResourceID: "CustomResource"},
			value:       "development",
			wantID:      PhysicalResourceID,
			wantData:    map[string]interface{}{"StatusCode": 200, "ReplicaCount": 1},
			wantLookups: 1,
		},
		{
			name:        "update keeps physical id",
			event:       cfn.Event{RequestType: cfn.RequestUpdate, PhysicalResourceID: "existing-id"},
			value:       "staging",
			wantID:      "existing-id",
			wantData:    map[string]interface{}{"StatusCode": 200, "ReplicaCount": 2},
			wantLookups: 1,
		},
		{
			name:        "unknown environment",
			event:       cfn.Event{RequestType: cfn.RequestCreate},
			value:       "qa",
			wantID:      PhysicalResourceID,
			wantErr:     "Unknown environment: qa",
			wantLookups: 1,
		},
		{
			name:        "delete skips lookup",
			event:       cfn.Event{RequestType: cfn.RequestDelete, PhysicalResourceID: PhysicalResourceID},
			value:       "qa",
			wantID:      PhysicalResourceID,
			wantLookups: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := &stubStore{value: tt.value}
			h := newTestHandler(t, store)

			id, data, err := h.HandleCustomResource(context.Background(), tt.event)
			assert.Equal(t, tt.wantID, id)
			assert.Len(t, store.names, tt.wantLookups)
			if tt.wantErr != "" {
				assert.EqualError(t, err, tt.wantErr)
				assert.Nil(t, data)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, data)
		})
	}
}

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "warn")
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
