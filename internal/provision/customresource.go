package provision

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/cfn"
)

// PhysicalResourceID identifies the resolver custom resource in CloudFormation.
const PhysicalResourceID = "replica-resolver"

// HandleCustomResource serves CloudFormation custom resource requests. It is
// meant to be wrapped with cfn.LambdaWrap, which reports the outcome to
// CloudFormation. Delete requests succeed without a lookup.
func (h *Handler) HandleCustomResource(ctx context.Context, event cfn.Event) (string, map[string]interface{}, error) {
	logger := h.requestLogger(ctx).With(
		slog.String("request_type", string(event.RequestType)),
		slog.String("logical_resource_id", event.LogicalResourceID),
	)
	logger.Info("Custom resource request received")

	physicalID := event.PhysicalResourceID
	if physicalID == "" {
		physicalID = PhysicalResourceID
	}

	if event.RequestType == cfn.RequestDelete {
		return physicalID, nil, nil
	}

	decision, err := h.resolve(ctx, logger)
	if err != nil {
		return physicalID, nil, err
	}
	return physicalID, map[string]interface{}{
		"StatusCode":   decision.StatusCode,
		"ReplicaCount": decision.ReplicaCount,
	}, nil
}
