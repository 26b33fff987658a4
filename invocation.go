package main

import (
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/lambda"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"

	"eks-replica-app/internal/replicas"
)

type ReplicaInvocationArgs struct {
	resolver  *ReplicaResolver
	parameter *EnvParameter
}

// ReplicaInvocation runs the resolver once per provisioning event and exposes
// its decision. A failed invocation leaves replicaCount rejected, which stops
// every resource that consumes it.
type ReplicaInvocation struct {
	invocation   *lambda.Invocation
	replicaCount pulumi.IntOutput
}

func NewReplicaInvocation(ctx *pulumi.Context, args ReplicaInvocationArgs) (*ReplicaInvocation, error) {
	ri := &ReplicaInvocation{}
	var err error
	ri.invocation, err = lambda.NewInvocation(ctx, "replica-resolver-invocation", &lambda.InvocationArgs{
		FunctionName: args.resolver.function.Name,
		Input: pulumi.JSONMarshal(map[string]interface{}{
			"RequestType": "Create",
			"Stack":       ctx.Stack(),
		}),
		// A new environment value or new resolver code replaces the
		// invocation, which invokes the function again.
		Triggers: pulumi.StringMap{
			"parameter":   args.parameter.param.Name,
			"environment": args.parameter.param.Value,
			"source":      pulumi.String(args.resolver.sourceHash),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating resolver invocation: %w", err)
	}

	ri.replicaCount = ri.invocation.Result.ApplyT(func(result string) (int, error) {
		decision, err := replicas.ParseDecision([]byte(result))
		if err != nil {
			return 0, fmt.Errorf("replica resolver failed: %w", err)
		}
		ctx.Log.Info(fmt.Sprintf("Resolved %d ingress controller replicas", decision.ReplicaCount),
			&pulumi.LogArgs{Resource: ri.invocation})
		return decision.ReplicaCount, nil
	}).(pulumi.IntOutput)

	ctx.Export("replicaCount", ri.replicaCount)

	return ri, nil
}
