package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

func main() {
	pulumi.Run(run)
}

func run(ctx *pulumi.Context) error {
	cfg := LoadStackConfig(ctx)

	network, err := NewNetwork(ctx)
	if err != nil {
		return err
	}

	cluster, err := NewCluster(ctx, ClusterArgs{
		network: network,
		config:  cfg,
	})
	if err != nil {
		return err
	}

	parameter, err := NewEnvParameter(ctx, cfg)
	if err != nil {
		return err
	}

	resolver, err := NewReplicaResolver(ctx, ReplicaResolverArgs{
		parameter: parameter,
	})
	if err != nil {
		return err
	}

	invocation, err := NewReplicaInvocation(ctx, ReplicaInvocationArgs{
		resolver:  resolver,
		parameter: parameter,
	})
	if err != nil {
		return err
	}

	_, err = NewIngressController(ctx, IngressControllerArgs{
		cluster:      cluster,
		replicaCount: invocation.replicaCount,
		config:       cfg,
	})
	if err != nil {
		return err
	}

	return nil
}
