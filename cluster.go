package main

import (
	"encoding/json"
	"fmt"

	"github.com/pulumi/pulumi-eks/sdk/v2/go/eks"
	"github.com/pulumi/pulumi-kubernetes/sdk/v4/go/kubernetes"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type ClusterArgs struct {
	network *Network
	config  StackConfig
}

type Cluster struct {
	cluster    *eks.Cluster
	kubeconfig pulumi.StringOutput
	provider   *kubernetes.Provider
}

func NewCluster(ctx *pulumi.Context, args ClusterArgs) (*Cluster, error) {
	c := &Cluster{}
	var err error
	c.cluster, err = eks.NewCluster(ctx, "cluster", &eks.ClusterArgs{
		Version:          pulumi.String(args.config.KubernetesVersion),
		VpcId:            args.network.vpc.VpcId,
		PublicSubnetIds:  args.network.vpc.PublicSubnetIds,
		PrivateSubnetIds: args.network.vpc.PrivateSubnetIds,
		InstanceType:     pulumi.String(args.config.InstanceType),
		DesiredCapacity:  pulumi.Int(args.config.DesiredCapacity),
		MinSize:          pulumi.Int(args.config.MinSize),
		MaxSize:          pulumi.Int(args.config.MaxSize),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating cluster: %w", err)
	}

	c.kubeconfig = c.cluster.Kubeconfig.ApplyT(func(kc interface{}) (string, error) {
		b, err := json.Marshal(kc)
		return string(b), err
	}).(pulumi.StringOutput)

	c.provider, err = kubernetes.NewProvider(ctx, "cluster-provider", &kubernetes.ProviderArgs{
		Kubeconfig: c.kubeconfig,
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating kubernetes provider: %w", err)
	}

	ctx.Export("kubeconfig", pulumi.ToSecret(c.kubeconfig))

	return c, nil
}
