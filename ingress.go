package main

import (
	"fmt"

	helmv3 "github.com/pulumi/pulumi-kubernetes/sdk/v4/go/kubernetes/helm/v3"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

const (
	ingressChart     = "ingress-nginx"
	ingressChartRepo = "https://kubernetes.github.io/ingress-nginx"
	ingressRelease   = "nginx-ingress"
)

type IngressControllerArgs struct {
	cluster      *Cluster
	replicaCount pulumi.IntOutput
	config       StackConfig
}

type IngressController struct {
	release *helmv3.Release
}

func NewIngressController(ctx *pulumi.Context, args IngressControllerArgs) (*IngressController, error) {
	ic := &IngressController{}

	releaseArgs := &helmv3.ReleaseArgs{
		Name:      pulumi.String(ingressRelease),
		Chart:     pulumi.String(ingressChart),
		Namespace: pulumi.String(args.config.ChartNamespace),
		RepositoryOpts: &helmv3.RepositoryOptsArgs{
			Repo: pulumi.String(ingressChartRepo),
		},
		Values: pulumi.Map{
			"controller": pulumi.Map{
				"replicaCount": args.replicaCount,
			},
		},
		Timeout: pulumi.IntPtr(args.config.ChartTimeoutMinutes * 60),
	}
	if args.config.ChartVersion != "" {
		releaseArgs.Version = pulumi.String(args.config.ChartVersion)
	}

	var err error
	ic.release, err = helmv3.NewRelease(ctx, "nginx-ingress", releaseArgs, pulumi.Provider(args.cluster.provider))
	if err != nil {
		return nil, fmt.Errorf("Error creating helm release: %w", err)
	}

	ctx.Export("ingressStatus", ic.release.Status)

	return ic, nil
}
