package main

import (
	"fmt"

	"github.com/pulumi/pulumi-awsx/sdk/v2/go/awsx/ec2"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type Network struct {
	vpc *ec2.Vpc
}

func NewNetwork(ctx *pulumi.Context) (*Network, error) {
	var err error
	network := &Network{}

	as := ec2.SubnetAllocationStrategyAuto
	network.vpc, err = ec2.NewVpc(ctx, "vpc", &ec2.VpcArgs{
		NatGateways:        &ec2.NatGatewayConfigurationArgs{Strategy: ec2.NatGatewayStrategySingle},
		SubnetStrategy:     &as,
		EnableDnsHostnames: pulumi.BoolPtr(true),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating vpc: %w", err)
	}

	return network, nil
}
