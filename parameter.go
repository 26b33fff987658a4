package main

import (
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ssm"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// EnvParameter holds the account environment read by the replica resolver.
type EnvParameter struct {
	param *ssm.Parameter
}

func NewEnvParameter(ctx *pulumi.Context, cfg StackConfig) (*EnvParameter, error) {
	param, err := ssm.NewParameter(ctx, "account-env-param", &ssm.ParameterArgs{
		Name:        pulumi.String(cfg.ParameterName),
		Type:        pulumi.String("String"),
		Value:       pulumi.String(cfg.Environment),
		Description: pulumi.String("Deployment environment of this account"),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating parameter: %w", err)
	}

	ctx.Export("parameterName", param.Name)

	return &EnvParameter{param: param}, nil
}
