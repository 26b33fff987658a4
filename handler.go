package main

import (
	"fmt"
	"strings"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/iam"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/lambda"
	"github.com/pulumi/pulumi-command/sdk/go/command/local"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

const resolverSourceDir = "./cmd/resolver"

type ReplicaResolver struct {
	function *lambda.Function
	// sourceHash changes whenever the resolver code changes.
	sourceHash string
}

type ReplicaResolverArgs struct {
	parameter *EnvParameter
}

func NewReplicaResolver(ctx *pulumi.Context, args ReplicaResolverArgs) (*ReplicaResolver, error) {
	rr := &ReplicaResolver{}

	_, err := local.Run(ctx, &local.RunArgs{
		Dir: pulumi.StringRef("."),
		Command: strings.Join([]string{
			"rm -rf asset && mkdir asset",
			"GOOS=linux GOARCH=arm64 CGO_ENABLED=0 go build -mod=readonly -tags lambda.norpc -o ./asset/bootstrap " + resolverSourceDir,
			"chmod +x ./asset/bootstrap",
		}, " && "),
		AssetPaths: []string{"asset/bootstrap"},
	})
	if err != nil {
		return nil, fmt.Errorf("Error running local command: %w", err)
	}

	rr.sourceHash, err = hashDirectories(resolverSourceDir, "./internal")
	if err != nil {
		return nil, fmt.Errorf("Error hashing resolver source: %w", err)
	}

	assumeRolePolicy, err := iam.GetPolicyDocument(ctx, &iam.GetPolicyDocumentArgs{
		Statements: []iam.GetPolicyDocumentStatement{
			{
				Actions: []string{"sts:AssumeRole"},
				Principals: []iam.GetPolicyDocumentStatementPrincipal{
					{Type: "Service", Identifiers: []string{"lambda.amazonaws.com"}},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating AssumeRolePolicy: %w", err)
	}
	executionRole, err := iam.NewRole(ctx, "resolver-execution-role", &iam.RoleArgs{
		AssumeRolePolicy: pulumi.String(assumeRolePolicy.Json),
		ManagedPolicyArns: pulumi.ToStringArray([]string{
			string(iam.ManagedPolicyAWSLambdaBasicExecutionRole),
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating execution role: %w", err)
	}

	// Read access to the environment parameter only.
	policy, err := iam.NewRolePolicy(ctx, "resolver-ssm-policy", &iam.RolePolicyArgs{
		Role: executionRole.ID(),
		Policy: pulumi.JSONMarshal(map[string]interface{}{
			"Version": "2012-10-17",
			"Statement": []interface{}{
				map[string]interface{}{
					"Effect":   "Allow",
					"Action":   []string{"ssm:GetParameter"},
					"Resource": args.parameter.param.Arn,
				},
			},
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating ssm policy: %w", err)
	}

	code := pulumi.NewAssetArchive(map[string]interface{}{"bootstrap": pulumi.NewFileAsset("./asset/bootstrap")})
	rr.function, err = lambda.NewFunction(ctx, "replica-resolver", &lambda.FunctionArgs{
		Architectures: pulumi.ToStringArray([]string{"arm64"}),
		Role:          executionRole.Arn,
		Code:          code,
		Handler:       pulumi.String("bootstrap"),
		Runtime:       pulumi.String("provided.al2023"),
		Timeout:       pulumi.IntPtr(30),
		Environment: &lambda.FunctionEnvironmentArgs{
			Variables: pulumi.StringMap{
				"SSM_PARAM_NAME": args.parameter.param.Name,
				"RESOLVER_MODE":  pulumi.String("invoke"),
			},
		},
	}, pulumi.DependsOn([]pulumi.Resource{policy}))
	if err != nil {
		return nil, fmt.Errorf("Error creating lambda function: %w", err)
	}

	ctx.Export("resolverFunction", rr.function.Name)

	return rr, nil
}
