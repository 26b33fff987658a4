package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/cfn"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"eks-replica-app/internal/paramstore"
	"eks-replica-app/internal/provision"
)

// modeEnv selects how the function is invoked: "invoke" (default) for direct
// invocation by the stack, "cloudformation" for custom resource requests.
const modeEnv = "RESOLVER_MODE"

func main() {
	logger := provision.NewLogger(os.Stdout, os.Getenv(provision.LogLevelEnv))
	slog.SetDefault(logger)

	cfg, err := config.LoadDefaultConfig(context.Background())
	if err != nil {
		logger.Error("Failed to load AWS config", slog.Any("error", err))
		os.Exit(1)
	}

	h, err := provision.New(provision.Config{
		Params: paramstore.NewSSM(ssm.NewFromConfig(cfg)),
		Logger: logger,
	})
	if err != nil {
		logger.Error("Failed to create handler", slog.Any("error", err))
		os.Exit(1)
	}

	switch mode := os.Getenv(modeEnv); mode {
	case "cloudformation":
		lambda.Start(cfn.LambdaWrap(h.HandleCustomResource))
	case "", "invoke":
		lambda.Start(h.Handle)
	default:
		logger.Error("Unknown resolver mode", slog.String("mode", mode))
		os.Exit(1)
	}
}
