package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

type StackConfig struct {
	// Environment is written to the parameter and drives the replica count.
	Environment   string
	ParameterName string

	KubernetesVersion string
	InstanceType      string
	DesiredCapacity   int
	MinSize           int
	MaxSize           int

	ChartVersion        string
	ChartNamespace      string
	ChartTimeoutMinutes int
}

func LoadStackConfig(ctx *pulumi.Context) StackConfig {
	cfg := config.New(ctx, "")

	sc := StackConfig{
		Environment:         "development",
		ParameterName:       "/platform/account/env",
		KubernetesVersion:   "1.30",
		InstanceType:        "t3.medium",
		DesiredCapacity:     2,
		MinSize:             1,
		MaxSize:             3,
		ChartNamespace:      "kube-system",
		ChartTimeoutMinutes: 10,
	}
	if v := cfg.Get("environment"); v != "" {
		sc.Environment = v
	}
	if v := cfg.Get("parameterName"); v != "" {
		sc.ParameterName = v
	}
	if v := cfg.Get("kubernetesVersion"); v != "" {
		sc.KubernetesVersion = v
	}
	if v := cfg.Get("instanceType"); v != "" {
		sc.InstanceType = v
	}
	if v := cfg.GetInt("desiredCapacity"); v != 0 {
		sc.DesiredCapacity = v
	}
	if v := cfg.GetInt("minSize"); v != 0 {
		sc.MinSize = v
	}
	if v := cfg.GetInt("maxSize"); v != 0 {
		sc.MaxSize = v
	}
	sc.ChartVersion = cfg.Get("chartVersion")
	if v := cfg.Get("chartNamespace"); v != "" {
		sc.ChartNamespace = v
	}
	if v := cfg.GetInt("chartTimeoutMinutes"); v != 0 {
		sc.ChartTimeoutMinutes = v
	}
	return sc
}
