package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi/config"
)

type StackConfig struct {
	// Architecture is the Lambda/Fargate CPU architecture, arm64 or x86_64.
	Architecture      string
	RoutePrefix       string
	DeployService     bool
	// ServiceRoute is where the hello service is exposed on the api.
	ServiceRoute      string
	LogRetentionDays  int
	AvailabilityZones int
}

func loadConfig(ctx *pulumi.Context) (StackConfig, error) {
	c := config.New(ctx, "greeter")
	cfg := StackConfig{
		Architecture:      "arm64",
		RoutePrefix:       "/lambda",
		DeployService:     true,
		ServiceRoute:      "/hello",
		LogRetentionDays:  7,
		AvailabilityZones: 2,
	}
	if v := c.Get("architecture"); v != "" {
		cfg.Architecture = v
	}
	if v := c.Get("routePrefix"); v != "" {
		cfg.RoutePrefix = "/" + strings.Trim(v, "/")
	}
	if v := c.Get("deployService"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("greeter:deployService: %w", err)
		}
		cfg.DeployService = b
	}
	if v := c.Get("serviceRoute"); v != "" {
		cfg.ServiceRoute = "/" + strings.Trim(v, "/")
	}
	for _, opt := range []struct {
		key string
		dst *int
	}{
		{"logRetentionDays", &cfg.LogRetentionDays},
		{"availabilityZones", &cfg.AvailabilityZones},
	} {
		v := c.Get(opt.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return cfg, fmt.Errorf("greeter:%s: want a positive integer, got %q", opt.key, v)
		}
		*opt.dst = n
	}
	switch cfg.Architecture {
	case "arm64", "x86_64":
	default:
		return cfg, fmt.Errorf("unsupported architecture %q", cfg.Architecture)
	}
	return cfg, nil
}

// goarch maps the AWS architecture name to GOARCH.
func (c StackConfig) goarch() string {
	if c.Architecture == "x86_64" {
		return "amd64"
	}
	return "arm64"
}
