package main

import (
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// functions are the Lambda binaries under ./cmd and the path each is served at.
var functions = []struct {
	name string
	path string
}{
	{name: "greeter", path: "/go"},
	{name: "greeter-proxy", path: "/go-proxy"},
}

func deployFunctions(ctx *pulumi.Context, cfg StackConfig, api *Api) error {
	role, err := newLambdaExecutionRole(ctx)
	if err != nil {
		return err
	}
	for _, fn := range functions {
		_, err := NewLambdaHandler(ctx, LambdaHandlerArgs{
			name:     fn.name,
			routeKey: "GET " + cfg.RoutePrefix + fn.path,
			config:   cfg,
			role:     role,
			api:      api,
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func deployService(ctx *pulumi.Context, cfg StackConfig, api *Api) error {
	network, err := NewNetwork(ctx, cfg)
	if err != nil {
		return err
	}

	if err := api.attachVpcLink(ctx, network); err != nil {
		return err
	}

	build, err := NewEcrDockerBuild(ctx, cfg)
	if err != nil {
		return err
	}

	_, err = NewEcsService(ctx, EcsServiceArgs{
		image:    build.image,
		api:      api,
		network:  network,
		config:   cfg,
		routeKey: "GET " + cfg.ServiceRoute,
	})
	return err
}

func main() {
	pulumi.Run(func(ctx *pulumi.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}

		api, err := NewApi(ctx)
		if err != nil {
			return err
		}

		if err := deployFunctions(ctx, cfg, api); err != nil {
			return err
		}

		if !cfg.DeployService {
			ctx.Log.Info("greeter:deployService is false, skipping hello service", nil)
			return nil
		}
		return deployService(ctx, cfg, api)
	})
}
