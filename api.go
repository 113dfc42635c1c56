package main

import (
	"fmt"

	apigwv2 "github.com/pulumi/pulumi-aws/sdk/v6/go/aws/apigatewayv2"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ec2"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/lambda"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/servicediscovery"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type Api struct {
	api          *apigwv2.Api
	link         *apigwv2.VpcLink
	defaultStage *apigwv2.Stage
	sg           *ec2.SecurityGroup
}

func NewApi(ctx *pulumi.Context) (*Api, error) {
	api := &Api{}
	var err error
	api.api, err = apigwv2.NewApi(ctx, "greeter-api", &apigwv2.ApiArgs{
		ProtocolType: pulumi.String("HTTP"),
		Description:  pulumi.String("Greeter functions and hello service"),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating api: %w", err)
	}

	api.defaultStage, err = apigwv2.NewStage(ctx, "default-stage", &apigwv2.StageArgs{
		ApiId:      api.api.ID(),
		Name:       pulumi.String("$default"),
		AutoDeploy: pulumi.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating stage: %w", err)
	}

	ctx.Export("url", api.defaultStage.InvokeUrl)

	return api, nil
}

// attachVpcLink lets the api reach private services in the network.
func (a *Api) attachVpcLink(ctx *pulumi.Context, network *Network) error {
	sg, err := ec2.NewSecurityGroup(ctx, "vpc-link-sg", &ec2.SecurityGroupArgs{
		VpcId:               network.vpc.VpcId,
		Egress:              egressAll(),
		RevokeRulesOnDelete: pulumi.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("Error creating sg: %w", err)
	}
	a.sg = sg
	a.link, err = apigwv2.NewVpcLink(ctx, "vpc-link", &apigwv2.VpcLinkArgs{
		SecurityGroupIds: pulumi.StringArray{sg.ID()},
		SubnetIds:        network.vpc.PrivateSubnetIds,
	})
	if err != nil {
		return fmt.Errorf("Error creating vpc link: %w", err)
	}
	return nil
}

func (a *Api) registerCloudmapService(ctx *pulumi.Context, service *servicediscovery.Service, routeKey string) error {
	if a.link == nil {
		return fmt.Errorf("no vpc link attached for %s", routeKey)
	}
	integration, err := apigwv2.NewIntegration(ctx, "service-integration", &apigwv2.IntegrationArgs{
		ApiId:             a.api.ID(),
		ConnectionId:      a.link.ID(),
		ConnectionType:    pulumi.String("VPC_LINK"),
		IntegrationMethod: pulumi.String("ANY"),
		IntegrationType:   pulumi.String("HTTP_PROXY"),
		IntegrationUri:    service.Arn,
		RequestParameters: pulumi.StringMap{
			"overwrite:path": pulumi.String("/"),
		},
	})
	if err != nil {
		return fmt.Errorf("Error creating integration: %w", err)
	}

	_, err = apigwv2.NewRoute(ctx, "service-route", &apigwv2.RouteArgs{
		ApiId:    a.api.ID(),
		RouteKey: pulumi.String(routeKey),
		Target:   pulumi.Sprintf("integrations/%s", integration.ID()),
	})
	if err != nil {
		return fmt.Errorf("Error creating route: %w", err)
	}

	return nil
}

// registerLambda routes routeKey to fn. Payload format 1.0 keeps the
// REST-style event shape, which carries the request path as "path".
func (a *Api) registerLambda(ctx *pulumi.Context, name string, fn *lambda.Function, routeKey string) error {
	integration, err := apigwv2.NewIntegration(ctx, name+"-integration", &apigwv2.IntegrationArgs{
		ApiId:                a.api.ID(),
		IntegrationMethod:    pulumi.String("POST"),
		IntegrationType:      pulumi.String("AWS_PROXY"),
		IntegrationUri:       fn.InvokeArn,
		PayloadFormatVersion: pulumi.String("1.0"),
	})
	if err != nil {
		return fmt.Errorf("Error creating integration: %w", err)
	}

	_, err = apigwv2.NewRoute(ctx, name+"-route", &apigwv2.RouteArgs{
		ApiId:    a.api.ID(),
		RouteKey: pulumi.String(routeKey),
		Target:   pulumi.Sprintf("integrations/%s", integration.ID()),
	})
	if err != nil {
		return fmt.Errorf("Error creating route: %w", err)
	}

	_, err = lambda.NewPermission(ctx, name+"-apigw-permission", &lambda.PermissionArgs{
		Action:    pulumi.String("lambda:InvokeFunction"),
		SourceArn: pulumi.Sprintf("%s/*/*", a.api.ExecutionArn),
		Function:  fn.Name,
		Principal: pulumi.String("apigateway.amazonaws.com"),
	})
	if err != nil {
		return fmt.Errorf("Error creating permission: %w", err)
	}

	return nil
}
