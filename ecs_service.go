package main

import (
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/cloudwatch"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ec2"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ecs"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/iam"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/servicediscovery"
	"github.com/pulumi/pulumi-docker/sdk/v4/go/docker"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// servicePort is the port the hello service listens on inside the task.
const servicePort = 3000

type EcsServiceArgs struct {
	image    *docker.Image
	network  *Network
	api      *Api
	config   StackConfig
	routeKey string
}

type EcsService struct {
	cloudmapService *servicediscovery.Service
	port            int
	sg              *ec2.SecurityGroup
}

func NewEcsService(ctx *pulumi.Context, args EcsServiceArgs) (*EcsService, error) {
	ecsService := &EcsService{
		port: servicePort,
	}
	region, err := aws.GetRegion(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("Error getting region: %w", err)
	}
	logGroup, err := cloudwatch.NewLogGroup(ctx, "hello-log-group", &cloudwatch.LogGroupArgs{
		RetentionInDays: pulumi.IntPtr(args.config.LogRetentionDays),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating log group: %w", err)
	}
	containerDef := pulumi.JSONMarshal([]interface{}{
		map[string]interface{}{
			"name":  "hello",
			"image": args.image.RepoDigest,
			"portMappings": []map[string]interface{}{
				{
					"containerPort": servicePort,
				},
			},
			"environment": []map[string]interface{}{
				{"name": "SERVER_PORT", "value": fmt.Sprint(servicePort)},
				{"name": "LOG_LEVEL", "value": "info"},
			},
			"logConfiguration": map[string]interface{}{
				"logDriver": "awslogs",
				"options": map[string]interface{}{
					"awslogs-group":         logGroup.Name,
					"awslogs-region":        region.Name,
					"awslogs-stream-prefix": "hello",
				},
			},
		},
	})

	execAssumeRolePolicy, err := iam.GetPolicyDocument(ctx, &iam.GetPolicyDocumentArgs{
		Statements: []iam.GetPolicyDocumentStatement{
			{
				Actions: []string{"sts:AssumeRole"},
				Principals: []iam.GetPolicyDocumentStatementPrincipal{
					{Type: "Service", Identifiers: []string{"ecs-tasks.amazonaws.com"}},
				},
			},
		},
	})

	if err != nil {
		return nil, fmt.Errorf("Error creating execAssumeRolePolicy: %w", err)
	}
	executionRole, err := iam.NewRole(ctx, "hello-execution-role", &iam.RoleArgs{
		AssumeRolePolicy:  pulumi.String(execAssumeRolePolicy.Json),
		ManagedPolicyArns: pulumi.ToStringArray([]string{string(iam.ManagedPolicyAmazonECSTaskExecutionRolePolicy)}),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating execution role: %w", err)
	}
	taskAssumeRolePolicy, err := iam.GetPolicyDocument(ctx, &iam.GetPolicyDocumentArgs{
		Statements: []iam.GetPolicyDocumentStatement{
			{
				Actions: []string{"sts:AssumeRole"},
				Principals: []iam.GetPolicyDocumentStatementPrincipal{
					{Type: "Service", Identifiers: []string{"ecs-tasks.amazonaws.com"}},
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating taskAssumeRolePolicy: %w", err)
	}
	taskRole, err := iam.NewRole(ctx, "hello-task-role", &iam.RoleArgs{
		AssumeRolePolicy: pulumi.String(taskAssumeRolePolicy.Json),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating task role: %w", err)
	}
	taskdef, err := ecs.NewTaskDefinition(ctx, "hello-taskdef", &ecs.TaskDefinitionArgs{
		ContainerDefinitions:    containerDef,
		Family:                  pulumi.String("hello"),
		Cpu:                     pulumi.String("256"),
		ExecutionRoleArn:        executionRole.Arn,
		Memory:                  pulumi.String("512"),
		TaskRoleArn:             taskRole.Arn,
		RequiresCompatibilities: pulumi.ToStringArray([]string{"FARGATE"}),
		NetworkMode:             pulumi.String("awsvpc"),
		RuntimePlatform: ecs.TaskDefinitionRuntimePlatformArgs{
			CpuArchitecture:       pulumi.String(cpuArchitecture(args.config)),
			OperatingSystemFamily: pulumi.String("LINUX"),
		},
	}, pulumi.DependsOn([]pulumi.Resource{args.image}))
	if err != nil {
		return nil, fmt.Errorf("Error creating taskdef: %w", err)
	}
	sg, err := ec2.NewSecurityGroup(ctx, "hello-sg", &ec2.SecurityGroupArgs{
		Egress:              egressAll(),
		VpcId:               args.network.vpc.VpcId,
		Ingress:             ingress(servicePort, args.api.sg),
		RevokeRulesOnDelete: pulumi.BoolPtr(true),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating security group: %w", err)
	}
	ecsService.sg = sg

	sd, err := servicediscovery.NewService(ctx, "hello-cloudmap-service", &servicediscovery.ServiceArgs{
		NamespaceId: args.network.namespace.ID(),
		DnsConfig: &servicediscovery.ServiceDnsConfigArgs{
			NamespaceId:   args.network.namespace.ID(),
			RoutingPolicy: pulumi.String("MULTIVALUE"),
			DnsRecords: servicediscovery.ServiceDnsConfigDnsRecordArray{
				servicediscovery.ServiceDnsConfigDnsRecordArgs{
					Ttl:  pulumi.Int(300),
					Type: pulumi.String("SRV"),
				},
			},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating servicediscovery service: %w", err)
	}
	ecsService.cloudmapService = sd
	if err := args.api.registerCloudmapService(ctx, ecsService.cloudmapService, args.routeKey); err != nil {
		return nil, err
	}

	_, err = ecs.NewService(ctx, "hello-service", &ecs.ServiceArgs{
		Cluster:                  args.network.cluster.Arn,
		DesiredCount:             pulumi.IntPtr(1),
		DeploymentMaximumPercent: pulumi.IntPtr(200),
		ServiceRegistries: &ecs.ServiceServiceRegistriesArgs{
			ContainerName: pulumi.String("hello"),
			ContainerPort: pulumi.IntPtr(servicePort),
			RegistryArn:   sd.Arn,
		},
		DeploymentMinimumHealthyPercent: pulumi.IntPtr(100),
		DeploymentCircuitBreaker: ecs.ServiceDeploymentCircuitBreakerArgs{
			Enable:   pulumi.Bool(true),
			Rollback: pulumi.Bool(true),
		},
		LaunchType:         pulumi.String("FARGATE"),
		WaitForSteadyState: pulumi.BoolPtr(true),
		NetworkConfiguration: ecs.ServiceNetworkConfigurationArgs{
			AssignPublicIp: pulumi.BoolPtr(false),
			SecurityGroups: pulumi.StringArray{ecsService.sg.ID()},
			Subnets:        args.network.vpc.PrivateSubnetIds,
		},
		TaskDefinition: taskdef.Arn,
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating ecs service: %w", err)
	}

	return ecsService, nil
}

func cpuArchitecture(cfg StackConfig) string {
	if cfg.Architecture == "x86_64" {
		return "X86_64"
	}
	return "ARM64"
}
