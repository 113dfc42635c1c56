package main

import (
	"fmt"
	"path"
	"strings"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/iam"
	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/lambda"
	"github.com/pulumi/pulumi-command/sdk/go/command/local"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type LambdaHandler struct {
	function *lambda.Function
}

type LambdaHandlerArgs struct {
	// name is both the resource prefix and the directory under ./cmd.
	name     string
	routeKey string
	config   StackConfig
	role     *iam.Role
	api      *Api
}

func newLambdaExecutionRole(ctx *pulumi.Context) (*iam.Role, error) {
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
	executionRole, err := iam.NewRole(ctx, "lambda-execution-role", &iam.RoleArgs{
		AssumeRolePolicy: pulumi.String(assumeRolePolicy.Json),
		ManagedPolicyArns: pulumi.ToStringArray([]string{
			string(iam.ManagedPolicyAWSLambdaBasicExecutionRole),
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating execution role: %w", err)
	}
	return executionRole, nil
}

func NewLambdaHandler(ctx *pulumi.Context, args LambdaHandlerArgs) (*LambdaHandler, error) {
	lh := &LambdaHandler{}
	srcDir := path.Join("cmd", args.name)
	assetDir := path.Join("asset", args.name)
	bootstrap := path.Join(assetDir, "bootstrap")

	_, err := local.Run(ctx, &local.RunArgs{
		Dir: pulumi.StringRef("."),
		Command: strings.Join([]string{
			fmt.Sprintf("rm -rf %s && mkdir -p %s", assetDir, assetDir),
			fmt.Sprintf("CGO_ENABLED=0 GOOS=linux GOARCH=%s go build -mod=readonly -tags lambda.norpc -o ./%s ./%s",
				args.config.goarch(), bootstrap, srcDir),
			fmt.Sprintf("chmod +x ./%s", bootstrap),
		}, " && "),
		AssetPaths: []string{bootstrap},
	})
	if err != nil {
		return nil, fmt.Errorf("Error running local command: %w", err)
	}

	srcHash, err := sourceHash(srcDir, "internal")
	if err != nil {
		return nil, fmt.Errorf("Error hashing %s: %w", srcDir, err)
	}

	code := pulumi.NewAssetArchive(map[string]interface{}{"bootstrap": pulumi.NewFileAsset("./" + bootstrap)})
	lh.function, err = lambda.NewFunction(ctx, args.name, &lambda.FunctionArgs{
		Architectures: pulumi.ToStringArray([]string{args.config.Architecture}),
		Role:          args.role.Arn,
		Code:          code,
		Handler:       pulumi.String("bootstrap"),
		Runtime:       pulumi.String("provided.al2023"),
		Tags: pulumi.StringMap{
			"source-hash": pulumi.String(srcHash),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating lambda function: %w", err)
	}

	if err := args.api.registerLambda(ctx, args.name, lh.function, args.routeKey); err != nil {
		return nil, err
	}

	return lh, nil
}
