package main

import (
	"fmt"

	"github.com/pulumi/pulumi-aws/sdk/v6/go/aws/ecr"
	"github.com/pulumi/pulumi-docker/sdk/v4/go/docker"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

type EcrImage struct {
	image *docker.Image
}

// NewEcrDockerBuild builds app/ for the stack's architecture and pushes it
// to a fresh repository.
func NewEcrDockerBuild(ctx *pulumi.Context, cfg StackConfig) (*EcrImage, error) {
	ecrImage := &EcrImage{}
	repo, err := ecr.NewRepository(ctx, "hello-registry", &ecr.RepositoryArgs{
		ForceDelete: pulumi.BoolPtr(true),
	})
	if err != nil {
		return nil, fmt.Errorf("Error creating repo: %w", err)
	}
	authToken := ecr.GetAuthorizationTokenOutput(ctx, ecr.GetAuthorizationTokenOutputArgs{
		RegistryId: repo.RegistryId,
	})
	ecrImage.image, err = docker.NewImage(ctx, "hello-image", &docker.ImageArgs{
		Registry: docker.RegistryArgs{
			Server:   repo.RepositoryUrl,
			Username: authToken.UserName(),
			Password: pulumi.ToSecret(authToken.ApplyT(func(authToken ecr.GetAuthorizationTokenResult) (*string, error) {
				return &authToken.Password, nil
			})).(pulumi.StringPtrOutput),
		},
		Build: docker.DockerBuildArgs{
			Platform:   pulumi.String("linux/" + cfg.goarch()),
			Context:    pulumi.String("."),
			Dockerfile: pulumi.String("app/Dockerfile"),
			Args: pulumi.StringMap{
				"GOARCH": pulumi.String(cfg.goarch()),
			},
		},
		ImageName: repo.RepositoryUrl.ApplyT(func(url string) string {
			return fmt.Sprintf("%s:latest", url)
		}).(pulumi.StringOutput),
	})
	if err != nil {
		return nil, fmt.Errorf("Error building image: %w", err)
	}

	return ecrImage, nil
}
