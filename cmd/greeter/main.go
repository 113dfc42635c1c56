package main

import (
	"github.com/aws/aws-lambda-go/lambda"

	"lambda-greeter/internal/greeter"
	"lambda-greeter/internal/logger"
)

func main() {
	log := logger.Stdout()
	defer log.Sync()

	lambda.Start(greeter.NewHandler(log).Handle)
}
