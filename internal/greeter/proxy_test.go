package greeter_test

import (
	"context"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"lambda-greeter/internal/greeter"
)

func TestProxyHandle(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	h := greeter.NewProxyHandler(zap.New(core))

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{Path: "/lambda/go-proxy"})
	require.NoError(t, err)

	assert.Equal(t, events.APIGatewayProxyResponse{
		StatusCode: 200,
		Headers:    map[string]string{"Content-Type": "text/plain"},
		Body:       "Hello World! From Go: '/lambda/go-proxy'",
	}, resp)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "request: /lambda/go-proxy", logs.All()[0].Message)
	assert.Empty(t, logs.All()[0].Context)
}

func TestProxyHandle_RequestID(t *testing.T) {
	t.Parallel()
	core, logs := observer.New(zapcore.DebugLevel)
	h := greeter.NewProxyHandler(zap.New(core))
	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-123"})

	_, err := h.Handle(ctx, events.APIGatewayProxyRequest{Path: "/"})
	require.NoError(t, err)

	require.Equal(t, 1, logs.FilterField(zap.String("request_id", "req-123")).Len())
}

func TestProxyHandle_MissingPath(t *testing.T) {
	t.Parallel()
	h := greeter.NewProxyHandler(zap.NewNop())

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{})
	assert.ErrorIs(t, err, greeter.ErrMissingPath)
	assert.Zero(t, resp.StatusCode)
}
