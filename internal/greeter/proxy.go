package greeter

import (
	"context"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"
)

// ProxyHandler is the typed variant: it reads the path from an API Gateway
// proxy request and answers in plain text.
type ProxyHandler struct {
	log *zap.Logger
}

func NewProxyHandler(log *zap.Logger) *ProxyHandler {
	return &ProxyHandler{log: log}
}

func (h *ProxyHandler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var fields []zap.Field
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		fields = append(fields, zap.String("request_id", lc.AwsRequestID))
	}
	h.log.Info("request: "+req.Path, fields...)

	if req.Path == "" {
		return events.APIGatewayProxyResponse{}, ErrMissingPath
	}
	return events.APIGatewayProxyResponse{
		StatusCode:      http.StatusOK,
		Headers:         map[string]string{"Content-Type": "text/plain"},
		Body:            "Hello World! From Go: '" + req.Path + "'",
		IsBase64Encoded: false,
	}, nil
}
