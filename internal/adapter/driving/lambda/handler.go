package lambda

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/diillson/aws-dx-metrics-report/internal/domain/entity"
	"github.com/diillson/aws-dx-metrics-report/internal/shared/types"
)

// ReportRunner executa uma geração completa do relatório.
type ReportRunner interface {
	GenerateAndSend(ctx context.Context) entity.InvocationResult
}

// Handler é o ponto de entrada do Lambda.
type Handler struct {
	runner  ReportRunner
	console types.ConsoleInterface
}

// NewHandler cria um novo Handler.
func NewHandler(runner ReportRunner, console types.ConsoleInterface) *Handler {
	return &Handler{runner: runner, console: console}
}

// Handle processa uma invocação. O payload é opaco: quando é um evento agendado
// do EventBridge, seus identificadores vão para o log. O erro devolvido é sempre
// nil; falhas são reportadas no statusCode do resultado.
func (h *Handler) Handle(ctx context.Context, payload json.RawMessage) (entity.InvocationResult, error) {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		h.console.LogInfo("Request %s (function %s)", lc.AwsRequestID, lambdacontext.FunctionName)
	}
	h.logTrigger(payload)

	result := h.runner.GenerateAndSend(ctx)
	h.console.Println(result.LogLine())
	return result, nil
}

func (h *Handler) logTrigger(payload json.RawMessage) {
	if len(payload) == 0 {
		return
	}
	var event events.CloudWatchEvent
	if err := json.Unmarshal(payload, &event); err != nil || event.Source == "" {
		return
	}
	h.console.LogInfo("Triggered by %s (%s, event %s)", event.Source, event.DetailType, event.ID)
}
