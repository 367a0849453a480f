package lambda

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/diillson/aws-dx-metrics-report/internal/domain/entity"
	"github.com/diillson/aws-dx-metrics-report/internal/shared/types"
)

type stubRunner struct {
	result entity.InvocationResult
	calls  int
}

func (s *stubRunner) GenerateAndSend(context.Context) entity.InvocationResult {
	s.calls++
	return s.result
}

type recordingConsole struct {
	lines []string
}

func (c *recordingConsole) add(format string, a ...interface{}) {
	c.lines = append(c.lines, fmt.Sprintf(format, a...))
}

func (c *recordingConsole) Print(a ...interface{})                     { c.add("%s", fmt.Sprint(a...)) }
func (c *recordingConsole) Printf(format string, a ...interface{})     { c.add(format, a...) }
func (c *recordingConsole) Println(a ...interface{})                   { c.add("%s", fmt.Sprint(a...)) }
func (c *recordingConsole) LogInfo(format string, a ...interface{})    { c.add(format, a...) }
func (c *recordingConsole) LogWarning(format string, a ...interface{}) { c.add(format, a...) }
func (c *recordingConsole) LogError(format string, a ...interface{})   { c.add(format, a...) }
func (c *recordingConsole) LogSuccess(format string, a ...interface{}) { c.add(format, a...) }
func (c *recordingConsole) Status(string) types.StatusHandle           { return nil }
func (c *recordingConsole) CreateTable() types.TableInterface          { return nil }

func (c *recordingConsole) contains(substr string) bool {
	for _, line := range c.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

func TestHandleReturnsRunnerResult(t *testing.T) {
	runner := &stubRunner{result: entity.InvocationResult{StatusCode: 200, Body: "Report generated and sent successfully"}}
	console := &recordingConsole{}
	h := NewHandler(runner, console)

	result, err := h.Handle(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != runner.result {
		t.Fatalf("expected %+v, got %+v", runner.result, result)
	}
	if runner.calls != 1 {
		t.Fatalf("expected one run, got %d", runner.calls)
	}
	if !console.contains("Report result: status=200 body=Report generated and sent successfully") {
		t.Fatalf("expected result log line, got %v", console.lines)
	}
}

func TestHandleFailureIsNotAnError(t *testing.T) {
	runner := &stubRunner{result: entity.InvocationResult{StatusCode: 500, Body: "Error sending report via SNS"}}
	h := NewHandler(runner, &recordingConsole{})

	result, err := h.Handle(context.Background(), json.RawMessage(`{}`))
	if err != nil {
		t.Fatalf("failures must be reported in the result, got error %v", err)
	}
	if result.StatusCode != 500 {
		t.Fatalf("expected 500, got %d", result.StatusCode)
	}

	data, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"statusCode":500,"body":"Error sending report via SNS"}` {
		t.Fatalf("unexpected response JSON %s", data)
	}
}

func TestHandleLogsScheduledEventAndRequest(t *testing.T) {
	console := &recordingConsole{}
	h := NewHandler(&stubRunner{result: entity.InvocationResult{StatusCode: 200}}, console)

	ctx := lambdacontext.NewContext(context.Background(), &lambdacontext.LambdaContext{AwsRequestID: "req-42"})
	payload := json.RawMessage(`{
		"id": "evt-1",
		"detail-type": "Scheduled Event",
		"source": "aws.events",
		"time": "2026-10-19T12:00:00Z",
		"region": "us-east-1",
		"resources": ["arn:aws:events:us-east-1:123456789012:rule/dx-weekly"],
		"detail": {}
	}`)

	if _, err := h.Handle(ctx, payload); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !console.contains("Request req-42") {
		t.Fatalf("expected request id log, got %v", console.lines)
	}
	if !console.contains("Triggered by aws.events (Scheduled Event, event evt-1)") {
		t.Fatalf("expected trigger log, got %v", console.lines)
	}
}

func TestHandleIgnoresOpaquePayload(t *testing.T) {
	console := &recordingConsole{}
	runner := &stubRunner{result: entity.InvocationResult{StatusCode: 200}}
	h := NewHandler(runner, console)

	if _, err := h.Handle(context.Background(), json.RawMessage(`"manual"`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if console.contains("Triggered by") {
		t.Fatalf("non-event payload should not be logged as a trigger: %v", console.lines)
	}
	if runner.calls != 1 {
		t.Fatalf("expected the report to run")
	}
}
