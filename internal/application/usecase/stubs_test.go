package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/diillson/aws-dx-metrics-report/internal/domain/entity"
	"github.com/diillson/aws-dx-metrics-report/internal/shared/types"
)

type stubMetrics struct {
	image      []byte
	err        error
	calls      int
	widgetJSON string
}

func (s *stubMetrics) GetMetricWidgetImage(_ context.Context, widgetJSON string) ([]byte, error) {
	s.calls++
	s.widgetJSON = widgetJSON
	return s.image, s.err
}

type stubNotifier struct {
	err   error
	calls int
	msg   entity.NotificationMessage
}

func (s *stubNotifier) Publish(_ context.Context, msg entity.NotificationMessage) (string, error) {
	s.calls++
	s.msg = msg
	if s.err != nil {
		return "", s.err
	}
	return "msg-1", nil
}

type stubArchive struct {
	err    error
	calls  int
	bucket string
	image  []byte
}

func (s *stubArchive) PutReportImage(_ context.Context, bucket string, _ time.Time, image []byte) (entity.ArchivedImage, error) {
	s.calls++
	s.bucket = bucket
	s.image = image
	if s.err != nil {
		return entity.ArchivedImage{}, s.err
	}
	return entity.ArchivedImage{Bucket: bucket, Key: "reports/x.png"}, nil
}

// stubAWS cobre as operações de CLI do AWSRepository.
type stubAWS struct {
	stubMetrics
	stubNotifier
	stubArchive

	accountID   string
	vifs        []entity.VirtualInterfaceInfo
	invokeRes   entity.InvocationResult
	invokeErr   error
	invokedName string
	records     []entity.InvocationRecord
	since       time.Time
}

func (s *stubAWS) GetAccountID(context.Context) (string, error) { return s.accountID, nil }

func (s *stubAWS) ListVirtualInterfaces(context.Context) ([]entity.VirtualInterfaceInfo, error) {
	return s.vifs, nil
}

func (s *stubAWS) InvokeReportFunction(_ context.Context, name string) (entity.InvocationResult, error) {
	s.invokedName = name
	return s.invokeRes, s.invokeErr
}

func (s *stubAWS) GetRecentInvocations(_ context.Context, _ string, since time.Time) ([]entity.InvocationRecord, error) {
	s.since = since
	return s.records, nil
}

type stubExport struct {
	formats []string
}

func (s *stubExport) record(format string) (string, error) {
	s.formats = append(s.formats, format)
	return "/tmp/report." + format, nil
}

func (s *stubExport) ExportToPNG(entity.RenderedReport, string, string) (string, error) {
	return s.record("png")
}

func (s *stubExport) ExportToHTML(entity.RenderedReport, string, string) (string, error) {
	return s.record("html")
}

func (s *stubExport) ExportToPDF(entity.RenderedReport, string, string) (string, error) {
	return s.record("pdf")
}

func (s *stubExport) ExportToJSON(entity.RenderedReport, string, string) (string, error) {
	return s.record("json")
}

type recordingConsole struct {
	mu     sync.Mutex
	lines  []string
	tables []*recordingTable
}

func (c *recordingConsole) add(level, format string, a ...interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, level+" "+fmt.Sprintf(format, a...))
}

func (c *recordingConsole) Print(a ...interface{})                 { c.add("PRINT", "%s", fmt.Sprint(a...)) }
func (c *recordingConsole) Printf(format string, a ...interface{}) { c.add("PRINT", format, a...) }
func (c *recordingConsole) Println(a ...interface{})               { c.add("PRINT", "%s", fmt.Sprint(a...)) }
func (c *recordingConsole) LogInfo(format string, a ...interface{}) {
	c.add("INFO", format, a...)
}
func (c *recordingConsole) LogWarning(format string, a ...interface{}) {
	c.add("WARNING", format, a...)
}
func (c *recordingConsole) LogError(format string, a ...interface{}) {
	c.add("ERROR", format, a...)
}
func (c *recordingConsole) LogSuccess(format string, a ...interface{}) {
	c.add("SUCCESS", format, a...)
}

func (c *recordingConsole) Status(string) types.StatusHandle { return nopStatus{} }

func (c *recordingConsole) CreateTable() types.TableInterface {
	t := &recordingTable{}
	c.tables = append(c.tables, t)
	return t
}

func (c *recordingConsole) contains(level, substr string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, line := range c.lines {
		if strings.HasPrefix(line, level+" ") && strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

type nopStatus struct{}

func (nopStatus) Update(string) {}
func (nopStatus) Stop()         {}

type recordingTable struct {
	columns []string
	rows    [][]string
}

func (t *recordingTable) AddColumn(name string, _ ...interface{}) {
	t.columns = append(t.columns, name)
}

func (t *recordingTable) AddRow(cells ...interface{}) {
	row := make([]string, len(cells))
	for i, cell := range cells {
		row[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, row)
}

func (t *recordingTable) Render() string { return strings.Join(t.columns, "|") }
