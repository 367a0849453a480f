package entity

import (
	"fmt"
	"strings"
	"time"
)

// ReportWindow é o intervalo [Start, End) coberto pelo relatório.
type ReportWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewReportWindow calcula a janela de 7 dias terminando em now (UTC).
func NewReportWindow(now time.Time) ReportWindow {
	end := now.UTC()
	return ReportWindow{
		Start: end.Add(-7 * 24 * time.Hour),
		End:   end,
	}
}

// Duration devolve End - Start.
func (w ReportWindow) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// RenderedReport contém o gráfico renderizado e o corpo da mensagem montado a partir dele.
type RenderedReport struct {
	Window      ReportWindow `json:"window"`
	Widget      MetricWidget `json:"widget"`
	Image       []byte       `json:"-"`
	Body        string       `json:"-"`
	GeneratedAt time.Time    `json:"generated_at"`
}

// InvocationResult é o resultado devolvido por cada execução do relatório.
type InvocationResult struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Succeeded informa se a execução terminou com status 200.
func (r InvocationResult) Succeeded() bool {
	return r.StatusCode == 200
}

// ResultLogPrefix marca a linha de log final de cada execução; o histórico
// de execuções é lido filtrando por ela.
const ResultLogPrefix = "Report result:"

// LogLine produz a linha de log final de uma execução.
func (r InvocationResult) LogLine() string {
	return fmt.Sprintf("%s status=%d body=%s", ResultLogPrefix, r.StatusCode, r.Body)
}

// ParseResultLine é o inverso de LogLine. Qualquer prefixo antes do marcador
// (timestamp do runtime, nível do log) é ignorado.
func ParseResultLine(line string) (InvocationResult, bool) {
	idx := strings.Index(line, ResultLogPrefix)
	if idx < 0 {
		return InvocationResult{}, false
	}
	rest := strings.TrimSpace(line[idx+len(ResultLogPrefix):])

	var result InvocationResult
	statusPart, body, _ := strings.Cut(rest, " body=")
	if _, err := fmt.Sscanf(statusPart, "status=%d", &result.StatusCode); err != nil {
		return InvocationResult{}, false
	}
	result.Body = strings.TrimSpace(body)
	return result, true
}
