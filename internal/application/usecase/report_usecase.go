package usecase

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/diillson/aws-dx-metrics-report/internal/domain/entity"
	"github.com/diillson/aws-dx-metrics-report/internal/domain/repository"
	"github.com/diillson/aws-dx-metrics-report/internal/shared/types"
)

// ReportUseCase gera o gráfico do Direct Connect e o envia por SNS.
type ReportUseCase struct {
	metrics       repository.MetricsRepository
	notifier      repository.NotificationRepository
	archive       repository.ArchiveRepository
	console       types.ConsoleInterface
	archiveBucket string
	now           func() time.Time
}

// NewReportUseCase creates a new report use case. The archive step only runs
// when archiveBucket is not empty.
func NewReportUseCase(
	metrics repository.MetricsRepository,
	notifier repository.NotificationRepository,
	archive repository.ArchiveRepository,
	console types.ConsoleInterface,
	archiveBucket string,
) *ReportUseCase {
	return &ReportUseCase{
		metrics:       metrics,
		notifier:      notifier,
		archive:       archive,
		console:       console,
		archiveBucket: archiveBucket,
		now:           time.Now,
	}
}

// RenderReport calcula a janela, monta o widget, busca a imagem e monta o corpo da mensagem.
// Qualquer falha do CloudWatch é devolvida como *types.RenderError.
func (uc *ReportUseCase) RenderReport(ctx context.Context) (entity.RenderedReport, error) {
	window := entity.NewReportWindow(uc.now())
	widget := BuildMetricWidget(window)

	widgetJSON, err := json.Marshal(widget)
	if err != nil {
		return entity.RenderedReport{}, &types.RenderError{Err: fmt.Errorf("encoding metric widget: %w", err)}
	}

	image, err := uc.metrics.GetMetricWidgetImage(ctx, string(widgetJSON))
	if err != nil {
		return entity.RenderedReport{}, &types.RenderError{Err: err}
	}

	return entity.RenderedReport{
		Window:      window,
		Widget:      widget,
		Image:       image,
		Body:        BuildMessageBody(image),
		GeneratedAt: window.End,
	}, nil
}

// GenerateAndSend executa o relatório completo: renderiza, publica e devolve o status.
// Não há retentativas; qualquer falha vira um resultado 500.
func (uc *ReportUseCase) GenerateAndSend(ctx context.Context) entity.InvocationResult {
	uc.console.LogInfo("Starting DX metrics report")

	report, err := uc.RenderReport(ctx)
	if err != nil {
		var renderErr *types.RenderError
		detail := err
		if errors.As(err, &renderErr) {
			detail = renderErr.Err
		}
		uc.console.LogError("Error fetching graph for %s: %v", widgetTitle, detail)
		return entity.InvocationResult{
			StatusCode: http.StatusInternalServerError,
			Body:       fmt.Sprintf("Error fetching graph: %v", detail),
		}
	}
	uc.console.LogInfo("Successfully fetched combined graph for %s (%d bytes)", widgetTitle, len(report.Image))

	messageID, err := uc.notifier.Publish(ctx, BuildNotification(report.Body))
	if err != nil {
		pubErr := &types.PublishError{Err: err}
		uc.console.LogError("%v", pubErr)
		return entity.InvocationResult{
			StatusCode: http.StatusInternalServerError,
			Body:       PublishFailureBody,
		}
	}
	uc.console.LogSuccess("Successfully sent report via SNS (message %s)", messageID)

	uc.archiveImage(ctx, report)

	return entity.InvocationResult{
		StatusCode: http.StatusOK,
		Body:       SuccessBody,
	}
}

// archiveImage guarda a imagem no S3. Falhas aqui não alteram o resultado.
func (uc *ReportUseCase) archiveImage(ctx context.Context, report entity.RenderedReport) {
	if uc.archiveBucket == "" || uc.archive == nil {
		return
	}
	archived, err := uc.archive.PutReportImage(ctx, uc.archiveBucket, report.GeneratedAt, report.Image)
	if err != nil {
		uc.console.LogWarning("Could not archive report image to s3://%s: %v", uc.archiveBucket, err)
		return
	}
	uc.console.LogInfo("Archived report image to s3://%s/%s", archived.Bucket, archived.Key)
}

// BuildMessageBody embute a imagem codificada em base64 no corpo da mensagem.
func BuildMessageBody(image []byte) string {
	encoded := base64.StdEncoding.EncodeToString(image)
	return fmt.Sprintf("%s\n\n![Graph](data:image/png;base64,%s)\n", ReportHeading, encoded)
}

// BuildNotification monta a mensagem SNS do relatório.
func BuildNotification(body string) entity.NotificationMessage {
	return entity.NotificationMessage{
		TopicARN: ReportTopicARN,
		Subject:  ReportSubject,
		Body:     body,
		Attributes: map[string]entity.MessageAttribute{
			ContentTypeAttribute: {DataType: "String", StringValue: ContentTypeHTML},
		},
	}
}
