package repository

import (
	"context"
	"time"

	"github.com/diillson/aws-dx-metrics-report/internal/domain/entity"
)

// MetricsRepository renderiza gráficos de métricas no CloudWatch.
type MetricsRepository interface {
	GetMetricWidgetImage(ctx context.Context, widgetJSON string) ([]byte, error)
}

// NotificationRepository publica mensagens em um tópico SNS.
type NotificationRepository interface {
	Publish(ctx context.Context, msg entity.NotificationMessage) (string, error)
}

// ArchiveRepository guarda gráficos renderizados.
type ArchiveRepository interface {
	PutReportImage(ctx context.Context, bucket string, generatedAt time.Time, image []byte) (entity.ArchivedImage, error)
}

// AWSRepository defines the interface for AWS API interactions.
type AWSRepository interface {
	MetricsRepository
	NotificationRepository
	ArchiveRepository

	// Identity
	GetAccountID(ctx context.Context) (string, error)

	// Direct Connect
	ListVirtualInterfaces(ctx context.Context) ([]entity.VirtualInterfaceInfo, error)

	// Deployed function
	InvokeReportFunction(ctx context.Context, functionName string) (entity.InvocationResult, error)
	GetRecentInvocations(ctx context.Context, functionName string, since time.Time) ([]entity.InvocationRecord, error)
}
