package usecase

import (
	"time"

	"github.com/diillson/aws-dx-metrics-report/internal/domain/entity"
)

// Identificadores fixos do relatório. Não são lidos de configuração.
const (
	ReportTopicARN = "arn:aws:sns:us-east-1:XXXXXXXXXXXX:DX_Alarms"
	ReportSubject  = "DX Metrics Report"
	ReportHeading  = "DX Metrics Report:"

	ContentTypeAttribute = "ContentType"
	ContentTypeHTML      = "text/html"

	SuccessBody        = "Report generated and sent successfully"
	PublishFailureBody = "Error sending report via SNS"

	widgetNamespace = "DX"
	widgetTitle     = "Virtual Interface Metrics"
	widgetWidth     = 800
	widgetHeight    = 600
	widgetPeriod    = 300
	widgetStat      = "Average"
	widgetAxisLabel = "Packets/Bytes"
)

// virtualInterfacePair é um par connection/virtual interface monitorado.
type virtualInterfacePair struct {
	connectionID       string
	virtualInterfaceID string
}

var monitoredInterfaces = []virtualInterfacePair{
	{connectionID: "dxcon-XXXXXX", virtualInterfaceID: "dxvif-XXXXXX"},
	{connectionID: "dxcon-YYYYYY", virtualInterfaceID: "dxvif-YYYYYY"},
}

var monitoredMetrics = []string{
	"VirtualInterfacePpsIngress",
	"VirtualInterfacePpsEgress",
	"VirtualInterfaceBpsIngress",
	"VirtualInterfaceBpsEgress",
}

// BuildMetricWidget monta o widget do relatório para a janela informada.
func BuildMetricWidget(window entity.ReportWindow) entity.MetricWidget {
	rows := make(entity.MetricRows, 0, len(monitoredInterfaces)*len(monitoredMetrics))
	for _, pair := range monitoredInterfaces {
		for _, metric := range monitoredMetrics {
			rows = append(rows, entity.MetricSelector{
				Namespace:          widgetNamespace,
				MetricName:         metric,
				ConnectionID:       pair.connectionID,
				VirtualInterfaceID: pair.virtualInterfaceID,
			})
		}
	}

	return entity.MetricWidget{
		Width:   widgetWidth,
		Height:  widgetHeight,
		Start:   window.Start.Format(time.RFC3339),
		End:     window.End.Format(time.RFC3339),
		Metrics: rows,
		Period:  widgetPeriod,
		Stat:    widgetStat,
		Title:   widgetTitle,
		YAxis: entity.YAxis{
			Left: entity.AxisOptions{Label: widgetAxisLabel, ShowUnits: false},
		},
	}
}
