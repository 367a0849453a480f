package repository

import (
	"github.com/diillson/aws-dx-metrics-report/internal/domain/entity"
)

type ExportRepository interface {
	ExportToPNG(report entity.RenderedReport, filename, outputDir string) (string, error)
	ExportToHTML(report entity.RenderedReport, filename, outputDir string) (string, error)
	ExportToPDF(report entity.RenderedReport, filename, outputDir string) (string, error)
	ExportToJSON(report entity.RenderedReport, filename, outputDir string) (string, error)
}
