package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"image"
	_ "image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/diillson/aws-dx-metrics-report/internal/domain/entity"
	"github.com/diillson/aws-dx-metrics-report/internal/domain/repository"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/jung-kurt/gofpdf"
)

const windowLayout = "2006-01-02 15:04 MST"

// ExportRepositoryImpl implementa o ExportRepository.
type ExportRepositoryImpl struct{}

// NewExportRepository cria uma nova implementação do ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{}
}

// ExportToPNG grava o gráfico como recebido do CloudWatch.
func (r *ExportRepositoryImpl) ExportToPNG(report entity.RenderedReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "png")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputFilename, report.Image, 0644); err != nil {
		return "", fmt.Errorf("error writing PNG file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// ExportToHTML converte o corpo markdown da mensagem em uma página HTML.
// A imagem continua embutida como data URI.
func (r *ExportRepositoryImpl) ExportToHTML(report entity.RenderedReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "html")
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(outputFilename, renderHTML(report), 0644); err != nil {
		return "", fmt.Errorf("error writing HTML file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func renderHTML(report entity.RenderedReport) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{
		Flags: html.CommonFlags | html.CompletePage,
		Title: fmt.Sprintf("%s (%s - %s)", report.Widget.Title,
			report.Window.Start.Format(windowLayout), report.Window.End.Format(windowLayout)),
	})
	return markdown.ToHTML([]byte(report.Body), p, renderer)
}

func (r *ExportRepositoryImpl) ExportToPDF(report entity.RenderedReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	headerColor := [3]int{40, 40, 40}
	headerTextColor := [3]int{255, 255, 255}
	bodyTextColor := [3]int{50, 50, 50}

	pdf.AddPage()

	pdf.SetFillColor(headerColor[0], headerColor[1], headerColor[2])
	pdf.SetTextColor(headerTextColor[0], headerTextColor[1], headerTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", report.Widget.Title)), "", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(bodyTextColor[0], bodyTextColor[1], bodyTextColor[2])
	window := fmt.Sprintf("  %s  to  %s  |  period %ds  |  %s",
		report.Window.Start.Format(windowLayout), report.Window.End.Format(windowLayout),
		report.Widget.Period, report.Widget.Stat)
	pdf.CellFormat(0, 8, tr(window), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(report.Image))
	if err != nil {
		return "", fmt.Errorf("error reading report image: %w", err)
	}

	const imageName = "dx-graph"
	pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(report.Image))
	if err := pdf.Error(); err != nil {
		return "", fmt.Errorf("error embedding report image: %w", err)
	}

	pageW, pageH := pdf.GetPageSize()
	left, _, right, bottom := pdf.GetMargins()
	maxW := pageW - left - right
	maxH := pageH - pdf.GetY() - bottom - 15
	w, h := fitImage(float64(cfg.Width), float64(cfg.Height), maxW, maxH)
	pdf.ImageOptions(imageName, left+(maxW-w)/2, pdf.GetY(), w, h, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	pdf.SetY(-15)
	pdf.SetFont("Arial", "I", 8)
	pdf.SetTextColor(128, 128, 128)
	footerText := fmt.Sprintf("Generated by DX Metrics Report | %s", report.GeneratedAt.UTC().Format("2006-01-02"))
	pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// fitImage escala w x h para caber em maxW x maxH mantendo a proporção.
func fitImage(w, h, maxW, maxH float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxW, maxH
	}
	scale := maxW / w
	if h*scale > maxH {
		scale = maxH / h
	}
	return w * scale, h * scale
}

type jsonReport struct {
	GeneratedAt time.Time           `json:"generated_at"`
	Window      entity.ReportWindow `json:"window"`
	Widget      entity.MetricWidget `json:"widget"`
	ImageBytes  int                 `json:"image_bytes"`
	BodyBytes   int                 `json:"body_bytes"`
}

func (r *ExportRepositoryImpl) ExportToJSON(report entity.RenderedReport, filename, outputDir string) (string, error) {
	outputFilename, err := generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(jsonReport{
		GeneratedAt: report.GeneratedAt,
		Window:      report.Window,
		Widget:      report.Widget,
		ImageBytes:  len(report.Image),
		BodyBytes:   len(report.Body),
	}); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}
