package export

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/diillson/aws-dx-metrics-report/internal/domain/entity"
)

func testReport(t *testing.T) entity.RenderedReport {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 80, 60))
	for y := 0; y < 60; y++ {
		for x := 0; x < 80; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	window := entity.NewReportWindow(time.Date(2026, time.October, 19, 12, 0, 0, 0, time.UTC))
	return entity.RenderedReport{
		Window: window,
		Widget: entity.MetricWidget{
			Width: 800, Height: 600, Period: 300, Stat: "Average",
			Title: "Virtual Interface Metrics",
			Start: window.Start.Format(time.RFC3339), End: window.End.Format(time.RFC3339),
		},
		Image:       buf.Bytes(),
		Body:        "DX Metrics Report:\n\n![Graph](data:image/png;base64,iVBORw0KGgo=)\n",
		GeneratedAt: window.End,
	}
}

func TestExportToPNGWritesImageBytes(t *testing.T) {
	report := testReport(t)
	dir := t.TempDir()

	path, err := NewExportRepository().ExportToPNG(report, "dx", dir)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "dx_") || filepath.Ext(path) != ".png" {
		t.Fatalf("unexpected path %q", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(data, report.Image) {
		t.Fatal("written PNG differs from the rendered image")
	}
}

func TestExportToHTMLKeepsInlineImage(t *testing.T) {
	report := testReport(t)

	path, err := NewExportRepository().ExportToHTML(report, "dx", t.TempDir())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	html := string(data)
	for _, want := range []string{"<html", "Virtual Interface Metrics", "<img", "data:image/png;base64,", "DX Metrics Report:"} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected %q in HTML:\n%s", want, html)
		}
	}
}

func TestExportToPDF(t *testing.T) {
	report := testReport(t)

	path, err := NewExportRepository().ExportToPDF(report, "dx", t.TempDir())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Fatalf("output is not a PDF")
	}
}

func TestExportToPDFRejectsInvalidImage(t *testing.T) {
	report := testReport(t)
	report.Image = []byte("not an image")

	if _, err := NewExportRepository().ExportToPDF(report, "dx", t.TempDir()); err == nil {
		t.Fatal("expected error for invalid image data")
	}
}

func TestExportToJSON(t *testing.T) {
	report := testReport(t)

	path, err := NewExportRepository().ExportToJSON(report, "dx", t.TempDir())
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var decoded struct {
		ImageBytes int `json:"image_bytes"`
		Widget     struct {
			Period int    `json:"period"`
			Title  string `json:"title"`
		} `json:"widget"`
		Window struct {
			Start time.Time `json:"start"`
			End   time.Time `json:"end"`
		} `json:"window"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.ImageBytes != len(report.Image) {
		t.Fatalf("expected image_bytes %d, got %d", len(report.Image), decoded.ImageBytes)
	}
	if decoded.Widget.Period != 300 || decoded.Widget.Title != "Virtual Interface Metrics" {
		t.Fatalf("unexpected widget %+v", decoded.Widget)
	}
	if decoded.Window.End.Sub(decoded.Window.Start) != 7*24*time.Hour {
		t.Fatalf("unexpected window %+v", decoded.Window)
	}
}

func TestFitImageKeepsAspectRatio(t *testing.T) {
	w, h := fitImage(800, 600, 277, 150)
	if h != 150 || w != 200 {
		t.Fatalf("expected 200x150, got %vx%v", w, h)
	}
	w, h = fitImage(800, 600, 200, 500)
	if w != 200 || h != 150 {
		t.Fatalf("expected 200x150, got %vx%v", w, h)
	}
}
