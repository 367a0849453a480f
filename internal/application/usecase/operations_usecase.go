package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/diillson/aws-dx-metrics-report/internal/domain/repository"
	"github.com/diillson/aws-dx-metrics-report/internal/shared/types"
)

const defaultHistoryDays = 7

// OperationsUseCase agrupa os comandos de operação da CLI: render local,
// descoberta de virtual interfaces, invocação remota e histórico.
type OperationsUseCase struct {
	awsRepo    repository.AWSRepository
	exportRepo repository.ExportRepository
	report     *ReportUseCase
	console    types.ConsoleInterface
	now        func() time.Time
}

// NewOperationsUseCase creates a new operations use case.
func NewOperationsUseCase(
	awsRepo repository.AWSRepository,
	exportRepo repository.ExportRepository,
	report *ReportUseCase,
	console types.ConsoleInterface,
) *OperationsUseCase {
	return &OperationsUseCase{
		awsRepo:    awsRepo,
		exportRepo: exportRepo,
		report:     report,
		console:    console,
		now:        time.Now,
	}
}

// Preflight mostra a conta usada pelas credenciais atuais.
func (uc *OperationsUseCase) Preflight(ctx context.Context) {
	accountID, err := uc.awsRepo.GetAccountID(ctx)
	if err != nil {
		uc.console.LogWarning("Could not resolve AWS account: %v", err)
		return
	}
	uc.console.LogInfo("Using AWS account %s", accountID)
	if !strings.Contains(ReportTopicARN, ":"+accountID+":") {
		uc.console.LogWarning("Report topic %s belongs to a different account", ReportTopicARN)
	}
}

// Send executa o relatório localmente e devolve erro quando o status não é 200.
func (uc *OperationsUseCase) Send(ctx context.Context) error {
	result := uc.report.GenerateAndSend(ctx)
	if !result.Succeeded() {
		return fmt.Errorf("report failed with status %d: %s", result.StatusCode, result.Body)
	}
	uc.console.LogSuccess("%s", result.Body)
	return nil
}

// RenderAndExport renderiza o relatório sem publicar e grava os artefatos pedidos.
func (uc *OperationsUseCase) RenderAndExport(ctx context.Context, args *types.CLIArgs) ([]string, error) {
	status := uc.console.Status("Rendering DX metrics graph...")
	report, err := uc.report.RenderReport(ctx)
	status.Stop()
	if err != nil {
		return nil, err
	}

	baseName := args.ReportName
	if baseName == "" {
		baseName = "dx-metrics-report"
	}

	reportTypes := args.ReportType
	if len(reportTypes) == 0 {
		reportTypes = []string{"png"}
	}

	var paths []string
	for _, reportType := range reportTypes {
		var (
			path      string
			exportErr error
		)
		switch strings.ToLower(strings.TrimSpace(reportType)) {
		case "png":
			path, exportErr = uc.exportRepo.ExportToPNG(report, baseName, args.Dir)
		case "html":
			path, exportErr = uc.exportRepo.ExportToHTML(report, baseName, args.Dir)
		case "pdf":
			path, exportErr = uc.exportRepo.ExportToPDF(report, baseName, args.Dir)
		case "json":
			path, exportErr = uc.exportRepo.ExportToJSON(report, baseName, args.Dir)
		default:
			exportErr = fmt.Errorf("%w: %s", types.ErrUnsupportedReportType, reportType)
		}
		if exportErr != nil {
			return paths, exportErr
		}
		uc.console.LogSuccess("Report saved: %s", path)
		paths = append(paths, path)
	}
	return paths, nil
}

// Discover lista os virtual interfaces visíveis na conta.
func (uc *OperationsUseCase) Discover(ctx context.Context) error {
	vifs, err := uc.awsRepo.ListVirtualInterfaces(ctx)
	if err != nil {
		return err
	}
	if len(vifs) == 0 {
		uc.console.LogWarning("No Direct Connect virtual interfaces found")
		return nil
	}

	sort.Slice(vifs, func(i, j int) bool {
		if vifs[i].ConnectionID != vifs[j].ConnectionID {
			return vifs[i].ConnectionID < vifs[j].ConnectionID
		}
		return vifs[i].VirtualInterfaceID < vifs[j].VirtualInterfaceID
	})

	table := uc.console.CreateTable()
	table.AddColumn("Connection")
	table.AddColumn("Virtual Interface")
	table.AddColumn("Name")
	table.AddColumn("Type")
	table.AddColumn("VLAN")
	table.AddColumn("State")
	table.AddColumn("In Report")
	for _, vif := range vifs {
		table.AddRow(
			vif.ConnectionID,
			vif.VirtualInterfaceID,
			vif.VirtualInterfaceName,
			vif.VirtualInterfaceType,
			vif.Vlan,
			vif.State,
			yesNo(isMonitored(vif.ConnectionID, vif.VirtualInterfaceID)),
		)
	}
	uc.console.Println(table.Render())
	return nil
}

// Invoke dispara a função Lambda publicada e mostra o resultado.
func (uc *OperationsUseCase) Invoke(ctx context.Context, functionName string) error {
	if functionName == "" {
		return types.ErrMissingFunctionName
	}
	status := uc.console.Status(fmt.Sprintf("Invoking %s...", functionName))
	result, err := uc.awsRepo.InvokeReportFunction(ctx, functionName)
	status.Stop()
	if err != nil {
		return err
	}
	if !result.Succeeded() {
		return fmt.Errorf("function %s returned status %d: %s", functionName, result.StatusCode, result.Body)
	}
	uc.console.LogSuccess("%s: %s", functionName, result.Body)
	return nil
}

// History mostra as execuções registradas nos últimos days dias.
func (uc *OperationsUseCase) History(ctx context.Context, functionName string, days int) error {
	if functionName == "" {
		return types.ErrMissingFunctionName
	}
	if days <= 0 {
		days = defaultHistoryDays
	}
	since := uc.now().UTC().AddDate(0, 0, -days)

	records, err := uc.awsRepo.GetRecentInvocations(ctx, functionName, since)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		uc.console.LogWarning("No report executions found for %s in the last %d days", functionName, days)
		return nil
	}

	table := uc.console.CreateTable()
	table.AddColumn("Time (UTC)")
	table.AddColumn("Result")
	table.AddColumn("Message")
	failures := 0
	for _, rec := range records {
		result := "OK"
		if !rec.Success {
			result = "FAILED"
			failures++
		}
		table.AddRow(rec.Timestamp.UTC().Format("2006-01-02 15:04:05"), result, rec.Message)
	}
	uc.console.Println(table.Render())
	if failures > 0 {
		uc.console.LogWarning("%d of %d executions failed", failures, len(records))
	}
	return nil
}

func isMonitored(connectionID, vifID string) bool {
	for _, pair := range monitoredInterfaces {
		if pair.connectionID == connectionID && pair.virtualInterfaceID == vifID {
			return true
		}
	}
	return false
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
