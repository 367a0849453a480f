package cli

import (
	"context"
	"os"
	"path/filepath"

	"github.com/diillson/aws-dx-metrics-report/internal/application/usecase"
	"github.com/diillson/aws-dx-metrics-report/internal/domain/repository"
	"github.com/diillson/aws-dx-metrics-report/internal/shared/types"
	"github.com/diillson/aws-dx-metrics-report/pkg/version"
	"github.com/spf13/cobra"
)

// UseCaseFactory monta os casos de uso depois que profile e região são conhecidos.
type UseCaseFactory func(args *types.CLIArgs) *usecase.OperationsUseCase

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd    *cobra.Command
	configRepo repository.ConfigRepository
	factory    UseCaseFactory
	version    string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string, configRepo repository.ConfigRepository) *CLIApp {
	app := &CLIApp{
		version:    versionStr,
		configRepo: configRepo,
	}

	rootCmd := &cobra.Command{
		Use:           "dx-report",
		Short:         "Direct Connect metrics report",
		Long:          "Renders the weekly Direct Connect virtual interface graph from CloudWatch and sends it to the DX_Alarms SNS topic.",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          app.runSend,
	}
	rootCmd.SetVersionTemplate(`{{printf "DX Metrics Report version: %s\n" .Version}}`)

	rootCmd.PersistentFlags().StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	rootCmd.PersistentFlags().StringP("profile", "p", "", "AWS profile to use (default: SDK credential chain)")
	rootCmd.PersistentFlags().StringP("region", "r", "", "AWS region for CloudWatch, Direct Connect, Lambda and S3")
	rootCmd.PersistentFlags().String("archive-bucket", "", "S3 bucket where sent graphs are archived")
	rootCmd.PersistentFlags().StringP("function", "f", "", "Name of the deployed report Lambda function")

	sendCmd := &cobra.Command{
		Use:   "send",
		Short: "Render the graph and publish it to SNS (same as the scheduled run)",
		RunE:  app.runSend,
	}

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "Render the graph and save it locally without publishing",
		RunE:  app.runRender,
	}
	renderCmd.Flags().StringP("report-name", "n", "", "Base name for the report files (without extension)")
	renderCmd.Flags().StringSliceP("report-type", "y", []string{"png"}, "Report types: png, html, pdf, json")
	renderCmd.Flags().StringP("dir", "d", "", "Directory to save the report files (default: current directory)")

	invokeCmd := &cobra.Command{
		Use:   "invoke",
		Short: "Invoke the deployed report function and print its result",
		RunE:  app.runInvoke,
	}

	discoverCmd := &cobra.Command{
		Use:   "discover",
		Short: "List Direct Connect virtual interfaces and whether the report covers them",
		RunE:  app.runDiscover,
	}

	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent executions of the deployed report function",
		RunE:  app.runHistory,
	}
	historyCmd.Flags().Int("days", 7, "How many days of executions to show")

	rootCmd.AddCommand(sendCmd, renderCmd, invokeCmd, discoverCmd, historyCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// SetUseCaseFactory sets the factory used to build the use cases for each command.
func (app *CLIApp) SetUseCaseFactory(factory UseCaseFactory) {
	app.factory = factory
}

// parseArgs lê as flags do comando e mescla o arquivo de configuração.
// Flags explícitas têm precedência sobre o arquivo.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	args := &types.CLIArgs{}
	args.ConfigFile, _ = flags.GetString("config-file")
	args.Profile, _ = flags.GetString("profile")
	args.Region, _ = flags.GetString("region")
	args.ArchiveBucket, _ = flags.GetString("archive-bucket")
	args.FunctionName, _ = flags.GetString("function")
	args.ReportName, _ = flags.GetString("report-name")
	args.ReportType, _ = flags.GetStringSlice("report-type")
	args.Dir, _ = flags.GetString("dir")
	args.HistoryDays, _ = flags.GetInt("days")

	if args.ConfigFile != "" {
		cfg, err := app.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, err
		}
		mergeConfig(args, cfg, flags.Changed)
	}

	if args.Dir != "" {
		absDir, err := filepath.Abs(args.Dir)
		if err != nil {
			return nil, err
		}
		args.Dir = absDir
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		args.Dir = cwd
	}

	return args, nil
}

// mergeConfig copia os valores do arquivo para args quando a flag correspondente
// não foi informada.
func mergeConfig(args *types.CLIArgs, cfg *types.Config, changed func(name string) bool) {
	if !changed("profile") && cfg.Profile != "" {
		args.Profile = cfg.Profile
	}
	if !changed("region") && cfg.Region != "" {
		args.Region = cfg.Region
	}
	if !changed("archive-bucket") && cfg.ArchiveBucket != "" {
		args.ArchiveBucket = cfg.ArchiveBucket
	}
	if !changed("function") && cfg.FunctionName != "" {
		args.FunctionName = cfg.FunctionName
	}
	if !changed("report-name") && cfg.ReportName != "" {
		args.ReportName = cfg.ReportName
	}
	if !changed("report-type") && len(cfg.ReportType) > 0 {
		args.ReportType = cfg.ReportType
	}
	if !changed("dir") && cfg.Dir != "" {
		args.Dir = cfg.Dir
	}
	if !changed("days") && cfg.HistoryDays > 0 {
		args.HistoryDays = cfg.HistoryDays
	}
}

func (app *CLIApp) prepare(cmd *cobra.Command) (*usecase.OperationsUseCase, *types.CLIArgs, error) {
	displayWelcomeBanner()
	go version.CheckLatestVersion(app.version)

	args, err := app.parseArgs(cmd)
	if err != nil {
		return nil, nil, err
	}
	return app.factory(args), args, nil
}

// runSend é o ponto de entrada principal: gera e envia o relatório.
func (app *CLIApp) runSend(cmd *cobra.Command, _ []string) error {
	ops, _, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	ctx := context.Background()
	ops.Preflight(ctx)
	return ops.Send(ctx)
}

func (app *CLIApp) runRender(cmd *cobra.Command, _ []string) error {
	ops, args, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	_, err = ops.RenderAndExport(context.Background(), args)
	return err
}

func (app *CLIApp) runInvoke(cmd *cobra.Command, _ []string) error {
	ops, args, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	return ops.Invoke(context.Background(), args.FunctionName)
}

func (app *CLIApp) runDiscover(cmd *cobra.Command, _ []string) error {
	ops, _, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	return ops.Discover(context.Background())
}

func (app *CLIApp) runHistory(cmd *cobra.Command, _ []string) error {
	ops, args, err := app.prepare(cmd)
	if err != nil {
		return err
	}
	return ops.History(context.Background(), args.FunctionName, args.HistoryDays)
}
