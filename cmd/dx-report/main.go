package main

import (
	"fmt"
	"os"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/diillson/aws-dx-metrics-report/internal/adapter/driven/aws"
	"github.com/diillson/aws-dx-metrics-report/internal/adapter/driven/config"
	"github.com/diillson/aws-dx-metrics-report/internal/adapter/driven/export"
	"github.com/diillson/aws-dx-metrics-report/internal/adapter/driving/cli"
	"github.com/diillson/aws-dx-metrics-report/internal/adapter/driving/lambda"
	"github.com/diillson/aws-dx-metrics-report/internal/application/usecase"
	"github.com/diillson/aws-dx-metrics-report/internal/domain/repository"
	"github.com/diillson/aws-dx-metrics-report/internal/shared/types"
	"github.com/diillson/aws-dx-metrics-report/pkg/console"
	"github.com/diillson/aws-dx-metrics-report/pkg/version"
)

func main() {
	configRepo := config.NewConfigRepository()

	// No runtime do Lambda o binário só atende invocações.
	if os.Getenv("AWS_LAMBDA_RUNTIME_API") != "" {
		runLambda(configRepo)
		return
	}

	app := cli.NewCLIApp(version.Version, configRepo)
	app.SetUseCaseFactory(func(args *types.CLIArgs) *usecase.OperationsUseCase {
		awsRepo := aws.NewAWSRepository(args.Profile, args.Region)
		consoleImpl := console.NewConsole()
		report := usecase.NewReportUseCase(awsRepo, awsRepo, awsRepo, consoleImpl, args.ArchiveBucket)
		return usecase.NewOperationsUseCase(awsRepo, export.NewExportRepository(), report, consoleImpl)
	})

	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runLambda(configRepo repository.ConfigRepository) {
	consoleImpl := console.NewPlainConsole(os.Stdout)

	cfg, err := configRepo.LoadEnv()
	if err != nil {
		consoleImpl.LogWarning("Ignoring invalid configuration: %v", err)
		cfg = &types.Config{}
	}

	awsRepo := aws.NewAWSRepository(cfg.Profile, cfg.Region)
	report := usecase.NewReportUseCase(awsRepo, awsRepo, awsRepo, consoleImpl, cfg.ArchiveBucket)
	awslambda.Start(lambda.NewHandler(report, consoleImpl).Handle)
}
