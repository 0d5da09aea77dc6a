package main

import (
	"fmt"
	"os"

	"github.com/diillson/sales-report-go/internal/adapter/driven/aws"
	"github.com/diillson/sales-report-go/internal/adapter/driven/config"
	"github.com/diillson/sales-report-go/internal/adapter/driven/export"
	"github.com/diillson/sales-report-go/internal/adapter/driven/source"
	"github.com/diillson/sales-report-go/internal/adapter/driving/cli"
	"github.com/diillson/sales-report-go/internal/application/usecase"
	"github.com/diillson/sales-report-go/pkg/console"
	"github.com/diillson/sales-report-go/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	awsRepo := aws.NewAWSRepository()
	sourceRepo := source.NewSourceRepository(awsRepo)
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	reportUseCase := usecase.NewReportUseCase(
		sourceRepo,
		exportRepo,
		configRepo,
		awsRepo,
		consoleImpl,
	)

	app.SetReportUseCase(reportUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
