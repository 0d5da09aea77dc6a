package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/diillson/sales-report-go/internal/application/usecase"
	"github.com/diillson/sales-report-go/internal/shared/types"
	"github.com/diillson/sales-report-go/pkg/version"
)

// generateFlags são as flags do comando generate que podem vir do arquivo de configuração.
var generateFlags = []string{
	"input", "report-type", "output-format", "start", "end", "filter", "group-by",
	"charts", "report-name", "dir", "upload", "profile",
}

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	version       string
}

// NewCLIApp cria uma nova aplicação CLI.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	rootCmd := &cobra.Command{
		Use:           "sales-report",
		Short:         "Sales report aggregation and forecast CLI",
		Version:       version.FormatVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env é opcional; só avisamos quando ele existe e não pôde ser lido.
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				fmt.Printf("Error loading .env file: %v\n", err)
			}
		},
	}
	rootCmd.SetVersionTemplate(`{{printf "Sales Report version: %s\n" .Version}}`)

	generateCmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a sales report from a JSON, CSV or YAML transaction file",
		Example: `  sales-report generate --input sales.csv --report-type forecast --output-format html --charts
  sales-report generate -i s3://bucket/sales.json -f excel --group-by region --filter "category=Books|Games"`,
		Args: cobra.NoArgs,
		RunE: app.runGenerate,
	}

	flags := generateCmd.Flags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("input", "i", "", "Transactions file (.json, .csv, .yaml) or s3://bucket/key")
	flags.StringP("report-type", "y", "", "Report type: summary, detailed, forecast (default: summary)")
	flags.StringP("output-format", "f", "", "Output format: pdf, excel, html, json (default: pdf)")
	flags.String("start", "", "Start date of the range, YYYY-MM-DD (inclusive)")
	flags.String("end", "", "End date of the range, YYYY-MM-DD (inclusive)")
	flags.StringArray("filter", nil, "Field filter, e.g. --filter region=North or --filter \"category=Books|Games\"")
	flags.StringP("group-by", "g", "", "Field to group sales by, e.g. product, category, region")
	flags.Bool("charts", false, "Include chart series and charts in the report")
	flags.StringP("report-name", "n", "", "Base name for the report file (without extension)")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.String("upload", "", "Upload the report to s3://bucket/prefix after generation")
	flags.StringP("profile", "p", "", "AWS profile used for s3:// input and uploads")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version and check for updates",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Sales Report version: %s\n", version.FormatVersion())
			version.CheckLatestVersion(app.version)
		},
	}

	rootCmd.AddCommand(generateCmd, versionCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.Execute()
}

// parseArgs lê as flags do comando generate para um CLIArgs.
func parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	input, _ := flags.GetString("input")
	reportType, _ := flags.GetString("report-type")
	outputFormat, _ := flags.GetString("output-format")
	start, _ := flags.GetString("start")
	end, _ := flags.GetString("end")
	filters, _ := flags.GetStringArray("filter")
	groupBy, _ := flags.GetString("group-by")
	charts, _ := flags.GetBool("charts")
	reportName, _ := flags.GetString("report-name")
	dir, _ := flags.GetString("dir")
	upload, _ := flags.GetString("upload")
	profile, _ := flags.GetString("profile")

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	changed := make(map[string]bool, len(generateFlags))
	for _, name := range generateFlags {
		changed[name] = flags.Changed(name)
	}

	return &types.CLIArgs{
		ConfigFile:    configFile,
		Input:         input,
		ReportType:    reportType,
		OutputFormat:  outputFormat,
		Start:         start,
		End:           end,
		Filters:       filters,
		GroupBy:       groupBy,
		IncludeCharts: charts,
		ReportName:    reportName,
		Dir:           dir,
		Upload:        upload,
		Profile:       profile,
		Changed:       changed,
	}, nil
}

// runGenerate é o ponto de entrada do comando generate.
func (app *CLIApp) runGenerate(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner()

	go version.CheckLatestVersion(app.version)

	cliArgs, err := parseArgs(cmd)
	if err != nil {
		return err
	}

	return app.reportUseCase.RunReport(cmd.Context(), cliArgs)
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}
