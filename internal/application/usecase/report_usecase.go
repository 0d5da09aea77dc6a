package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pterm/pterm"

	"github.com/diillson/sales-report-go/internal/application/pipeline"
	"github.com/diillson/sales-report-go/internal/domain/entity"
	"github.com/diillson/sales-report-go/internal/domain/repository"
	"github.com/diillson/sales-report-go/internal/shared/types"
)

// Valores padrão quando nem flags nem arquivo de configuração definem o campo.
const (
	DefaultReportType   = entity.ReportSummary
	DefaultOutputFormat = entity.FormatPDF
)

// Output é o resultado de Generate. Para json, Payload (ou Empty) carrega o relatório;
// para os demais formatos, Path aponta para o artefato gerado.
type Output struct {
	Format  entity.OutputFormat
	Payload *entity.ReportPayload
	Empty   *entity.EmptyResult
	Path    string
}

// JSON retorna o valor que deve ser serializado para o formato json.
func (o Output) JSON() interface{} {
	if o.Empty != nil {
		return o.Empty
	}
	return o.Payload
}

// ReportUseCase gera relatórios de vendas a partir de uma origem de transações.
type ReportUseCase struct {
	sourceRepo repository.SourceRepository
	exportRepo repository.ExportRepository
	configRepo repository.ConfigRepository
	awsRepo    repository.AWSRepository
	console    types.ConsoleInterface
	options    []pipeline.Option
}

// NewReportUseCase creates a new report use case. awsRepo may be nil when neither S3
// sources nor uploads are used.
func NewReportUseCase(
	sourceRepo repository.SourceRepository,
	exportRepo repository.ExportRepository,
	configRepo repository.ConfigRepository,
	awsRepo repository.AWSRepository,
	console types.ConsoleInterface,
	options ...pipeline.Option,
) *ReportUseCase {
	return &ReportUseCase{
		sourceRepo: sourceRepo,
		exportRepo: exportRepo,
		configRepo: configRepo,
		awsRepo:    awsRepo,
		console:    console,
		options:    options,
	}
}

// Generate executa o pipeline e encaminha o payload para o renderizador do formato pedido.
func (uc *ReportUseCase) Generate(ctx context.Context, req entity.ReportRequest, name, dir string) (Output, error) {
	if err := ctx.Err(); err != nil {
		return Output{}, err
	}

	result, err := pipeline.Run(req, uc.options...)
	if err != nil {
		return Output{}, err
	}

	out := Output{Format: req.OutputFormat}

	if result.Empty {
		uc.console.LogWarning(entity.EmptyResultMessage)
		if req.OutputFormat == entity.FormatJSON {
			out.Empty = entity.NewEmptyResult()
			return out, nil
		}
		path, err := uc.exportRepo.ExportEmpty(req.OutputFormat, name, dir)
		if err != nil {
			return Output{}, fmt.Errorf("error rendering empty %s report: %w", req.OutputFormat, err)
		}
		out.Path = path
		return out, nil
	}

	out.Payload = result.Payload

	switch req.OutputFormat {
	case entity.FormatJSON:
		return out, nil
	case entity.FormatHTML:
		out.Path, err = uc.exportRepo.ExportToHTML(result.Payload, req.IncludeCharts, name, dir)
	case entity.FormatExcel:
		out.Path, err = uc.exportRepo.ExportToExcel(result.Payload, req.IncludeCharts, name, dir)
	case entity.FormatPDF:
		out.Path, err = uc.exportRepo.ExportToPDF(result.Payload, req.IncludeCharts, name, dir)
	default:
		return Output{}, types.NewValidationError("output_format", "Unsupported output format")
	}
	if err != nil {
		return Output{}, fmt.Errorf("error rendering %s report: %w", req.OutputFormat, err)
	}
	return out, nil
}

// RunReport executa o fluxo completo da CLI: carrega a origem, gera o relatório,
// exibe o resumo e opcionalmente publica o artefato.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	args, filters, err := uc.ResolveArgs(args)
	if err != nil {
		return err
	}
	if args.Input == "" {
		return types.NewValidationError("input", "An input file or s3:// location is required")
	}

	if uc.awsRepo != nil {
		uc.awsRepo.UseProfile(args.Profile)
	}

	status := uc.console.Status(fmt.Sprintf("Loading transactions from %s...", args.Input))
	txs, err := uc.sourceRepo.LoadTransactions(ctx, args.Input)
	status.Stop()
	if err != nil {
		return err
	}
	uc.console.LogInfo("Loaded %d transactions from %s", len(txs), args.Input)

	req := entity.ReportRequest{
		Transactions:  txs,
		ReportType:    entity.ReportType(args.ReportType),
		OutputFormat:  entity.OutputFormat(args.OutputFormat),
		Filters:       filters,
		GroupBy:       args.GroupBy,
		IncludeCharts: args.IncludeCharts,
	}
	if args.Start != "" || args.End != "" {
		req.DateRange = &entity.DateRange{Start: args.Start, End: args.End}
	}

	status = uc.console.Status("Generating report...")
	out, err := uc.Generate(ctx, req, args.ReportName, args.Dir)
	status.Stop()
	if err != nil {
		return err
	}

	if out.Payload != nil {
		uc.displayReport(out.Payload)
	}

	if out.Format == entity.FormatJSON {
		out.Path, err = uc.exportRepo.ExportToJSON(out.JSON(), args.ReportName, args.Dir)
		if err != nil {
			return fmt.Errorf("failed to export to JSON: %w", err)
		}
	}
	uc.console.LogSuccess("Successfully exported to %s: %s", strings.ToUpper(string(out.Format)), out.Path)

	if args.Upload != "" {
		return uc.publish(ctx, out.Path, args.Upload)
	}
	return nil
}

// ResolveArgs mescla o arquivo de configuração com as flags (flags explícitas vencem),
// aplica os padrões e monta o FilterSet final.
func (uc *ReportUseCase) ResolveArgs(args *types.CLIArgs) (*types.CLIArgs, entity.FilterSet, error) {
	resolved := *args
	filters := entity.FilterSet{}

	if args.ConfigFile != "" {
		cfg, err := uc.configRepo.LoadConfigFile(args.ConfigFile)
		if err != nil {
			return nil, nil, err
		}
		mergeConfig(&resolved, cfg)

		cfgFilters, err := entity.ParseFilterSet(cfg.Filters)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid filters in %s: %w", args.ConfigFile, err)
		}
		for field, value := range cfgFilters {
			filters[field] = value
		}
	}

	flagFilters, err := ParseFilterFlags(args.Filters)
	if err != nil {
		return nil, nil, err
	}
	for field, value := range flagFilters {
		filters[field] = value
	}
	if len(filters) == 0 {
		filters = nil
	}

	if resolved.ReportType == "" {
		resolved.ReportType = string(DefaultReportType)
	}
	if resolved.OutputFormat == "" {
		resolved.OutputFormat = string(DefaultOutputFormat)
	}

	return &resolved, filters, nil
}

// mergeConfig preenche em args os campos que não vieram de flags explícitas.
func mergeConfig(args *types.CLIArgs, cfg *types.Config) {
	fill := func(flag string, dst *string, value string) {
		if !args.Changed[flag] && value != "" {
			*dst = value
		}
	}
	fill("input", &args.Input, cfg.Input)
	fill("report-type", &args.ReportType, cfg.ReportType)
	fill("output-format", &args.OutputFormat, cfg.OutputFormat)
	fill("start", &args.Start, cfg.Start)
	fill("end", &args.End, cfg.End)
	fill("group-by", &args.GroupBy, cfg.GroupBy)
	fill("report-name", &args.ReportName, cfg.ReportName)
	fill("dir", &args.Dir, cfg.Dir)
	fill("upload", &args.Upload, cfg.Upload)
	fill("profile", &args.Profile, cfg.Profile)

	if !args.Changed["charts"] && cfg.Charts {
		args.IncludeCharts = true
	}
}

// ParseFilterFlags converte flags no formato campo=valor ou campo=v1|v2 em um FilterSet.
// Repetir o mesmo campo junta os valores em um filtro de pertinência.
func ParseFilterFlags(flags []string) (entity.FilterSet, error) {
	filters := entity.FilterSet{}
	for _, flag := range flags {
		field, raw, ok := strings.Cut(flag, "=")
		field = strings.TrimSpace(field)
		if !ok || field == "" || raw == "" {
			return nil, types.NewValidationError("filter", fmt.Sprintf("Filter %q must use the field=value format", flag))
		}

		values := strings.Split(raw, "|")
		for i := range values {
			values[i] = strings.TrimSpace(values[i])
		}

		if existing, ok := filters[field]; ok {
			merged := append(append([]string(nil), existing.Values...), values...)
			filters[field] = entity.OneOf(merged...)
			continue
		}
		if len(values) == 1 {
			filters[field] = entity.Equals(values[0])
		} else {
			filters[field] = entity.OneOf(values...)
		}
	}
	return filters, nil
}

func (uc *ReportUseCase) publish(ctx context.Context, path, destination string) error {
	if uc.awsRepo == nil {
		return fmt.Errorf("no AWS client configured for upload to %s", destination)
	}

	status := uc.console.Status(fmt.Sprintf("Uploading report to %s...", destination))
	uri, err := uc.awsRepo.Publish(ctx, path, destination)
	status.Stop()
	if err != nil {
		return err
	}

	accountID, err := uc.awsRepo.CallerIdentity(ctx)
	if err != nil {
		uc.console.LogWarning("Could not resolve the AWS account: %s", err)
		accountID = "Unknown"
	}
	uc.console.LogSuccess("Uploaded report to %s (account %s)", uri, accountID)
	return nil
}

// displayReport imprime as tabelas de resumo, de grupos e as barras de previsão.
func (uc *ReportUseCase) displayReport(report *entity.ReportPayload) {
	s := report.Summary

	table := uc.console.CreateTable()
	table.AddColumn("Metric")
	table.AddColumn("Value")
	table.AddRow("Report ID", report.ID.String())
	table.AddRow("Report Type", string(report.ReportType))
	table.AddRow("Total Sales", s.TotalSales.StringFixed(2))
	table.AddRow("Transactions", s.TransactionCount)
	table.AddRow("Average Sale", s.AverageSale.StringFixed(2))
	table.AddRow("Largest Sale", fmt.Sprintf("%s (%s)", s.MaxSale.Amount.StringFixed(2), s.MaxSale.Date))
	table.AddRow("Smallest Sale", fmt.Sprintf("%s (%s)", s.MinSale.Amount.StringFixed(2), s.MinSale.Date))
	uc.console.Println(table.Render())

	if g := report.Grouping; g != nil {
		groups := uc.console.CreateTable()
		groups.AddColumn(pterm.FgYellow.Sprint(g.By))
		groups.AddColumn("Count")
		groups.AddColumn("Total")
		groups.AddColumn("Share")

		keys := append([]string(nil), g.Keys()...)
		sort.SliceStable(keys, func(i, j int) bool {
			return g.Groups[keys[i]].Total.GreaterThan(g.Groups[keys[j]].Total)
		})
		for _, key := range keys {
			e := g.Groups[key]
			groups.AddRow(key, e.Count, e.Total.StringFixed(2), e.Percentage.StringFixed(2)+"%")
		}
		uc.console.Println(groups.Render())
	}

	if f := report.Forecast; f != nil {
		if len(f.MonthlySales) == 0 {
			uc.console.LogWarning("No monthly sales available for a forecast")
			return
		}
		points := make([]types.MonthlySales, 0, len(f.MonthlySales)+len(f.ProjectedSales))
		for _, m := range f.MonthlySales {
			points = append(points, types.MonthlySales{Month: m.Month.String(), Amount: m.Amount.InexactFloat64()})
		}
		for _, p := range f.ProjectedSales {
			points = append(points, types.MonthlySales{Month: p.Month.String(), Amount: p.Amount.InexactFloat64(), Projected: true})
		}
		uc.console.Printf("\n%s\n", pterm.FgYellow.Sprintf("Average monthly growth: %s%%", f.AverageGrowthRate.StringFixed(2)))
		uc.console.DisplayForecastBars(points)
	}
}
