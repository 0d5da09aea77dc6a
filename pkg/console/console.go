package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/diillson/sales-report-go/internal/shared/types"
	"github.com/fatih/color"
	"github.com/pterm/pterm"
)

// Console é uma implementação do ConsoleInterface.
type Console struct{}

// NewConsole cria um novo Console.
func NewConsole() *Console {
	return &Console{}
}

// Printf imprime uma string formatada no console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println imprime no console com uma nova linha.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo registra uma mensagem de informação.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning registra uma mensagem de aviso.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogSuccess registra uma mensagem de sucesso.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// statusHandle é uma implementação do StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status cria um spinner de status com a mensagem especificada.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Cores predefinidas para uso consistente
var (
	BrightMagenta = color.New(color.FgMagenta, color.Bold).SprintFunc()
	BrightGreen   = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightYellow  = color.New(color.FgYellow, color.Bold).SprintFunc()
	BrightRed     = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Stop pára o spinner de status.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// Table é uma implementação do TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable cria uma nova tabela.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adiciona uma coluna à tabela.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adiciona uma linha à tabela.
func (t *Table) AddRow(cells ...interface{}) {
	// Convertemos cada célula para string
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renderiza a tabela como uma string.
func (t *Table) Render() string {
	// Use o pterm para criar uma tabela visualmente agradável
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// DisplayForecastBars exibe as vendas mensais e a projeção como barras.
// Crescimento é verde, queda é vermelho e meses projetados aparecem em magenta.
func (c *Console) DisplayForecastBars(points []types.MonthlySales) {
	maxAmount := 0.0
	for _, p := range points {
		maxAmount = math.Max(maxAmount, math.Abs(p.Amount))
	}

	if maxAmount == 0 {
		pterm.Warning.Println("All monthly sales are 0.00 for this period")
		return
	}

	tableData := pterm.TableData{
		{"Month", "Sales", "", "MoM Change"},
	}

	var prevAmount *float64

	for _, p := range points {
		barLength := int((math.Abs(p.Amount) / maxAmount) * 40)
		bar := strings.Repeat("█", barLength)

		barColor := pterm.FgBlue.Sprint(bar)
		change := ""

		if prevAmount != nil {
			if *prevAmount <= 0 {
				change = pterm.FgYellow.Sprint("N/A")
			} else {
				changePercent := ((p.Amount - *prevAmount) / *prevAmount) * 100.0
				switch {
				case math.Abs(changePercent) < 0.01:
					change = BrightYellow("0%")
					barColor = pterm.FgYellow.Sprint(bar)
				case changePercent > 0:
					change = BrightGreen(fmt.Sprintf("+%.2f%%", changePercent))
					barColor = pterm.FgGreen.Sprint(bar)
				default:
					change = BrightRed(fmt.Sprintf("%.2f%%", changePercent))
					barColor = pterm.FgRed.Sprint(bar)
				}
			}
		}

		month := p.Month
		if p.Projected {
			month += " *"
			barColor = BrightMagenta(bar)
		}

		tableData = append(tableData, []string{
			month,
			fmt.Sprintf("%.2f", p.Amount),
			barColor,
			change,
		})

		current := p.Amount
		prevAmount = &current
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle("Sales Forecast (* projected)").WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)

	fmt.Println("\n" + panel)
}
