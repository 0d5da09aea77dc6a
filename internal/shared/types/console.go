package types

// ConsoleInterface define a interface para saída no console.
type ConsoleInterface interface {
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle

	CreateTable() TableInterface
	DisplayForecastBars(points []MonthlySales)
}

// StatusHandle encerra um spinner de status.
type StatusHandle interface {
	Stop()
}

// TableInterface define a interface para criar e manipular tabelas.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// MonthlySales representa o total de vendas de um mês, usado nos gráficos de previsão.
type MonthlySales struct {
	Month     string  `json:"month"`
	Amount    float64 `json:"amount"`
	Projected bool    `json:"projected"`
}
