package types

// CLIArgs represents the command-line arguments of the generate command.
type CLIArgs struct {
	ConfigFile    string
	Input         string
	ReportType    string
	OutputFormat  string
	Start         string
	End           string
	Filters       []string
	GroupBy       string
	IncludeCharts bool
	ReportName    string
	Dir           string
	Upload        string
	Profile       string

	// Changed records which flags were set explicitly, so config file values
	// only fill the gaps.
	Changed map[string]bool
}
