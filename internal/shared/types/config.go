package types

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Input        string                 `json:"input" yaml:"input" toml:"input"`
	ReportType   string                 `json:"report_type" yaml:"report_type" toml:"report_type"`
	OutputFormat string                 `json:"output_format" yaml:"output_format" toml:"output_format"`
	Start        string                 `json:"start" yaml:"start" toml:"start"`
	End          string                 `json:"end" yaml:"end" toml:"end"`
	Filters      map[string]interface{} `json:"filters" yaml:"filters" toml:"filters"`
	GroupBy      string                 `json:"group_by" yaml:"group_by" toml:"group_by"`
	Charts       bool                   `json:"charts" yaml:"charts" toml:"charts"`
	ReportName   string                 `json:"report_name" yaml:"report_name" toml:"report_name"`
	Dir          string                 `json:"dir" yaml:"dir" toml:"dir"`
	Upload       string                 `json:"upload" yaml:"upload" toml:"upload"`
	Profile      string                 `json:"profile" yaml:"profile" toml:"profile"`
}
