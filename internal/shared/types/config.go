package types

// Config represents the application configuration that can be loaded from a file.
// Report identifiers and the report window are fixed and never read from here.
type Config struct {
	Profile       string   `json:"profile" yaml:"profile" toml:"profile"`
	Region        string   `json:"region" yaml:"region" toml:"region"`
	ArchiveBucket string   `json:"archive_bucket" yaml:"archive_bucket" toml:"archive_bucket"`
	FunctionName  string   `json:"function_name" yaml:"function_name" toml:"function_name"`
	ReportName    string   `json:"report_name" yaml:"report_name" toml:"report_name"`
	ReportType    []string `json:"report_type" yaml:"report_type" toml:"report_type"`
	Dir           string   `json:"dir" yaml:"dir" toml:"dir"`
	HistoryDays   int      `json:"history_days" yaml:"history_days" toml:"history_days"`
}
