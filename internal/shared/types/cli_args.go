package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile    string
	Profile       string
	Region        string
	ArchiveBucket string
	FunctionName  string
	ReportName    string
	ReportType    []string
	Dir           string
	HistoryDays   int
}
