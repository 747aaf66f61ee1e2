package types

type OutputFormat string

const (
	OutputFormatMarkdown OutputFormat = "md"
	OutputFormatJSON     OutputFormat = "json"
)
