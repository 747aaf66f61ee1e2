package app

import "crate-licenses/internal/types"

type GenerateRequest struct {
	ManifestPath string
	Format       types.OutputFormat
	IncludeDev   bool
	IncludeBuild bool
	SkipOptional bool
	OutputDir    string
	Workers      int
}

type GenerateResult struct {
	ReportPath  string
	ReportCount int
}

type ListRequest struct {
	ManifestPath string
	IncludeDev   bool
	IncludeBuild bool
	SkipOptional bool
}

type ListResult struct {
	Dependencies []types.Dependency
}

type CheckRequest struct {
	ManifestPath string
	Deny         []string
	Allow        []string
	PolicyPath   string
	IncludeDev   bool
	IncludeBuild bool
	SkipOptional bool
	Workers      int
}

type CheckResult struct {
	ReportCount int
}
