package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"crate-licenses/internal/adapters"
	"crate-licenses/internal/core"
	"crate-licenses/internal/types"
)

func (s Service) Generate(ctx context.Context, req GenerateRequest) (GenerateResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return GenerateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	format := req.Format
	if format == "" {
		format = types.OutputFormatMarkdown
	}
	if format != types.OutputFormatMarkdown && format != types.OutputFormatJSON {
		return GenerateResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported output format: %s", format))
	}

	deps, err := s.loadDependencies(ctx, manifestPath, req.IncludeDev, req.IncludeBuild, req.SkipOptional)
	if err != nil {
		return GenerateResult{}, err
	}

	reports := s.buildReports(ctx, deps, req.Workers)

	output := adapters.NewOutputFileAdapter(req.OutputDir)
	var path string
	switch format {
	case types.OutputFormatJSON:
		path, err = output.WriteJSON(reports)
	default:
		path, err = output.WriteMarkdown(reports)
	}
	if err != nil {
		return GenerateResult{}, err
	}
	return GenerateResult{ReportPath: path, ReportCount: len(reports)}, nil
}

// buildReports runs the concurrent fan-out. Per-dependency failures are
// already folded into report rows by the builder.
func (s Service) buildReports(ctx context.Context, deps []types.Dependency, workers int) []types.LicenseReport {
	builder := core.NewReportBuilder(core.NewResolverCore(s.Registry))
	builder.Workers = workers
	return builder.BuildReport(ctx, deps)
}
