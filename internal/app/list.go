package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

func (s Service) List(ctx context.Context, req ListRequest) (ListResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return ListResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}
	deps, err := s.loadDependencies(ctx, manifestPath, req.IncludeDev, req.IncludeBuild, req.SkipOptional)
	if err != nil {
		return ListResult{}, err
	}
	return ListResult{Dependencies: deps}, nil
}
