package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"crate-licenses/internal/types"
)

const defaultResolveWorkers = 8

type ReportBuilder struct {
	Resolver ResolverCore
	Workers  int
}

func NewReportBuilder(resolver ResolverCore) ReportBuilder {
	return ReportBuilder{Resolver: resolver}
}

// BuildReport resolves every dependency concurrently and returns one
// LicenseReport per input. Per-dependency failures are recorded in the
// report row ("unknown" version, "Failed: ..." license) and never abort
// the batch, so the output count always equals the input count.
// Completion order is not the input order; each row carries its own
// crate name rather than relying on position.
func (b ReportBuilder) BuildReport(ctx context.Context, deps []types.Dependency) []types.LicenseReport {
	workerCount := b.Workers
	if workerCount <= 0 {
		workerCount = defaultResolveWorkers
	}
	if len(deps) < workerCount {
		workerCount = len(deps)
	}

	results := make(chan types.LicenseReport, len(deps))
	sem := make(chan struct{}, workerCount)
	var wg sync.WaitGroup
	for _, dep := range deps {
		dep := dep
		wg.Add(1)
		go func() {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results <- b.resolveOne(ctx, dep)
		}()
	}
	wg.Wait()
	close(results)

	reports := make([]types.LicenseReport, 0, len(deps))
	for report := range results {
		reports = append(reports, report)
	}
	log.Ctx(ctx).Debug().
		Int("dependencies", len(deps)).
		Int("reports", len(reports)).
		Msg("license report built")
	return reports
}

func (b ReportBuilder) resolveOne(ctx context.Context, dep types.Dependency) types.LicenseReport {
	matched, license, err := b.Resolver.Resolve(ctx, dep.Name, dep.VersionReq)
	if err != nil {
		return types.LicenseReport{
			CrateName:      dep.Name,
			MatchedVersion: types.VersionUnknown,
			License:        fmt.Sprintf("Failed: %s", errorMessage(err)),
		}
	}
	licenseText := types.NoLicenseListed
	if license != nil {
		licenseText = *license
	}
	return types.LicenseReport{
		CrateName:      dep.Name,
		MatchedVersion: matched,
		License:        licenseText,
	}
}

// errorMessage prefers the errbuilder message over the full error chain
// so report rows stay readable.
func errorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}
