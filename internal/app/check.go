package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"crate-licenses/internal/policies"
)

// Check resolves every dependency and validates the resulting licenses
// against the deny/allow policy. Flag-supplied entries and policy-file
// entries are merged before expansion, so compound expressions behave
// identically in both sources. A policy violation surfaces as a single
// aggregated error after all reports are checked.
func (s Service) Check(ctx context.Context, req CheckRequest) (CheckResult, error) {
	manifestPath := strings.TrimSpace(req.ManifestPath)
	if manifestPath == "" {
		return CheckResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("manifest path is required")
	}

	deny := append([]string(nil), req.Deny...)
	allow := append([]string(nil), req.Allow...)
	if policyPath := strings.TrimSpace(req.PolicyPath); policyPath != "" {
		policy, err := s.PolicyFile.LoadPolicy(policyPath)
		if err != nil {
			return CheckResult{}, err
		}
		deny = append(deny, policy.Deny...)
		allow = append(allow, policy.Allow...)
	}

	deps, err := s.loadDependencies(ctx, manifestPath, req.IncludeDev, req.IncludeBuild, req.SkipOptional)
	if err != nil {
		return CheckResult{}, err
	}

	reports := s.buildReports(ctx, deps, req.Workers)
	log.Ctx(ctx).Debug().
		Int("reports", len(reports)).
		Int("deny", len(deny)).
		Int("allow", len(allow)).
		Msg("checking licenses against policy")

	if err := policies.CheckLicenses(reports, deny, allow); err != nil {
		return CheckResult{}, err
	}
	return CheckResult{ReportCount: len(reports)}, nil
}
