package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"crate-licenses/internal/ports"
	"crate-licenses/internal/types"
)

type ResolverCore struct {
	Registry ports.RegistryPort
}

func NewResolverCore(registry ports.RegistryPort) ResolverCore {
	return ResolverCore{Registry: registry}
}

// Resolve fetches all published versions of a crate and returns the
// highest one satisfying the constraint, along with its declared
// license. The "unspecified" sentinel accepts any version. Versions
// whose number does not parse as semver are skipped, not errors.
func (r ResolverCore) Resolve(ctx context.Context, crate string, constraint string) (string, *string, error) {
	if r.Registry == nil {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("resolver requires a registry port")
	}

	available, err := r.Registry.Versions(ctx, crate)
	if err != nil {
		return "", nil, err
	}

	reqStr := constraint
	if reqStr == types.VersionUnspecified {
		reqStr = ">=0"
	}
	req, err := semver.NewConstraint(normalizeCargoRequirement(reqStr))
	if err != nil {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("semver parse error: %v (constraint=%s)", err, constraint)).
			WithCause(err)
	}

	var best *semver.Version
	var bestLicense *string
	for _, candidate := range available {
		parsed, err := semver.NewVersion(candidate.Num)
		if err != nil {
			continue
		}
		if !req.Check(parsed) {
			continue
		}
		if best == nil || parsed.GreaterThan(best) {
			best = parsed
			bestLicense = candidate.License
		}
	}
	if best == nil {
		return "", nil, errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("no registry versions matched constraint=%s", constraint))
	}

	log.Ctx(ctx).Debug().
		Str("crate", crate).
		Str("constraint", constraint).
		Str("matched", best.Original()).
		Msg("resolved best matching version")
	return best.Original(), bestLicense, nil
}

// normalizeCargoRequirement rewrites bare requirements to caret form.
// Cargo reads "1.2" as ">=1.2.0, <2.0.0", while the range grammar here
// would read it as the narrower "1.2.x". Operator and wildcard forms
// already carry the same meaning in both grammars and pass through
// untouched. Comma-separated parts are normalized independently.
func normalizeCargoRequirement(raw string) string {
	parts := strings.Split(raw, ",")
	for i, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" || trimmed[0] < '0' || trimmed[0] > '9' {
			continue
		}
		if hasVersionWildcard(trimmed) {
			continue
		}
		parts[i] = "^" + trimmed
	}
	return strings.Join(parts, ",")
}

// hasVersionWildcard reports whether any numeric field of the version
// core (before build/pre-release metadata) is a wildcard.
func hasVersionWildcard(version string) bool {
	core := version
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	for _, field := range strings.Split(core, ".") {
		if field == "*" || field == "x" || field == "X" {
			return true
		}
	}
	return false
}
