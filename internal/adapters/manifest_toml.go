package adapters

import (
	"os"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"

	"crate-licenses/internal/types"
)

// ManifestTomlAdapter reads direct dependencies from a Cargo.toml
// manifest. Only the three top-level dependency tables are consulted;
// workspace and target-specific tables are out of scope.
type ManifestTomlAdapter struct{}

func NewManifestTomlAdapter() ManifestTomlAdapter {
	return ManifestTomlAdapter{}
}

type manifestFile struct {
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

func (a ManifestTomlAdapter) LoadDependencies(path string, includeDev bool, includeBuild bool, skipOptional bool) ([]types.Dependency, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("manifest file not found").
			WithCause(err)
	}
	var manifest manifestFile
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse manifest").
			WithCause(err)
	}

	var all []types.Dependency
	all = append(all, dependenciesFromTable(manifest.Dependencies, skipOptional)...)
	if includeDev {
		all = append(all, dependenciesFromTable(manifest.DevDependencies, skipOptional)...)
	}
	if includeBuild {
		all = append(all, dependenciesFromTable(manifest.BuildDependencies, skipOptional)...)
	}

	return dedupeDependencies(all), nil
}

// dependenciesFromTable accepts the three value shapes a dependency
// entry may take: a bare constraint string, a table with an optional
// "version" key, or anything else (recorded as unspecified). Entries
// with optional=true are dropped when skipOptional is set.
func dependenciesFromTable(table map[string]any, skipOptional bool) []types.Dependency {
	names := make([]string, 0, len(table))
	for name := range table {
		names = append(names, name)
	}
	sort.Strings(names)

	var deps []types.Dependency
	for _, name := range names {
		switch value := table[name].(type) {
		case string:
			deps = append(deps, types.Dependency{Name: name, VersionReq: value})
		case map[string]any:
			if skipOptional {
				if optional, ok := value["optional"].(bool); ok && optional {
					continue
				}
			}
			versionReq := types.VersionUnspecified
			if version, ok := value["version"].(string); ok {
				versionReq = version
			}
			deps = append(deps, types.Dependency{Name: name, VersionReq: versionReq})
		default:
			deps = append(deps, types.Dependency{Name: name, VersionReq: types.VersionUnspecified})
		}
	}
	return deps
}

// dedupeDependencies collapses entries that appear in multiple
// dependency groups with the same (name, constraint) pair, keeping
// first-seen order.
func dedupeDependencies(deps []types.Dependency) []types.Dependency {
	seen := map[types.Dependency]struct{}{}
	var unique []types.Dependency
	for _, dep := range deps {
		if _, found := seen[dep]; found {
			continue
		}
		seen[dep] = struct{}{}
		unique = append(unique, dep)
	}
	return unique
}
