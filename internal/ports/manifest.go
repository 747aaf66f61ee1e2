package ports

import "crate-licenses/internal/types"

type ManifestPort interface {
	LoadDependencies(path string, includeDev bool, includeBuild bool, skipOptional bool) ([]types.Dependency, error)
}
