package app

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"

	"crate-licenses/internal/adapters"
	"crate-licenses/internal/ports"
	"crate-licenses/internal/types"
)

type Service struct {
	Manifest   ports.ManifestPort
	Registry   ports.RegistryPort
	PolicyFile ports.PolicyFilePort
}

func NewService() Service {
	return Service{
		Manifest:   adapters.NewManifestTomlAdapter(),
		Registry:   adapters.NewRegistryHTTPAdapter(),
		PolicyFile: adapters.NewPolicyFileAdapter(),
	}
}

// loadDependencies is the shared front half of every operation: read
// the manifest and return the deduplicated direct dependency list.
func (s Service) loadDependencies(ctx context.Context, manifestPath string, includeDev bool, includeBuild bool, skipOptional bool) ([]types.Dependency, error) {
	assert.NotEmpty(ctx, manifestPath, "manifest path must be set")
	return s.Manifest.LoadDependencies(manifestPath, includeDev, includeBuild, skipOptional)
}
