package app

import (
	"context"

	"crate-licenses/internal/types"
)

type fakeManifest struct {
	deps []types.Dependency
	err  error
}

func (f fakeManifest) LoadDependencies(string, bool, bool, bool) ([]types.Dependency, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.deps, nil
}

type fakeRegistry struct {
	versions map[string][]types.RegistryVersion
	err      error
}

func (f fakeRegistry) Versions(_ context.Context, crate string) ([]types.RegistryVersion, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.versions[crate], nil
}

type fakePolicyFile struct {
	policy types.LicensePolicy
	err    error
}

func (f fakePolicyFile) LoadPolicy(string) (types.LicensePolicy, error) {
	if f.err != nil {
		return types.LicensePolicy{}, f.err
	}
	return f.policy, nil
}

func strPtr(s string) *string { return &s }
