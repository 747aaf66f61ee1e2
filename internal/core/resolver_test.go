package core

import (
	"context"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crate-licenses/internal/types"
)

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

func strPtr(s string) *string { return &s }

func registryWith(crate string, versions ...types.RegistryVersion) fakeRegistry {
	return fakeRegistry{versions: map[string][]types.RegistryVersion{crate: versions}}
}

func TestResolveSelectsHighestSatisfying(t *testing.T) {
	resolver := NewResolverCore(registryWith("serde",
		types.RegistryVersion{Num: "1.0.0", License: strPtr("MIT")},
		types.RegistryVersion{Num: "1.2.0", License: strPtr("MIT OR Apache-2.0")},
		types.RegistryVersion{Num: "2.0.0", License: strPtr("Apache-2.0")},
	))

	matched, license, err := resolver.Resolve(t.Context(), "serde", "^1")
	require.NoError(t, err)
	assert.Equal(t, "1.2.0", matched)
	require.NotNil(t, license)
	assert.Equal(t, "MIT OR Apache-2.0", *license)
}

func TestResolveBareRequirementIsCaret(t *testing.T) {
	// Cargo treats "1.0.0" as ">=1.0.0, <2.0.0", not an exact match.
	resolver := NewResolverCore(registryWith("serde",
		types.RegistryVersion{Num: "1.0.0", License: strPtr("MIT")},
		types.RegistryVersion{Num: "1.4.0", License: strPtr("MIT OR Apache-2.0")},
		types.RegistryVersion{Num: "2.0.0", License: strPtr("Apache-2.0")},
	))

	matched, license, err := resolver.Resolve(t.Context(), "serde", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", matched)
	require.NotNil(t, license)
	assert.Equal(t, "MIT OR Apache-2.0", *license)
}

func TestResolveBareMinorRequirementIsCaret(t *testing.T) {
	// "1.2" spans the whole major, not just the 1.2 patch series.
	resolver := NewResolverCore(registryWith("serde",
		types.RegistryVersion{Num: "1.2.0", License: strPtr("MIT")},
		types.RegistryVersion{Num: "1.9.0", License: strPtr("MIT")},
		types.RegistryVersion{Num: "2.0.0", License: strPtr("MIT")},
	))

	matched, _, err := resolver.Resolve(t.Context(), "serde", "1.2")
	require.NoError(t, err)
	assert.Equal(t, "1.9.0", matched)
}

func TestResolveBareZeroMinorStaysInMinor(t *testing.T) {
	// Caret on a 0.x requirement pins the minor: "0.8" excludes 0.9.
	resolver := NewResolverCore(registryWith("rand",
		types.RegistryVersion{Num: "0.8.5", License: strPtr("MIT")},
		types.RegistryVersion{Num: "0.9.0", License: strPtr("MIT")},
	))

	matched, _, err := resolver.Resolve(t.Context(), "rand", "0.8")
	require.NoError(t, err)
	assert.Equal(t, "0.8.5", matched)
}

func TestResolveOperatorAndWildcardRequirementsUntouched(t *testing.T) {
	resolver := NewResolverCore(registryWith("serde",
		types.RegistryVersion{Num: "1.0.0", License: strPtr("MIT")},
		types.RegistryVersion{Num: "1.4.0", License: strPtr("MIT")},
		types.RegistryVersion{Num: "2.0.0", License: strPtr("MIT")},
	))

	matched, _, err := resolver.Resolve(t.Context(), "serde", "=1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", matched)

	matched, _, err = resolver.Resolve(t.Context(), "serde", "1.*")
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", matched)

	matched, _, err = resolver.Resolve(t.Context(), "serde", ">=1.0, <2.0")
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", matched)
}

func TestNormalizeCargoRequirement(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "bare full", raw: "1.0.210", want: "^1.0.210"},
		{name: "bare minor", raw: "1.2", want: "^1.2"},
		{name: "bare major", raw: "1", want: "^1"},
		{name: "caret kept", raw: "^1.2", want: "^1.2"},
		{name: "tilde kept", raw: "~1.2.3", want: "~1.2.3"},
		{name: "operator kept", raw: ">=0", want: ">=0"},
		{name: "wildcard kept", raw: "1.*", want: "1.*"},
		{name: "x wildcard kept", raw: "1.x", want: "1.x"},
		{name: "comma parts", raw: ">=1.0, <2.0", want: ">=1.0, <2.0"},
		{name: "bare with prerelease", raw: "1.0.0-beta.1", want: "^1.0.0-beta.1"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeCargoRequirement(tt.raw))
		})
	}
}

func TestResolveUnspecifiedConstraintAcceptsAny(t *testing.T) {
	resolver := NewResolverCore(registryWith("rand",
		types.RegistryVersion{Num: "0.8.5", License: strPtr("MIT")},
		types.RegistryVersion{Num: "0.9.0", License: nil},
	))

	matched, license, err := resolver.Resolve(t.Context(), "rand", types.VersionUnspecified)
	require.NoError(t, err)
	assert.Equal(t, "0.9.0", matched)
	assert.Nil(t, license)
}

func TestResolveSkipsUnparsableVersions(t *testing.T) {
	resolver := NewResolverCore(registryWith("oddball",
		types.RegistryVersion{Num: "not-a-version", License: strPtr("MIT")},
		types.RegistryVersion{Num: "1.1.0", License: strPtr("MIT")},
	))

	matched, _, err := resolver.Resolve(t.Context(), "oddball", ">=1")
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", matched)
}

func TestResolveInvalidConstraint(t *testing.T) {
	resolver := NewResolverCore(registryWith("serde",
		types.RegistryVersion{Num: "1.0.0", License: strPtr("MIT")},
	))

	_, _, err := resolver.Resolve(t.Context(), "serde", "not a constraint!!!")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestResolveNoMatchingVersion(t *testing.T) {
	resolver := NewResolverCore(registryWith("serde",
		types.RegistryVersion{Num: "2.0.0", License: strPtr("MIT")},
	))

	_, _, err := resolver.Resolve(t.Context(), "serde", "^1")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))
	assert.Contains(t, err.Error(), "no registry versions matched")
}

func TestResolveRegistryErrorPropagates(t *testing.T) {
	registryErr := errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("registry returned status 500")
	resolver := NewResolverCore(fakeRegistry{err: registryErr})

	_, _, err := resolver.Resolve(t.Context(), "serde", "^1")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
}

func TestResolveRequiresRegistry(t *testing.T) {
	resolver := ResolverCore{}
	_, _, err := resolver.Resolve(t.Context(), "serde", "^1")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
