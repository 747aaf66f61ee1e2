package policies

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crate-licenses/internal/types"
)

// ---------------------------------------------------------------------------
// TokenizeLicenseExpression
// ---------------------------------------------------------------------------

func TestTokenizeLicenseExpression(t *testing.T) {
	cases := []struct {
		name string
		expr string
		want []string
	}{
		{name: "or expression", expr: "MIT OR Apache-2.0", want: []string{"MIT", "Apache-2.0"}},
		{name: "parenthesized and", expr: "(MIT AND Apache-2.0)", want: []string{"MIT", "Apache-2.0"}},
		{name: "single token", expr: "MIT", want: []string{"MIT"}},
		{name: "empty", expr: "", want: nil},
		{name: "lowercase operators", expr: "MIT or Apache-2.0 and BSD-3-Clause", want: []string{"MIT", "Apache-2.0", "BSD-3-Clause"}},
		{name: "extra whitespace", expr: "  MIT OR  Apache-2.0 ", want: []string{"MIT", "Apache-2.0"}},
		{name: "only parens", expr: "()", want: nil},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizeLicenseExpression(tt.expr)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected tokens (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExpandLicenseList(t *testing.T) {
	got := ExpandLicenseList([]string{"MIT OR Apache-2.0", "GPL-3.0"})
	if diff := cmp.Diff([]string{"MIT", "Apache-2.0", "GPL-3.0"}, got); diff != "" {
		t.Fatalf("unexpected expansion (-want +got):\n%s", diff)
	}
}

// ---------------------------------------------------------------------------
// CheckLicenses
// ---------------------------------------------------------------------------

func TestCheckLicensesEmptyPolicyAlwaysPasses(t *testing.T) {
	reports := []types.LicenseReport{
		{CrateName: "a", MatchedVersion: "1.0.0", License: "GPL-3.0"},
		{CrateName: "b", MatchedVersion: "unknown", License: "Failed: network error"},
	}
	require.NoError(t, CheckLicenses(reports, nil, nil))
}

func TestCheckLicensesDenySingleTokenOfCompound(t *testing.T) {
	reports := []types.LicenseReport{
		{CrateName: "somecrate", MatchedVersion: "1.0.0", License: "GPL-3.0 OR MIT"},
	}
	err := CheckLicenses(reports, []string{"GPL-3.0"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Crate 'somecrate': sub-license 'GPL-3.0' is in the deny list.")
	assert.NotContains(t, err.Error(), "'MIT'")
}

func TestCheckLicensesAllowMissingToken(t *testing.T) {
	reports := []types.LicenseReport{
		{CrateName: "somecrate", MatchedVersion: "1.0.0", License: "MIT AND Apache-2.0"},
	}
	err := CheckLicenses(reports, nil, []string{"MIT"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Crate 'somecrate': sub-license 'Apache-2.0' is NOT in the allow list.")
}

func TestCheckLicensesAllowSatisfied(t *testing.T) {
	reports := []types.LicenseReport{
		{CrateName: "a", MatchedVersion: "1.0.0", License: "MIT OR Apache-2.0"},
	}
	require.NoError(t, CheckLicenses(reports, nil, []string{"MIT OR Apache-2.0"}))
}

func TestCheckLicensesAccumulatesAllViolations(t *testing.T) {
	reports := []types.LicenseReport{
		{CrateName: "a", MatchedVersion: "1.0.0", License: "GPL-3.0"},
		{CrateName: "b", MatchedVersion: "2.0.0", License: "AGPL-3.0"},
		{CrateName: "c", MatchedVersion: "3.0.0", License: "MIT"},
	}
	err := CheckLicenses(reports, []string{"GPL-3.0", "AGPL-3.0"}, []string{"MIT"})
	require.Error(t, err)
	violations := 0
	for _, line := range strings.Split(err.Error(), "\n") {
		if strings.Contains(line, "sub-license") {
			violations++
		}
	}
	// a and b each hit the deny list and miss the allow list; c passes.
	assert.Equal(t, 4, violations)
}

func TestCheckLicensesCompoundDenyEntryExpanded(t *testing.T) {
	reports := []types.LicenseReport{
		{CrateName: "a", MatchedVersion: "1.0.0", License: "Apache-2.0"},
	}
	err := CheckLicenses(reports, []string{"MIT OR Apache-2.0"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'Apache-2.0' is in the deny list")
}
