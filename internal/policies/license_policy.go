package policies

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"crate-licenses/internal/types"
)

// licenseOperatorReplacer flattens SPDX-style boolean operators to a
// single separator. Nested grouping is not interpreted: an expression
// like "(MIT AND Apache-2.0)" decomposes into its atomic identifiers,
// which is what the deny/allow rules operate on.
var licenseOperatorReplacer = strings.NewReplacer(
	" OR ", "|",
	" or ", "|",
	" AND ", "|",
	" and ", "|",
)

// TokenizeLicenseExpression splits a compound license expression into
// atomic license identifiers. Tokens are trimmed of surrounding
// whitespace and parentheses; empty tokens are dropped.
func TokenizeLicenseExpression(expr string) []string {
	normalized := licenseOperatorReplacer.Replace(expr)
	var tokens []string
	for _, part := range strings.Split(normalized, "|") {
		token := strings.TrimFunc(part, func(r rune) bool {
			return unicode.IsSpace(r) || r == '(' || r == ')'
		})
		if token == "" {
			continue
		}
		tokens = append(tokens, token)
	}
	return tokens
}

// ExpandLicenseList tokenizes every user-supplied deny/allow entry so a
// compound entry like "MIT OR Apache-2.0" contributes two independent
// tokens to the final list.
func ExpandLicenseList(entries []string) []string {
	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, TokenizeLicenseExpression(entry)...)
	}
	return expanded
}

// CheckLicenses validates every report's license tokens against the
// deny and allow lists. Both lists are expanded through the tokenizer
// first. All violations across all reports are accumulated before
// failing; an empty deny and empty allow list always passes.
func CheckLicenses(reports []types.LicenseReport, deny []string, allow []string) error {
	denySet := tokenSet(ExpandLicenseList(deny))
	allowSet := tokenSet(ExpandLicenseList(allow))

	var violations []string
	for _, report := range reports {
		tokens := TokenizeLicenseExpression(report.License)
		if len(denySet) > 0 {
			for _, token := range tokens {
				if _, found := denySet[token]; found {
					violations = append(violations, fmt.Sprintf(
						"Crate '%s': sub-license '%s' is in the deny list.",
						report.CrateName, token,
					))
				}
			}
		}
		if len(allowSet) > 0 {
			for _, token := range tokens {
				if _, found := allowSet[token]; !found {
					violations = append(violations, fmt.Sprintf(
						"Crate '%s': sub-license '%s' is NOT in the allow list.",
						report.CrateName, token,
					))
				}
			}
		}
	}

	if len(violations) > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("License check found these violations:\n%s", strings.Join(violations, "\n")))
	}
	return nil
}

func tokenSet(tokens []string) map[string]struct{} {
	set := map[string]struct{}{}
	for _, token := range tokens {
		set[token] = struct{}{}
	}
	return set
}
