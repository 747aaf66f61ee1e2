package adapters

import (
	"os"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"crate-licenses/internal/types"
)

// PolicyFileAdapter loads a deny/allow policy from a YAML file. Entries
// may be compound expressions; expansion happens at check time.
type PolicyFileAdapter struct{}

func NewPolicyFileAdapter() PolicyFileAdapter {
	return PolicyFileAdapter{}
}

func (a PolicyFileAdapter) LoadPolicy(path string) (types.LicensePolicy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.LicensePolicy{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("policy file not found").
			WithCause(err)
	}
	var policy types.LicensePolicy
	if err := yaml.Unmarshal(data, &policy); err != nil {
		return types.LicensePolicy{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse policy file").
			WithCause(err)
	}
	return policy, nil
}
