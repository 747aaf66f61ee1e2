package ports

import "crate-licenses/internal/types"

type PolicyFilePort interface {
	LoadPolicy(path string) (types.LicensePolicy, error)
}
