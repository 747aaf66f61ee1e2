package ports

import (
	"context"

	"crate-licenses/internal/types"
)

type RegistryPort interface {
	Versions(ctx context.Context, crate string) ([]types.RegistryVersion, error)
}
