package ports

import "crate-licenses/internal/types"

type OutputPort interface {
	WriteMarkdown(reports []types.LicenseReport) (string, error)
	WriteJSON(reports []types.LicenseReport) (string, error)
}
