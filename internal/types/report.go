package types

// VersionUnspecified is the sentinel constraint recorded when a manifest
// entry declares no version requirement. The resolver treats it as ">=0".
const VersionUnspecified = "unspecified"

// VersionUnknown marks a report row whose resolution failed.
const VersionUnknown = "unknown"

// NoLicenseListed is recorded when the registry reports a version
// without any declared license.
const NoLicenseListed = "No license listed"

// Dependency is one direct dependency declared in the manifest.
// Duplicates across dependency groups are collapsed by (Name, VersionReq).
type Dependency struct {
	Name       string
	VersionReq string
}

// RegistryVersion is one published version of a crate as reported by the
// registry. License is nil when the publisher declared none.
type RegistryVersion struct {
	Num     string  `json:"num"`
	License *string `json:"license"`
}

// LicenseReport is the resolved outcome for a single dependency. When
// resolution fails, MatchedVersion is VersionUnknown and License carries
// the failure message.
type LicenseReport struct {
	CrateName      string `json:"crate_name"`
	MatchedVersion string `json:"matched_version"`
	License        string `json:"license"`
}
