package types

// LicensePolicy is the on-disk deny/allow policy loaded via --policy.
// Entries may be compound expressions ("MIT OR Apache-2.0"); they are
// expanded into atomic tokens before checking.
type LicensePolicy struct {
	Deny  []string `yaml:"deny,omitempty"`
	Allow []string `yaml:"allow,omitempty"`
}
