// Package configs manages user configuration and document-location
// settings for Totara.
//
// Configuration is stored as TOML at ~/.config/totara/config.toml (or the
// platform equivalent of the user config directory). It records:
//
//   - User identity: a UUID generated on first use, recorded in audit
//     log entries
//   - Settings: the keys directory, the secrets directory, and the
//     prefix/suffix used to compose per-environment document names
//
// # Environment Overrides
//
// A handful of environment variables override the stored settings, looked
// up through an injected function rather than ambient os.Getenv calls:
//
//   - TOTARA_KEYDIR: the keys directory
//   - TOTARA_PRIVATE_KEY: a hex private key consulted before the keydir
//
// The core document packages never see any of this; they receive explicit
// paths and resolvers built from a Settings value.
package configs
