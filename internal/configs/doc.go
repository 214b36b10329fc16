// Package configs manages tokn's on-disk locations and user configuration.
//
// # Locations
//
// Two directories are resolved once at startup:
//
//   - Config directory: os.UserConfigDir()/tokn, holding config.toml
//   - Data directory: $XDG_DATA_HOME/tokn (or ~/.local/share/tokn), holding
//     profiles.json, the secrets/ directory used by file backends and the
//     audit.jsonl trail
//
// Setting TOKN_HOME places both directories under a single root, which is
// handy for portable installs and for tests.
//
// # User Configuration
//
// config.toml is optional. A missing file yields Defaults():
//
//	[vault]
//	service_name = "tokn"            # keychain service and secret key prefix
//	keychain_command = "security"    # macOS keystore binary
//
//	[export]
//	include_secrets = false          # default for `tokn profile export`
//
//	[profiles]
//	default = ""                     # profile used when a command omits one
package configs
