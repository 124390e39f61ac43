// Package config loads and saves the adb-autoconnect configuration file.
//
// The file is optional. When it is missing, Default values are used, and
// any value set on the command line overrides the file.
//
// # Configuration File Location
//
// The configuration file is stored in platform-appropriate locations:
//   - Linux: $XDG_CONFIG_HOME/adb-autoconnect/config.yaml or $HOME/.config/adb-autoconnect/config.yaml
//   - macOS: $HOME/.config/adb-autoconnect/config.yaml
//   - Windows: %LOCALAPPDATA%\adb-autoconnect\config.yaml
//
// # Example
//
//	version: 1
//	adb_path: /opt/platform-tools/adb
//	timeout_ms: 20000
//	poll_interval_ms: 1000
//	command_timeout_ms: 0
//	source: adb
//	openscreen: true
//
// Keys left out of the file keep their default values.
package config
