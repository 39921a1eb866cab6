// Package config loads reclog's optional configuration file.
//
// The file may be YAML (.yaml, .yml) or TOML (.toml). Environment
// variables written as ${VAR} are expanded before parsing. Settings absent
// from the file keep the values from Default.
//
// Example (YAML):
//
//	database:
//	  path: ${HOME}/notes/records.db
//	  container: main
//	  normalize_keys: true
//	editor:
//	  command: vim
//	logger:
//	  key_format: unique
//	logging:
//	  level: debug
package config
