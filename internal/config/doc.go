// Package config defines optional tool settings loaded from a YAML file.
//
// Both binaries accept -c/--config; when the file is absent the built-in
// defaults apply, so the tools work with no configuration at all. Settings
// cover log level, prettify defaults and batch error handling; there are no
// environment variables.
package config
