// Package config provides configuration and local state for orgctl.
//
// Three kinds of files live here:
//
//   - config.toml under the config dir: API host, auth token, defaults
//     for dev hub, duration and the readiness retry budget.
//   - One JSON metadata file per provisioned org under the state dir,
//     keyed by alias.
//   - Scratch org definition files (JSON), passed by the user per
//     invocation.
//
// Aliases are validated before being used as file names, and metadata
// paths are resolved with securejoin so a hostile alias cannot escape
// the orgs directory.
package config
