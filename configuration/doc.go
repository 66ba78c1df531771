// Package configuration assembles the validated service configuration from
// layered YAML files.
//
// Configuration is assembled in the following priority order (later sources
// override earlier ones at every leaf):
//  1. Built-in defaults ([Defaults])
//  2. <dir>/index.yaml (required)
//  3. <dir>/node.<NODE_ENV>.yaml (optional)
//
// The merged [Tree] is then decoded onto a struct pre-populated with schema
// defaults and checked against the schema rules; every violation is reported
// at once through [*ValidationError].
//
// The main entry point is [Assemble].
package configuration
