// Package config loads the YAML configuration of the sparsegrid command.
//
// Values missing from the file keep their defaults. Object store
// credentials are only read from the environment.
package config
