// Package config loads, normalizes, and validates voxnote configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// VOXNOTE_MODEL and VOXNOTE_LANGUAGE. The Config type centralizes every knob
// the CLI needs: where state and logs live, which WhisperX model and device
// to use, and how to log.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
