// Package config loads and validates construction-time tuning for a
// control loop: PID gains per position derivative, filter parameters,
// gear ratios, and the loop's infrastructure settings.
//
// Configuration is plain JSON, checked twice: structurally against an
// embedded JSON Schema, then semantically through Validate methods.
// Nothing is hot-reloaded; a config is read once and handed to
// constructors.
package config
