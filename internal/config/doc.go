// Package config loads, defaults, and validates flacmirror settings.
//
// Settings come from an optional TOML file (default
// ~/.config/flacmirror/config.toml) overlaid onto repository defaults;
// command-line flags override both. Always obtain settings through this
// package so downstream code sees validated values.
package config
