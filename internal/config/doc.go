// Package config loads, normalizes, and validates paperdesk configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PAPERDESK_DATA_DIR. Always obtain settings through this package so the
// store, logger and duplicate checks see sanitized paths and clear
// validation errors.
package config
