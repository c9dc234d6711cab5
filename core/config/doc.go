// Package config loads and composes the application configuration.
//
// Configuration is environment-first: a .env file is loaded when present
// (development convenience), then environment variables override struct-tag
// defaults. Nested keys map to underscore-separated variables, e.g.
// STORAGE_BUCKET -> storage.bucket.
//
// Each core package owns its partial Config struct; this package only
// composes them and drives Viper.
package config
