// Package config loads and validates application configuration from
// environment variables and an optional config file. Environment variables
// with the TASKFORGE_ prefix take precedence over file values.
package config
