// Package validation provides struct-tag validation for configuration
// types, built on go-playground/validator.
package validation
