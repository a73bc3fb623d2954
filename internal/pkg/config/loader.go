package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// LoadResult represents the result of loading a configuration value.
// Value holds the loaded value (possibly the default), Warnings holds one
// message per fallback applied, and FallbackApplied reports whether the
// default was used because the environment value failed validation.
type LoadResult struct {
	Value           interface{}
	Warnings        []string
	FallbackApplied bool
}

// LoadEnvString loads a string from an environment variable, returning the
// default when unset. No validation is performed.
func LoadEnvString(envKey, defaultValue string) string {
	value := os.Getenv(envKey)
	if value == "" {
		return defaultValue
	}
	return value
}

// LoadEnvWithFallback loads a string with validation. An unset variable uses
// the default silently; a set-but-invalid value uses the default with a
// warning. Never returns an error.
func LoadEnvWithFallback(envKey, defaultValue string, validator func(string) error) LoadResult {
	value := os.Getenv(envKey)
	if value == "" {
		return LoadResult{Value: defaultValue}
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fallbackResult(envKey, value, defaultValue, err)
		}
	}

	return LoadResult{Value: value}
}

// LoadEnvDuration loads a time.Duration with parsing and validation,
// falling back to the default on either failure.
func LoadEnvDuration(envKey string, defaultValue time.Duration, validator func(time.Duration) error) LoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return LoadResult{Value: defaultValue}
	}

	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return fallbackResult(envKey, valueStr, defaultValue, err)
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fallbackResult(envKey, valueStr, defaultValue, err)
		}
	}

	return LoadResult{Value: value}
}

// LoadEnvInt loads an int with parsing and validation, falling back to the
// default on either failure.
func LoadEnvInt(envKey string, defaultValue int, validator func(int) error) LoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return LoadResult{Value: defaultValue}
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return fallbackResult(envKey, valueStr, defaultValue, err)
	}

	if validator != nil {
		if err := validator(value); err != nil {
			return fallbackResult(envKey, valueStr, defaultValue, err)
		}
	}

	return LoadResult{Value: value}
}

// LoadEnvBool loads a bool via strconv.ParseBool, falling back to the
// default on a parse failure.
func LoadEnvBool(envKey string, defaultValue bool) LoadResult {
	valueStr := os.Getenv(envKey)
	if valueStr == "" {
		return LoadResult{Value: defaultValue}
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return fallbackResult(envKey, valueStr, defaultValue, err)
	}

	return LoadResult{Value: value}
}

func fallbackResult(envKey, raw string, defaultValue interface{}, err error) LoadResult {
	warning := fmt.Sprintf("Invalid %s='%s': %v, falling back to default '%v'",
		envKey, raw, err, defaultValue)
	return LoadResult{
		Value:           defaultValue,
		Warnings:        []string{warning},
		FallbackApplied: true,
	}
}
