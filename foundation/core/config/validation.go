// File: validation.go
// Title: Configuration Validation
// Description: Rule-based validation of configuration values: required keys,
//              value types, integer bounds and allowed string values.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-17
// Modified: 2026-10-17
//
// Change History:
// - 2026-10-17 v0.1.0: Initial validation rules

package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/magres/foundation/core/error"
)

// ValidationRule defines validation criteria for one configuration value
type ValidationRule struct {
	Required bool     // Whether the key must be present
	Type     string   // Expected type: "string", "int" or "bool"
	Min      *int     // Inclusive lower bound for ints
	Max      *int     // Inclusive upper bound for ints
	OneOf    []string // Allowed values for strings, compared case-insensitively
}

// ValidationRules maps configuration keys to their validation rules
type ValidationRules map[string]ValidationRule

// ValidationResult collects every violation found by Validate
type ValidationResult struct {
	Errors []error
}

// Valid reports whether no rule was violated
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns nil for a valid result, otherwise one structured error
// listing all violations
func (r *ValidationResult) Err() error {
	if r.Valid() {
		return nil
	}
	msgs := make([]string, len(r.Errors))
	for i, err := range r.Errors {
		msgs[i] = err.Error()
	}
	return mdwerror.New("invalid configuration: "+strings.Join(msgs, "; ")).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("violations", len(msgs))
}

// IntPtr returns a pointer to v, for use in ValidationRule bounds
func IntPtr(v int) *int {
	return &v
}

// Validate checks the configuration against rules. Keys are visited in
// sorted order so the result is stable.
func (c *Config) Validate(rules ValidationRules) *ValidationResult {
	keys := make([]string, 0, len(rules))
	for k := range rules {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := &ValidationResult{}
	for _, key := range keys {
		if err := c.validateField(key, rules[key]); err != nil {
			result.Errors = append(result.Errors, err)
		}
	}
	return result
}

func (c *Config) validateField(key string, rule ValidationRule) error {
	if !c.Has(key) {
		if rule.Required {
			return fmt.Errorf("%s: required", key)
		}
		return nil
	}

	switch rule.Type {
	case "int":
		raw := c.GetString(key)
		n, err := strconv.Atoi(raw)
		if err != nil {
			return fmt.Errorf("%s: expected integer, got %q", key, raw)
		}
		if rule.Min != nil && n < *rule.Min {
			return fmt.Errorf("%s: %d is below minimum %d", key, n, *rule.Min)
		}
		if rule.Max != nil && n > *rule.Max {
			return fmt.Errorf("%s: %d is above maximum %d", key, n, *rule.Max)
		}
	case "bool":
		raw := c.GetString(key)
		if _, err := strconv.ParseBool(raw); err != nil {
			return fmt.Errorf("%s: expected boolean, got %q", key, raw)
		}
	case "string", "":
		if len(rule.OneOf) == 0 {
			return nil
		}
		value := strings.ToLower(c.GetString(key))
		for _, allowed := range rule.OneOf {
			if value == strings.ToLower(allowed) {
				return nil
			}
		}
		return fmt.Errorf("%s: %q is not one of %s", key, value, strings.Join(rule.OneOf, ", "))
	default:
		return fmt.Errorf("%s: unknown rule type %q", key, rule.Type)
	}
	return nil
}
