// Package flags provides helpers for binding validated choice flags to Cobra commands.
package flags

import (
	"fmt"
	"strings"
)

const (
	choicePlaceholderPrefix     = "<"
	choicePlaceholderSuffix     = ">"
	choiceSeparatorLiteral      = "|"
	choiceUsageEmptyTemplate    = "`%s`"
	choiceUsageFullTemplate     = "`%s` %s"
	choiceTypeNameConstant      = "string"
	invalidChoiceErrorTemplate  = "invalid value %q (allowed: %s)"
	allowedChoicesJoinSeparator = ", "
)

// FormatChoiceUsage builds a usage string where the default option is capitalized inside a placeholder.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := buildChoicePlaceholder(defaultChoice, choices)
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, description)
}

// ChoiceValue is a pflag.Value that accepts one of a fixed set of case-insensitive choices.
type ChoiceValue struct {
	target  *string
	choices []string
}

// NewChoiceValue binds target to a flag restricted to choices.
func NewChoiceValue(target *string, choices []string) *ChoiceValue {
	return &ChoiceValue{target: target, choices: normalizeChoices(choices)}
}

// String returns the current value.
func (value *ChoiceValue) String() string {
	if value == nil || value.target == nil {
		return ""
	}
	return *value.target
}

// Set validates and stores a lower-cased choice.
func (value *ChoiceValue) Set(candidate string) error {
	normalized := strings.ToLower(strings.TrimSpace(candidate))
	for _, choice := range value.choices {
		if choice == normalized {
			*value.target = normalized
			return nil
		}
	}
	return fmt.Errorf(invalidChoiceErrorTemplate, candidate, strings.Join(value.choices, allowedChoicesJoinSeparator))
}

// Type reports the flag type shown in help output.
func (value *ChoiceValue) Type() string {
	return choiceTypeNameConstant
}

func buildChoicePlaceholder(defaultChoice string, choices []string) string {
	highlightedChoices := highlightDefaultChoice(defaultChoice, choices)
	return choicePlaceholderPrefix + strings.Join(highlightedChoices, choiceSeparatorLiteral) + choicePlaceholderSuffix
}

func highlightDefaultChoice(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	normalizedChoices := normalizeChoices(choices)
	highlighted := make([]string, 0, len(normalizedChoices))
	for _, choice := range normalizedChoices {
		if choice == normalizedDefault {
			highlighted = append(highlighted, strings.ToUpper(choice))
			continue
		}
		highlighted = append(highlighted, choice)
	}
	return highlighted
}

func normalizeChoices(choices []string) []string {
	normalized := make([]string, 0, len(choices))
	seen := make(map[string]struct{}, len(choices))
	for _, choice := range choices {
		candidate := strings.ToLower(strings.TrimSpace(choice))
		if len(candidate) == 0 {
			continue
		}
		if _, exists := seen[candidate]; exists {
			continue
		}
		seen[candidate] = struct{}{}
		normalized = append(normalized, candidate)
	}
	return normalized
}
