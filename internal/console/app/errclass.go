package app

import (
	"fmt"
	"strings"
)

// providerErrorRule maps provider error wording to an expanded, actionable
// explanation. The patterns are substring checks against the provider's
// reported detail — heuristic and non-exhaustive by design, so a provider
// wording change can stop a rule from firing. Rules are tried in order and
// the first match wins; an unmatched detail passes through unchanged.
type providerErrorRule struct {
	patterns []string
	explain  func(from, to string) string
}

var providerErrorRules = []providerErrorRule{
	{
		patterns: []string{"Invalid source number", "source number"},
		explain: func(from, to string) string {
			return fmt.Sprintf("Invalid source number (%s). Please verify in Telnyx Portal:\n", from) +
				"1. Go to Numbers section and verify the number is active\n" +
				"2. Check that the number is enabled for SMS messaging\n" +
				"3. Ensure the number is not attached to a messaging profile that only supports alphanumeric\n" +
				"4. If attached to a profile, ensure the profile allows phone number as sender ID"
		},
	},
	{
		patterns: []string{"alphanumeric sender ID", "messaging profile"},
		explain: func(from, to string) string {
			return fmt.Sprintf("Messaging Profile Error for %s:\n", from) +
				"The number is attached to a messaging profile that's configured for alphanumeric sender IDs only.\n\n" +
				"SOLUTION: In Telnyx Portal:\n" +
				"1. Go to Messaging > Messaging Profiles\n" +
				fmt.Sprintf("2. Find the profile attached to %s\n", from) +
				"3. Edit the profile and ensure it allows phone numbers as sender IDs\n" +
				"4. OR remove the number from the messaging profile\n" +
				"5. OR create a new profile that supports phone numbers"
		},
	},
	{
		patterns: []string{"destination", "to"},
		explain: func(from, to string) string {
			return fmt.Sprintf("Invalid destination number (%s). Please check the number format.", to)
		},
	},
	{
		patterns: []string{"insufficient", "balance"},
		explain: func(from, to string) string {
			return "Insufficient balance in Telnyx account. Please add credits."
		},
	},
	{
		patterns: []string{"rate limit", "throttle"},
		explain: func(from, to string) string {
			return "Rate limit exceeded. Please wait a moment and try again."
		},
	},
}

// classifyProviderDetail turns a provider error detail into a user-facing
// message, expanding known patterns into actionable explanations.
func classifyProviderDetail(detail, from, to string) string {
	for _, rule := range providerErrorRules {
		for _, pat := range rule.patterns {
			if strings.Contains(detail, pat) {
				return rule.explain(from, to)
			}
		}
	}
	return detail
}
