package common

import "strconv"

// GetAccountFromArgs extracts the account name from request arguments,
// defaulting to "default" when the argument is absent or empty.
func GetAccountFromArgs(args map[string]interface{}) string {
	if accountVal, ok := args["account"].(string); ok && accountVal != "" {
		return accountVal
	}
	return "default"
}

// ParseMaxResults extracts a positive result budget from request arguments.
// JSON numbers arrive as float64, but some clients send numeric strings;
// absent, non-numeric, or non-positive values fall back to the given default.
func ParseMaxResults(args map[string]interface{}, key string, fallback int) int {
	v, ok := args[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		if n > 0 {
			return int(n)
		}
	case int:
		if n > 0 {
			return n
		}
	case string:
		if parsed, err := strconv.Atoi(n); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}
