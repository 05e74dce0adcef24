package common

import "testing"

func TestGetAccountFromArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		expected string
	}{
		{
			name:     "no account specified returns default",
			args:     map[string]interface{}{},
			expected: "default",
		},
		{
			name: "account specified returns account",
			args: map[string]interface{}{
				"account": "work",
			},
			expected: "work",
		},
		{
			name: "empty account returns default",
			args: map[string]interface{}{
				"account": "",
			},
			expected: "default",
		},
		{
			name: "account with other params",
			args: map[string]interface{}{
				"account": "personal",
				"other":   "value",
			},
			expected: "personal",
		},
		{
			name:     "nil args returns default",
			args:     nil,
			expected: "default",
		},
		{
			name: "non-string account type returns default",
			args: map[string]interface{}{
				"account": 123,
			},
			expected: "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetAccountFromArgs(tt.args); got != tt.expected {
				t.Errorf("GetAccountFromArgs() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseMaxResults(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]interface{}
		expected int
	}{
		{
			name:     "absent uses fallback",
			args:     map[string]interface{}{},
			expected: 25,
		},
		{
			name: "json number",
			args: map[string]interface{}{
				"maxResults": float64(100),
			},
			expected: 100,
		},
		{
			name: "int value",
			args: map[string]interface{}{
				"maxResults": 7,
			},
			expected: 7,
		},
		{
			name: "zero uses fallback",
			args: map[string]interface{}{
				"maxResults": float64(0),
			},
			expected: 25,
		},
		{
			name: "negative uses fallback",
			args: map[string]interface{}{
				"maxResults": float64(-5),
			},
			expected: 25,
		},
		{
			name: "numeric string coerced",
			args: map[string]interface{}{
				"maxResults": "40",
			},
			expected: 40,
		},
		{
			name: "non-numeric uses fallback",
			args: map[string]interface{}{
				"maxResults": "many",
			},
			expected: 25,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseMaxResults(tt.args, "maxResults", 25); got != tt.expected {
				t.Errorf("ParseMaxResults() = %d, want %d", got, tt.expected)
			}
		})
	}
}
