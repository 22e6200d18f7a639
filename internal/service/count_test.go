package service

import (
	"encoding/json"
	"testing"
)

func raw(records ...string) []json.RawMessage {
	out := make([]json.RawMessage, len(records))
	for i, r := range records {
		out[i] = json.RawMessage(r)
	}
	return out
}

func TestCountByAuthor(t *testing.T) {
	tests := []struct {
		name     string
		records  []json.RawMessage
		login    string
		expected int
	}{
		{
			name:     "no records",
			records:  nil,
			login:    "alice",
			expected: 0,
		},
		{
			name: "mixed authors",
			records: raw(
				`{"user": {"login": "alice"}}`,
				`{"user": {"login": "bob"}}`,
				`{"user": {"login": "alice"}, "body": "nit"}`,
			),
			login:    "alice",
			expected: 2,
		},
		{
			name: "case sensitive",
			records: raw(
				`{"user": {"login": "Alice"}}`,
				`{"user": {"login": "ALICE"}}`,
				`{"user": {"login": "alice"}}`,
			),
			login:    "alice",
			expected: 1,
		},
		{
			name: "missing or malformed author never matches",
			records: raw(
				`{"body": "no user"}`,
				`{"user": null}`,
				`{"user": {"login": null}}`,
				`{"user": {"login": 42}}`,
				`{"user": "alice"}`,
				`{"user": {"login": ["alice"]}}`,
				`not json`,
			),
			login:    "alice",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountByAuthor(tt.records, tt.login)
			if got != tt.expected {
				t.Errorf("CountByAuthor() = %d, want %d", got, tt.expected)
			}
		})
	}
}
