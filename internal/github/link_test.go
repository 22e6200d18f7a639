package github

import "testing"

func TestNextPageURL(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{
			name:     "empty header",
			header:   "",
			expected: "",
		},
		{
			name:     "github style next and last",
			header:   `<https://api.github.com/repositories/1/pulls/2/comments?per_page=100&page=2>; rel="next", <https://api.github.com/repositories/1/pulls/2/comments?per_page=100&page=5>; rel="last"`,
			expected: "https://api.github.com/repositories/1/pulls/2/comments?per_page=100&page=2",
		},
		{
			name:     "last page has only prev and first",
			header:   `<https://api.github.com/x?page=4>; rel="prev", <https://api.github.com/x?page=1>; rel="first"`,
			expected: "",
		},
		{
			name:     "next is not the first segment",
			header:   `<https://api.github.com/x?page=1>; rel="prev",   <https://api.github.com/x?page=3>; rel="next"  `,
			expected: "https://api.github.com/x?page=3",
		},
		{
			name:     "substring of another relation does not match",
			header:   `<https://api.github.com/x?page=2>; rel="nextpage"`,
			expected: "",
		},
		{
			name:     "relation list containing next",
			header:   `<https://api.github.com/x?page=2>; rel="next last"`,
			expected: "https://api.github.com/x?page=2",
		},
		{
			name:     "unquoted relation",
			header:   `<https://api.github.com/x?page=2>; rel=next`,
			expected: "https://api.github.com/x?page=2",
		},
		{
			name:     "extra parameters are allowed",
			header:   `<https://api.github.com/x?page=2>; title="more"; rel="next"`,
			expected: "https://api.github.com/x?page=2",
		},
		{
			name:     "segment without parameters is skipped",
			header:   `<https://api.github.com/x?page=9>, <https://api.github.com/x?page=2>; rel="next"`,
			expected: "https://api.github.com/x?page=2",
		},
		{
			name:     "url without angle brackets is skipped",
			header:   `https://api.github.com/x?page=2; rel="next"`,
			expected: "",
		},
		{
			name:     "garbage",
			header:   `;;;,,,<>`,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextPageURL(tt.header)
			if got != tt.expected {
				t.Errorf("NextPageURL(%q) = %q, want %q", tt.header, got, tt.expected)
			}
		})
	}
}
