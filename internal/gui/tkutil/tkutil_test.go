package tkutil

import "testing"

func TestListAndQuote(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{name: "plain", values: []string{"hello", "world"}, want: "hello world"},
		{name: "empty element", values: []string{"", "x"}, want: "{} x"},
		{name: "spaces", values: []string{"Ann Smith"}, want: `Ann\ Smith`},
		{name: "braces and brackets", values: []string{"a{b}", "[cmd]"}, want: `a\{b\} \[cmd\]`},
		{name: "backslash and dollar", values: []string{`path\to`, "$x"}, want: `path\\to \$x`},
		{name: "newline", values: []string{"a\nb"}, want: `a\nb`},
		{name: "no values", values: nil, want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := List(tt.values...); got != tt.want {
				t.Fatalf("List(%q) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}
