package markdown

import (
	"strings"
	"testing"
)

func TestGoldmark_Render(t *testing.T) {
	r := New()

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"emphasis", "**down** since _noon_", []string{"<strong>down</strong>", "<em>noon</em>"}},
		{"task list", "- [x] restarted", []string{`type="checkbox"`, "restarted"}},
		{"autolink", "see https://example.com", []string{`<a href="https://example.com">`}},
		{"hard wrap", "line one\nline two", []string{"<br>"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.in)
			if err != nil {
				t.Fatalf("Render: %v", err)
			}
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("Render(%q) = %q, missing %q", tt.in, got, w)
				}
			}
		})
	}
}

func TestGoldmark_DropsRawHTML(t *testing.T) {
	got, err := New().Render("<script>alert(1)</script>")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw html kept: %q", got)
	}
}
