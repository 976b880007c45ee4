package utils

import (
	"strings"
	"testing"
)

func TestRenderMarkdownSanitizes(t *testing.T) {
	html := string(RenderMarkdown("# 标题\n\n<script>alert(1)</script>正文"))
	if strings.Contains(html, "<script>") {
		t.Error("script tag should be stripped")
	}
	if !strings.Contains(html, "正文") {
		t.Error("text content should survive sanitization")
	}
}

func TestRenderMarkdownKeepsImages(t *testing.T) {
	html := string(RenderMarkdown("![图](https://example.com/a.png)"))
	if !strings.Contains(html, "<img") {
		t.Error("images should be allowed")
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"short ascii", "hello", 10, "hello"},
		{"truncated ascii", "hello world", 5, "hello..."},
		{"chinese runes", "这是一段很长的中文内容", 4, "这是一段..."},
		{"exact length", "abcd", 4, "abcd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Excerpt(tt.input, tt.n); got != tt.want {
				t.Errorf("Excerpt(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
		})
	}
}
