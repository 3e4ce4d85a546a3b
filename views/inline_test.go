package views

import (
	"strings"
	"testing"

	"github.com/eringen/deckengine/deck"
)

func TestFormatInline(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"plain", "plain"},
		{"**bold**", "<strong>bold</strong>"},
		{"text *italic* more", "text <em>italic</em> more"},
		{"**bold *italic* text**", "<strong>bold <em>italic</em> text</strong>"},
		{"`**raw**`", "<code>**raw**</code>"},
		{"<b>x</b>", "&lt;b&gt;x&lt;/b&gt;"},
		{"[site](https://example.com)", `<a href="https://example.com" target="_blank" rel="noopener noreferrer">site</a>`},
		{"[bad](javascript:void)", "bad"},
		{"[你的名字]", "[你的名字]"},
	}
	for _, tt := range tests {
		got := formatInline(tt.input)
		if got != tt.expected {
			t.Errorf("formatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineLeavesHrefAlone(t *testing.T) {
	got := formatInline("[a](https://example.com/*x*)")
	if strings.Contains(got, "<em>") {
		t.Errorf("emphasis applied inside href: %q", got)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"https://example.com/a.jpg", "https://example.com/a.jpg"},
		{"/local.png", "/local.png"},
		{"#slide-2", "#slide-2"},
		{"mailto:a@example.com", "mailto:a@example.com"},
		{"javascript:alert(1)", ""},
		{"data:image/png;base64,xx", ""},
		{"relative.png", ""},
		{"  ", ""},
	}
	for _, tt := range tests {
		if got := safeURL(tt.input); got != tt.expected {
			t.Errorf("safeURL(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestUnsafeImagesAreDropped(t *testing.T) {
	s := deck.Slide{
		ID: 3, Variant: deck.SplitImageText, Title: "t",
		BackgroundImage: "javascript:alert(1)",
		Content:         deck.SplitContent{Heading: "h", Image: "javascript:alert(2)", Points: []string{"**one**"}},
	}
	html := render(t, SlideRenderer{}.Slide(s, ""))
	if strings.Contains(html, "javascript:") {
		t.Errorf("unsafe URL rendered: %s", html)
	}
	if !strings.Contains(html, `<li class="point"><strong>one</strong></li>`) {
		t.Errorf("point markup not applied: %s", html)
	}
}
