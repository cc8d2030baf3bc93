package validation

import (
	"strings"
	"testing"
)

func TestValidateComment(t *testing.T) {
	tests := []struct {
		name      string
		comment   string
		wantValid bool
		wantText  string
		wantMsg   string
	}{
		{
			name:      "plain text",
			comment:   "Great read!",
			wantValid: true,
			wantText:  "Great read!",
		},
		{
			name:      "editor paragraph",
			comment:   "<p>Loved the <strong>jeans</strong> guide</p>",
			wantValid: true,
			wantText:  "<p>Loved the <strong>jeans</strong> guide</p>",
		},
		{
			name:    "missing comment",
			comment: "",
			wantMsg: "This field is required.",
		},
		{
			name:    "whitespace only",
			comment: "   \n\t ",
			wantMsg: "This field is required.",
		},
		{
			name:    "empty editor markup",
			comment: "<p>&nbsp;</p><p><br></p>",
			wantMsg: "This field is required.",
		},
		{
			name:    "only a script",
			comment: "<script>alert(1)</script>",
			wantMsg: "This field is required.",
		},
		{
			name:    "too long",
			comment: strings.Repeat("a", 1001),
			wantMsg: "Comment must be at most 1000 characters.",
		},
		{
			name:      "apostrophes stored as typed",
			comment:   "It's great",
			wantValid: true,
			wantText:  "It's great",
		},
		{
			name:      "quotes count once toward the limit",
			comment:   strings.Repeat("'", 500) + strings.Repeat(`"`, 500),
			wantValid: true,
			wantText:  strings.Repeat("'", 500) + strings.Repeat(`"`, 500),
		},
		{
			name:      "exactly at the limit",
			comment:   strings.Repeat("a", 1000),
			wantValid: true,
			wantText:  strings.Repeat("a", 1000),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateComment(CommentForm{Comment: tt.comment})
			if result.Valid != tt.wantValid {
				t.Fatalf("ValidateComment() valid = %v, want %v (errors: %v)", result.Valid, tt.wantValid, result.Errors)
			}
			if tt.wantValid {
				if result.Text != tt.wantText {
					t.Errorf("ValidateComment() text = %q, want %q", result.Text, tt.wantText)
				}
				if len(result.Errors) != 0 {
					t.Errorf("valid result should carry no errors, got %v", result.Errors)
				}
				return
			}

			msgs := result.FieldErrors("comment")
			if len(msgs) != 1 || msgs[0] != tt.wantMsg {
				t.Errorf("ValidateComment() errors = %v, want [%q]", msgs, tt.wantMsg)
			}
		})
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "keeps allowed tags", in: "<p><em>hi</em><br/>there</p>", want: "<p><em>hi</em><br>there</p>"},
		{name: "strips attributes", in: `<p class="x" onclick="evil()">hi</p>`, want: "<p>hi</p>"},
		{name: "drops unknown tags keeps text", in: "<div><span>hi</span></div>", want: "hi"},
		{name: "removes script content", in: "ok<script>alert('x')</script>", want: "ok"},
		{name: "removes style content", in: "<style>p{}</style>ok", want: "ok"},
		{name: "escapes text", in: "1 < 2 & 3", want: "1 &lt; 2 &amp; 3"},
		{name: "keeps quotes in text", in: `<p>She said "it's fine"</p>`, want: `<p>She said "it's fine"</p>`},
		{name: "decodes quote entities", in: "<p>It&#39;s &quot;new&quot;</p>", want: `<p>It's "new"</p>`},
		{name: "closes unclosed tags", in: "<p><strong>bold", want: "<p><strong>bold</strong></p>"},
		{name: "drops stray end tags", in: "hi</em>", want: "hi"},
		{name: "safe link", in: `<a href="https://vogue.com" target="_blank">v</a>`, want: `<a href="https://vogue.com" rel="nofollow noopener">v</a>`},
		{name: "javascript link", in: `<a href="javascript:alert(1)">x</a>`, want: "<a>x</a>"},
		{name: "self-closing paragraph", in: "<p/>x", want: "<p></p>x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestTextContent(t *testing.T) {
	if got := TextContent("<p>Hello <b>there</b></p>"); got != "Hello there" {
		t.Errorf("TextContent() = %q", got)
	}
}
