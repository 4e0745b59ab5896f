package filename

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "avatar.png", "avatar.png"},
		{"keeps spaces inside", "my photo.jpg", "my photo.jpg"},
		{"unix traversal", "../../etc/passwd", "etcpasswd"},
		{"windows traversal", `..\..\boot.ini`, "boot.ini"},
		{"reserved chars", `a<b>c:d"e|f?g*h.txt`, "abcdefgh.txt"},
		{"control chars", "a\x00b\x1fc\x7fd.txt", "abcd.txt"},
		{"leading dots", "...hidden", "hidden"},
		{"trailing dots and spaces", "name.txt. . ", "name.txt"},
		{"only dots", "..", Placeholder},
		{"empty", "", Placeholder},
		{"only separators", "///", Placeholder},
		{"windows device", "CON", Placeholder},
		{"windows device with ext", "lpt1.txt", Placeholder},
		{"not a device", "console.log", "console.log"},
		{"unicode kept", "résumé.pdf", "résumé.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Sanitize(tt.in))
		})
	}
}

func TestSanitize_NormalisesToNFC(t *testing.T) {
	decomposed := "re\u0301sume\u0301.pdf"
	assert.Equal(t, "r\u00e9sum\u00e9.pdf", Sanitize(decomposed))
}

func TestSanitize_TruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", 200)

	got := Sanitize(long)

	assert.LessOrEqual(t, len(got), MaxBytes)
	assert.True(t, utf8.ValidString(got))
	assert.NotEmpty(t, got)
}

func TestSanitize_Deterministic(t *testing.T) {
	in := "../weird:name?.png"
	assert.Equal(t, Sanitize(in), Sanitize(in))
}

func TestSanitize_NeverContainsSeparators(t *testing.T) {
	for _, in := range []string{"a/b", `a\b`, "/abs/path", `C:\dir\file`} {
		got := Sanitize(in)
		assert.NotContains(t, got, "/")
		assert.NotContains(t, got, `\`)
		assert.False(t, strings.HasPrefix(got, "."))
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"fits", "photo.png", 20, "photo.png"},
		{"keeps extension", "abcdefghij.png", 8, "abcd.png"},
		{"rune boundary", "ééé.png", 9, "éé.png"},
		{"long extension dropped", "a." + strings.Repeat("x", 20), 5, "a.xxx"},
		{"trailing dot trimmed", "ab. cdef.txt", 7, "ab.txt"},
		{"non-positive", "a.png", 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Truncate(tt.in, tt.n))
		})
	}
}

func TestSanitize_LongNameKeepsExtension(t *testing.T) {
	got := Sanitize(strings.Repeat("a", 300) + ".jpeg")

	assert.Len(t, got, MaxBytes)
	assert.True(t, strings.HasSuffix(got, ".jpeg"))
}
