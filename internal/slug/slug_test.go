package slug

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Hello, World!!  Foo", "hello-world-foo"},
		{"Annual General Meeting 2026", "annual-general-meeting-2026"},
		{"  Trimmed  ", "trimmed"},
		{"UPPER case", "upper-case"},
		{"dash - heavy -- title", "dash-heavy-title"},
		{"???", ""},
		{"", ""},
		{"snake_case stays", "snake_case-stays"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Generate(tc.title), "title %q", tc.title)
	}
}

func TestGenerateTruncates(t *testing.T) {
	long := strings.Repeat("abcde ", 30)
	got := Generate(long)

	assert.LessOrEqual(t, len(got), DefaultMaxLength)
	assert.False(t, strings.HasPrefix(got, "-"))
	assert.False(t, strings.HasSuffix(got, "-"))
}

func TestGenerateTruncatesOnRuneBoundary(t *testing.T) {
	// A multibyte letter straddling the byte cap must be dropped whole,
	// never cut mid-rune.
	got := Generate(strings.Repeat("a", 59) + "é tail")

	assert.True(t, utf8.ValidString(got), "slug contains invalid UTF-8: %q", got)
	assert.Equal(t, strings.Repeat("a", 59), got)

	// A cap landing exactly between runes keeps the full letter.
	assert.Equal(t, strings.Repeat("a", 58)+"é", GenerateN(strings.Repeat("a", 58)+"é tail", 60))

	for n := 1; n <= 8; n++ {
		assert.True(t, utf8.ValidString(GenerateN("ééééé", n)), "cap %d", n)
	}
}

func TestGenerateNCustomLength(t *testing.T) {
	got := GenerateN("one two three four", 7)
	// Truncation may land on a dash, which must then be stripped.
	assert.Equal(t, "one-two", got)
}

func TestMakeUnique(t *testing.T) {
	assert.Equal(t, "foo", MakeUnique("foo", nil))
	assert.Equal(t, "foo", MakeUnique("foo", []string{"bar"}))
	assert.Equal(t, "foo-1", MakeUnique("foo", []string{"foo"}))
	assert.Equal(t, "foo-2", MakeUnique("foo", []string{"foo", "foo-1"}))
	assert.Equal(t, "foo-1", MakeUnique("foo", []string{"foo", "foo-2"}))
}

func TestMakeUniqueIsPrefixStable(t *testing.T) {
	existing := []string{"club-news", "club-news-1", "club-news-2"}
	base := Generate("Club News")
	got := MakeUnique(base, existing)

	assert.NotContains(t, existing, got)
	assert.True(t, got == base || strings.HasPrefix(got, base+"-"))
}

func TestReslugIdempotentWhenTitleUnchanged(t *testing.T) {
	// Uniqueness list excludes the record's own prior slug, so an
	// unchanged title keeps its slug.
	current := Generate("Summer Regatta")
	others := []string{"winter-gala", "agm-minutes"}

	assert.Equal(t, current, MakeUnique(Generate("Summer Regatta"), others))
}
