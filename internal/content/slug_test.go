package content

import (
	"strings"
	"testing"
)

func TestMakeSlug(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Hello World", "hello-world"},
		{"  The  Future of PropTech!  ", "the-future-of-proptech"},
		{"Bitcoin: Up 100%?", "bitcoin-up-100"},
		{"Crème Brûlée", "cr-me-br-l-e"},
		{"---", "post"},
		{"", "post"},
	}
	for _, c := range cases {
		if got := MakeSlug(c.in); got != c.want {
			t.Errorf("MakeSlug(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestMakeSlug_Truncates(t *testing.T) {
	got := MakeSlug(strings.Repeat("word ", 40))
	if len(got) > 100 {
		t.Fatalf("slug length %d exceeds 100", len(got))
	}
	if strings.HasSuffix(got, "-") {
		t.Fatalf("slug %q ends in a dash after truncation", got)
	}
}
