package contact

import "testing"

func TestSocials(t *testing.T) {
	rec := &Record{Twitter: "ada", GitHub: "adal"}

	got := rec.Socials()
	if len(got) != 2 {
		t.Fatalf("Socials = %v", got)
	}
	if got[PlatformTwitter] != "ada" || got[PlatformGitHub] != "adal" {
		t.Errorf("Socials = %v", got)
	}
	if _, ok := got[PlatformLinkedIn]; ok {
		t.Error("empty handle must not appear")
	}

	if n := len((&Record{}).Socials()); n != 0 {
		t.Errorf("empty record has %d socials", n)
	}
}
