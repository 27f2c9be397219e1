package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

const botUA = "Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)"

func TestParseUA_Desktop(t *testing.T) {
	ua := parseUA(chromeUA)

	if ua.Browser != "Chrome" {
		t.Errorf("Browser = %q", ua.Browser)
	}
	if ua.OS != "Windows" {
		t.Errorf("OS = %q", ua.OS)
	}
	if ua.Device != "Desktop" {
		t.Errorf("Device = %q", ua.Device)
	}
	if ua.IsBot {
		t.Error("desktop Chrome flagged as bot")
	}
	if ua.Version != "124" {
		t.Errorf("Version = %q", ua.Version)
	}
}

func TestParseUA_Bot(t *testing.T) {
	if ua := parseUA(botUA); !ua.IsBot {
		t.Error("Googlebot not flagged as bot")
	}
}

func TestParseUA_Empty(t *testing.T) {
	ua := parseUA("")
	if ua.IsBot {
		t.Error("empty UA flagged as bot")
	}
	if ua.Raw != "" {
		t.Errorf("Raw = %q", ua.Raw)
	}
}

func TestEnrich_StoresInfoInContext(t *testing.T) {
	var got *RequestInfo
	h := Enrich(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Referer", "https://example.com/blog")
	req.RemoteAddr = "203.0.113.7:55001"
	h.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("middleware did not store RequestInfo")
	}
	if got.UA.Browser != "Chrome" {
		t.Errorf("Browser = %q", got.UA.Browser)
	}
	if got.Referrer != "https://example.com/blog" {
		t.Errorf("Referrer = %q", got.Referrer)
	}
	if got.Geo.IP == nil || got.Geo.IP.String() != "203.0.113.7" {
		t.Errorf("IP = %v", got.Geo.IP)
	}
	// No MaxMind database is loaded, so country stays empty.
	if got.Geo.CountryISO != "" {
		t.Errorf("CountryISO = %q", got.Geo.CountryISO)
	}
}

func TestFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if FromContext(req.Context()) != nil {
		t.Error("expected nil without middleware")
	}
}
