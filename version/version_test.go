package version

import (
	"strings"
	"testing"
)

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, "restkit/") {
		t.Errorf("unexpected user agent %q", ua)
	}
	if !strings.HasSuffix(ua, Version) {
		t.Errorf("expected user agent to carry the version, got %q", ua)
	}
}
