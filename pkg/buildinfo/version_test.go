package buildinfo

import (
	"strings"
	"testing"
)

func TestTemplate(t *testing.T) {
	v := Version
	defer func() { Version = v }()
	Version = "v1.2.3"

	if got := Template(); !strings.Contains(got, "version v1.2.3") {
		t.Errorf("Template() = %q", got)
	}
	if got := UserAgent(); got != "welcomescreen/v1.2.3" {
		t.Errorf("UserAgent() = %q", got)
	}
}
