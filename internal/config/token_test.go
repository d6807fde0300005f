package config

import "testing"

func TestGetToken(t *testing.T) {
	if got := GetToken(nil); got != "" {
		t.Errorf("expected empty token for nil config, got %q", got)
	}

	cfg := Default()
	cfg.GitHub.Token = "  ghp_abc  "
	if got := GetToken(cfg); got != "ghp_abc" {
		t.Errorf("expected trimmed token, got %q", got)
	}
}

func TestMaskToken(t *testing.T) {
	if got := MaskToken(""); got != "(not set)" {
		t.Errorf("expected '(not set)' for empty token, got %q", got)
	}

	if got := MaskToken("short"); got != "****" {
		t.Errorf("expected full mask for short token, got %q", got)
	}

	got := MaskToken("ghp_1234567890abcd")
	if got[:4] != "ghp_" || got[len(got)-4:] != "abcd" {
		t.Errorf("expected first/last 4 visible, got %q", got)
	}
	for _, r := range got[4 : len(got)-4] {
		if r != '*' {
			t.Errorf("expected middle masked, got %q", got)
			break
		}
	}
}
