package app

import (
	"testing"

	"github.com/spf13/pflag"
)

func TestRegisterFlags(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)

	expected := []string{
		"transport", "host", "port",
		"auth-type", "auth-basic-username", "auth-basic-password", "auth-api-keys",
		"google-engine-id", "google-api-key",
		"stackexchange-site", "stackexchange-filter", "stackexchange-key",
		"reddit-client-id", "reddit-client-secret", "reddit-username",
		"reddit-password", "reddit-user-agent", "reddit-max-depth", "reddit-max-comments",
		"docs-mirror-dir", "docs-host", "docs-index", "docs-index-dir",
		"docs-sync-url", "docs-sync-timeout", "docs-max-file-size", "docs-max-results",
		"scrape-endpoint", "scrape-timeout",
	}

	for _, name := range expected {
		if flags.Lookup(name) == nil {
			t.Errorf("Expected flag %q to be registered", name)
		}
	}
}

func TestRegisterFlags_Shorthands(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)

	tests := []struct {
		name      string
		shorthand string
	}{
		{"transport", "t"},
		{"host", "H"},
		{"port", "p"},
		{"auth-type", "a"},
		{"auth-basic-username", "u"},
		{"auth-basic-password", "P"},
		{"auth-api-keys", "k"},
	}

	for _, tt := range tests {
		flag := flags.Lookup(tt.name)
		if flag == nil {
			t.Fatalf("Flag %q not registered", tt.name)
		}
		if flag.Shorthand != tt.shorthand {
			t.Errorf("Expected shorthand %q for flag %q, got %q", tt.shorthand, tt.name, flag.Shorthand)
		}
	}
}

func TestRegisterFlags_ParsesValues(t *testing.T) {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(flags)

	err := flags.Parse([]string{
		"--transport", "sse",
		"--port", "9090",
		"--docs-index",
		"--docs-sync-timeout", "2m",
		"--reddit-max-depth", "5",
	})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if v, _ := flags.GetString("transport"); v != "sse" {
		t.Errorf("Expected transport 'sse', got %q", v)
	}
	if v, _ := flags.GetInt("port"); v != 9090 {
		t.Errorf("Expected port 9090, got %d", v)
	}
	if v, _ := flags.GetBool("docs-index"); !v {
		t.Error("Expected docs-index true")
	}
	if v, _ := flags.GetDuration("docs-sync-timeout"); v.Minutes() != 2 {
		t.Errorf("Expected docs-sync-timeout 2m, got %v", v)
	}
	if v, _ := flags.GetInt("reddit-max-depth"); v != 5 {
		t.Errorf("Expected reddit-max-depth 5, got %d", v)
	}
}
