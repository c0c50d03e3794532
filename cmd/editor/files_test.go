package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mailtmpl/internal/domain"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "welcome.json")
	if err := os.WriteFile(p, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

const welcome = `{
  "template": "Hi $$name$$, bye $$name$$",
  "placeholders": {
    "$$name$$": {"fr": "Bonjour", "en": ""},
    "$$unused$$": {"fr": "x", "en": "y"}
  }
}`

func TestRunRender(t *testing.T) {
	p := writeFile(t, welcome)
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"-locale", "fr", p}, "Hi Bonjour, bye Bonjour"},
		{[]string{"-locale", "en", p}, "Hi , bye "},
		{[]string{p}, "Hi $$name$$, bye $$name$$"},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		if err := runRender(tt.args, &out); err != nil {
			t.Fatalf("runRender(%v): %v", tt.args, err)
		}
		if out.String() != tt.want {
			t.Errorf("runRender(%v) = %q, want %q", tt.args, out.String(), tt.want)
		}
	}
}

func TestRunRender_malformed(t *testing.T) {
	p := writeFile(t, `{"placeholders": {}}`)
	err := runRender([]string{p}, &bytes.Buffer{})
	if !errors.Is(err, domain.ErrMissingTemplate) {
		t.Fatalf("err = %v", err)
	}
}

func TestRunCheck(t *testing.T) {
	p := writeFile(t, welcome)
	var out bytes.Buffer
	if err := runCheck([]string{p}, &out); err != nil {
		t.Fatal(err)
	}
	s := out.String()
	for _, want := range []string{"2 placeholder(s)", "unused_placeholder: $$unused$$", "missing_translation: $$name$$ [en]"} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q:\n%s", want, s)
		}
	}
	if err := runCheck([]string{"-strict", p}, &bytes.Buffer{}); err == nil {
		t.Error("strict check passed with findings")
	}
}
