package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleLabels = `
defaults:
  mail_class: FIRST
labels:
  - reference: a
    to: {name: Ann, city: Tucson}
    test: false
  - reference: b
    to: {name: Bo}
    test: true
  - reference: c
    to: {name: Cy}
`

func run(t *testing.T, args ...string) string {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("dazzle %s: %v\n%s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func writeLabels(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "labels.yaml")
	if err := os.WriteFile(path, []byte(sampleLabels), 0o600); err != nil {
		t.Fatalf("write labels: %v", err)
	}
	return path
}

func TestOptionsCommand(t *testing.T) {
	out := run(t, "options")
	if !strings.Contains(out, "CertifiedMail") || !strings.Contains(out, "Services.CertifiedMail=ON") {
		t.Fatalf("options output missing CertifiedMail:\n%s", out)
	}
}

func TestCheckAndBuild(t *testing.T) {
	path := writeLabels(t)

	out := run(t, "check", "-f", path)
	if !strings.Contains(out, "batch 1: 2 package(s) [a c]") {
		t.Fatalf("unexpected check output:\n%s", out)
	}
	if !strings.Contains(out, "batch 2: 1 package(s) [b]") {
		t.Fatalf("unexpected check output:\n%s", out)
	}

	dir := t.TempDir()
	run(t, "build", "-f", path, "-o", dir)

	raw, err := os.ReadFile(filepath.Join(dir, "batch-2.xml"))
	if err != nil {
		t.Fatalf("read batch-2.xml: %v", err)
	}
	if !strings.Contains(string(raw), `Test="YES"`) || !strings.Contains(string(raw), "<MailClass>FIRST</MailClass>") {
		t.Fatalf("unexpected batch-2.xml:\n%s", raw)
	}
	if _, err := os.Stat(filepath.Join(dir, "batch-3.xml")); !os.IsNotExist(err) {
		t.Fatalf("batch-3.xml should not exist, stat err = %v", err)
	}
}

func TestCheckRejectsFileAndDatabaseTogether(t *testing.T) {
	path := writeLabels(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{"check", "-f", path, "--from-db"})
	t.Cleanup(func() { fromDB = false })

	if err := rootCmd.Execute(); err == nil {
		t.Fatalf("expected error when --file and --from-db are both set\n%s", out.String())
	}
}
