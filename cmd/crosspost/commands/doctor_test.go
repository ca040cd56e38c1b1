package commands

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/thoreinstein/crosspost/internal/doctor"
	"github.com/thoreinstein/crosspost/internal/errors"
)

func TestDoctorCommand_Healthy(t *testing.T) {
	f := newPublishFixture(t, "")
	f.write(t, "hello.md", "---\ntitle: Hello\ncrosspost: true\n---\n")

	out, err := executeCommand(t, "doctor", "--config", f.config, "--all")
	if err != nil {
		t.Fatalf("doctor: %v\n%s", err, out)
	}
	for _, want := range []string{"credentials", "posts", "config-load", "Summary:"} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "devto-key-1234") {
		t.Error("doctor output leaks the Dev.to API key")
	}
}

func TestDoctorCommand_MissingCredential(t *testing.T) {
	f := newPublishFixture(t, "")
	cfg := strings.Replace(mustRead(t, f.config), "token: hashnode-token-5678", "token: \"\"", 1)
	writeConfig(t, f.dir, cfg)

	out, err := executeCommand(t, "doctor", "--config", f.config, "--json")
	if err == nil {
		t.Fatal("expected an error for a missing Hashnode token")
	}
	if got := errors.ExitCode(err); got != errors.ExitSystem {
		t.Errorf("ExitCode() = %d, want %d", got, errors.ExitSystem)
	}

	var report doctor.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decoding %q: %v", out, err)
	}
	var found bool
	for _, r := range report.Results {
		if r.Name == "credentials" {
			found = true
			if r.Status != doctor.SeverityError {
				t.Errorf("credentials status = %v, want error", r.Status)
			}
		}
	}
	if !found {
		t.Error("report has no credentials result")
	}
}

func TestDoctorCommand_InvalidConfigStillReports(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	cfg := writeConfig(t, dir, "http:\n  timeout: -1s\n")

	out, err := executeCommand(t, "doctor", "--config", cfg)
	if err == nil {
		t.Fatal("expected doctor to fail on an invalid config")
	}
	if !strings.Contains(out, "config-load") {
		t.Errorf("doctor output missing the config-load failure:\n%s", out)
	}
}

func TestStatusIcon(t *testing.T) {
	tests := []struct {
		s    doctor.Severity
		want string
	}{
		{doctor.SeverityPass, "✓"},
		{doctor.SeverityInfo, "ℹ"},
		{doctor.SeverityWarning, "⚠"},
		{doctor.SeverityError, "✗"},
		{doctor.Severity(99), "?"},
	}
	for _, tt := range tests {
		if got := statusIcon(tt.s); got != tt.want {
			t.Errorf("statusIcon(%v) = %q, want %q", tt.s, got, tt.want)
		}
	}
}
