package main

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mattjoyce/webhookd/internal/lock"
)

func captureOutputWithExitCode(t *testing.T, fn func() int) (int, string, string) {
	t.Helper()

	oldStdout := os.Stdout
	oldStderr := os.Stderr

	stdoutR, stdoutW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe stdout failed: %v", err)
	}
	stderrR, stderrW, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe stderr failed: %v", err)
	}

	os.Stdout = stdoutW
	os.Stderr = stderrW

	code := fn()

	_ = stdoutW.Close()
	_ = stderrW.Close()
	os.Stdout = oldStdout
	os.Stderr = oldStderr

	stdoutBytes, _ := io.ReadAll(stdoutR)
	stderrBytes, _ := io.ReadAll(stderrR)

	_ = stdoutR.Close()
	_ = stderrR.Close()

	return code, string(stdoutBytes), string(stderrBytes)
}

func captureRun(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	return captureOutputWithExitCode(t, func() int {
		return run(args)
	})
}

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "webhookd.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunVersion(t *testing.T) {
	code, stdout, _ := captureRun(t, "version")
	if code != 0 {
		t.Fatalf("version code = %d", code)
	}
	if !strings.Contains(stdout, "webhookd version "+version) {
		t.Fatalf("unexpected version output: %q", stdout)
	}
}

func TestRunUsage(t *testing.T) {
	code, _, stderr := captureRun(t)
	if code != 1 {
		t.Fatalf("no-args code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Usage:") {
		t.Fatalf("stderr missing usage: %q", stderr)
	}

	code, stdout, _ := captureRun(t, "help")
	if code != 0 || !strings.Contains(stdout, "config lock") {
		t.Fatalf("help code = %d, stdout = %q", code, stdout)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	code, _, stderr := captureRun(t, "frobnicate")
	if code != 1 {
		t.Fatalf("code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "Unknown command: frobnicate") {
		t.Fatalf("stderr = %q", stderr)
	}
}

func TestRunHelpFlags(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"start", "--help"}, "Usage: webhookd start"},
		{[]string{"config", "help"}, "Actions: check, lock"},
		{[]string{"config", "check", "-h"}, "Usage: webhookd config check"},
		{[]string{"config", "lock", "--help"}, "Usage: webhookd config lock"},
	}

	for _, tt := range tests {
		t.Run(strings.Join(tt.args, " "), func(t *testing.T) {
			code, stdout, _ := captureRun(t, tt.args...)
			if code != 0 {
				t.Fatalf("code = %d", code)
			}
			if !strings.Contains(stdout, tt.want) {
				t.Fatalf("stdout missing %q: %s", tt.want, stdout)
			}
		})
	}
}

func TestRunConfigUnknownAction(t *testing.T) {
	code, _, stderr := captureRun(t, "config", "explode")
	if code != 1 || !strings.Contains(stderr, "Unknown config action: explode") {
		t.Fatalf("code = %d, stderr = %q", code, stderr)
	}
}

func TestRunConfigCheckValid(t *testing.T) {
	path := writeTestConfig(t, `
webhook:
  url: /custom-webhook/:token
  handler: echo
  enable_get_placeholder: true
  pre_handlers: [check_even_token]
`)

	code, stdout, stderr := captureRun(t, "config", "check", "--config", path)
	if code != 0 {
		t.Fatalf("config check code = %d, stderr: %s", code, stderr)
	}
	for _, want := range []string{
		"Configuration OK",
		"POST /custom-webhook/:token -> echo",
		"GET /custom-webhook/:token -> 405 placeholder",
		"gates:    1",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("stdout missing %q: %s", want, stdout)
		}
	}
}

func TestRunConfigCheckDisabled(t *testing.T) {
	path := writeTestConfig(t, "webhook:\n  disable_webhook: true\n")

	code, stdout, stderr := captureRun(t, "config", "check", "--config", path)
	if code != 0 {
		t.Fatalf("config check code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "webhook:  disabled") {
		t.Fatalf("stdout = %s", stdout)
	}
}

func TestRunConfigCheckInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name:    "non string url",
			content: "webhook:\n  url: 42\n",
			want:    "webhook.url must be a string",
		},
		{
			name:    "unknown handler",
			content: "webhook:\n  handler: shout\n",
			want:    "webhook options error",
		},
		{
			name:    "unbalanced route brace",
			content: "webhook:\n  url: /a/{b\n",
			want:    "Webhook registration error",
		},
		{
			name:    "wildcard before last segment",
			content: "webhook:\n  url: /a/*/b\n",
			want:    "not a valid route pattern",
		},
		{
			name:    "unknown pre-handler",
			content: "webhook:\n  pre_handlers: [check_moon_phase]\n",
			want:    "webhook options error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestConfig(t, tt.content)
			code, _, stderr := captureRun(t, "config", "check", "--config", path)
			if code != 1 {
				t.Fatalf("code = %d, want 1", code)
			}
			if !strings.Contains(stderr, tt.want) {
				t.Fatalf("stderr missing %q: %s", tt.want, stderr)
			}
		})
	}
}

func TestRunConfigLock(t *testing.T) {
	path := writeTestConfig(t, "webhook:\n  url: /hook\n")
	checksumPath := filepath.Join(filepath.Dir(path), ".checksums")

	code, stdout, stderr := captureRun(t, "config", "lock", "--config", path, "-v", "--dry-run")
	if code != 0 {
		t.Fatalf("dry-run code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "HASH ") || !strings.Contains(stdout, "(not written)") {
		t.Fatalf("dry-run stdout = %s", stdout)
	}
	if _, err := os.Stat(checksumPath); !os.IsNotExist(err) {
		t.Fatalf("dry run wrote %s", checksumPath)
	}

	code, stdout, stderr = captureRun(t, "config", "lock", "--config", path)
	if code != 0 {
		t.Fatalf("lock code = %d, stderr: %s", code, stderr)
	}
	if !strings.Contains(stdout, "Successfully locked configuration") {
		t.Fatalf("lock stdout = %s", stdout)
	}
	if _, err := os.Stat(checksumPath); err != nil {
		t.Fatalf("checksums not written: %v", err)
	}

	// A locked config that changes afterwards must be refused.
	if err := os.WriteFile(path, []byte("webhook:\n  url: /other\n"), 0644); err != nil {
		t.Fatal(err)
	}
	code, _, stderr = captureRun(t, "config", "check", "--config", path)
	if code != 1 || !strings.Contains(stderr, "config verification failed") {
		t.Fatalf("tampered check code = %d, stderr = %s", code, stderr)
	}
}

func TestRunStartInvalidConfig(t *testing.T) {
	path := writeTestConfig(t, "webhook:\n  url: no-slash\n")

	code, _, stderr := captureRun(t, "start", "--config", path)
	if code != 1 {
		t.Fatalf("start code = %d, want 1", code)
	}
	if !strings.Contains(stderr, "config load error") {
		t.Fatalf("stderr = %s", stderr)
	}
}

func TestRunStartMissingConfig(t *testing.T) {
	code, _, stderr := captureRun(t, "start", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	if code != 1 || !strings.Contains(stderr, "config file not found") {
		t.Fatalf("code = %d, stderr = %s", code, stderr)
	}
}

func TestRunStartPIDFileHeld(t *testing.T) {
	pidPath := filepath.Join(t.TempDir(), "webhookd.pid")
	held, err := lock.Acquire(pidPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = held.Release() })

	path := writeTestConfig(t, "service:\n  listen: 127.0.0.1:0\n  pid_file: "+pidPath+"\n")

	code, _, _ := captureRun(t, "start", "--config", path)
	if code != 1 {
		t.Fatalf("start code = %d, want 1 while the pid file is held", code)
	}
}
