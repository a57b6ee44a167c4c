package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dshills/glyphmenu/internal/input/key"
	"github.com/dshills/glyphmenu/internal/renderer/backend"
)

// scripted returns a backend factory that replays keys on a null backend.
func scripted(specs ...string) backendFactory {
	return func() (backend.Backend, error) {
		b := backend.NewNullBackend(64, 32)
		for _, spec := range specs {
			if len(spec) == 1 {
				b.PostEvent(key.NewRuneEvent(rune(spec[0]), 0))
				continue
			}
			b.PostEvent(key.MustParse(spec))
		}
		return b, nil
	}
}

func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func runCmd(t *testing.T, args []string, stdin string, factory backendFactory) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr, factory)
	return code, stdout.String(), stderr.String()
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		stdin    string
		keys     []string
		wantCode int
		wantOut  string
	}{
		{"accept from stdin", nil, "alpha\n\nbeta\n", []string{"b", "e", "Enter"}, 0, "beta\n"},
		{"accept first by default", nil, "alpha\nbeta\n", []string{"Enter"}, 0, "alpha\n"},
		{"move selection", nil, "alpha\nbeta\n", []string{"Down", "Enter"}, 0, "beta\n"},
		{"arguments win over stdin", []string{"red", "green"}, "blue\n", []string{"g", "Enter"}, 0, "green\n"},
		{"raw query when nothing matches", nil, "alpha\n", []string{"z", "z", "Enter"}, 0, "zz\n"},
		{"cancel", nil, "alpha\n", []string{"Escape"}, 1, ""},
		{"focus loss cancels", nil, "alpha\n", nil, 1, ""},
		{"crlf lines", nil, "one\r\ntwo\r\n", []string{"t", "Enter"}, 0, "two\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			factory := scripted(tt.keys...)
			if tt.keys == nil {
				factory = func() (backend.Backend, error) {
					b := backend.NewNullBackend(64, 32)
					b.PostEvent(key.NewFocusEvent(false))
					return b, nil
				}
			}
			code, out, errOut := runCmd(t, tt.args, tt.stdin, factory)
			if code != tt.wantCode {
				t.Errorf("exit code = %d, want %d (stderr: %s)", code, tt.wantCode, errOut)
			}
			if out != tt.wantOut {
				t.Errorf("stdout = %q, want %q", out, tt.wantOut)
			}
		})
	}
}

func TestRunNormalizesStdin(t *testing.T) {
	isolate(t)

	code, out, _ := runCmd(t, nil, "cafe\u0301\n", scripted("Enter"))
	if code != 0 {
		t.Fatalf("exit code = %d", code)
	}
	if out != "caf\u00e9\n" {
		t.Errorf("stdout = %q, want NFC form", out)
	}
}

func TestRunFlagsOverrideConfig(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("close_on_unfocus: false\nlines: 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	factory := func() (backend.Backend, error) {
		b := backend.NewNullBackend(64, 32)
		b.PostEvent(key.NewFocusEvent(false))
		b.PostEvent(key.MustParse("Enter"))
		return b, nil
	}

	// The file keeps the picker open on focus loss.
	code, out, errOut := runCmd(t, []string{"--no-watch", "-c", cfgPath}, "one\n", factory)
	if code != 0 || out != "one\n" {
		t.Errorf("with config: code=%d out=%q stderr=%s", code, out, errOut)
	}

	// The flag restores the default.
	code, _, _ = runCmd(t, []string{"--no-watch", "-c", cfgPath, "--close-on-unfocus"}, "one\n", factory)
	if code != 1 {
		t.Errorf("with flag override: code=%d, want 1", code)
	}
}

func TestRunLuaScorer(t *testing.T) {
	isolate(t)
	script := filepath.Join(t.TempDir(), "score.lua")
	src := `function score(query, candidate, positions) return #candidate end`
	if err := os.WriteFile(script, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}

	code, out, errOut := runCmd(t, []string{"-s", script}, "ab\nabbbb\n", scripted("a", "Enter"))
	if code != 0 {
		t.Fatalf("exit code = %d (stderr: %s)", code, errOut)
	}
	if out != "abbbb\n" {
		t.Errorf("stdout = %q, want the longer candidate", out)
	}
}

func TestRunStartupErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown flag", []string{"--bogus"}, "unknown flag"},
		{"missing config", []string{"-c", "/nonexistent/glyphmenu.toml"}, "not found"},
		{"missing font", []string{"-f", "/nonexistent/font.pbm"}, "font.pbm"},
		{"bad scorer", []string{"-s", "fancy"}, "scorer"},
		{"missing lua script", []string{"-s", "/nonexistent/score.lua"}, "score.lua"},
		{"bad lines", []string{"--lines=-4"}, "lines"},
		{"bad log level", []string{"--log-level", "loud"}, "log.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			code, out, errOut := runCmd(t, tt.args, "one\n", scripted("Enter"))
			if code != 2 {
				t.Errorf("exit code = %d, want 2", code)
			}
			if out != "" {
				t.Errorf("unexpected stdout %q", out)
			}
			if !strings.Contains(errOut, tt.wantErr) {
				t.Errorf("stderr = %q, want it to mention %q", errOut, tt.wantErr)
			}
		})
	}
}

func TestRunVersionAndHelp(t *testing.T) {
	code, out, _ := runCmd(t, []string{"--version"}, "", nil)
	if code != 0 || !strings.HasPrefix(out, "glyphmenu ") {
		t.Errorf("--version: code=%d out=%q", code, out)
	}

	code, out, _ = runCmd(t, []string{"-h"}, "", nil)
	if code != 0 || !strings.Contains(out, "--prompt") {
		t.Errorf("-h: code=%d out=%q", code, out)
	}
}

func TestRunLogFile(t *testing.T) {
	isolate(t)
	logPath := filepath.Join(t.TempDir(), "glyphmenu.log")

	code, _, errOut := runCmd(t, []string{"--log-file", logPath, "--log-level", "debug"}, "one\n", scripted("Enter"))
	if code != 0 {
		t.Fatalf("exit code = %d (stderr: %s)", code, errOut)
	}
	if errOut != "" {
		t.Errorf("logs leaked to stderr: %s", errOut)
	}
	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "session=") || !strings.Contains(string(data), "frames=") {
		t.Errorf("log file missing session or metrics lines:\n%s", data)
	}
}

func TestReadCandidates(t *testing.T) {
	got, err := readCandidates(strings.NewReader("a\n\n b \nc"))
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"a", " b ", "c"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("readCandidates() = %q, want %q", got, want)
	}
}
