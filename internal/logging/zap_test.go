package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestZapLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewZapLogger(SetupZap("json", &buf))

	log.With("component", "flows").Warn(context.Background(), "otp rejected", "attempt", 2)

	out := buf.String()
	for _, s := range []string{`"level":"warn"`, `"msg":"otp rejected"`, `"component":"flows"`, `"attempt":2`} {
		if !strings.Contains(out, s) {
			t.Fatalf("expected %s in output, got:\n%s", s, out)
		}
	}
}

func TestNew_Backends(t *testing.T) {
	var buf bytes.Buffer

	l, err := New(BackendZap, "text", &buf)
	if err != nil {
		t.Fatalf("zap backend: %v", err)
	}
	l.Info(context.Background(), "zap-line")
	if !strings.Contains(buf.String(), "zap-line") {
		t.Fatalf("zap backend did not write, got %q", buf.String())
	}

	buf.Reset()
	l, err = New("", "", &buf)
	if err != nil {
		t.Fatalf("default backend: %v", err)
	}
	l.Info(context.Background(), "slog-line")
	if !strings.Contains(buf.String(), "msg=slog-line") {
		t.Fatalf("slog backend did not write, got %q", buf.String())
	}

	if _, err := New("logrus", "text", &buf); err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestZapLogger_RedactsSecrets(t *testing.T) {
	var buf bytes.Buffer
	log := NewZapLogger(SetupZap("json", &buf))

	log.Debug(context.Background(), "verify", "OTP", "123456", "email", "ann@example.com")

	out := buf.String()
	if strings.Contains(out, "123456") {
		t.Fatalf("otp leaked into output:\n%s", out)
	}
	if !strings.Contains(out, `"OTP":"[REDACTED]"`) {
		t.Fatalf("expected masked otp, got:\n%s", out)
	}
}
