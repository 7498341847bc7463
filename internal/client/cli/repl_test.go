package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) record(name string) error {
	f.calls = append(f.calls, name)
	return nil
}

func (f *fakeExec) isLoggedIn() bool                      { return f.loggedIn }
func (f *fakeExec) Signup(ctx context.Context) error      { return f.record("signup") }
func (f *fakeExec) Verify(ctx context.Context) error      { return f.record("verify") }
func (f *fakeExec) Resend(ctx context.Context) error      { return f.record("resend") }
func (f *fakeExec) Forgot(ctx context.Context) error      { return f.record("forgot") }
func (f *fakeExec) Reset(ctx context.Context) error       { return f.record("reset") }
func (f *fakeExec) Profile(ctx context.Context) error     { return f.record("profile") }
func (f *fakeExec) EditProfile(ctx context.Context) error { return f.record("edit") }
func (f *fakeExec) Login(ctx context.Context) error {
	f.loggedIn = true
	return f.record("login")
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout")
}

func silenceREPL(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i], _ = v.(string)
		}
		lines = append(lines, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	silenceREPL(t)

	input := strings.Join([]string{
		"help",
		"signup",
		"verify",
		"resend",
		"forgot",
		"reset",
		"login",
		"help",
		"p",
		"profile",
		"edit",
		"logout",
		"foobar",
		"exit",
		"login",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewReader(strings.NewReader(input)))

	want := []string{"signup", "verify", "resend", "forgot", "reset", "login", "profile", "profile", "edit", "logout"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
}

func TestRunREPL_HelpDependsOnLoginState(t *testing.T) {
	lines := silenceREPL(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("help\nlogin\nhelp\nquit\n")))

	var helps []string
	for _, l := range *lines {
		if strings.HasPrefix(l, "Available commands") {
			helps = append(helps, l)
		}
	}
	if len(helps) != 2 {
		t.Fatalf("expected two help lines, got %v", helps)
	}
	if !strings.Contains(helps[0], "signup") || strings.Contains(helps[0], "logout") {
		t.Fatalf("anonymous help wrong: %q", helps[0])
	}
	if !strings.Contains(helps[1], "logout") || strings.Contains(helps[1], "signup") {
		t.Fatalf("logged-in help wrong: %q", helps[1])
	}
}

func TestRunREPL_UnknownAndQuit(t *testing.T) {
	lines := silenceREPL(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("get\n\nquit\n")))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	found := false
	for _, l := range *lines {
		if l == "Unknown command: get" {
			found = true
		}
	}
	if !found {
		t.Fatalf("unknown command not reported: %v", *lines)
	}
}

func TestRunREPL_StopsWhenContextEnds(t *testing.T) {
	silenceREPL(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, bufio.NewReader(strings.NewReader("login\n")))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
