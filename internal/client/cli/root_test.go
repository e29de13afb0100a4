package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

// ---- getStatus ----

func TestGetStatus_Empty(t *testing.T) {
	a := &App{}
	if got := a.getStatus(); got != "" {
		t.Fatalf("want empty status, got %q", got)
	}
}

func TestGetStatus_WithUsername(t *testing.T) {
	a := &App{userName: "alice"}
	want := "(alice)"
	if got := a.getStatus(); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}

// ---- runREPL (smoke) ----

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

type fakeExec struct {
	logged   bool
	posted   int
	feedHits int
}

func (f *fakeExec) isLoggedIn() bool               { return f.logged }
func (f *fakeExec) Register(context.Context) error { f.logged = true; return nil }
func (f *fakeExec) Login(context.Context) error    { f.logged = true; return nil }
func (f *fakeExec) Whoami(context.Context) error   { return nil }
func (f *fakeExec) Post(context.Context) error     { f.posted++; return nil }
func (f *fakeExec) Feed(context.Context) error     { f.feedHits++; return nil }
func (f *fakeExec) Logout(context.Context) error   { f.logged = false; return nil }

func TestRunREPL_HelpThenQuit(t *testing.T) {
	silencePrintln(t)

	input := "help\nquit\n"
	sc := bufio.NewScanner(strings.NewReader(input))

	exec := &fakeExec{}
	status := func() string { return "status" }

	runREPL(context.Background(), exec, status, sc)
}

func TestRunREPL_Dispatch(t *testing.T) {
	silencePrintln(t)

	input := "login\npost\nfeed\nf\nlogout\nexit\n"
	sc := bufio.NewScanner(strings.NewReader(input))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, sc)

	if exec.posted != 1 {
		t.Fatalf("post dispatched %d times, want 1", exec.posted)
	}
	if exec.feedHits != 2 {
		t.Fatalf("feed dispatched %d times, want 2", exec.feedHits)
	}
	if exec.logged {
		t.Fatalf("expected logged out after logout")
	}
}
