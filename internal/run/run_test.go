package run

import (
	"context"
	"errors"
	"testing"
)

func TestExecRunnerCapturesStdout(t *testing.T) {
	r := ExecRunner{}
	out, err := r.Run(context.Background(), "echo", "hello")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(out) != "hello\n" {
		t.Errorf("stdout = %q", string(out))
	}
}

func TestExecRunnerArgumentsNotShellExpanded(t *testing.T) {
	r := ExecRunner{}
	out, err := r.Run(context.Background(), "echo", "$HOME; rm -rf /")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if string(out) != "$HOME; rm -rf /\n" {
		t.Errorf("argument was interpreted by a shell: %q", string(out))
	}
}

func TestExecRunnerFailureIsCommandError(t *testing.T) {
	r := ExecRunner{}
	_, err := r.Run(context.Background(), "false")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T", err)
	}
	if ce.Name != "false" {
		t.Errorf("name = %q", ce.Name)
	}
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := ExecRunner{}
	if _, err := r.Run(context.Background(), "specbump-no-such-binary"); err == nil {
		t.Fatal("expected error for missing binary")
	}
}

func TestExecRunnerContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := ExecRunner{}
	if _, err := r.Run(ctx, "sleep", "5"); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
