package gitcli

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandContext starts git processes. Tests may replace it.
var CommandContext = exec.CommandContext

// CommandError is returned when git exits with an error.
type CommandError struct {
	Args   []string
	Stderr string
	Err    error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("exec: git %s failed: %s (%v)", ArgsString(e.Args), e.Stderr, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns git's exit status, or -1 if it didn't exit normally.
func (e *CommandError) ExitCode() int {
	if ee, ok := e.Err.(*exec.ExitError); ok {
		return ee.ExitCode()
	}
	return -1
}

func (g *Git) call(ctx context.Context, args []string) ([]byte, error) {
	g.cfg.Debugf("+ git %s", ArgsString(args))
	cmd := CommandContext(ctx, "git", args...)
	cmd.Dir = g.wd

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &CommandError{
			Args:   args,
			Stderr: strings.TrimSpace(stderr.String()),
			Err:    err,
		}
	}
	return stdout.Bytes(), nil
}

// ArgsString returns a string suitable for copy/paste into the terminal.
func ArgsString(args []string) string {
	quoted := make([]string, len(args))
	for i, arg := range args {
		if strings.ContainsAny(arg, " %") {
			arg = `"` + arg + `"`
		}
		quoted[i] = arg
	}
	return strings.Join(quoted, " ")
}
