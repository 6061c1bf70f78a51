package encoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"
)

// ToolError reports a non-zero exit from an external audio tool,
// carrying its captured stderr.
type ToolError struct {
	Tool   string
	Stderr string
	Err    error
}

func (e *ToolError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("%s: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Tool, e.Err, e.Stderr)
}

func (e *ToolError) Unwrap() error { return e.Err }

// command describes one external tool invocation.
type command struct {
	name string
	args []string
}

// runPipeline executes the commands as a unix pipeline (each command's
// stdout feeding the next one's stdin) with per-command stderr capture.
// The final command writes the output file itself; on failure or
// cancellation the partial output is removed before the error is
// returned, so a half-written artifact never claims completion.
func runPipeline(ctx context.Context, output string, specs ...command) error {
	procs := make([]*exec.Cmd, len(specs))
	stderrs := make([]bytes.Buffer, len(specs))
	for i, spec := range specs {
		cmd := exec.CommandContext(ctx, spec.name, spec.args...)
		cmd.Stderr = &stderrs[i]
		procs[i] = cmd
	}
	// pipes[i] is the read end feeding procs[i]'s stdin.
	pipes := make([]io.ReadCloser, len(procs))
	for i := 1; i < len(procs); i++ {
		pipe, err := procs[i-1].StdoutPipe()
		if err != nil {
			return fmt.Errorf("pipe %s: %w", specs[i-1].name, err)
		}
		procs[i].Stdin = pipe
		pipes[i] = pipe
	}

	for i, proc := range procs {
		if err := proc.Start(); err != nil {
			for j := 0; j < i; j++ {
				_ = procs[j].Process.Kill()
				_ = procs[j].Wait()
			}
			return fmt.Errorf("start %s: %w", specs[i].name, err)
		}
	}

	// Wait downstream-first: Wait closes the stdout pipe, so an
	// upstream Wait must not run while its reader is still draining.
	// After each consumer exits, the parent's copy of its stdin pipe
	// must be closed too, or a consumer that died early leaves its
	// upstream blocked on a full pipe with no one to deliver EPIPE.
	waitErrs := make([]error, len(procs))
	for i := len(procs) - 1; i >= 0; i-- {
		waitErrs[i] = procs[i].Wait()
		if pipes[i] != nil {
			pipes[i].Close()
		}
	}

	if err := ctx.Err(); err != nil {
		removePartial(output)
		return fmt.Errorf("conversion interrupted: %w", err)
	}
	pipeCasualty := -1
	for i, err := range waitErrs {
		if err == nil {
			continue
		}
		if killedByPipe(err) {
			// A producer cut down by SIGPIPE is a consequence of its
			// consumer dying, not the root cause.
			if pipeCasualty < 0 {
				pipeCasualty = i
			}
			continue
		}
		removePartial(output)
		return &ToolError{Tool: specs[i].name, Err: err, Stderr: strings.TrimSpace(stderrs[i].String())}
	}
	if pipeCasualty >= 0 {
		i := pipeCasualty
		removePartial(output)
		return &ToolError{Tool: specs[i].name, Err: waitErrs[i], Stderr: strings.TrimSpace(stderrs[i].String())}
	}
	return nil
}

func killedByPipe(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	return ok && status.Signaled() && status.Signal() == syscall.SIGPIPE
}

// runTool executes a single external command, capturing stderr.
func runTool(ctx context.Context, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return &ToolError{Tool: name, Err: err, Stderr: strings.TrimSpace(stderr.String())}
	}
	return nil
}

// removePartial deletes a possibly half-written output. A failed
// removal leaves a stale artifact behind, which the next run rebuilds.
func removePartial(path string) {
	_ = os.Remove(path)
}
