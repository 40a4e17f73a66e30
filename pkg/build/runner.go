// Package build runs the project build command and measures its duration.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"time"

	"github.com/sdejongh/sizediff/pkg/logging"
	"github.com/sdejongh/sizediff/pkg/models"
)

// Runner executes a shell command
type Runner interface {
	Run(ctx context.Context, command string, env map[string]string) error
}

// ShellRunner runs commands through the platform shell. When the context
// is cancelled the whole process tree started by the command is killed.
type ShellRunner struct {
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
	Logger logging.Logger
}

// NewShellRunner returns a runner forwarding output to the current process
func NewShellRunner() *ShellRunner {
	return &ShellRunner{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logging.NewNullLogger(),
	}
}

// Run executes command and waits for it to exit
func (r *ShellRunner) Run(ctx context.Context, command string, env map[string]string) error {
	logger := r.Logger
	if logger == nil {
		logger = logging.NewNullLogger()
	}

	cmd := shellCommand(command)
	cmd.Dir = r.Dir
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	cmd.Env = mergeEnv(os.Environ(), env)
	prepareProcessGroup(cmd)

	logger.Info(ctx, "running build command", logging.Fields{"command": command})

	if err := cmd.Start(); err != nil {
		return &models.BuildFailedError{Command: command, ExitCode: -1, Err: err}
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	select {
	case err := <-done:
		return exitError(command, err)
	case <-ctx.Done():
		logger.Warn(ctx, "build interrupted, terminating process tree", logging.Fields{
			"command": command,
			"pid":     cmd.Process.Pid,
		})
		if err := killProcessTree(cmd); err != nil {
			logger.Error(ctx, "failed to terminate build", err, nil)
		}
		<-done
		return &models.BuildFailedError{Command: command, ExitCode: -1, Err: ctx.Err()}
	}
}

func exitError(command string, err error) error {
	if err == nil {
		return nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &models.BuildFailedError{Command: command, ExitCode: exitErr.ExitCode(), Err: err}
	}
	return &models.BuildFailedError{Command: command, ExitCode: -1, Err: err}
}

// mergeEnv appends env to base in key order so later values override
func mergeEnv(base []string, env map[string]string) []string {
	keys := make([]string, 0, len(env))
	for k := range env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	merged := make([]string, 0, len(base)+len(keys))
	merged = append(merged, base...)
	for _, k := range keys {
		merged = append(merged, fmt.Sprintf("%s=%s", k, env[k]))
	}
	return merged
}

// Measure runs command and returns how long it took
func Measure(ctx context.Context, runner Runner, command string, env map[string]string) (*models.BuildTime, error) {
	start := time.Now()
	if err := runner.Run(ctx, command, env); err != nil {
		return nil, err
	}
	return models.NewBuildTime(time.Since(start)), nil
}
