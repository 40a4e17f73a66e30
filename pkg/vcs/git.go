// Package vcs resolves the version control reference recorded in snapshots.
package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// abbrevLength is the number of commit hash characters used for detached HEADs
const abbrevLength = 6

// Resolver returns the current reference. ok is false when no reference is
// available, for example outside a repository.
type Resolver interface {
	Ref(ctx context.Context) (ref string, ok bool)
}

// CommandRunner runs name with args in dir and returns its standard output
type CommandRunner func(ctx context.Context, dir, name string, args ...string) (string, error)

// Git resolves the current branch, or the abbreviated commit on a detached HEAD
type Git struct {
	dir string
	run CommandRunner
}

// NewGit returns a resolver for the repository containing dir.
// An empty dir uses the working directory.
func NewGit(dir string) *Git {
	return &Git{dir: dir, run: execRunner}
}

// WithRunner replaces the command runner
func (g *Git) WithRunner(run CommandRunner) *Git {
	g.run = run
	return g
}

// Ref never fails: any git error means there is no reference
func (g *Git) Ref(ctx context.Context) (string, bool) {
	branch, err := g.run(ctx, g.dir, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", false
	}
	branch = strings.TrimSpace(branch)
	if branch != "" && branch != "HEAD" {
		return branch, true
	}

	commit, err := g.run(ctx, g.dir, "git", "rev-parse", "HEAD")
	if err != nil {
		return "", false
	}
	commit = strings.TrimSpace(commit)
	if commit == "" {
		return "", false
	}
	if len(commit) > abbrevLength {
		commit = commit[:abbrevLength]
	}
	return commit, true
}

func execRunner(ctx context.Context, dir, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return "", err
	}
	return stdout.String(), nil
}

// Static always returns the same reference; an empty ref means none
type Static string

// Ref returns the fixed reference
func (s Static) Ref(ctx context.Context) (string, bool) {
	return string(s), s != ""
}
