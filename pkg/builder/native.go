package builder

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/magefile/mage/sh"
)

// Runner runs an external command in the current working directory with
// extra environment variables. A command that ran and exited non-zero
// returns its exit code and a nil error; err is reserved for commands that
// could not be started.
type Runner interface {
	Run(ctx context.Context, env map[string]string, cmd string, args ...string) (int, error)
}

// MageRunner runs commands through mage's sh helpers. It imposes no timeout:
// a hung native build blocks until it is killed.
type MageRunner struct {
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner
func (r *MageRunner) Run(ctx context.Context, env map[string]string, cmd string, args ...string) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}

	ran, err := sh.Exec(env, r.Stdout, r.Stderr, cmd, args...)
	if !ran {
		return -1, err
	}

	return sh.ExitStatus(err), nil
}

// InDir runs fn with the process working directory set to dir and restores
// the previous directory on every exit path, including panics.
func InDir(dir string, fn func() error) (err error) {
	prev, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("entering %s: %w", dir, err)
	}
	defer func() {
		if cdErr := os.Chdir(prev); cdErr != nil && err == nil {
			err = fmt.Errorf("restoring working directory %s: %w", prev, cdErr)
		}
	}()

	return fn()
}
