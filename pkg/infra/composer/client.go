package composer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/NickStees/drupal-update/pkg/domain/interfaces"
	"github.com/NickStees/drupal-update/pkg/domain/model"
)

const (
	manifestFile = "composer.json"
	lockFile     = "composer.lock"

	defaultBin = "composer"
)

type client struct {
	dir    string
	bin    string
	prefix []string
	auth   string
}

// Option is a functional option for client configuration
type Option func(*client)

// WithBin overrides the composer executable name.
func WithBin(bin string) Option {
	return func(c *client) {
		if bin != "" {
			c.bin = bin
		}
	}
}

// WithPrefix prepends a command prefix (e.g. "ddev" or "docker compose exec
// web") to every composer invocation. The prefix is split on whitespace.
func WithPrefix(prefix string) Option {
	return func(c *client) {
		c.prefix = SplitPrefix(prefix)
	}
}

// WithAuth passes a COMPOSER_AUTH credential blob to the spawned process so
// private package repositories resolve in CI.
func WithAuth(auth string) Option {
	return func(c *client) {
		c.auth = auth
	}
}

// NewClient creates a PackageManager that runs the composer binary against the
// project in dir.
func NewClient(dir string, opts ...Option) interfaces.PackageManager {
	c := &client{
		dir: dir,
		bin: defaultBin,
	}
	if c.dir == "" {
		c.dir = "."
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// SplitPrefix splits a command prefix into argv fields.
func SplitPrefix(prefix string) []string {
	return strings.Fields(prefix)
}

// ListOutdated runs the locked outdated listing and parses its JSON output.
func (c *client) ListOutdated(ctx context.Context) ([]model.Package, error) {
	inv, err := c.run(ctx, "outdated", "--locked", "--direct", "--format=json")
	if err != nil {
		return nil, err
	}
	if inv.exitCode != 0 {
		return nil, goerr.New("composer outdated failed",
			goerr.V("exit_code", inv.exitCode),
			goerr.V("output", inv.combined))
	}

	// Warnings go to stderr; only stdout carries the JSON document.
	return ParseOutdated([]byte(inv.stdout))
}

// Update runs a generic `composer update` for the given names or patterns.
func (c *client) Update(ctx context.Context, packages ...string) (*model.CommandResult, error) {
	args := append([]string{"update"}, packages...)
	args = append(args, "--with-all-dependencies", "--no-interaction", "--no-progress")
	return c.invoke(ctx, args)
}

// Require pins exact versions via `composer require`. Requirements are
// "name:version" pairs.
func (c *client) Require(ctx context.Context, requirements ...string) (*model.CommandResult, error) {
	args := append([]string{"require"}, requirements...)
	args = append(args, "--update-with-all-dependencies", "--no-interaction", "--no-progress")
	return c.invoke(ctx, args)
}

// LockContains reports whether the lock file contains the version string
// anywhere in its text.
func (c *client) LockContains(version string) (bool, error) {
	data, err := os.ReadFile(filepath.Join(c.dir, lockFile))
	if err != nil {
		return false, goerr.Wrap(err, "failed to read lock file")
	}
	return bytes.Contains(data, []byte(version)), nil
}

func (c *client) invoke(ctx context.Context, args []string) (*model.CommandResult, error) {
	inv, err := c.run(ctx, args...)
	if err != nil {
		return nil, err
	}
	return &model.CommandResult{
		ExitCode: inv.exitCode,
		Output:   inv.combined,
	}, nil
}

type invocation struct {
	stdout   string
	combined string
	exitCode int
}

// run executes composer with the configured prefix and captures its output. A
// non-zero exit code is part of the result, not an error: classifying it is
// the caller's job. Errors are reserved for failing to run the command at all.
func (c *client) run(ctx context.Context, args ...string) (*invocation, error) {
	argv := append([]string{}, c.prefix...)
	argv = append(argv, c.bin)
	argv = append(argv, args...)

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = c.dir
	if c.auth != "" {
		cmd.Env = append(os.Environ(), "COMPOSER_AUTH="+c.auth)
	}

	var stdout, combined bytes.Buffer
	cmd.Stdout = io.MultiWriter(&stdout, &combined)
	cmd.Stderr = &combined

	err := cmd.Run()
	inv := &invocation{
		stdout:   stdout.String(),
		combined: combined.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
	case errors.As(err, &exitErr):
		inv.exitCode = exitErr.ExitCode()
	default:
		return nil, goerr.Wrap(err, "failed to run package manager",
			goerr.V("command", strings.Join(argv, " ")),
			goerr.V("dir", c.dir))
	}

	return inv, nil
}
