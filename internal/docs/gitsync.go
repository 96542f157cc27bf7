package docs

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// CommandExecutor abstracts command execution for testing.
type CommandExecutor interface {
	// Run executes a command and returns its combined output.
	Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error)
}

// DefaultExecutor executes commands using os/exec.
type DefaultExecutor struct{}

// Run executes a command and returns its combined output.
func (e *DefaultExecutor) Run(ctx context.Context, dir string, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	if dir != "" {
		cmd.Dir = dir
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil {
		// Include stderr in error message for debugging
		if stderr.Len() > 0 {
			return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil, err
	}

	return stdout.Bytes(), nil
}

// GitClient syncs the documentation mirror from its git remote.
type GitClient struct {
	executor CommandExecutor
}

// NewGitClient creates a GitClient with the default command executor.
func NewGitClient() *GitClient {
	return &GitClient{
		executor: &DefaultExecutor{},
	}
}

// NewGitClientWithExecutor creates a GitClient with a custom executor (for testing).
func NewGitClientWithExecutor(executor CommandExecutor) *GitClient {
	return &GitClient{
		executor: executor,
	}
}

// Clone performs a shallow clone of the mirror.
// Uses --depth 1 and --single-branch; the full history of a docs corpus
// is large and never needed.
func (g *GitClient) Clone(ctx context.Context, url, destDir string) error {
	_, err := g.executor.Run(ctx, "", "git", "clone",
		"--depth", "1",
		"--single-branch",
		url,
		destDir,
	)
	if err != nil {
		return fmt.Errorf("git clone failed: %w", err)
	}
	return nil
}

// Fetch fetches the latest changes from the remote, keeping the clone shallow.
func (g *GitClient) Fetch(ctx context.Context, mirrorDir string) error {
	_, err := g.executor.Run(ctx, mirrorDir, "git", "fetch", "--depth", "1")
	if err != nil {
		return fmt.Errorf("git fetch failed: %w", err)
	}
	return nil
}

// Reset performs a hard reset to origin/HEAD so the working tree matches
// the remote.
func (g *GitClient) Reset(ctx context.Context, mirrorDir string) error {
	_, err := g.executor.Run(ctx, mirrorDir, "git", "reset", "--hard", "origin/HEAD")
	if err != nil {
		return fmt.Errorf("git reset failed: %w", err)
	}
	return nil
}

// HeadCommit returns the current HEAD commit SHA.
func (g *GitClient) HeadCommit(ctx context.Context, mirrorDir string) (string, error) {
	output, err := g.executor.Run(ctx, mirrorDir, "git", "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("git rev-parse failed: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// IsGitRepository checks if the given directory is a git repository.
func (g *GitClient) IsGitRepository(ctx context.Context, dir string) bool {
	_, err := g.executor.Run(ctx, dir, "git", "rev-parse", "--git-dir")
	return err == nil
}
