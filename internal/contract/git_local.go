package contract

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/huangsam/depmap/schema"
)

// LocalGitClient implements the GitClient interface by executing the
// local 'git' binary installed on the machine.
type LocalGitClient struct{}

var _ GitClient = &LocalGitClient{} // Compile-time check

// NewLocalGitClient creates a new instance of the local Git client.
func NewLocalGitClient() *LocalGitClient {
	return &LocalGitClient{}
}

// Run executes a git command and returns its stdout output.
func (c *LocalGitClient) Run(_ context.Context, repoPath string, args ...string) ([]byte, error) {
	fullArgs := append([]string{"-C", repoPath}, args...)
	cmd := exec.Command("git", fullArgs...)
	out, err := cmd.Output()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		stderr := strings.TrimSpace(string(exitErr.Stderr))
		return nil, fmt.Errorf("git command failed in %q: %s. If this is not a Git repository, verify the path or run 'git init'", repoPath, stderr)
	} else if err != nil {
		return nil, fmt.Errorf("git command failed: %w. Ensure Git is installed and available on your PATH", err)
	}
	return out, nil
}

// GetRepoRoot implements the GitClient interface.
func (c *LocalGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	out, err := c.Run(ctx, contextPath, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// CurrentBranch implements the GitClient interface.
func (c *LocalGitClient) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	out, err := c.Run(ctx, repoPath, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	name := strings.TrimSpace(string(out))
	if name == "HEAD" {
		return "", fmt.Errorf("HEAD is detached in %q; check out a branch first", repoPath)
	}
	return name, nil
}

// ListBranches implements the GitClient interface.
func (c *LocalGitClient) ListBranches(ctx context.Context, repoPath string) ([]string, error) {
	out, err := c.Run(ctx, repoPath, "branch", "--format=%(refname:short)")
	if err != nil {
		return nil, err
	}
	branches := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(branches) == 1 && branches[0] == "" {
		return []string{}, nil
	}
	return branches, nil
}

// MergedBranches implements the GitClient interface. Each line is trimmed of
// the indent git prints, which leaves the "* " marker on the current branch
// intact.
func (c *LocalGitClient) MergedBranches(ctx context.Context, repoPath string) ([]string, error) {
	out, err := c.Run(ctx, repoPath, "branch", "--merged")
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return []string{}, nil
	}
	branches := make([]string, 0, len(lines))
	for _, line := range lines {
		branches = append(branches, strings.TrimSpace(line))
	}
	return branches, nil
}

// CommitLog implements the GitClient interface.
func (c *LocalGitClient) CommitLog(ctx context.Context, repoPath string, rev string) ([]byte, error) {
	args := []string{
		"log",
		"--numstat",
		"--pretty=format:--%H|%an|%ct|%s",
		rev,
	}
	return c.Run(ctx, repoPath, args...)
}

// ListCommitsWithParents implements the GitClient interface.
func (c *LocalGitClient) ListCommitsWithParents(ctx context.Context, repoPath string) ([][]string, error) {
	out, err := c.Run(ctx, repoPath, "rev-list", "--reverse", "--parents", "HEAD")
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) == 1 && lines[0] == "" {
		return [][]string{}, nil
	}
	commits := make([][]string, 0, len(lines))
	for _, line := range lines {
		commits = append(commits, strings.Fields(line))
	}
	return commits, nil
}

// ChangedFiles implements the GitClient interface. Rename and copy entries
// report the destination path.
func (c *LocalGitClient) ChangedFiles(ctx context.Context, repoPath string, sha, parent string) ([]schema.ChangedFile, error) {
	args := []string{"diff-tree", "-r", "-M", "--name-status", "--no-commit-id"}
	if parent == "" {
		args = append(args, "--root", sha)
	} else {
		args = append(args, parent, sha)
	}
	out, err := c.Run(ctx, repoPath, args...)
	if err != nil {
		return nil, err
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	changes := make([]schema.ChangedFile, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			continue
		}
		// Statuses like R100 carry a similarity score; the letter is enough.
		status := schema.ChangeStatus(fields[0][:1])
		changes = append(changes, schema.ChangedFile{Path: fields[len(fields)-1], Status: status})
	}
	return changes, nil
}

// FileAtCommit implements the GitClient interface.
func (c *LocalGitClient) FileAtCommit(ctx context.Context, repoPath string, sha, path string) ([]byte, error) {
	return c.Run(ctx, repoPath, "show", sha+":"+path)
}

// Clone implements the GitClient interface.
func (c *LocalGitClient) Clone(_ context.Context, url, dir string) error {
	cmd := exec.Command("git", "clone", "--quiet", url, dir)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("git clone failed for %q: %s", url, strings.TrimSpace(string(out)))
	}
	return nil
}
