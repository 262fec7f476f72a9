package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/cockroachdb/errors"
)

// Worktree runs mutating git commands through the git CLI so that the
// user's SSH agent and credential helpers apply
type Worktree struct {
	Dir    string
	Remote string
}

// NewWorktree creates a Worktree for the repository at dir
func NewWorktree(dir, remote string) *Worktree {
	if remote == "" {
		remote = DefaultRemote
	}
	return &Worktree{Dir: dir, Remote: remote}
}

func (w *Worktree) run(ctx context.Context, stdin []byte, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = w.Dir
	if stdin != nil {
		cmd.Stdin = bytes.NewReader(stdin)
	}
	output, err := cmd.CombinedOutput()
	outputStr := strings.TrimSpace(string(output))
	if err != nil {
		if outputStr == "" {
			outputStr = err.Error()
		}
		return outputStr, &GitError{Command: args[0], Output: outputStr}
	}
	return outputStr, nil
}

// Fetch fetches branches from the remote
func (w *Worktree) Fetch(ctx context.Context, branches ...string) error {
	args := append([]string{"fetch", w.Remote}, branches...)
	output, err := w.run(ctx, nil, args...)
	if err != nil {
		if strings.Contains(output, "couldn't find remote ref") {
			return branchNotFound(w.Remote, branches...)
		}
		return err
	}
	return nil
}

// Checkout switches to an existing branch
func (w *Worktree) Checkout(ctx context.Context, branch string) error {
	_, err := w.run(ctx, nil, "checkout", branch)
	return err
}

// Pull fast-forwards branch from the remote
func (w *Worktree) Pull(ctx context.Context, branch string) error {
	_, err := w.run(ctx, nil, "pull", w.Remote, branch)
	return err
}

// BranchExists reports whether a local or remote-tracking branch exists
func (w *Worktree) BranchExists(ctx context.Context, branch string) bool {
	if _, err := w.run(ctx, nil, "rev-parse", "--verify", "--quiet", "refs/heads/"+branch); err == nil {
		return true
	}
	_, err := w.run(ctx, nil, "rev-parse", "--verify", "--quiet", "refs/remotes/"+w.Remote+"/"+branch)
	return err == nil
}

// StartBranch checks out branch, creating it from the current HEAD when it
// does not exist. reused reports whether the branch already existed.
func (w *Worktree) StartBranch(ctx context.Context, branch string) (reused bool, err error) {
	if w.BranchExists(ctx, branch) {
		return true, w.Checkout(ctx, branch)
	}
	_, err = w.run(ctx, nil, "checkout", "-b", branch)
	return false, err
}

// ApplyDiff applies the base...source diff restricted to files onto the
// working tree, retrying with a three-way merge when a plain apply fails.
// It returns the files that had changes; none means the diff was empty.
func (w *Worktree) ApplyDiff(ctx context.Context, base, source string, files []string) ([]string, error) {
	var patch bytes.Buffer
	var applied []string
	for _, f := range files {
		out, err := w.diff(ctx, base, source, f)
		if err != nil {
			return nil, err
		}
		if len(out) > 0 {
			applied = append(applied, f)
			patch.Write(out)
			if out[len(out)-1] != '\n' {
				patch.WriteByte('\n')
			}
		}
	}
	if patch.Len() == 0 {
		return nil, nil
	}

	if _, err := w.run(ctx, patch.Bytes(), "apply", "-"); err == nil {
		return applied, nil
	}
	if _, err := w.run(ctx, patch.Bytes(), "apply", "--3way", "-"); err != nil {
		return nil, errors.Wrap(err, "apply patch")
	}
	return applied, nil
}

// diff returns raw patch bytes; CombinedOutput would mix warnings into the patch
func (w *Worktree) diff(ctx context.Context, base, source, file string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", "diff", "--binary", base+"..."+source, "--", file)
	cmd.Dir = w.Dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	out, err := cmd.Output()
	if err != nil {
		return nil, &GitError{Command: "diff", Output: strings.TrimSpace(stderr.String())}
	}
	return out, nil
}

// Add stages paths, deletions included
func (w *Worktree) Add(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"add", "-A", "--"}, paths...)
	_, err := w.run(ctx, nil, args...)
	return err
}

// Discard resets tracked files to HEAD, which also clears unmerged entries
// left by a conflicting apply, and removes untracked files among paths.
// Untracked files elsewhere are left alone.
func (w *Worktree) Discard(ctx context.Context, paths []string) error {
	if _, err := w.run(ctx, nil, "reset", "--hard", "--quiet"); err != nil {
		return err
	}
	if len(paths) == 0 {
		return nil
	}
	args := append([]string{"clean", "-fd", "--quiet", "--"}, paths...)
	_, err := w.run(ctx, nil, args...)
	return err
}

// HasLocalChanges reports whether tracked files differ from HEAD
func (w *Worktree) HasLocalChanges(ctx context.Context) (bool, error) {
	out, err := w.run(ctx, nil, "status", "--porcelain", "--untracked-files=no")
	if err != nil {
		return false, err
	}
	return out != "", nil
}

// CurrentBranch returns the checked out branch name
func (w *Worktree) CurrentBranch(ctx context.Context) (string, error) {
	return w.run(ctx, nil, "rev-parse", "--abbrev-ref", "HEAD")
}

// Commit records staged changes. It returns ErrNothingToCommit when the index is clean.
func (w *Worktree) Commit(ctx context.Context, message string) error {
	output, err := w.run(ctx, nil, "commit", "-m", message)
	if err != nil {
		if strings.Contains(output, "nothing to commit") || strings.Contains(output, "nothing added to commit") {
			return ErrNothingToCommit
		}
		return err
	}
	return nil
}

// Push pushes branch and sets its upstream
func (w *Worktree) Push(ctx context.Context, branch string) error {
	_, err := w.run(ctx, nil, "push", "-u", w.Remote, branch)
	return err
}
