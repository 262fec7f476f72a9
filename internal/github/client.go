package github

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/wahlandcase/attuned.prsplit/internal/models"
)

// CheckAuth verifies gh CLI is authenticated
func CheckAuth(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, "gh", "auth", "status")
	if err := cmd.Run(); err != nil {
		return errors.WithHint(
			errors.New("not authenticated with GitHub CLI"),
			"run 'gh auth login' first",
		)
	}
	return nil
}

// GetExistingPR gets an existing open PR for the given head -> base branch
func GetExistingPR(ctx context.Context, repoPath, headBranch, baseBranch string) (*models.GhPr, error) {
	cmd := exec.CommandContext(ctx, "gh", "pr", "list",
		"--head", headBranch,
		"--base", baseBranch,
		"--state", "open",
		"--json", "number,url,title,state",
	)
	cmd.Dir = repoPath

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("gh pr list failed: %s", strings.TrimSpace(string(output)))
	}

	var prs []models.GhPr
	if err := json.Unmarshal(output, &prs); err != nil {
		return nil, fmt.Errorf("failed to parse gh pr list output: %w", err)
	}

	if len(prs) == 0 {
		return nil, nil
	}

	return &prs[0], nil
}

// CreatePR creates a new pull request
func CreatePR(ctx context.Context, repoPath, headBranch, baseBranch, title, body string, draft bool) (*models.GhPr, error) {
	args := []string{"pr", "create",
		"--head", headBranch,
		"--base", baseBranch,
		"--title", title,
		"--body", body,
	}
	if draft {
		args = append(args, "--draft")
	}
	cmd := exec.CommandContext(ctx, "gh", args...)
	cmd.Dir = repoPath

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("gh pr create failed: %s", strings.TrimSpace(string(output)))
	}

	// gh pr create prints the URL last
	url := lastLine(string(output))
	return &models.GhPr{
		Number: parsePRNumber(url),
		URL:    url,
		Title:  title,
		State:  "OPEN",
	}, nil
}

// UpdatePR updates an existing PR's title and body
func UpdatePR(ctx context.Context, repoPath string, prNumber uint64, title, body string) (*models.GhPr, error) {
	cmd := exec.CommandContext(ctx, "gh", "pr", "edit",
		strconv.FormatUint(prNumber, 10),
		"--title", title,
		"--body", body,
	)
	cmd.Dir = repoPath

	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("gh pr edit failed: %s", strings.TrimSpace(string(output)))
	}

	// Get the updated PR info
	return GetPR(ctx, repoPath, prNumber)
}

// GetPR gets PR details by number
func GetPR(ctx context.Context, repoPath string, prNumber uint64) (*models.GhPr, error) {
	cmd := exec.CommandContext(ctx, "gh", "pr", "view",
		strconv.FormatUint(prNumber, 10),
		"--json", "number,url,title,state",
	)
	cmd.Dir = repoPath

	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("gh pr view failed: %w", err)
	}

	var pr models.GhPr
	if err := json.Unmarshal(output, &pr); err != nil {
		return nil, fmt.Errorf("failed to parse gh pr view output: %w", err)
	}

	return &pr, nil
}

// CreateOrUpdatePR creates a new PR or updates an existing one.
// The bool result is true when an existing PR was updated.
func CreateOrUpdatePR(ctx context.Context, repoPath, headBranch, baseBranch, title, body string, draft bool) (*models.GhPr, bool, error) {
	existing, err := GetExistingPR(ctx, repoPath, headBranch, baseBranch)
	if err != nil {
		return nil, false, err
	}

	if existing != nil {
		pr, err := UpdatePR(ctx, repoPath, existing.Number, title, body)
		if err != nil {
			return nil, false, err
		}
		return pr, true, nil
	}

	pr, err := CreatePR(ctx, repoPath, headBranch, baseBranch, title, body, draft)
	if err != nil {
		return nil, false, err
	}
	return pr, false, nil
}

// parsePRNumber extracts the PR number from a URL like https://github.com/org/repo/pull/123
func parsePRNumber(url string) uint64 {
	parts := strings.Split(strings.TrimRight(url, "/"), "/")
	number, _ := strconv.ParseUint(parts[len(parts)-1], 10, 64)
	return number
}

func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
