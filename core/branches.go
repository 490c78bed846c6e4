package core

import (
	"context"

	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/schema"
)

// ClassifyBranches partitions local branches relative to the checked-out
// branch. Merged entries are git's own lines, so the active branch keeps its
// "* " marker there; unmerged entries are the remaining branches in listing
// order, with the active branch removed from that side only.
func ClassifyBranches(ctx context.Context, client contract.GitClient, repoPath string) (*schema.BranchReport, error) {
	current, err := client.CurrentBranch(ctx, repoPath)
	if err != nil {
		return nil, err
	}

	merged, err := client.MergedBranches(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	mergedSet := make(map[string]struct{}, len(merged))
	for _, branch := range merged {
		mergedSet[branch] = struct{}{}
	}

	all, err := client.ListBranches(ctx, repoPath)
	if err != nil {
		return nil, err
	}

	unmerged := []string{}
	for _, branch := range all {
		if _, ok := mergedSet[branch]; ok {
			continue
		}
		if branch == current {
			continue
		}
		unmerged = append(unmerged, branch)
	}

	return &schema.BranchReport{
		Current:  current,
		Merged:   merged,
		Unmerged: unmerged,
	}, nil
}
