package core

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/huangsam/depmap/internal/contract"
	"github.com/huangsam/depmap/schema"
)

// dependencySet accumulates per-file import observations across revisions.
// Files keep first-seen order; per-file import lists are insertion-ordered
// unions that never shrink.
type dependencySet struct {
	order   []string
	imports map[string][]string
	seen    map[string]map[string]struct{}
}

func newDependencySet() *dependencySet {
	return &dependencySet{
		imports: make(map[string][]string),
		seen:    make(map[string]map[string]struct{}),
	}
}

// observe merges one revision's imports into the set for path. Observing a
// path with no imports still registers it as tracked.
func (d *dependencySet) observe(path string, imports []string) {
	fileSeen, ok := d.seen[path]
	if !ok {
		fileSeen = make(map[string]struct{})
		d.seen[path] = fileSeen
		d.order = append(d.order, path)
	}
	for _, imp := range imports {
		if _, dup := fileSeen[imp]; dup {
			continue
		}
		fileSeen[imp] = struct{}{}
		d.imports[path] = append(d.imports[path], imp)
	}
}

// files returns the accumulated imports in first-seen file order.
func (d *dependencySet) files() []schema.FileImports {
	out := make([]schema.FileImports, 0, len(d.order))
	for _, path := range d.order {
		out = append(out, schema.FileImports{Path: path, Imports: d.imports[path]})
	}
	return out
}

// ExtractDependencies resolves the configured source and walks every commit
// in chronological order, parsing each added or modified Python file at that
// revision and accumulating its imports per path. Remote URLs are cloned
// into a temp directory for the duration of the walk.
func ExtractDependencies(ctx context.Context, cfg *contract.Config, client contract.GitClient) (*schema.DependencyReport, error) {
	repoPath, cleanup, err := resolveRepoDir(ctx, cfg, client)
	if err != nil {
		return nil, err
	}
	defer cleanup()
	return extractFromRepo(ctx, cfg, client, repoPath)
}

// extractFromRepo runs the revision walk against an already resolved
// repository directory, honoring the inclusive from/to commit bounds.
func extractFromRepo(ctx context.Context, cfg *contract.Config, client contract.GitClient, repoPath string) (*schema.DependencyReport, error) {
	commits, err := client.ListCommitsWithParents(ctx, repoPath)
	if err != nil {
		return nil, err
	}

	deps := newDependencySet()
	ignoredFiles := 0
	otherExtensions := []string{}
	commitCount := 0

	started := cfg.FromCommit == ""
	for _, entry := range commits {
		if len(entry) == 0 {
			continue
		}
		sha := entry[0]
		if !started {
			if !matchesCommit(sha, cfg.FromCommit) {
				continue
			}
			started = true
		}
		commitCount++

		// First parent; empty for the root commit, which diffs against the
		// empty tree. Merge commits diff against their first parent.
		parent := ""
		if len(entry) > 1 {
			parent = entry[1]
		}

		changes, err := client.ChangedFiles(ctx, repoPath, sha, parent)
		if err != nil {
			contract.LogWarn(fmt.Sprintf("Error encountered while processing commit %s", sha), err)
			if matchesCommit(sha, cfg.ToCommit) {
				break
			}
			continue
		}

		for _, change := range changes {
			if !strings.HasSuffix(change.Path, ".py") {
				otherExtensions = append(otherExtensions, change.Path)
				continue
			}
			if change.Status != schema.StatusAdded && change.Status != schema.StatusModified {
				continue
			}

			content, err := client.FileAtCommit(ctx, repoPath, sha, change.Path)
			if err != nil {
				contract.LogWarn(fmt.Sprintf("Error analyzing %s", change.Path), err)
				continue
			}
			if !utf8.Valid(content) {
				contract.LogWarn(fmt.Sprintf("Error analyzing %s", change.Path), fmt.Errorf("content at %s is not valid UTF-8", sha))
				continue
			}

			imports, err := ExtractImports(content)
			if err != nil {
				// Unparseable revision of a Python file
				ignoredFiles++
				continue
			}
			deps.observe(change.Path, imports)
		}

		if matchesCommit(sha, cfg.ToCommit) {
			break
		}
	}

	return &schema.DependencyReport{
		Files:           deps.files(),
		IgnoredFiles:    ignoredFiles,
		OtherExtensions: otherExtensions,
		CommitCount:     commitCount,
	}, nil
}

// matchesCommit reports whether sha matches a user-provided commit bound.
// Abbreviated bounds match by prefix; an empty bound matches nothing.
func matchesCommit(sha, bound string) bool {
	return bound != "" && strings.HasPrefix(sha, bound)
}
