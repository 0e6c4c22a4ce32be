package git

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/filemode"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/src-d/enry/v2"

	"github.com/masmgr/folio/internal/loc"
)

// BlameReader exports one record per line of every file in a commit's tree,
// attributed to the commit that last touched the line.
type BlameReader struct {
	repo        *git.Repository
	opts        ReadOptions
	filterCache map[string]bool
}

// NewBlameReader opens the repository and validates the filter globs.
func NewBlameReader(opts ReadOptions) (*BlameReader, error) {
	for _, pattern := range append(append([]string{}, opts.Include...), opts.Exclude...) {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern %q", pattern)
		}
	}
	repo, err := git.PlainOpen(opts.RepoPath)
	if err != nil {
		return nil, err
	}
	if opts.IndentWidth <= 0 {
		opts.IndentWidth = 2
	}
	return &BlameReader{repo: repo, opts: opts, filterCache: make(map[string]bool)}, nil
}

// resolveCommit returns the commit at the configured branch, or HEAD.
func (r *BlameReader) resolveCommit() (*object.Commit, error) {
	if r.opts.Branch == "" {
		ref, err := r.repo.Head()
		if err != nil {
			return nil, err
		}
		return r.repo.CommitObject(ref.Hash())
	}

	if ref, err := r.repo.Reference(plumbing.NewBranchReferenceName(r.opts.Branch), true); err == nil {
		return r.repo.CommitObject(ref.Hash())
	}
	hash, err := r.repo.ResolveRevision(plumbing.Revision(r.opts.Branch))
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w", r.opts.Branch, err)
	}
	return r.repo.CommitObject(*hash)
}

// ReadLines blames every eligible file and returns the records in tree order.
func (r *BlameReader) ReadLines(ctx context.Context) ([]loc.LineRecord, error) {
	commit, err := r.resolveCommit()
	if err != nil {
		return nil, err
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, err
	}

	var records []loc.LineRecord

	err = tree.Files().ForEach(func(f *object.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		ok, err := r.eligible(f)
		if err != nil || !ok {
			return err
		}

		typ := ExtensionType(f.Name)
		if r.opts.TypeMode == TypeModeLanguage {
			content, err := f.Contents()
			if err != nil {
				return err
			}
			if lang := enry.GetLanguage(path.Base(f.Name), []byte(content)); lang != "" {
				typ = lang
			}
		}

		blame, err := git.Blame(commit, f.Name)
		if err != nil {
			return fmt.Errorf("blame %s: %w", f.Name, err)
		}

		for i, line := range blame.Lines {
			author := AuthorInfo{Name: line.AuthorName, Email: line.Author}
			records = append(records, loc.NewRecord(
				line.Hash.String(),
				f.Name,
				typ,
				i+1,
				Depth(line.Text, r.opts.IndentWidth),
				len(line.Text),
				author.DisplayName(),
				line.Date,
			))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// eligible reports whether a tree entry should be exported.
func (r *BlameReader) eligible(f *object.File) (bool, error) {
	if f.Mode == filemode.Symlink || f.Mode == filemode.Submodule {
		return false, nil
	}

	ok, err := r.matchesFilters(f.Name)
	if err != nil || !ok {
		return false, err
	}

	if r.opts.SkipVendor && enry.IsVendor(f.Name) {
		return false, nil
	}

	binary, err := f.IsBinary()
	if err != nil {
		return false, err
	}
	return !binary, nil
}

// matchesFilters checks if a path matches the include/exclude filters.
func (r *BlameReader) matchesFilters(p string) (bool, error) {
	if cached, ok := r.filterCache[p]; ok {
		return cached, nil
	}

	// Normalize path separators
	norm := strings.ReplaceAll(p, "\\", "/")

	result, err := func() (bool, error) {
		// Check exclude patterns first
		for _, pattern := range r.opts.Exclude {
			matched, err := doublestar.Match(pattern, norm)
			if err != nil {
				return false, fmt.Errorf("exclude pattern %q: %w", pattern, err)
			}
			if matched {
				return false, nil
			}
		}

		// If no include patterns, accept all
		if len(r.opts.Include) == 0 {
			return true, nil
		}

		for _, pattern := range r.opts.Include {
			matched, err := doublestar.Match(pattern, norm)
			if err != nil {
				return false, fmt.Errorf("include pattern %q: %w", pattern, err)
			}
			if matched {
				return true, nil
			}
		}
		return false, nil
	}()
	if err != nil {
		return false, err
	}

	r.filterCache[p] = result
	return result, nil
}
