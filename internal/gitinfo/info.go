// Package gitinfo reports which revision of a book's sources is being built.
// It looks up the Git repository containing the book root, if any.
package gitinfo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrNotRepository is returned when the book root is not inside a Git
// working tree.
var ErrNotRepository = errors.New("not a git repository")

// Revision holds the state of the repository containing a book root.
type Revision struct {
	// CommitHash is the current HEAD commit hash
	CommitHash string
	// Branch is the current branch name
	Branch string
	// Tags lists tags pointing to the current commit
	Tags []string
	// IsDirty indicates if the working tree has uncommitted changes
	IsDirty bool
}

// ShortHash returns the first seven characters of the commit hash.
func (r *Revision) ShortHash() string {
	if len(r.CommitHash) > 7 {
		return r.CommitHash[:7]
	}
	return r.CommitHash
}

// String renders the revision as "branch@hash [tags] (dirty)".
func (r *Revision) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s@%s", r.Branch, r.ShortHash())
	if len(r.Tags) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(r.Tags, ", "))
	}
	if r.IsDirty {
		b.WriteString(" (dirty)")
	}
	return b.String()
}

// Describe returns the revision of the repository that root belongs to,
// searching parent directories for the .git directory.
func Describe(root string) (*Revision, error) {
	repo, err := git.PlainOpenWithOptions(root, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", root, ErrNotRepository)
		}
		return nil, fmt.Errorf("failed to open repository for %q: %w", root, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree for %q: %w", root, err)
	}

	headRef, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to get HEAD reference for %q: %w", root, err)
	}

	var tags []string
	tagRefs, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	err = tagRefs.ForEach(func(ref *plumbing.Reference) error {
		revHash, err := repo.ResolveRevision(plumbing.Revision(ref.Name()))
		if err != nil {
			return fmt.Errorf("failed to resolve tag %q: %w", ref.Name().Short(), err)
		}
		if *revHash == headRef.Hash() {
			tags = append(tags, ref.Name().Short())
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to iterate over tags: %w", err)
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get worktree status for %q: %w", root, err)
	}

	return &Revision{
		CommitHash: headRef.Hash().String(),
		Branch:     headRef.Name().Short(),
		Tags:       tags,
		IsDirty:    !status.IsClean(),
	}, nil
}
