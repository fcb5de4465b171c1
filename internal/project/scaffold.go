package project

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ScaffoldOptions describes a new project.
type ScaffoldOptions struct {
	Dir   string
	Files map[string]string
	// NoGit skips repository creation.
	NoGit   bool
	Message string
	Author  string
	Email   string
}

// Scaffold writes the files into a new directory and, unless NoGit is set,
// creates a git repository holding them in an initial commit. It refuses to
// write into a non-empty directory.
func Scaffold(opts ScaffoldOptions) (plumbing.Hash, error) {
	if entries, err := os.ReadDir(opts.Dir); err == nil && len(entries) > 0 {
		return plumbing.ZeroHash, fmt.Errorf("directory %s is not empty", opts.Dir)
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return plumbing.ZeroHash, err
	}

	paths := make([]string, 0, len(opts.Files))
	for p := range opts.Files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		dest := filepath.Join(opts.Dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return plumbing.ZeroHash, err
		}
		if err := os.WriteFile(dest, []byte(opts.Files[p]), 0o644); err != nil {
			return plumbing.ZeroHash, err
		}
	}
	if opts.NoGit {
		return plumbing.ZeroHash, nil
	}

	repo, err := git.PlainInit(opts.Dir, false)
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("git init: %w", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, err
	}
	for _, p := range paths {
		if _, err := wt.Add(p); err != nil {
			return plumbing.ZeroHash, fmt.Errorf("git add %s: %w", p, err)
		}
	}

	msg := opts.Message
	if msg == "" {
		msg = "Proyecto inicial de Vader"
	}
	author := opts.Author
	if author == "" {
		author = "vader"
	}
	email := opts.Email
	if email == "" {
		email = "vader@localhost"
	}
	hash, err := wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{Name: author, Email: email, When: time.Now()},
	})
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("git commit: %w", err)
	}
	return hash, nil
}
