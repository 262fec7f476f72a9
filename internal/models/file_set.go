package models

import "sort"

// FileSet is an unordered set of repository-relative file paths
type FileSet map[string]struct{}

// NewFileSet creates a FileSet holding the given paths
func NewFileSet(paths ...string) FileSet {
	s := make(FileSet, len(paths))
	for _, p := range paths {
		s[p] = struct{}{}
	}
	return s
}

func (s FileSet) Add(path string) {
	s[path] = struct{}{}
}

func (s FileSet) Has(path string) bool {
	_, ok := s[path]
	return ok
}

func (s FileSet) Remove(path string) {
	delete(s, path)
}

func (s FileSet) Len() int {
	return len(s)
}

// Sorted returns the paths in lexical order
func (s FileSet) Sorted() []string {
	paths := make([]string, 0, len(s))
	for p := range s {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Clone returns an independent copy of the set
func (s FileSet) Clone() FileSet {
	c := make(FileSet, len(s))
	for p := range s {
		c[p] = struct{}{}
	}
	return c
}
