package walker

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// DefaultExcludes are directory names never descended into.
var DefaultExcludes = []string{
	".git",
	"node_modules",
	".next",
	".docsite",
	"public",
	"dist",
	"build",
	".idea",
	".vscode",
}

// Filter decides which files under a content root become pages. Include and
// exclude are doublestar patterns matched against the slash-separated path
// relative to the root, or against the bare file name.
type Filter struct {
	include []string
	exclude []string
	ignore  []ignoreRule
}

// ignoreRule is one parsed .gitignore line.
type ignoreRule struct {
	pattern  string
	negate   bool
	dirOnly  bool
	anchored bool
}

// NewFilter validates the patterns and returns a filter without gitignore
// rules.
func NewFilter(include, exclude []string) (*Filter, error) {
	f := &Filter{}
	for _, p := range include {
		p = filepath.ToSlash(p)
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid include pattern %q", p)
		}
		f.include = append(f.include, p)
	}
	for _, p := range exclude {
		p = filepath.ToSlash(p)
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
		f.exclude = append(f.exclude, p)
	}
	return f, nil
}

// LoadGitignore adds the rules of the .gitignore file at path. A missing
// file is not an error.
func (f *Filter) LoadGitignore(path string) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	f.ignore = append(f.ignore, parseGitignore(string(data))...)
	return nil
}

func parseGitignore(data string) []ignoreRule {
	var rules []ignoreRule
	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var r ignoreRule
		if strings.HasPrefix(line, "!") {
			r.negate = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			r.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		// A slash anywhere but the end ties the pattern to the root.
		if strings.Contains(line, "/") {
			r.anchored = true
			line = strings.TrimPrefix(line, "/")
		}
		if line == "" || !doublestar.ValidatePattern(line) {
			continue
		}
		r.pattern = line
		rules = append(rules, r)
	}
	return rules
}

// SkipDir reports whether the directory at relPath is left out entirely.
func (f *Filter) SkipDir(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	name := path.Base(relPath)
	for _, excl := range DefaultExcludes {
		if strings.EqualFold(name, excl) {
			return true
		}
	}
	return f.ignored(relPath, true)
}

// Keep reports whether the file at relPath is a page source that passes the
// gitignore, include and exclude rules.
func (f *Filter) Keep(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	if !isMarkdown(relPath) || f.ignored(relPath, false) {
		return false
	}
	return MatchesInclude(relPath, f.include) && !MatchesExclude(relPath, f.exclude)
}

// ignored applies the gitignore rules in order; the last match wins.
func (f *Filter) ignored(relPath string, isDir bool) bool {
	ignored := false
	for _, r := range f.ignore {
		if r.dirOnly && !isDir {
			continue
		}
		target := path.Base(relPath)
		if r.anchored {
			target = relPath
		}
		if ok, _ := doublestar.Match(r.pattern, target); ok {
			ignored = !r.negate
		}
	}
	return ignored
}

// MatchesInclude returns true if relPath matches any of the include patterns.
// If patterns is empty, everything is included.
func MatchesInclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return true
	}
	return matchesAny(relPath, patterns)
}

// MatchesExclude returns true if relPath matches any of the exclude patterns.
// If patterns is empty, nothing is excluded.
func MatchesExclude(relPath string, patterns []string) bool {
	if len(patterns) == 0 {
		return false
	}
	return matchesAny(relPath, patterns)
}

// matchesAny tries each pattern against the full path and then the file name.
func matchesAny(relPath string, patterns []string) bool {
	normalized := filepath.ToSlash(relPath)
	base := path.Base(normalized)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, normalized); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

func isMarkdown(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range markdownExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}
