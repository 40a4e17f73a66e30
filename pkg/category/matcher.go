package category

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// GlobPrefix selects glob matching instead of a regular expression
const GlobPrefix = "glob:"

// Matcher decides whether a file path belongs to a category.
// Paths are rooted at the build directory: "/assets/app.js".
type Matcher interface {
	Match(entryPath string) bool
	String() string
}

// NewMatcher compiles a pattern. Patterns are regular expressions unless they
// start with "glob:".
func NewMatcher(pattern string) (Matcher, error) {
	if strings.HasPrefix(pattern, GlobPrefix) {
		return NewGlobMatcher(strings.TrimPrefix(pattern, GlobPrefix))
	}
	return NewRegexpMatcher(pattern)
}

// RegexpMatcher matches the full entry path against a regular expression
type RegexpMatcher struct {
	re *regexp.Regexp
}

// NewRegexpMatcher compiles a regular expression matcher
func NewRegexpMatcher(expr string) (*RegexpMatcher, error) {
	if expr == "" {
		return nil, fmt.Errorf("empty pattern")
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	return &RegexpMatcher{re: re}, nil
}

// Match reports whether the regular expression matches anywhere in the path
func (m *RegexpMatcher) Match(entryPath string) bool {
	return m.re.MatchString(entryPath)
}

func (m *RegexpMatcher) String() string {
	return m.re.String()
}

// GlobMatcher matches shell-style patterns.
// Patterns support:
//   - Basename globs: *.js, chunk-*.css
//   - Directory patterns: assets/, vendor/
//   - Path patterns: assets/*.js (relative to the build root)
//   - Any depth: **/*.map, static/**
type GlobMatcher struct {
	pattern string
}

// NewGlobMatcher validates and returns a glob matcher
func NewGlobMatcher(pattern string) (*GlobMatcher, error) {
	pattern = strings.TrimPrefix(strings.TrimSpace(pattern), "/")
	if pattern == "" {
		return nil, fmt.Errorf("empty glob pattern")
	}
	// path.Match only reports malformed patterns when matching
	for _, part := range strings.Split(pattern, "/") {
		if part == "**" {
			continue
		}
		if _, err := path.Match(part, ""); err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", pattern, err)
		}
	}
	return &GlobMatcher{pattern: pattern}, nil
}

func (m *GlobMatcher) String() string {
	return GlobPrefix + m.pattern
}

// Match reports whether the glob matches the entry path
func (m *GlobMatcher) Match(entryPath string) bool {
	rel := strings.TrimPrefix(entryPath, "/")
	baseName := path.Base(rel)
	pattern := m.pattern

	// Directory pattern: any file below a directory of that name
	if strings.HasSuffix(pattern, "/") {
		dirPattern := strings.TrimSuffix(pattern, "/")
		if strings.Contains(dirPattern, "/") {
			return strings.HasPrefix(rel, dirPattern+"/")
		}
		dirs := strings.Split(rel, "/")
		for _, dir := range dirs[:len(dirs)-1] {
			if matchGlob(dir, dirPattern) {
				return true
			}
		}
		return false
	}

	if strings.Contains(pattern, "**") {
		return matchDoubleStar(strings.Split(rel, "/"), strings.Split(pattern, "/"))
	}

	if strings.Contains(pattern, "/") {
		return matchGlob(rel, pattern)
	}

	return matchGlob(baseName, pattern)
}

// matchGlob performs glob matching on slash-separated paths
func matchGlob(name, pattern string) bool {
	matched, _ := path.Match(pattern, name)
	return matched
}

// matchDoubleStar matches path segments where a "**" segment spans zero or more segments
func matchDoubleStar(parts, pattern []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			if len(rest) == 0 {
				return true
			}
			for i := 0; i <= len(parts); i++ {
				if matchDoubleStar(parts[i:], rest) {
					return true
				}
			}
			return false
		}
		if len(parts) == 0 || !matchGlob(parts[0], pattern[0]) {
			return false
		}
		parts = parts[1:]
		pattern = pattern[1:]
	}
	return len(parts) == 0
}
