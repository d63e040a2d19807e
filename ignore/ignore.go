package ignore

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	gitignore "github.com/denormal/go-gitignore"
)

// Matcher decides which paths a directory walk should skip. It combines the
// built-in defaults, the root's .gitignore and the user's exclude patterns.
// A Matcher is immutable after construction; build one per walk.
type Matcher struct {
	rootDir        string
	gitIgnore      gitignore.GitIgnore
	customPatterns []string
}

// MatcherOptions configures a Matcher.
type MatcherOptions struct {
	RootDir        string
	CustomPatterns []string
}

// NewMatcher builds a matcher rooted at options.RootDir. A missing or
// unreadable .gitignore is treated as empty.
func NewMatcher(options MatcherOptions) *Matcher {
	return &Matcher{
		rootDir:        options.RootDir,
		gitIgnore:      loadIgnoreFile(filepath.Join(options.RootDir, ".gitignore"), options.RootDir),
		customPatterns: options.CustomPatterns,
	}
}

// ShouldIgnore reports whether the given path should be excluded from the
// walk. The path may be absolute or relative to the root directory.
func (m *Matcher) ShouldIgnore(absolutePath string) bool {
	relativePath, err := filepath.Rel(m.rootDir, absolutePath)
	if err != nil {
		relativePath = absolutePath
	}
	relativePath = filepath.ToSlash(relativePath)

	if m.matchesDefaultPatterns(relativePath, absolutePath) {
		return true
	}

	// gitignore directory rules ("dir/") only fire when the path is known to
	// be one.
	isDir := false
	if info, err := os.Stat(absolutePath); err == nil {
		isDir = info.IsDir()
	}
	if m.gitIgnore != nil {
		match := m.gitIgnore.Relative(relativePath, isDir)
		if match != nil && match.Ignore() {
			return true
		}
	}

	return m.matchesCustomPatterns(relativePath)
}

// ShouldIgnoreDir reports whether a directory should be skipped entirely,
// pruning the walk below it.
func (m *Matcher) ShouldIgnoreDir(absolutePath string) bool {
	switch filepath.Base(absolutePath) {
	case ".git", ".svn", ".hg", "node_modules", "__pycache__",
		".idea", ".vscode", ".cache", ".venv", "venv":
		return true
	}
	return m.ShouldIgnore(absolutePath)
}

// matchesDefaultPatterns checks the path against the built-in pattern list.
func (m *Matcher) matchesDefaultPatterns(relativePath, absolutePath string) bool {
	baseName := strings.ToLower(filepath.Base(absolutePath))

	for _, pattern := range DefaultIgnorePatterns {
		// Bare names match any path component; globs match the basename.
		if !strings.ContainsAny(pattern, "*?[") {
			if baseName == pattern {
				return true
			}
			for _, part := range strings.Split(strings.ToLower(relativePath), "/") {
				if part == pattern {
					return true
				}
			}
			continue
		}
		if matched, err := filepath.Match(pattern, baseName); err == nil && matched {
			return true
		}
	}
	return false
}

// matchesCustomPatterns checks the path against the user's exclude patterns,
// which may use doublestar globs.
func (m *Matcher) matchesCustomPatterns(relativePath string) bool {
	for _, pattern := range m.customPatterns {
		if matched, err := doublestar.Match(pattern, relativePath); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, filepath.Base(relativePath)); err == nil && matched {
			return true
		}
	}
	return false
}

// loadIgnoreFile parses an ignore file into a matcher. The io.Reader form is
// used so the handle is closed promptly on Windows.
func loadIgnoreFile(filePath string, baseDir string) gitignore.GitIgnore {
	f, err := os.Open(filePath)
	if err != nil {
		return nil
	}
	defer f.Close()

	return gitignore.New(f, baseDir, nil)
}
