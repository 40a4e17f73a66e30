package platform

import (
	"path"
	"path/filepath"
	"runtime"
	"strings"
)

// EntryPath converts a path relative to the build root into the rooted,
// slash-separated form stored in snapshots. Directories end with a slash,
// the build root itself is "/".
func EntryPath(rel string, isDir bool) string {
	rel = filepath.ToSlash(rel)
	if rel == "." || rel == "" {
		return "/"
	}

	p := path.Clean("/" + rel)
	if isDir && p != "/" {
		p += "/"
	}
	return p
}

// DirOf returns the directory entry path that contains the given file entry path
func DirOf(entryPath string) string {
	dir := path.Dir(strings.TrimSuffix(entryPath, "/"))
	if dir == "/" {
		return "/"
	}
	return dir + "/"
}

// ValidatePath checks if a path is usable as a build directory
func ValidatePath(p string) error {
	if strings.TrimSpace(p) == "" {
		return &PathError{Path: p, Message: "path is empty"}
	}

	// Check for invalid characters based on OS
	if runtime.GOOS == "windows" {
		invalidChars := []string{"<", ">", "\"", "|", "?", "*"}
		for _, char := range invalidChars {
			if strings.Contains(p, char) {
				return &PathError{Path: p, Message: "path contains invalid character: " + char}
			}
		}
	}

	return nil
}

// PathError represents a path validation error
type PathError struct {
	Path    string
	Message string
}

func (e *PathError) Error() string {
	return "invalid path '" + e.Path + "': " + e.Message
}
