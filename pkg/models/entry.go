package models

// FileEntry is a measured file inside the build output
type FileEntry struct {
	// Path is rooted at the build directory ("/assets/app.js")
	Path string

	// Size in bytes
	Size int64

	// GzipSize is the size of the gzip-compressed content in bytes
	GzipSize int64
}

// DirectoryEntry aggregates the direct files of one directory.
// Subdirectories are separate entries and are never summed into their parent.
type DirectoryEntry struct {
	// Path is rooted at the build directory and always ends with a slash ("/", "/assets/")
	Path string

	// Size is the sum of the direct files' sizes
	Size int64

	// GzipSize is the sum of the direct files' gzip sizes
	GzipSize int64

	// Files are the direct files in discovery order
	Files []FileEntry
}

// FsEntry is the serialized form shared by directory summaries and files
type FsEntry struct {
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	GzipSize int64  `json:"gzipSize"`
}

// Summary returns the directory record without its files
func (d DirectoryEntry) Summary() FsEntry {
	return FsEntry{Path: d.Path, Size: d.Size, GzipSize: d.GzipSize}
}

// FsEntry returns the serialized form of the file
func (f FileEntry) FsEntry() FsEntry {
	return FsEntry{Path: f.Path, Size: f.Size, GzipSize: f.GzipSize}
}

// IsDir reports whether the entry is a directory summary
func (e FsEntry) IsDir() bool {
	return len(e.Path) > 0 && e.Path[len(e.Path)-1] == '/'
}
