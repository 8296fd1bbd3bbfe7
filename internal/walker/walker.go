package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultMaxFileSize is the maximum markdown file size to process (1 MB).
const DefaultMaxFileSize int64 = 1 << 20

// markdownExts are the extensions treated as page sources.
var markdownExts = []string{".md", ".markdown"}

// FileInfo holds metadata about a single content file discovered during traversal.
type FileInfo struct {
	Path        string // Absolute path on disk.
	RelPath     string // Path relative to the root directory, slash separated.
	Route       string // URL path the page is served at.
	Size        int64  // File size in bytes.
	ContentHash string // SHA-256 hex digest of the file content.
}

// WalkerConfig controls the behaviour of the Walk function.
type WalkerConfig struct {
	RootDir     string   // Root directory to walk.
	Include     []string // Glob patterns; only matching files are included.
	Exclude     []string // Glob patterns; matching files are excluded.
	MaxFileSize int64    // Files larger than this are skipped (0 = use default).
}

// Walk traverses the directory tree rooted at config.RootDir and returns
// metadata for every markdown file that passes filtering, sorted by path.
// It skips binary files, respects include/exclude patterns, and honours
// .gitignore files.
func Walk(config WalkerConfig) ([]FileInfo, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}
	if info, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("walker: %s is not a directory", root)
	}

	maxSize := config.MaxFileSize
	if maxSize <= 0 {
		maxSize = DefaultMaxFileSize
	}

	filter, err := NewFilter(config.Include, config.Exclude)
	if err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	}
	if err := filter.LoadGitignore(filepath.Join(root, ".gitignore")); err != nil {
		return nil, fmt.Errorf("walker: %w", err)
	}

	var files []FileInfo

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Skip entries we cannot read instead of aborting.
			return nil
		}
		if path == root {
			return nil
		}

		relPath, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}

		if d.IsDir() {
			if filter.SkipDir(relPath) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() || !filter.Keep(relPath) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		// Skip files exceeding the size limit.
		if info.Size() > maxSize {
			return nil
		}

		// Skip binary files.
		if isBinary(path) {
			return nil
		}

		hash, err := hashFile(path)
		if err != nil {
			return nil
		}

		rel := filepath.ToSlash(relPath)
		files = append(files, FileInfo{
			Path:        path,
			RelPath:     rel,
			Route:       RouteFor(rel),
			Size:        info.Size(),
			ContentHash: hash,
		})

		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walker: traversal: %w", err)
	}

	sort.Slice(files, func(i, j int) bool { return files[i].RelPath < files[j].RelPath })
	return files, nil
}

// RouteFor maps a slash-separated content path to the URL path of its page:
// "docs/guides/swap.md" -> "/docs/guides/swap", "docs/api/index.md" ->
// "/docs/api", "index.md" -> "/".
func RouteFor(relPath string) string {
	p := filepath.ToSlash(relPath)
	for _, ext := range markdownExts {
		if strings.HasSuffix(strings.ToLower(p), ext) {
			p = p[:len(p)-len(ext)]
			break
		}
	}
	if p == "index" {
		return "/"
	}
	p = strings.TrimSuffix(p, "/index")
	return "/" + strings.TrimPrefix(p, "/")
}

// HashBytes returns the hex SHA-256 digest used for FileInfo.ContentHash.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// isBinary reads the first 512 bytes of a file and checks for NUL bytes,
// which is a simple but effective heuristic for binary content.
func isBinary(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return true // treat unreadable files as binary
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return true
	}

	for i := 0; i < n; i++ {
		if buf[i] == 0 {
			return true
		}
	}
	return false
}

// hashFile computes the SHA-256 digest of the given file.
func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
