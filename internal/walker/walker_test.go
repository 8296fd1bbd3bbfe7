package walker

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// testdataDir returns the absolute path to the testdata/content directory.
func testdataDir(t *testing.T) string {
	t.Helper()
	// Navigate from internal/walker to project root.
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("unable to determine test file location")
	}
	walkerDir := filepath.Dir(filename)
	root := filepath.Join(walkerDir, "..", "..", "testdata", "content")
	abs, err := filepath.Abs(root)
	if err != nil {
		t.Fatalf("resolve testdata path: %v", err)
	}
	if _, err := os.Stat(abs); os.IsNotExist(err) {
		t.Fatalf("testdata dir does not exist: %s", abs)
	}
	return abs
}

func relPaths(files []FileInfo) []string {
	out := make([]string, len(files))
	for i, f := range files {
		out[i] = f.RelPath
	}
	return out
}

func TestWalk_BasicTraversal(t *testing.T) {
	dir := testdataDir(t)

	files, err := Walk(WalkerConfig{RootDir: dir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	expectedFiles := map[string]bool{
		"docs/introduction/overview.md": false,
		"docs/introduction/faq.md":      false,
		"docs/guides/swap.md":           false,
		"docs/guides/trade/trade.md":    false,
		"docs/api/orders/index.md":      false,
	}

	for _, f := range files {
		if _, ok := expectedFiles[f.RelPath]; ok {
			expectedFiles[f.RelPath] = true
		}
	}

	for name, found := range expectedFiles {
		if !found {
			t.Errorf("expected file %q not found in walk results", name)
		}
	}
}

func TestWalk_SortedByPath(t *testing.T) {
	files, err := Walk(WalkerConfig{RootDir: testdataDir(t)})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	paths := relPaths(files)
	for i := 1; i < len(paths); i++ {
		if paths[i-1] > paths[i] {
			t.Fatalf("results not sorted: %q before %q", paths[i-1], paths[i])
		}
	}
}

func TestWalk_FileInfoFields(t *testing.T) {
	dir := testdataDir(t)

	files, err := Walk(WalkerConfig{RootDir: dir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	for _, f := range files {
		if f.Path == "" {
			t.Error("FileInfo.Path is empty")
		}
		if f.RelPath == "" {
			t.Error("FileInfo.RelPath is empty")
		}
		if !strings.HasPrefix(f.Route, "/") {
			t.Errorf("FileInfo.Route for %s is %q, expected absolute route", f.RelPath, f.Route)
		}
		if f.Size <= 0 {
			t.Errorf("FileInfo.Size for %s is %d, expected > 0", f.RelPath, f.Size)
		}
		if len(f.ContentHash) != 64 {
			t.Errorf("FileInfo.ContentHash for %s has length %d, expected 64", f.RelPath, len(f.ContentHash))
		}
	}
}

func TestWalk_ExcludeFilter(t *testing.T) {
	dir := testdataDir(t)

	files, err := Walk(WalkerConfig{
		RootDir: dir,
		Exclude: []string{"**/_*.md", "**/drafts/**", "README.md"},
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	for _, f := range files {
		if strings.Contains(f.RelPath, "drafts/") || strings.HasPrefix(filepath.Base(f.RelPath), "_") || f.RelPath == "README.md" {
			t.Errorf("exclude filter did not exclude: %s", f.RelPath)
		}
	}
	if len(files) != 5 {
		t.Errorf("expected 5 pages after excludes, got %d: %v", len(files), relPaths(files))
	}
}

func TestWalk_DoubleStarInclude(t *testing.T) {
	dir := testdataDir(t)

	files, err := Walk(WalkerConfig{
		RootDir: dir,
		Include: []string{"docs/guides/**"},
	})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 guide pages, got %v", relPaths(files))
	}
	for _, f := range files {
		if !strings.HasPrefix(f.RelPath, "docs/guides/") {
			t.Errorf("include filter docs/guides/** let through: %s", f.RelPath)
		}
	}
}

func TestWalk_SkipsNonMarkdownAndBinary(t *testing.T) {
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, "readme.md"), []byte("# Hello"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "logo.svg"), []byte("<svg/>"), 0644)

	// A .md file with NUL bytes is treated as binary.
	binary := make([]byte, 100)
	binary[50] = 0x00
	os.WriteFile(filepath.Join(tmpDir, "broken.md"), binary, 0644)

	files, err := Walk(WalkerConfig{RootDir: tmpDir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	if len(files) != 1 || files[0].RelPath != "readme.md" {
		t.Errorf("expected only readme.md, got %v", relPaths(files))
	}
}

func TestWalk_SkipsLargeFiles(t *testing.T) {
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, "small.md"), []byte("small"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "large.md"), []byte(strings.Repeat("x", 200)), 0644)

	files, err := Walk(WalkerConfig{RootDir: tmpDir, MaxFileSize: 100})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	for _, f := range files {
		if f.RelPath == "large.md" {
			t.Error("large file should have been skipped")
		}
	}
}

func TestWalk_DefaultExcludeDirs(t *testing.T) {
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, "page.md"), []byte("# page"), 0644)
	os.MkdirAll(filepath.Join(tmpDir, "node_modules", "pkg"), 0755)
	os.WriteFile(filepath.Join(tmpDir, "node_modules", "pkg", "README.md"), []byte("# pkg"), 0644)
	os.MkdirAll(filepath.Join(tmpDir, ".next"), 0755)
	os.WriteFile(filepath.Join(tmpDir, ".next", "cache.md"), []byte("# cache"), 0644)

	files, err := Walk(WalkerConfig{RootDir: tmpDir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	if len(files) != 1 {
		t.Errorf("expected only page.md, got %v", relPaths(files))
	}
}

func TestWalk_Gitignore(t *testing.T) {
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte("# comment\nscratch.md\nprivate/\n"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "page.md"), []byte("# page"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "scratch.md"), []byte("# scratch"), 0644)

	files, err := Walk(WalkerConfig{RootDir: tmpDir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	for _, f := range files {
		if f.RelPath == "scratch.md" {
			t.Error("gitignored file should have been skipped")
		}
	}
}

func TestWalk_GitignoreDirectoriesAndNegation(t *testing.T) {
	tmpDir := t.TempDir()

	os.WriteFile(filepath.Join(tmpDir, ".gitignore"), []byte("private/\n/notes/*.md\n!notes/keep.md\n"), 0644)
	os.MkdirAll(filepath.Join(tmpDir, "private"), 0755)
	os.MkdirAll(filepath.Join(tmpDir, "notes"), 0755)
	os.MkdirAll(filepath.Join(tmpDir, "docs", "notes"), 0755)
	os.WriteFile(filepath.Join(tmpDir, "private", "secret.md"), []byte("# secret"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "notes", "wip.md"), []byte("# wip"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "notes", "keep.md"), []byte("# keep"), 0644)
	os.WriteFile(filepath.Join(tmpDir, "docs", "notes", "page.md"), []byte("# page"), 0644)

	files, err := Walk(WalkerConfig{RootDir: tmpDir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}

	got := strings.Join(relPaths(files), ",")
	if got != "docs/notes/page.md,notes/keep.md" {
		t.Errorf("unexpected walk result: %s", got)
	}
}

func TestWalk_InvalidPattern(t *testing.T) {
	if _, err := Walk(WalkerConfig{RootDir: t.TempDir(), Include: []string{"docs/[a-"}}); err == nil {
		t.Error("expected error for malformed include pattern")
	}
}

func TestWalk_MissingRoot(t *testing.T) {
	if _, err := Walk(WalkerConfig{RootDir: filepath.Join(t.TempDir(), "nope")}); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestWalk_ContentHashConsistency(t *testing.T) {
	tmpDir := t.TempDir()
	content := []byte("# stable content")
	os.WriteFile(filepath.Join(tmpDir, "page.md"), content, 0644)

	files, err := Walk(WalkerConfig{RootDir: tmpDir})
	if err != nil {
		t.Fatalf("Walk() error: %v", err)
	}
	if len(files) != 1 {
		t.Fatalf("expected 1 file, got %d", len(files))
	}
	if files[0].ContentHash != HashBytes(content) {
		t.Errorf("ContentHash %s != HashBytes %s", files[0].ContentHash, HashBytes(content))
	}
}

func TestRouteFor(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"docs/guides/swap.md", "/docs/guides/swap"},
		{"docs/api/orders/index.md", "/docs/api/orders"},
		{"index.md", "/"},
		{"docs/rubiconLiquidityProgram.md", "/docs/rubiconLiquidityProgram"},
		{"docs/notes.markdown", "/docs/notes"},
		{"docs/Upper.MD", "/docs/Upper"},
	}
	for _, tt := range tests {
		if got := RouteFor(tt.input); got != tt.want {
			t.Errorf("RouteFor(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestMatchesInclude_Empty(t *testing.T) {
	if !MatchesInclude("anything.md", nil) {
		t.Error("empty include should match everything")
	}
}

func TestMatchesInclude_Pattern(t *testing.T) {
	if !MatchesInclude("faq.md", []string{"*.md"}) {
		t.Error("*.md should match faq.md")
	}
	if MatchesInclude("logo.svg", []string{"*.md"}) {
		t.Error("*.md should not match logo.svg")
	}
}

func TestMatchesExclude_Empty(t *testing.T) {
	if MatchesExclude("anything.md", nil) {
		t.Error("empty exclude should match nothing")
	}
}

func TestMatchesExclude_Pattern(t *testing.T) {
	if !MatchesExclude("docs/drafts/wip.md", []string{"**/drafts/**"}) {
		t.Error("**/drafts/** should match docs/drafts/wip.md")
	}
}

func TestMatchesInclude_DoubleStarPattern(t *testing.T) {
	if !MatchesInclude("docs/guides/trade/trade.md", []string{"**/*.md"}) {
		t.Error("**/*.md should match nested markdown")
	}
}
