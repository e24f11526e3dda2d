package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}

	return path
}

func TestBuildSourceFiles_ReadsInOrder(t *testing.T) {
	dir := t.TempDir()

	a := writeTemp(t, dir, "a.vspec", "A {}\n")
	b := writeTemp(t, dir, "b.vspec", "B {}\n")

	srcs := buildSourceFiles([]string{a, b})
	if srcs == nil || srcs.IsZero() {
		t.Fatal("expected source files")
	}

	data, err := io.ReadAll(srcs)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	if got := string(data); got != "A {}\nB {}\n" {
		t.Errorf("expected concatenated sources in order, got %q", got)
	}
}

func TestBuildSourceFiles_Deduplicates(t *testing.T) {
	dir := t.TempDir()

	a := writeTemp(t, dir, "a.vspec", "A {}\n")

	// The same file named twice, and once through a symlink.
	link := filepath.Join(dir, "link.vspec")
	if err := os.Symlink(a, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	srcs := buildSourceFiles([]string{a, a, link})

	data, err := io.ReadAll(srcs)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	if got := string(data); got != "A {}\n" {
		t.Errorf("expected single copy after deduplication, got %q", got)
	}
}

func TestBuildSourceFiles_Empty(t *testing.T) {
	if srcs := buildSourceFiles(nil); srcs != nil {
		t.Error("expected nil for no sources")
	}

	if srcs := buildSourceFiles([]string{"/does/not/exist"}); srcs != nil {
		t.Error("expected nil when no source can be opened")
	}
}

func TestWithSourceFiles_Context(t *testing.T) {
	dir := t.TempDir()
	a := writeTemp(t, dir, "a.vspec", "A {}\n")

	ctx := WithSourceFiles(context.Background(), []string{a})

	srcs := sourceFilesFrom(ctx)
	if srcs == nil {
		t.Fatal("expected sources in context")
	}

	var sb strings.Builder
	if _, err := srcs.WriteTo(&sb); err != nil {
		t.Fatalf("WriteTo error: %v", err)
	}

	if sb.String() != "A {}\n" {
		t.Errorf("expected source content, got %q", sb.String())
	}
}

func TestOpenSource_File(t *testing.T) {
	dir := t.TempDir()
	a := writeTemp(t, dir, "a.vspec", "A {}\n")

	reader, done, err := openSource(context.Background(), a)
	if err != nil {
		t.Fatalf("open error: %v", err)
	}
	defer done()

	data, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("read error: %v", err)
	}

	if string(data) != "A {}\n" {
		t.Errorf("expected file content, got %q", data)
	}
}
