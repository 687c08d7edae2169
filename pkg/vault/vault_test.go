package vault

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testVault(t *testing.T, files map[string]string) *fsVault {
	t.Helper()
	root := t.TempDir()
	for path, content := range files {
		full := filepath.Join(root, path)
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}
	return &fsVault{root: root}
}

func TestDocumentsListsMarkdownOnly(t *testing.T) {
	v := testVault(t, map[string]string{
		"inbox.md":            "",
		"projects/launch.md":  "",
		"projects/notes.txt":  "",
		".obsidian/config.md": "",
	})

	docs, err := v.Documents(context.Background())
	if err != nil {
		t.Fatalf("documents: %v", err)
	}
	var paths []string
	for _, d := range docs {
		paths = append(paths, d.Path)
	}
	want := []string{"inbox.md", filepath.Join("projects", "launch.md")}
	if !reflect.DeepEqual(paths, want) {
		t.Fatalf("expected %v, got %v", want, paths)
	}
	if docs[1].Name != "launch" {
		t.Errorf("expected bare name 'launch', got %q", docs[1].Name)
	}
	if docs[0].ModTime.IsZero() {
		t.Errorf("expected a mod time")
	}
}

func TestReadWriteRoundTrip(t *testing.T) {
	v := testVault(t, map[string]string{"note.md": "before"})

	if err := v.Write("note.md", "after"); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := v.Read("note.md")
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != "after" {
		t.Fatalf("expected 'after', got %q", got)
	}
}

func TestReadMissingDocument(t *testing.T) {
	v := testVault(t, nil)
	if _, err := v.Read("gone.md"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestResolveFindsByBareName(t *testing.T) {
	v := testVault(t, map[string]string{
		"projects/launch.md": "",
	})
	path, ok := v.Resolve("launch")
	if !ok || path != filepath.Join("projects", "launch.md") {
		t.Fatalf("expected projects/launch.md, got %q (%v)", path, ok)
	}
	if _, ok := v.Resolve("missing"); ok {
		t.Fatalf("expected no match")
	}
}

func TestOpenCommandPrefersConfiguredEditor(t *testing.T) {
	v := testVault(t, map[string]string{"note.md": ""})
	v.editor = "code --wait"

	cmd, err := v.OpenCommand("note.md")
	if err != nil {
		t.Fatalf("open command: %v", err)
	}
	if filepath.Base(cmd.Path) != "code" && cmd.Args[0] != "code" {
		t.Fatalf("expected code invocation, got %v", cmd.Args)
	}
	if cmd.Args[1] != "--wait" {
		t.Fatalf("expected --wait flag, got %v", cmd.Args)
	}
	if cmd.Args[2] != filepath.Join(v.root, "note.md") {
		t.Fatalf("expected absolute document path, got %v", cmd.Args)
	}
}

func TestOpenCommandMissingDocument(t *testing.T) {
	v := testVault(t, nil)
	if _, err := v.OpenCommand("gone.md"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestFrontMatter(t *testing.T) {
	fm, err := FrontMatter("---\ntitle: Launch\nstart_date: 2024-01-10\n---\nbody\n")
	if err != nil {
		t.Fatalf("front matter: %v", err)
	}
	if fm["title"] != "Launch" {
		t.Errorf("expected title Launch, got %v", fm["title"])
	}
	if _, ok := fm["start_date"]; !ok {
		t.Errorf("expected start_date key")
	}
}

func TestFrontMatterAbsent(t *testing.T) {
	for _, content := range []string{"", "just text\n", "---\nunclosed: yes\n"} {
		fm, err := FrontMatter(content)
		if err != nil {
			t.Fatalf("%q: %v", content, err)
		}
		if len(fm) != 0 {
			t.Fatalf("%q: expected empty map, got %v", content, fm)
		}
	}
}

func TestFrontMatterMalformed(t *testing.T) {
	if _, err := FrontMatter("---\n\t{bad yaml\n---\n"); err == nil {
		t.Fatalf("expected an error")
	}
}

func TestTags(t *testing.T) {
	tags := Tags("a #task here\nand #project/alpha plus #task again\n")
	want := []string{"task", "project/alpha"}
	if !reflect.DeepEqual(tags, want) {
		t.Fatalf("expected %v, got %v", want, tags)
	}
	if got := Tags("no tags at all"); got != nil {
		t.Fatalf("expected nil, got %v", got)
	}
}
