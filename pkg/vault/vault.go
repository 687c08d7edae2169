package vault

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Document is one markdown file inside the vault.
type Document struct {
	Path    string // relative to the vault root
	Name    string // file name without the .md extension
	ModTime time.Time
}

// Vault is the document store: a directory tree of markdown files that the
// rest of the program reads, rewrites, and watches. Paths are always
// relative to the vault root.
type Vault interface {
	Documents(ctx context.Context) ([]Document, error)
	Read(path string) (string, error)
	Write(path, content string) error
	Resolve(name string) (string, bool)
	OpenCommand(path string) (*exec.Cmd, error)
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load opens the vault configured in settings.
func Load(s *Settings) (Vault, error) {
	if s == nil {
		var err error
		s, err = LoadSettings()
		if err != nil {
			return nil, err
		}
	}
	root := s.Path
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("vault: open %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault: %s is not a directory", root)
	}
	return &fsVault{root: root, editor: s.Editor}, nil
}

type fsVault struct {
	root   string
	editor string
}

// Documents walks the vault and lists every markdown file, skipping hidden
// directories so .git and .obsidian style trees never leak into scans.
func (v *fsVault) Documents(ctx context.Context) ([]Document, error) {
	var docs []Document
	err := filepath.WalkDir(v.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != v.root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), ".md") {
			return nil
		}
		rel, err := filepath.Rel(v.root, path)
		if err != nil {
			return err
		}
		var mod time.Time
		if info, err := d.Info(); err == nil {
			mod = info.ModTime()
		}
		docs = append(docs, Document{
			Path:    rel,
			Name:    strings.TrimSuffix(d.Name(), filepath.Ext(d.Name())),
			ModTime: mod,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("vault: enumerate documents: %w", err)
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Path < docs[j].Path })
	return docs, nil
}

func (v *fsVault) Read(path string) (string, error) {
	data, err := os.ReadFile(filepath.Join(v.root, path))
	if err != nil {
		return "", fmt.Errorf("vault: read %s: %w", path, err)
	}
	return string(data), nil
}

// Write replaces the full text of a document. Mutations always go through a
// read-modify-write of the whole file so concurrent partial edits cannot
// interleave.
func (v *fsVault) Write(path, content string) error {
	full := filepath.Join(v.root, path)
	if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
		return fmt.Errorf("vault: write %s: %w", path, err)
	}
	return nil
}

// Resolve finds a document by its bare name, the way wiki links address
// files. The first match in path order wins.
func (v *fsVault) Resolve(name string) (string, bool) {
	docs, err := v.Documents(context.Background())
	if err != nil {
		return "", false
	}
	for _, d := range docs {
		if d.Name == name {
			return d.Path, true
		}
	}
	return "", false
}

// OpenCommand builds the editor invocation for a document. The configured
// editor wins over $VISUAL and $EDITOR; vi is the final fallback.
func (v *fsVault) OpenCommand(path string) (*exec.Cmd, error) {
	full := filepath.Join(v.root, path)
	if _, err := os.Stat(full); err != nil {
		return nil, fmt.Errorf("vault: open %s: %w", path, err)
	}
	editor := v.editor
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	args := append(parts[1:], full)
	return exec.Command(parts[0], args...), nil
}

var tagPattern = regexp.MustCompile(`(^|\s)#([\p{L}\p{N}/_-]+)`)

// Tags lists the inline hashtags of a document body, in order of first
// appearance, without the leading #.
func Tags(content string) []string {
	var tags []string
	seen := make(map[string]struct{})
	for _, m := range tagPattern.FindAllStringSubmatch(content, -1) {
		tag := m[2]
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}

// FrontMatter parses the leading YAML block of a document into a flat map.
// Documents without a block yield an empty map, not an error; a block that
// fails to parse is an error so callers can report the document.
func FrontMatter(content string) (map[string]any, error) {
	lines := strings.Split(content, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return map[string]any{}, nil
	}
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end < 0 {
		return map[string]any{}, nil
	}
	block := strings.Join(lines[1:end], "\n")
	fm := map[string]any{}
	if err := yaml.Unmarshal([]byte(block), &fm); err != nil {
		return nil, fmt.Errorf("vault: front matter: %w", err)
	}
	return fm, nil
}
