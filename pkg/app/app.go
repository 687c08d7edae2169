package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"tableflip.dev/gantt/pkg/item"
	"tableflip.dev/gantt/pkg/vault"
)

// Service provides high-level operations over the vault: scanning documents
// into timeline items and applying date mutations back to their source. It
// wraps the vault and settings so UIs and CLIs can share logic.
type Service struct {
	Vault    vault.Vault
	Settings *vault.Settings
	Cache    *vault.Cache
}

var ErrNotFound = errors.New("app: item not found")

// Items scans the vault and returns every timeline item, sorted by start
// date with undated items last. Documents that fail to read or parse are
// reported to stderr and skipped; one bad document never empties the board.
func (s *Service) Items(ctx context.Context) ([]item.Item, error) {
	if s.Vault == nil {
		return nil, errors.New("app: no vault configured")
	}
	docs, err := s.Vault.Documents(ctx)
	if err != nil {
		return nil, err
	}

	var all []item.Item
	for _, doc := range docs {
		items, err := s.parseDocument(doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", doc.Path, err)
			continue
		}
		all = append(all, items...)
	}
	item.Sort(all)
	return all, nil
}

// parseDocument extracts the items of one document, consulting the parse
// cache first. The cache stores items keyed by mtime so unchanged documents
// cost one stat instead of a read and two parses.
func (s *Service) parseDocument(doc vault.Document) ([]item.Item, error) {
	if s.Cache != nil && !doc.ModTime.IsZero() {
		if items, ok := s.Cache.Get(doc.Path, doc.ModTime); ok {
			return items, nil
		}
	}

	content, err := s.Vault.Read(doc.Path)
	if err != nil {
		return nil, err
	}

	var items []item.Item
	if s.Settings == nil || s.Settings.ShowProjects {
		fm, err := vault.FrontMatter(content)
		if err != nil {
			return nil, err
		}
		if it, ok := item.ParseProject(doc.Path, doc.Name, fm, s.projectFields()); ok {
			items = append(items, it)
		}
	}
	if s.Settings == nil || s.Settings.ShowTasks {
		if hasTaskTag(vault.Tags(content)) {
			items = append(items, item.ParseTasks(doc.Path, content)...)
		}
	}

	if s.Cache != nil && !doc.ModTime.IsZero() {
		if err := s.Cache.Put(doc.Path, doc.ModTime, items); err != nil {
			fmt.Fprintf(os.Stderr, "app: cache %s: %v\n", doc.Path, err)
		}
	}
	return items, nil
}

// hasTaskTag reports whether the document carries the task tag, bare or
// namespaced like #task/home. Gating line scanning on tag presence keeps
// prose that merely contains the letters "#task" from parsing as tasks.
func hasTaskTag(tags []string) bool {
	name := strings.TrimPrefix(item.TaskTag, "#")
	for _, tag := range tags {
		if tag == name || strings.HasPrefix(tag, name+"/") {
			return true
		}
	}
	return false
}

func (s *Service) projectFields() item.ProjectFields {
	f := item.ProjectFields{
		Title: []string{"title"},
		Start: []string{"start_date", "start"},
		End:   []string{"finish_date", "end_date", "due_date", "end"},
	}
	if s.Settings == nil {
		return f
	}
	if len(s.Settings.TitleFields) > 0 {
		f.Title = s.Settings.TitleFields
	}
	if len(s.Settings.StartFields) > 0 {
		f.Start = s.Settings.StartFields
	}
	if len(s.Settings.EndFields) > 0 {
		f.End = s.Settings.EndFields
	}
	return f
}

// UpdateDates rewrites an item's source document with new start and end
// dates. The full document text is read, edited, and written back; a task
// whose line has vanished since the scan surfaces item.ErrSpanNotFound.
func (s *Service) UpdateDates(ctx context.Context, it item.Item, start, end time.Time) error {
	if s.Vault == nil {
		return errors.New("app: no vault configured")
	}
	content, err := s.Vault.Read(it.Path)
	if err != nil {
		return err
	}

	var updated string
	switch it.Kind {
	case item.Project:
		fields := s.projectFields()
		updated = item.RewriteProjectDates(content, fields.Start, fields.End, start, end)
	default:
		updated, err = item.RewriteTaskDates(content, it.RawSpan, start, end)
		if err != nil {
			return fmt.Errorf("app: update %s: %w", it.Path, err)
		}
	}

	if err := s.Vault.Write(it.Path, updated); err != nil {
		return err
	}
	s.invalidate(it.Path)
	return nil
}

// ToggleTask flips the checkbox of a task line and returns the new
// completion state.
func (s *Service) ToggleTask(ctx context.Context, it item.Item) (item.Completion, error) {
	if s.Vault == nil {
		return item.CompletionNone, errors.New("app: no vault configured")
	}
	if it.Kind != item.Task {
		return item.CompletionNone, errors.New("app: only tasks have checkboxes")
	}
	content, err := s.Vault.Read(it.Path)
	if err != nil {
		return item.CompletionNone, err
	}
	updated, completion, err := item.ToggleTaskCheckbox(content, it.RawSpan)
	if err != nil {
		return item.CompletionNone, fmt.Errorf("app: toggle %s: %w", it.Path, err)
	}
	if err := s.Vault.Write(it.Path, updated); err != nil {
		return item.CompletionNone, err
	}
	s.invalidate(it.Path)
	return completion, nil
}

// OpenCommand builds the editor invocation for an item's document.
func (s *Service) OpenCommand(it item.Item) (*exec.Cmd, error) {
	if s.Vault == nil {
		return nil, errors.New("app: no vault configured")
	}
	return s.Vault.OpenCommand(it.Path)
}

// Watch subscribes to vault change events.
func (s *Service) Watch(ctx context.Context) (<-chan vault.Event, error) {
	if s.Vault == nil {
		return nil, errors.New("app: no vault configured")
	}
	return s.Vault.Watch(ctx)
}

func (s *Service) invalidate(path string) {
	if s.Cache != nil {
		s.Cache.Invalidate(path)
	}
}
