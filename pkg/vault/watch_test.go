package vault

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestWatchEmitsDocumentChanges(t *testing.T) {
	v := testVault(t, map[string]string{"inbox.md": "before"})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := v.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow the watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(v.root, "inbox.md"), []byte("after"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventVaultInvalidated {
				return
			}
			if evt.Type == EventDocumentChanged {
				if evt.Path != "inbox.md" {
					t.Fatalf("expected path 'inbox.md', got %q", evt.Path)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for document change event")
		}
	}
}

func TestWatchIgnoresNonMarkdown(t *testing.T) {
	v := testVault(t, map[string]string{"inbox.md": ""})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := v.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	if err := os.WriteFile(filepath.Join(v.root, "inbox.md.swp"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	select {
	case evt := <-ch:
		if evt.Type == EventDocumentChanged {
			t.Fatalf("unexpected document event for %q", evt.Path)
		}
	case <-time.After(300 * time.Millisecond):
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	v := testVault(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := v.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	select {
	case _, ok := <-ch:
		if ok {
			// Drain anything buffered before close.
			for range ch {
			}
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for channel close")
	}
}
