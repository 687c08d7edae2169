package open

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"tableflip.dev/gantt/pkg/app"
	"tableflip.dev/gantt/pkg/item"
)

type Open struct {
	Name    string
	Service *app.Service
}

// Do opens a document in the configured editor. The argument may be a
// vault-relative path or a bare document name, the way wiki links work.
func (n *Open) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not open, no service")
	}
	name := strings.TrimSpace(n.Name)
	if name == "" {
		return errors.New("open: document name required")
	}

	path := name
	if !strings.HasSuffix(path, ".md") {
		resolved, ok := n.Service.Vault.Resolve(name)
		if !ok {
			return fmt.Errorf("open: no document named %q", name)
		}
		path = resolved
	}

	cmd, err := n.Service.OpenCommand(item.Item{Path: path})
	if err != nil {
		return err
	}
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
