package items

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tableflip.dev/gantt/pkg/app"
	"tableflip.dev/gantt/pkg/item"
	"tableflip.dev/gantt/pkg/printers"
	"tableflip.dev/gantt/pkg/timeutil"
)

type Items struct {
	ShowPath bool
	Within   string
	Kind     string // "", "projects" or "tasks"
	Service  *app.Service
}

func (n *Items) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not list items, no service")
	}

	all, err := n.Service.Items(ctx)
	if err != nil {
		return err
	}

	title := "Timeline"
	switch n.Kind {
	case "":
	case "projects":
		all = ofKind(all, item.Project)
		title = "Projects"
	case "tasks":
		all = ofKind(all, item.Task)
		title = "Tasks"
	default:
		return fmt.Errorf("unknown item kind %q, want projects or tasks", n.Kind)
	}
	if n.Within != "" {
		days, _, err := timeutil.ParseSpan(n.Within)
		if err != nil {
			return err
		}
		all = withinHorizon(all, time.Now(), days)
		title = fmt.Sprintf("%s (next %s)", title, timeutil.HumanDays(days))
	}

	pp := printers.PrettyPrint{ShowPath: n.ShowPath}
	fmt.Println("")
	pp.TitleWithCount(title, len(all))
	pp.Items(all...)

	return nil
}

func ofKind(all []item.Item, k item.Kind) []item.Item {
	kept := make([]item.Item, 0, len(all))
	for _, it := range all {
		if it.Kind == k {
			kept = append(kept, it)
		}
	}
	return kept
}

// withinHorizon keeps items whose range overlaps [today, today+days].
// Undated items are dropped; they have no place on a bounded horizon.
func withinHorizon(all []item.Item, today time.Time, days int) []item.Item {
	start := timeutil.Midnight(today)
	end := timeutil.AddDays(start, days)

	kept := make([]item.Item, 0, len(all))
	for _, it := range all {
		if !it.HasDates() {
			continue
		}
		if it.Start.After(end) || it.End.Before(start) {
			continue
		}
		kept = append(kept, it)
	}
	return kept
}
