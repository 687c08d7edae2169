package item

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/gantt/pkg/timeutil"
)

// ProjectFields carries the front-matter field names used for project
// extraction. Each slice is a list of alternates tried in order, so vaults
// with mixed conventions ("start_date" next to "start-date") still resolve.
type ProjectFields struct {
	Title []string
	Start []string
	End   []string
}

// SplitFields turns a comma-separated settings value into a field list.
func SplitFields(value string) []string {
	parts := strings.Split(value, ",")
	fields := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			fields = append(fields, p)
		}
	}
	return fields
}

// ParseProject builds a project item from a document's front-matter map.
// A document is a project only when at least one start field is present;
// the boolean result is false otherwise. Unparseable dates are left zero
// rather than failing, per the tolerate-by-omission error policy.
func ParseProject(path, name string, fm map[string]any, fields ProjectFields) (Item, bool) {
	if len(fm) == 0 {
		return Item{}, false
	}

	start, ok := lookupDate(fm, fields.Start)
	if !ok {
		return Item{}, false
	}
	end, _ := lookupDate(fm, fields.End)

	title := name
	for _, f := range fields.Title {
		if v, found := fm[f]; found {
			if s := strings.TrimSpace(fmt.Sprintf("%v", v)); s != "" {
				title = s
				break
			}
		}
	}

	return Item{
		Title: title,
		Start: start,
		End:   end,
		Kind:  Project,
		Path:  path,
	}, true
}

// lookupDate reports found=true when any of the fields is present at all,
// even if its value does not parse; presence is what makes a project.
func lookupDate(fm map[string]any, fields []string) (time.Time, bool) {
	for _, f := range fields {
		v, ok := fm[f]
		if !ok {
			continue
		}
		return parseDateValue(v), true
	}
	return time.Time{}, false
}

func parseDateValue(v any) time.Time {
	switch d := v.(type) {
	case time.Time:
		return timeutil.Midnight(d)
	case string:
		if t, err := timeutil.ParseISO(strings.TrimSpace(d)); err == nil {
			return t
		}
	}
	return time.Time{}
}
