package internal

import (
	"strings"
	"time"

	"github.com/ncruces/go-strftime"
)

// Date filter names
const (
	FilterNameDate    = "date"
	FilterNameTimeTag = "time_tag"
)

// DefaultDateFormat is the strftime layout used when none is given
const DefaultDateFormat = "%a, %b %d, %y"

// Keywords resolved to the current time
const (
	DateKeywordNow   = "now"
	DateKeywordToday = "today"
)

// Common time parsing formats tried in order
var commonTimeFormats = []string{
	time.RFC3339,
	time.RFC3339Nano,
	time.DateOnly,
	time.DateTime,
	time.RFC1123,
	time.RFC1123Z,
	"2006/01/02",
	"Jan 2, 2006",
	"January 2, 2006",
}

// nowFunc is the clock used for "now" and "today"
var nowFunc = time.Now

// registerDateFilters registers strftime formatting filters
func registerDateFilters(b *FilterTableBuilder) {
	for _, name := range []string{FilterNameDate, FilterNameTimeTag} {
		b.MustRegister(&Filter{
			Name:    name,
			MinArgs: 0,
			MaxArgs: 1,
			Fn: func(base any, args []any) (any, error) {
				layout, err := optionalStringArg(args, 0, DefaultDateFormat, name)
				if err != nil {
					return nil, err
				}
				t, ok := toTime(base)
				if !ok {
					return StringValueEmpty, nil
				}
				return strftime.Format(layout, t), nil
			},
		})
	}
}

// toTime resolves time values, the now/today keywords and common textual
// timestamps
func toTime(v any) (time.Time, bool) {
	switch val := v.(type) {
	case time.Time:
		return val, true
	case *time.Time:
		if val == nil {
			return time.Time{}, false
		}
		return *val, true
	case string:
		s := strings.TrimSpace(val)
		switch strings.ToLower(s) {
		case DateKeywordNow, DateKeywordToday:
			return nowFunc(), true
		}
		for _, layout := range commonTimeFormats {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}
