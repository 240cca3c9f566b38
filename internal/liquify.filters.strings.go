package internal

import (
	"encoding/json"
	"fmt"
	"html"
	"math"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// String filter names
const (
	FilterNameCapitalize        = "capitalize"
	FilterNameDowncase          = "downcase"
	FilterNameUpcase            = "upcase"
	FilterNameEscape            = "escape"
	FilterNameStrip             = "strip"
	FilterNameLstrip            = "lstrip"
	FilterNameRstrip            = "rstrip"
	FilterNameReplace           = "replace"
	FilterNameReplaceFirst      = "replace_first"
	FilterNameRemove            = "remove"
	FilterNameRemoveFirst       = "remove_first"
	FilterNameAppend            = "append"
	FilterNamePrepend           = "prepend"
	FilterNameSplit             = "split"
	FilterNameNewlineToBr       = "newline_to_br"
	FilterNameStripNewlines     = "strip_newlines"
	FilterNameStripHTML         = "strip_html"
	FilterNameTruncate          = "truncate"
	FilterNameTruncateWords     = "truncatewords"
	FilterNameCamelcase         = "camelcase"
	FilterNamePluralize         = "pluralize"
	FilterNameHighlight         = "highlight"
	FilterNameHighlightActive   = "highlight_active"
	FilterNamePlaceholderSVGTag = "placeholder_svg_tag"
	FilterNameWeightWithUnit    = "weight_with_unit"
	FilterNameJSON              = "json"
)

// String filter defaults and markup
const (
	DefaultEllipsis   = "..."
	LineBreakTag      = "<br />"
	HighlightOpenTag  = "<strong>"
	HighlightCloseTag = "</strong>"
	ActiveOpenTag     = `<span class="active">`
	ActiveCloseTag    = "</span>"
	PlaceholderSVGFmt = "<svg class='%s' xmlns='http://www.w3.org/2000/svg' viewBox='0 0 525.5 525.5'>%s</svg>"
)

// Float rendering for pluralize
const (
	floatMarkers        = ".e"
	floatIntegralSuffix = ".0"
)

// String filter error messages
const (
	ErrMsgFilterInvalidPattern = "invalid highlight pattern"
	ErrMsgFilterJSONFailed     = "json encoding failed"
)

var hyphenRunPattern = regexp.MustCompile(`-+`)

var (
	stripPolicyOnce sync.Once
	stripPolicy     *bluemonday.Policy
)

// registerStringFilters registers text manipulation filters
func registerStringFilters(b *FilterTableBuilder) {
	registerTextFunc(b, FilterNameCapitalize, capitalize)
	registerTextFunc(b, FilterNameDowncase, func(s string) string {
		return cases.Lower(language.Und).String(s)
	})
	registerTextFunc(b, FilterNameUpcase, func(s string) string {
		return cases.Upper(language.Und).String(s)
	})
	registerTextFunc(b, FilterNameEscape, html.EscapeString)
	registerTextFunc(b, FilterNameNewlineToBr, func(s string) string {
		return strings.ReplaceAll(s, "\n", LineBreakTag)
	})
	registerTextFunc(b, FilterNameStripNewlines, func(s string) string {
		return strings.NewReplacer("\r\n", "", "\n", "", "\r", "").Replace(s)
	})
	registerTextFunc(b, FilterNameStripHTML, func(s string) string {
		return html.UnescapeString(htmlStripper().Sanitize(s))
	})
	registerTextFunc(b, FilterNameCamelcase, camelcase)
	registerTextFunc(b, FilterNameWeightWithUnit, func(s string) string { return s })

	registerTrimFilter(b, FilterNameStrip, strings.TrimSpace, strings.Trim)
	registerTrimFilter(b, FilterNameLstrip, func(s string) string {
		return strings.TrimLeftFunc(s, unicode.IsSpace)
	}, strings.TrimLeft)
	registerTrimFilter(b, FilterNameRstrip, func(s string) string {
		return strings.TrimRightFunc(s, unicode.IsSpace)
	}, strings.TrimRight)

	registerReplaceFilter(b, FilterNameReplace, -1, true)
	registerReplaceFilter(b, FilterNameReplaceFirst, 1, true)
	registerReplaceFilter(b, FilterNameRemove, -1, false)
	registerReplaceFilter(b, FilterNameRemoveFirst, 1, false)

	// append(base, suffix) string
	b.MustRegister(&Filter{
		Name:    FilterNameAppend,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			return ToString(base) + ToString(args[0]), nil
		},
	})

	// prepend(base, prefix) string
	b.MustRegister(&Filter{
		Name:    FilterNamePrepend,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			return ToString(args[0]) + ToString(base), nil
		},
	})

	// split(base, sep) []any - an empty separator yields single characters
	b.MustRegister(&Filter{
		Name:    FilterNameSplit,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			s, err := textBase(base, FilterNameSplit)
			if err != nil {
				return nil, err
			}
			sep, err := stringArg(args, 0, FilterNameSplit)
			if err != nil {
				return nil, err
			}
			if sep == "" {
				return runesToSequence(s), nil
			}
			parts := strings.Split(s, sep)
			result := make([]any, len(parts))
			for i, p := range parts {
				result[i] = p
			}
			return result, nil
		},
	})

	b.MustRegister(&Filter{Name: FilterNameTruncate, MinArgs: 1, MaxArgs: 2, Fn: filterTruncate})
	b.MustRegister(&Filter{Name: FilterNameTruncateWords, MinArgs: 1, MaxArgs: 2, Fn: filterTruncateWords})

	// pluralize(base, singular, plural) string - Empty for non-numeric base
	b.MustRegister(&Filter{
		Name:    FilterNamePluralize,
		MinArgs: 2,
		MaxArgs: 2,
		Fn: func(base any, args []any) (any, error) {
			n, ok := numericValue(base)
			if !ok {
				return Empty{}, nil
			}
			word := args[1]
			if n.f <= 1 {
				word = args[0]
			}
			return numberText(base) + StringValueSpace + ToString(word), nil
		},
	})

	// highlight(base, match) string
	b.MustRegister(&Filter{
		Name:    FilterNameHighlight,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			match, err := stringArg(args, 0, FilterNameHighlight)
			if err != nil {
				return nil, err
			}
			return highlight(base, match, HighlightOpenTag, HighlightCloseTag)
		},
	})

	// highlight_active(base) string - always wraps
	b.MustRegister(&Filter{
		Name:    FilterNameHighlightActive,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			return ActiveOpenTag + ToString(base) + ActiveCloseTag, nil
		},
	})

	// placeholder_svg_tag(base, class) string
	b.MustRegister(&Filter{
		Name:    FilterNamePlaceholderSVGTag,
		MinArgs: 1,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			return fmt.Sprintf(PlaceholderSVGFmt, ToString(args[0]), ToString(base)), nil
		},
	})

	// json(base) string
	b.MustRegister(&Filter{
		Name:    FilterNameJSON,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			data, err := json.Marshal(base)
			if err != nil {
				return nil, fmt.Errorf(ErrFmtWithCause, ErrMsgFilterJSONFailed, err)
			}
			return string(data), nil
		},
	})
}

// registerTextFunc registers a zero-argument text to text filter
func registerTextFunc(b *FilterTableBuilder, name string, fn func(string) string) {
	b.MustRegister(&Filter{
		Name:    name,
		MinArgs: 0,
		MaxArgs: 0,
		Fn: func(base any, _ []any) (any, error) {
			s, err := textBase(base, name)
			if err != nil {
				return nil, err
			}
			return fn(s), nil
		},
	})
}

// registerTrimFilter registers a whitespace trim with an optional cutset
func registerTrimFilter(b *FilterTableBuilder, name string, space func(string) string, cutset func(string, string) string) {
	b.MustRegister(&Filter{
		Name:    name,
		MinArgs: 0,
		MaxArgs: 1,
		Fn: func(base any, args []any) (any, error) {
			s, err := textBase(base, name)
			if err != nil {
				return nil, err
			}
			if len(args) == 0 {
				return space(s), nil
			}
			chars, err := stringArg(args, 0, name)
			if err != nil {
				return nil, err
			}
			return cutset(s, chars), nil
		},
	})
}

// registerReplaceFilter registers replace/remove variants. n is the number
// of replacements (-1 for all); withReplacement selects the 2-argument form.
func registerReplaceFilter(b *FilterTableBuilder, name string, n int, withReplacement bool) {
	argCount := 1
	if withReplacement {
		argCount = 2
	}
	b.MustRegister(&Filter{
		Name:    name,
		MinArgs: argCount,
		MaxArgs: argCount,
		Fn: func(base any, args []any) (any, error) {
			s, err := textBase(base, name)
			if err != nil {
				return nil, err
			}
			old, err := stringArg(args, 0, name)
			if err != nil {
				return nil, err
			}
			replacement := StringValueEmpty
			if withReplacement {
				if replacement, err = stringArg(args, 1, name); err != nil {
					return nil, err
				}
			}
			return strings.Replace(s, old, replacement, n), nil
		},
	})
}

// filterTruncate shortens text to n characters, the ellipsis included
func filterTruncate(base any, args []any) (any, error) {
	s, err := textBase(base, FilterNameTruncate)
	if err != nil {
		return nil, err
	}
	n, err := intArg(args, 0, FilterNameTruncate)
	if err != nil {
		return nil, err
	}
	ellipsis, err := optionalStringArg(args, 1, DefaultEllipsis, FilterNameTruncate)
	if err != nil {
		return nil, err
	}

	runes := []rune(s)
	if len(runes) <= n {
		return s, nil
	}
	keep := clampInt(n-utf8.RuneCountInString(ellipsis), 0, len(runes))
	return string(runes[:keep]) + ellipsis, nil
}

// filterTruncateWords keeps the first n whitespace-separated words, joined
// by single spaces
func filterTruncateWords(base any, args []any) (any, error) {
	s, err := textBase(base, FilterNameTruncateWords)
	if err != nil {
		return nil, err
	}
	n, err := intArg(args, 0, FilterNameTruncateWords)
	if err != nil {
		return nil, err
	}
	ellipsis, err := optionalStringArg(args, 1, DefaultEllipsis, FilterNameTruncateWords)
	if err != nil {
		return nil, err
	}

	words := strings.Fields(s)
	if n >= len(words) {
		return s, nil
	}
	return strings.Join(words[:clampInt(n, 0, len(words))], StringValueSpace) + ellipsis, nil
}

// capitalize upper-cases the first character and lower-cases the rest
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// camelcase converts hyphenated text into CamelCase
func camelcase(s string) string {
	parts := strings.Split(hyphenRunPattern.ReplaceAllString(s, "-"), "-")
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(capitalize(p))
	}
	return sb.String()
}

// highlight wraps base in the given tags when base, used as a pattern, matches
// the start of match
func highlight(base any, match, openTag, closeTag string) (any, error) {
	pattern := ToString(base)
	if match == "" {
		return pattern, nil
	}
	re, err := regexp.Compile("^(?:" + pattern + ")")
	if err != nil {
		return nil, fmt.Errorf(ErrFmtWithCause, ErrMsgFilterInvalidPattern, err)
	}
	if re.MatchString(match) {
		return openTag + pattern + closeTag, nil
	}
	return pattern, nil
}

// htmlStripper returns the shared policy that removes every tag
func htmlStripper() *bluemonday.Policy {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return stripPolicy
}

// numberText renders integral floats with a trailing ".0" so 1.0 stays
// distinguishable from 1.
func numberText(v any) string {
	s := ToString(v)
	switch f := v.(type) {
	case float32:
		if !math.IsInf(float64(f), 0) && !math.IsNaN(float64(f)) && !strings.ContainsAny(s, floatMarkers) {
			s += floatIntegralSuffix
		}
	case float64:
		if !math.IsInf(f, 0) && !math.IsNaN(f) && !strings.ContainsAny(s, floatMarkers) {
			s += floatIntegralSuffix
		}
	}
	return s
}
