package content

import (
	"errors"
	"fmt"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

var (
	// ErrInvalidFrontMatter wraps every front-matter validation failure.
	ErrInvalidFrontMatter = errors.New("invalid front matter")
	// ErrDuplicateSlug is returned when two posts resolve to the same slug.
	ErrDuplicateSlug = errors.New("duplicate slug")
)

const postSchema = `
#Post: {
	title!:           string
	date!:            string
	readTime!:        string
	tags!:            [...string]
	excerpt!:         string
	featureImage?:    string
	featureImageAlt?: string
	draft?:           bool
	slug?:            =~"^[a-z0-9][a-z0-9/_-]*$"
	...
}
`

// dateLayouts are tried in order when coercing the date field.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

type frontMatter struct {
	Title           string   `json:"title"`
	Date            string   `json:"date"`
	ReadTime        string   `json:"readTime"`
	Tags            []string `json:"tags"`
	Excerpt         string   `json:"excerpt"`
	FeatureImage    string   `json:"featureImage,omitempty"`
	FeatureImageAlt string   `json:"featureImageAlt,omitempty"`
	Draft           bool     `json:"draft,omitempty"`
	Slug            string   `json:"slug,omitempty"`
}

// Schema validates decoded front matter against the post definition.
type Schema struct {
	ctx  *cue.Context
	post cue.Value
}

// NewSchema compiles the post schema.
func NewSchema() (*Schema, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(postSchema)
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile post schema: %w", err)
	}
	post := v.LookupPath(cue.ParsePath("#Post"))
	if err := post.Err(); err != nil {
		return nil, fmt.Errorf("lookup #Post: %w", err)
	}
	return &Schema{ctx: ctx, post: post}, nil
}

// Decode validates fields and returns the typed front matter with the date coerced.
func (s *Schema) Decode(fields map[string]any) (frontMatter, time.Time, error) {
	var fm frontMatter

	v := s.ctx.Encode(normalize(fields))
	if err := v.Err(); err != nil {
		return fm, time.Time{}, fmt.Errorf("%w: %s", ErrInvalidFrontMatter, cueerrors.Details(err, nil))
	}
	u := s.post.Unify(v)
	if err := u.Validate(cue.Concrete(true)); err != nil {
		return fm, time.Time{}, fmt.Errorf("%w: %s", ErrInvalidFrontMatter, cueerrors.Details(err, nil))
	}
	if err := u.Decode(&fm); err != nil {
		return fm, time.Time{}, fmt.Errorf("%w: %v", ErrInvalidFrontMatter, err)
	}

	date, err := coerceDate(fm.Date)
	if err != nil {
		return fm, time.Time{}, err
	}
	return fm, date, nil
}

func coerceDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD or RFC 3339", ErrInvalidFrontMatter, s)
}

// normalize converts decoder-specific values (TOML local dates, YAML
// interface-keyed maps) into plain strings, slices and string-keyed maps.
// Keys with null values are dropped so they read as absent.
func normalize(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		if v == nil {
			continue
		}
		out[k] = normalizeValue(v)
	}
	return out
}

func normalizeValue(v any) any {
	switch x := v.(type) {
	case time.Time:
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	case map[string]any:
		return normalize(x)
	case map[any]any:
		m := make(map[string]any, len(x))
		for k, val := range x {
			m[fmt.Sprint(k)] = val
		}
		return normalize(m)
	case []any:
		s := make([]any, len(x))
		for i, val := range x {
			s[i] = normalizeValue(val)
		}
		return s
	default:
		return v
	}
}
