package decision

import (
	"context"
	"errors"
	"log/slog"
	"maps"

	"github.com/poiesic/slidesearch/core"
	"github.com/poiesic/slidesearch/storage"
)

// Tables answers lookups against the four decision tables.
type Tables struct {
	source       storage.RecordSource
	contentTypes map[string]string
	logger       *slog.Logger
}

// Option configures Tables.
type Option func(*Tables) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(t *Tables) error {
		if logger == nil {
			logger = slog.Default()
		}
		t.logger = logger
		return nil
	}
}

// WithContentTypes replaces the slide-type to content-type map.
func WithContentTypes(m map[string]string) Option {
	return func(t *Tables) error {
		t.contentTypes = maps.Clone(m)
		return nil
	}
}

// NewTables creates decision tables over source.
func NewTables(source storage.RecordSource, opts ...Option) (*Tables, error) {
	if source == nil {
		return nil, ErrSourceRequired
	}
	t := &Tables{
		source:       source,
		contentTypes: DefaultContentTypes(),
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Layout returns the layout rule for goal, falling back to the features row.
// The boolean is false only when neither row exists.
func (t *Tables) Layout(ctx context.Context, goal string) (LayoutRule, bool, error) {
	rows, err := t.index(ctx, core.TableLayoutLogic, layoutKey)
	if err != nil {
		return LayoutRule{}, false, err
	}
	r, ok := lookup(rows, goal, FallbackGoal)
	if !ok {
		return LayoutRule{}, false, nil
	}
	return layoutRuleFromRecord(r), true, nil
}

// Typography returns the typography rule for an exact content type.
func (t *Tables) Typography(ctx context.Context, contentType string) (TypographyRule, bool, error) {
	rows, err := t.index(ctx, core.TableTypography, typographyKey)
	if err != nil {
		return TypographyRule{}, false, err
	}
	r, ok := rows[contentType]
	if !ok {
		return TypographyRule{}, false, nil
	}
	return typographyRuleFromRecord(r), true, nil
}

// TypographyFor maps slideType through the content-type map and hints, then
// returns the matching typography rule.
func (t *Tables) TypographyFor(ctx context.Context, slideType string, hints Hints) (TypographyRule, bool, error) {
	return t.Typography(ctx, t.ContentType(slideType, hints))
}

// Color returns the color rule for emotion, falling back to the clarity row.
func (t *Tables) Color(ctx context.Context, emotion string) (ColorRule, bool, error) {
	rows, err := t.index(ctx, core.TableColorLogic, colorKey)
	if err != nil {
		return ColorRule{}, false, err
	}
	r, ok := lookup(rows, emotion, FallbackEmotion)
	if !ok {
		return ColorRule{}, false, nil
	}
	return colorRuleFromRecord(r), true, nil
}

// Background returns the background rule for an exact slide type.
func (t *Tables) Background(ctx context.Context, slideType string) (BackgroundRule, bool, error) {
	rows, err := t.index(ctx, core.TableBackgrounds, backgroundKey)
	if err != nil {
		return BackgroundRule{}, false, err
	}
	r, ok := rows[slideType]
	if !ok {
		return BackgroundRule{}, false, nil
	}
	return backgroundRuleFromRecord(r), true, nil
}

// index loads table and keys its rows by the key column. Rows without the
// key column are skipped; a later row replaces an earlier one with the same
// key. Absent backing data yields an empty index.
func (t *Tables) index(ctx context.Context, table core.TableName, key string) (map[string]core.Record, error) {
	ds, err := t.source.Load(ctx, table)
	if errors.Is(err, storage.ErrSourceNotFound) {
		t.logger.Debug("decision table not found", "table", table)
		return map[string]core.Record{}, nil
	}
	if err != nil {
		t.logger.Error("error loading decision table", "table", table, "err", err)
		return nil, err
	}
	rows := make(map[string]core.Record, ds.Len())
	for _, r := range ds.Records {
		if !r.Has(key) {
			continue
		}
		rows[r.Get(key)] = r
	}
	return rows, nil
}

func lookup(rows map[string]core.Record, key, fallback string) (core.Record, bool) {
	if r, ok := rows[key]; ok {
		return r, true
	}
	r, ok := rows[fallback]
	return r, ok
}
