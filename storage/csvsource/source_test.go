package csvsource

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/poiesic/slidesearch/core"
	"github.com/poiesic/slidesearch/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("header and rows", func(t *testing.T) {
		in := "goal,emotion\nproblem,frustration\n\"cta, final\",urgency\n"
		ds, err := Parse(strings.NewReader(in), core.TableLayoutLogic, "x.csv")
		require.NoError(t, err)
		assert.Equal(t, []string{"goal", "emotion"}, ds.Columns)
		require.Equal(t, 2, ds.Len())
		assert.Equal(t, "cta, final", ds.Records[1].Get("goal"))
		assert.Equal(t, "x.csv", ds.Source)
	})

	t.Run("byte order mark stripped from header", func(t *testing.T) {
		ds, err := Parse(strings.NewReader("\ufeffgoal\nhook\n"), core.TableLayoutLogic, "x.csv")
		require.NoError(t, err)
		assert.Equal(t, "hook", ds.Records[0].Get("goal"))
	})

	t.Run("ragged rows", func(t *testing.T) {
		ds, err := Parse(strings.NewReader("a,b,c\n1\n1,2,3,4\n"), core.TableChart, "x.csv")
		require.NoError(t, err)
		require.Equal(t, 2, ds.Len())
		assert.False(t, ds.Records[0].Has("b"))
		assert.Equal(t, "3", ds.Records[1].Get("c"))
		assert.Equal(t, 3, ds.Records[1].Len())
	})

	t.Run("empty file", func(t *testing.T) {
		ds, err := Parse(strings.NewReader(""), core.TableChart, "x.csv")
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Len())
		assert.NotNil(t, ds.Records)
	})

	t.Run("header only", func(t *testing.T) {
		ds, err := Parse(strings.NewReader("a,b\n"), core.TableChart, "x.csv")
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Len())
		assert.Equal(t, []string{"a", "b"}, ds.Columns)
	})

	t.Run("malformed quoting", func(t *testing.T) {
		_, err := Parse(strings.NewReader("a\n\"unterminated\n"), core.TableChart, "x.csv")
		assert.Error(t, err)
	})
}

func TestSourceLoad(t *testing.T) {
	ctx := context.Background()
	fsys := fstest.MapFS{
		"slide-charts.csv":  {Data: []byte("chart_type,keywords\nBar Chart,bar compare\n")},
		"slide-copy.csv":    {Data: []byte("formula_name\n")},
		"custom-colors.csv": {Data: []byte("emotion,background\nhope,bright\n")},
	}
	src := New(fsys, WithFile(core.TableColorLogic, "custom-colors.csv"))

	t.Run("present table", func(t *testing.T) {
		ds, err := src.Load(ctx, core.TableChart)
		require.NoError(t, err)
		assert.Equal(t, "slide-charts.csv", ds.Source)
		assert.Equal(t, 1, ds.Len())
	})

	t.Run("present but empty", func(t *testing.T) {
		ds, err := src.Load(ctx, core.TableCopy)
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Len())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := src.Load(ctx, core.TableStrategy)
		assert.ErrorIs(t, err, storage.ErrSourceNotFound)
	})

	t.Run("overridden file name", func(t *testing.T) {
		ds, err := src.Load(ctx, core.TableColorLogic)
		require.NoError(t, err)
		assert.Equal(t, "bright", ds.Records[0].Get("background"))
	})

	t.Run("unknown table", func(t *testing.T) {
		_, err := src.Load(ctx, "slides")
		assert.ErrorIs(t, err, core.ErrUnknownTable)
	})
}

func TestFileMapping(t *testing.T) {
	src := New(fstest.MapFS{})

	name, ok := src.FileName(core.TableLayoutLogic)
	require.True(t, ok)
	assert.Equal(t, "slide-layout-logic.csv", name)

	table, ok := src.TableForFile("slide-backgrounds.csv")
	require.True(t, ok)
	assert.Equal(t, core.TableBackgrounds, table)

	_, ok = src.TableForFile("notes.txt")
	assert.False(t, ok)
}

func TestEmbeddedSeedData(t *testing.T) {
	ctx := context.Background()
	src := Embedded()

	for _, table := range core.Tables() {
		t.Run(string(table), func(t *testing.T) {
			ds, err := src.Load(ctx, table)
			require.NoError(t, err)
			assert.NotZero(t, ds.Len())
			assert.NotEmpty(t, ds.Columns)
		})
	}
}
