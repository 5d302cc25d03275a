package storage

import (
	"context"
	"testing"

	"github.com/poiesic/slidesearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticSource(t *testing.T) {
	ctx := context.Background()
	cols := []string{"emotion", "background"}
	src := NewStaticSource(
		DatasetFromRows(core.TableColorLogic, "colors.csv", cols, []string{"hope", "gradient"}),
		DatasetFromRows(core.TableTypography, "typography.csv", []string{"content_type"}),
	)

	t.Run("returns table in order", func(t *testing.T) {
		ds, err := src.Load(ctx, core.TableColorLogic)
		require.NoError(t, err)
		assert.Equal(t, "colors.csv", ds.Source)
		require.Equal(t, 1, ds.Len())
		assert.Equal(t, "gradient", ds.Records[0].Get("background"))
	})

	t.Run("present but empty table", func(t *testing.T) {
		ds, err := src.Load(ctx, core.TableTypography)
		require.NoError(t, err)
		assert.Equal(t, 0, ds.Len())
	})

	t.Run("absent table", func(t *testing.T) {
		_, err := src.Load(ctx, core.TableBackgrounds)
		assert.ErrorIs(t, err, ErrSourceNotFound)
	})

	t.Run("mutating a loaded dataset does not leak", func(t *testing.T) {
		ds, err := src.Load(ctx, core.TableColorLogic)
		require.NoError(t, err)
		ds.Records[0].Fields["background"] = "changed"

		again, err := src.Load(ctx, core.TableColorLogic)
		require.NoError(t, err)
		assert.Equal(t, "gradient", again.Records[0].Get("background"))
	})

	t.Run("cancelled context", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := src.Load(cctx, core.TableColorLogic)
		assert.ErrorIs(t, err, context.Canceled)
	})
}
