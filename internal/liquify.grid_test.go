package internal

import (
	"errors"
	"iter"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func oneToSeven() []any {
	return []any{1, 2, 3, 4, 5, 6, 7}
}

func TestBuildGrid(t *testing.T) {
	tests := []struct {
		name   string
		items  []any
		offset *int
		limit  *int
		cols   *int
		want   [][]any
	}{
		{
			name:  "chunks with short last row",
			items: oneToSeven(),
			cols:  intPtr(3),
			want:  [][]any{{1, 2, 3}, {4, 5, 6}, {7}},
		},
		{
			name:   "offset and limit window",
			items:  oneToSeven(),
			offset: intPtr(1),
			limit:  intPtr(4),
			cols:   intPtr(2),
			want:   [][]any{{2, 3}, {4, 5}},
		},
		{
			name:  "default cols is one row",
			items: []any{"a", "b", "c"},
			want:  [][]any{{"a", "b", "c"}},
		},
		{
			name:   "offset alone slices to the end",
			items:  oneToSeven(),
			offset: intPtr(5),
			want:   [][]any{{6, 7}},
		},
		{
			name:  "limit alone slices from the start",
			items: oneToSeven(),
			limit: intPtr(2),
			cols:  intPtr(5),
			want:  [][]any{{1, 2}},
		},
		{
			name:   "negative offset counts from the end",
			items:  oneToSeven(),
			offset: intPtr(-2),
			want:   [][]any{{6, 7}},
		},
		{
			name:   "offset past end",
			items:  oneToSeven(),
			offset: intPtr(10),
			want:   nil,
		},
		{
			name:  "empty source",
			items: nil,
			cols:  intPtr(3),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := BuildGrid(tt.items, tt.offset, tt.limit, tt.cols)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("BuildGrid() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBuildGrid_InvalidCols(t *testing.T) {
	for _, cols := range []int{0, -1} {
		_, err := BuildGrid(oneToSeven(), nil, nil, intPtr(cols))
		require.Error(t, err)

		var gridErr *GridError
		require.True(t, errors.As(err, &gridErr))
		assert.Equal(t, ErrMsgGridInvalidCols, gridErr.Message)
	}
}

// renderItem renders the bound item variable as text
func renderItem(local, _ *Scope) (string, error) {
	v, _ := local.Get("item")
	return ToString(v), nil
}

func TestPaginator_Render(t *testing.T) {
	p := NewPaginator(GridMarkup{}, nil)

	t.Run("markup", func(t *testing.T) {
		out, err := p.Render([]any{1, 2, 3}, GridOptions{ItemVar: "item", Cols: intPtr(2)}, nil, nil, renderItem)
		require.NoError(t, err)
		assert.Equal(t,
			`<tr class="row1"><td class="col1">1</td><td class="col2">2</td></tr>`+
				`<tr class="row2"><td class="col1">3</td></tr>`,
			out)
	})

	t.Run("empty source renders nothing", func(t *testing.T) {
		out, err := p.Render([]any{}, GridOptions{ItemVar: "item"}, nil, nil, renderItem)
		require.NoError(t, err)
		assert.Empty(t, out)
	})

	t.Run("lazy source", func(t *testing.T) {
		var lazy iter.Seq[any] = func(yield func(any) bool) {
			for _, s := range []string{"a", "b"} {
				if !yield(s) {
					return
				}
			}
		}
		out, err := p.Render(lazy, GridOptions{ItemVar: "item"}, nil, nil, renderItem)
		require.NoError(t, err)
		assert.Equal(t, `<tr class="row1"><td class="col1">a</td><td class="col2">b</td></tr>`, out)
	})

	t.Run("custom markup", func(t *testing.T) {
		custom := NewPaginator(GridMarkup{RowElement: "div", CellElement: "span", CellClass: "cell-"}, nil)
		assert.Equal(t, DefaultRowClass, custom.Markup().RowClass)

		out, err := custom.Render([]any{"x"}, GridOptions{ItemVar: "item"}, nil, nil, renderItem)
		require.NoError(t, err)
		assert.Equal(t, `<div class="row1"><span class="cell-1">x</span></div>`, out)
	})
}

func TestPaginator_Render_CellIsolation(t *testing.T) {
	p := NewPaginator(DefaultGridMarkup(), nil)
	local := NewScope(map[string]any{"prefix": ">", "counter": 0})
	global := NewScope(map[string]any{"site": "demo"})

	var seen []any
	render := func(cell, g *Scope) (string, error) {
		assert.Same(t, global, g)
		assert.Same(t, local, cell.Parent())

		prefix, _ := cell.Get("prefix")
		counter, _ := cell.Get("counter")
		seen = append(seen, counter)

		cell.Set("counter", 99)
		item, _ := cell.Get("product")
		return ToString(prefix) + ToString(item), nil
	}

	out, err := p.Render([]any{"a", "b"}, GridOptions{ItemVar: "product", Cols: intPtr(1)}, local, global, render)
	require.NoError(t, err)
	assert.Equal(t, `<tr class="row1"><td class="col1">>a</td></tr><tr class="row2"><td class="col1">>b</td></tr>`, out)

	assert.Equal(t, []any{0, 0}, seen, "cell writes do not leak to siblings")
	counter, _ := local.Get("counter")
	assert.Equal(t, 0, counter)
	assert.False(t, local.Has("product"), "item binding does not leak to caller")
}

func TestPaginator_Render_Errors(t *testing.T) {
	p := NewPaginator(DefaultGridMarkup(), nil)

	t.Run("cell failure reports position and drops output", func(t *testing.T) {
		boom := errors.New("boom")
		render := func(cell, _ *Scope) (string, error) {
			v, _ := cell.Get("item")
			if v == 4 {
				return "", boom
			}
			return "ok", nil
		}

		out, err := p.Render(oneToSeven(), GridOptions{ItemVar: "item", Cols: intPtr(3)}, nil, nil, render)
		require.Error(t, err)
		assert.Empty(t, out)
		assert.ErrorIs(t, err, boom)

		var gridErr *GridError
		require.True(t, errors.As(err, &gridErr))
		assert.Equal(t, 2, gridErr.Row)
		assert.Equal(t, 1, gridErr.Col)
	})

	t.Run("source is not a sequence", func(t *testing.T) {
		_, err := p.Render(42, GridOptions{ItemVar: "item"}, nil, nil, renderItem)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgGridNotSequence)
	})

	t.Run("missing item variable", func(t *testing.T) {
		_, err := p.Render(oneToSeven(), GridOptions{}, nil, nil, renderItem)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgGridEmptyItemVar)
	})

	t.Run("nil render", func(t *testing.T) {
		_, err := p.Render(oneToSeven(), GridOptions{ItemVar: "item"}, nil, nil, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), ErrMsgGridNilRender)
	})
}
