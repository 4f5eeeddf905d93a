package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ZeroInitialized(t *testing.T) {
	tbl := New([]string{"a", "b"}, []string{"x"}, 0)
	v, err := tbl.Get("a", "x")
	require.NoError(t, err)
	assert.Equal(t, 0, v)
}

func TestSetGet_RoundTrip(t *testing.T) {
	tbl := New([]string{"a"}, []string{"x", "y"}, 0.0)
	require.NoError(t, tbl.Set("a", "y", 3.5))

	v, err := tbl.Get("a", "y")
	require.NoError(t, err)
	assert.Equal(t, 3.5, v)
}

func TestGet_UnknownLabelErrors(t *testing.T) {
	tbl := New([]string{"a"}, []string{"x"}, 0)
	_, err := tbl.Get("z", "x")
	assert.Error(t, err)
	_, err = tbl.Get("a", "z")
	assert.Error(t, err)
}

func TestAddColumn_FillsFromExistingRows(t *testing.T) {
	tbl := New([]string{"a", "b"}, []string{"x"}, 0)
	require.NoError(t, tbl.Set("a", "x", 1))
	require.NoError(t, tbl.Set("b", "x", 2))

	err := tbl.AddColumn("sum", func(r string) int {
		v, _ := tbl.Get(r, "x")
		return v * 10
	})
	require.NoError(t, err)

	v, err := tbl.Get("a", "sum")
	require.NoError(t, err)
	assert.Equal(t, 10, v)
}

func TestAddColumn_DuplicateErrors(t *testing.T) {
	tbl := New([]string{"a"}, []string{"x"}, 0)
	err := tbl.AddColumn("x", func(r string) int { return 0 })
	assert.Error(t, err)
}

func TestColumn_ReturnsAllRowsInOrder(t *testing.T) {
	tbl := New([]string{"a", "b", "c"}, []string{"x"}, 0)
	require.NoError(t, tbl.Set("a", "x", 1))
	require.NoError(t, tbl.Set("b", "x", 2))
	require.NoError(t, tbl.Set("c", "x", 3))

	col, err := tbl.Column("x")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, col)
}
