package domain_test

import (
	"math"
	"testing"

	"github.com/happyshop/happyshop/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, desc string, price string, stock int) *domain.Product {
	return &domain.Product{
		ID:            id,
		Description:   desc,
		ImageRef:      id + ".jpg",
		UnitPrice:     decimal.RequireFromString(price),
		StockQuantity: stock,
	}
}

func ids(lines []domain.Line) []string {
	out := make([]string, 0, len(lines))
	for _, l := range lines {
		out = append(out, l.ProductID)
	}
	return out
}

func TestTrolley_MergesSameProduct(t *testing.T) {
	tr := domain.NewTrolley()
	tv := product("0001", "TV", "12.01", 100)

	for i := 0; i < 3; i++ {
		notice, err := tr.Add(tv)
		require.NoError(t, err)
		assert.Equal(t, domain.NoticeNone, notice)
	}

	lines := tr.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "0001", lines[0].ProductID)
	assert.Equal(t, 3, lines[0].Quantity)
}

func TestTrolley_SortsByProductID(t *testing.T) {
	tr := domain.NewTrolley()
	_, _ = tr.Add(product("0007", "USB4", "12.01", 100))
	_, _ = tr.Add(product("0001", "TV", "12.01", 100))
	_, _ = tr.Add(product("0004", "Camera", "12.01", 100))

	assert.Equal(t, []string{"0001", "0004", "0007"}, ids(tr.Lines()))
}

func TestTrolley_SortIsLexicographic(t *testing.T) {
	tr := domain.NewTrolley()
	_, _ = tr.Add(product("10", "ten", "1", 1))
	_, _ = tr.Add(product("9", "nine", "1", 1))
	_, _ = tr.Add(product("100", "hundred", "1", 1))

	assert.Equal(t, []string{"10", "100", "9"}, ids(tr.Lines()))
}

func TestTrolley_AddSelectionWithQuantity(t *testing.T) {
	tr := domain.NewTrolley()
	tv := product("0001", "TV", "12.01", 2)

	_, err := tr.AddSelection(tv, 5)
	require.NoError(t, err)
	_, err = tr.AddSelection(tv, 2)
	require.NoError(t, err)

	assert.Equal(t, 7, tr.Lines()[0].Quantity)
	assert.Equal(t, 7, tr.TotalQuantity())
}

func TestTrolley_NilProductIsNoticeNotFault(t *testing.T) {
	tr := domain.NewTrolley()
	notice, err := tr.Add(nil)
	require.NoError(t, err)
	assert.Equal(t, domain.NoticeNoProductSelected, notice)
	assert.True(t, tr.IsEmpty())
}

func TestTrolley_RejectsNonPositiveQuantity(t *testing.T) {
	tr := domain.NewTrolley()
	_, err := tr.AddSelection(product("0001", "TV", "1", 1), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	_, err = tr.AddSelection(product("0001", "TV", "1", 1), -2)
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.True(t, tr.IsEmpty())
}

func TestTrolley_MergePastMaxIntFails(t *testing.T) {
	tr := domain.NewTrolley()
	tv := product("0001", "TV", "1", 5)

	_, err := tr.AddSelection(tv, math.MaxInt)
	require.NoError(t, err)

	_, err = tr.AddSelection(tv, 1)
	assert.ErrorIs(t, err, domain.ErrQuantityOverflow)

	lines := tr.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, math.MaxInt, lines[0].Quantity)
	assert.Equal(t, math.MaxInt, tr.TotalQuantity())
}

func TestTrolley_MergeUpToMaxIntSucceeds(t *testing.T) {
	tr := domain.NewTrolley()
	tv := product("0001", "TV", "1", 5)

	_, err := tr.AddSelection(tv, math.MaxInt-1)
	require.NoError(t, err)
	_, err = tr.AddSelection(tv, 1)
	require.NoError(t, err)
	assert.Equal(t, math.MaxInt, tr.Lines()[0].Quantity)
}

func TestTrolley_LineIsSnapshotOfProduct(t *testing.T) {
	tr := domain.NewTrolley()
	tv := product("0001", "TV", "12.01", 100)
	_, _ = tr.Add(tv)

	tv.Description = "changed"
	tv.StockQuantity = 0

	line := tr.Lines()[0]
	assert.Equal(t, "TV", line.Description)
	assert.Equal(t, "0001.jpg", line.ImageRef)
}

func TestTrolley_QuantityChangeNeverTouchesProduct(t *testing.T) {
	tr := domain.NewTrolley()
	tv := product("0001", "TV", "12.01", 100)
	_, _ = tr.AddSelection(tv, 4)
	assert.Equal(t, 100, tv.StockQuantity)
}

func TestTrolley_LinesReturnsCopy(t *testing.T) {
	tr := domain.NewTrolley()
	_, _ = tr.Add(product("0001", "TV", "12.01", 100))

	lines := tr.Lines()
	lines[0].Quantity = 99

	assert.Equal(t, 1, tr.Lines()[0].Quantity)
}

func TestTrolley_Clear(t *testing.T) {
	tr := domain.NewTrolley()
	_, _ = tr.Add(product("0001", "TV", "12.01", 100))
	_, _ = tr.Add(product("0002", "Radio", "29.99", 10))
	require.Equal(t, 2, tr.Len())

	tr.Clear()
	assert.True(t, tr.IsEmpty())
	assert.Empty(t, tr.Lines())
}

func TestTrolley_Total(t *testing.T) {
	tr := domain.NewTrolley()
	_, _ = tr.AddSelection(product("0001", "TV", "12.01", 100), 3)
	_, _ = tr.Add(product("0002", "Radio", "0.99", 10))

	assert.Equal(t, "37.02", tr.Total().StringFixed(2))
}
