package utils

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func productIDs(n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("P%d", i+1)
	}
	return ids
}

func TestPaginate_ThirdPageOfTwentyFive(t *testing.T) {
	page, totalPages, effective := Paginate(productIDs(25), 3, 10)

	assert.Equal(t, []string{"P21", "P22", "P23", "P24", "P25"}, page)
	assert.Equal(t, 3, totalPages)
	assert.Equal(t, 3, effective)
}

func TestPaginate_Empty(t *testing.T) {
	page, totalPages, effective := Paginate([]string{}, 1, 10)

	assert.Empty(t, page)
	assert.NotNil(t, page)
	assert.Equal(t, 0, totalPages)
	assert.Equal(t, 1, effective)
}

func TestPaginate_ClampsOutOfRangePage(t *testing.T) {
	tests := []struct {
		name          string
		page          int
		wantEffective int
		wantFirst     string
	}{
		{name: "past last page", page: 7, wantEffective: 3, wantFirst: "P21"},
		{name: "zero page", page: 0, wantEffective: 1, wantFirst: "P1"},
		{name: "negative page", page: -4, wantEffective: 1, wantFirst: "P1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, totalPages, effective := Paginate(productIDs(25), tt.page, 10)

			assert.Equal(t, 3, totalPages)
			assert.Equal(t, tt.wantEffective, effective)
			assert.Equal(t, tt.wantFirst, page[0])
		})
	}
}

func TestPaginate_TotalPagesIsCeiling(t *testing.T) {
	for n := 0; n <= 31; n++ {
		for _, size := range []int{1, 3, 10} {
			_, totalPages, _ := Paginate(productIDs(n), 1, size)
			want := n / size
			if n%size != 0 {
				want++
			}
			assert.Equal(t, want, totalPages, "n=%d size=%d", n, size)
		}
	}
}

func TestPaginate_PagesConcatenateToOriginal(t *testing.T) {
	for _, n := range []int{1, 9, 10, 11, 25, 40} {
		ids := productIDs(n)
		_, totalPages, _ := Paginate(ids, 1, 10)

		var joined []string
		for p := 1; p <= totalPages; p++ {
			page, _, _ := Paginate(ids, p, 10)
			joined = append(joined, page...)
		}

		assert.Equal(t, ids, joined, "n=%d", n)
	}
}

func TestPaginate_DefaultPageSize(t *testing.T) {
	page, totalPages, _ := Paginate(productIDs(15), 1, 0)

	assert.Len(t, page, DefaultPageSize)
	assert.Equal(t, 2, totalPages)
}

func TestPaginate_DoesNotAliasInput(t *testing.T) {
	ids := productIDs(5)
	page, _, _ := Paginate(ids, 1, 10)
	page[0] = "changed"

	assert.Equal(t, "P1", ids[0])
}

func TestNewPagination(t *testing.T) {
	p := NewPagination(2, 10, 25)

	assert.Equal(t, 10, p.GetOffset())
	assert.Equal(t, 10, p.GetLimit())
	assert.True(t, p.HasNext())
}
