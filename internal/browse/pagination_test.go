package browse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageNumbers(t *testing.T) {
	cases := []struct {
		total, size int
		want        []int
	}{
		{0, 10, nil},
		{-5, 10, nil},
		{1, 10, []int{1}},
		{10, 10, []int{1}},
		{11, 10, []int{1, 2}},
		{23, 10, []int{1, 2, 3}},
		{30, 10, []int{1, 2, 3}},
		{7, 3, []int{1, 2, 3}},
		{23, 0, []int{1, 2, 3}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PageNumbers(tc.total, tc.size), "total=%d size=%d", tc.total, tc.size)
	}
}

func TestPageNumbersCountMatchesCeiling(t *testing.T) {
	for total := 0; total <= 250; total++ {
		pages := PageNumbers(total, 10)
		assert.Len(t, pages, (total+9)/10)
		for i, p := range pages {
			assert.Equal(t, i+1, p)
		}
	}
}
