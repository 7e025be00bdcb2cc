package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoriesName(t *testing.T) {
	cats := Categories{1: "Science", 2: "Art"}
	assert.Equal(t, "Science", cats.Name(1))
	assert.Equal(t, "", cats.Name(99))

	var empty Categories
	assert.Equal(t, "", empty.Name(1))
}

func TestCategoriesIDsSorted(t *testing.T) {
	cats := Categories{6: "Sports", 1: "Science", 3: "Geography"}
	assert.Equal(t, []int{1, 3, 6}, cats.IDs())
}

func TestCategoriesCloneIsIndependent(t *testing.T) {
	cats := Categories{1: "Science"}
	clone := cats.Clone()
	clone[2] = "Art"
	assert.Len(t, cats, 1)
	assert.Len(t, clone, 2)
}

func TestFilterVariants(t *testing.T) {
	assert.True(t, AllQuestions().Paginated())
	assert.False(t, ByCategory(3).Paginated())
	assert.False(t, BySearch("golf").Paginated())

	assert.Equal(t, "all", AllQuestions().String())
	assert.Equal(t, "category:3", ByCategory(3).String())
	assert.Equal(t, `search:"golf"`, BySearch("golf").String())
	assert.Equal(t, ByCategory(3), ByCategory(3))
	assert.NotEqual(t, ByCategory(3), ByCategory(4))
}
