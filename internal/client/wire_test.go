package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triviabrowse/internal/domain"
)

func TestFlexInt(t *testing.T) {
	cases := map[string]int{
		`3`:     3,
		`"7"`:   7,
		`" 2 "`: 2,
		`null`:  0,
		`""`:    0,
		`4.0`:   4,
	}
	for in, want := range cases {
		var n flexInt
		require.NoError(t, json.Unmarshal([]byte(in), &n), in)
		assert.Equal(t, want, int(n), in)
	}

	var n flexInt
	assert.Error(t, json.Unmarshal([]byte(`"science"`), &n))
	assert.Error(t, json.Unmarshal([]byte(`true`), &n))
}

func TestDisplayCategory(t *testing.T) {
	label := func(raw string) *string { return displayCategory(json.RawMessage(raw)) }

	assert.Nil(t, label(""))
	assert.Nil(t, label("null"))
	assert.Equal(t, "Science", *label(`"Science"`))
	assert.Equal(t, "3", *label(`3`))
	assert.Equal(t, "Art", *label(`{"id": 2, "type": "Art"}`))
	assert.Equal(t, "Sports", *label(`{"name": "Sports"}`))
	assert.Equal(t, `{"id":2}`, *label(`{ "id": 2 }`))
}

func TestToPage(t *testing.T) {
	var w listWire
	require.NoError(t, json.Unmarshal([]byte(`{
		"questions": [{"id": "12", "question": "q", "answer": "a", "category": 2, "difficulty": "5"}],
		"total_questions": -4,
		"categories": {"2": "Art", "x": "junk"},
		"current_categories": "Art"
	}`), &w))

	page := w.toPage(true)
	assert.Equal(t, []domain.Question{{ID: 12, Question: "q", Answer: "a", Category: 2, Difficulty: 5}}, page.Questions)
	assert.Equal(t, 0, page.TotalQuestions)
	assert.Equal(t, domain.Categories{2: "Art"}, page.Categories)
	require.NotNil(t, page.CurrentCategory)
	assert.Equal(t, "Art", *page.CurrentCategory)

	assert.Nil(t, w.toPage(false).Categories)
}

func TestValidateRequiresListFields(t *testing.T) {
	decode := func(body string) listWire {
		var w listWire
		require.NoError(t, json.Unmarshal([]byte(body), &w))
		return w
	}

	assert.NoError(t, decode(`{"questions":[],"total_questions":0}`).validate())
	assert.NoError(t, decode(`{"success":true,"questions":[],"total_questions":"4"}`).validate())

	assert.Error(t, decode(`null`).validate())
	assert.Error(t, decode(`{}`).validate())
	assert.Error(t, decode(`{"questions":[]}`).validate())
	assert.Error(t, decode(`{"total_questions":2}`).validate())
	assert.Error(t, decode(`{"success":false,"questions":[],"total_questions":0}`).validate())
}

func TestToPageEmptyList(t *testing.T) {
	var w listWire
	require.NoError(t, json.Unmarshal([]byte(`{"questions":[],"total_questions":0}`), &w))
	page := w.toPage(true)
	assert.NotNil(t, page.Questions)
	assert.Empty(t, page.Questions)
	assert.Equal(t, 0, page.TotalQuestions)
	assert.Empty(t, page.Categories)
	assert.Nil(t, page.CurrentCategory)
}
