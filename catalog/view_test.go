package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems(n int) []Item {
	items := make([]Item, n)
	for i := range items {
		cat := "Major"
		if i%3 == 0 {
			cat = "Search"
		}
		items[i] = Item{
			ID:       fmt.Sprintf("item-%03d", i),
			Name:     fmt.Sprintf("Item %d", i),
			URL:      fmt.Sprintf("https://item%d.example/", i),
			Category: cat,
		}
	}
	return items
}

func ids(items []Item) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestFilterSearchIsCaseInsensitive(t *testing.T) {
	items := []Item{
		{ID: "claude", Name: "Claude", Category: "Major"},
		{ID: "chatgpt", Name: "ChatGPT", Category: "Major"},
	}

	assert.Equal(t, []string{"claude"}, ids(Filter(items, AllCategories, "claude")))
	assert.Equal(t, []string{"claude"}, ids(Filter(items, AllCategories, "CLAUDE")))
	assert.Equal(t, []string{"claude", "chatgpt"}, ids(Filter(items, AllCategories, "")))
	assert.Empty(t, Filter(items, AllCategories, "gemini"))
}

func TestFilterCategoryAndQuery(t *testing.T) {
	items := []Item{
		{ID: "perplexity", Name: "Perplexity", Category: "Search"},
		{ID: "claude", Name: "Claude", Category: "Major"},
		{ID: "phind", Name: "Phind", Category: "Search"},
	}

	assert.Equal(t, []string{"perplexity", "phind"}, ids(Filter(items, "Search", "")))
	assert.Equal(t, []string{"phind"}, ids(Filter(items, "Search", "hin")))
	assert.Empty(t, Filter(items, "Major", "phind"))
	assert.Empty(t, Filter(items, "Unknown", ""))
}

func TestFilterIsIdempotentAndStable(t *testing.T) {
	items := sampleItems(120)
	for _, tc := range []struct{ category, query string }{
		{AllCategories, ""},
		{"Search", ""},
		{AllCategories, "1"},
		{"Major", "item 1"},
	} {
		once := Filter(items, tc.category, tc.query)
		twice := Filter(once, tc.category, tc.query)
		assert.Equal(t, ids(once), ids(twice), "category=%s query=%s", tc.category, tc.query)

		// catalog order is preserved
		last := -1
		for _, item := range once {
			var idx int
			_, err := fmt.Sscanf(item.ID, "item-%03d", &idx)
			require.NoError(t, err)
			assert.Greater(t, idx, last)
			last = idx
		}
	}
}

func TestPagesReconstructItems(t *testing.T) {
	for _, n := range []int{0, 1, 49, 50, 51, 100, 101, 173} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			items := sampleItems(n)
			var rebuilt []Item
			pages := (n + DefaultPageSize - 1) / DefaultPageSize
			for p := 0; p < pages; p++ {
				page := Page(items, p, DefaultPageSize)
				assert.NotEmpty(t, page)
				rebuilt = append(rebuilt, page...)
			}
			assert.Equal(t, ids(items), ids(rebuilt))
			assert.Empty(t, Page(items, pages, DefaultPageSize))
		})
	}
}

func TestPageBounds(t *testing.T) {
	items := sampleItems(120)
	assert.Len(t, Page(items, 2, 50), 20)
	assert.Empty(t, Page(items, -1, 50))
	assert.Empty(t, Page(items, 0, 0))

	assert.True(t, HasNextPage(0, 50, 120))
	assert.True(t, HasNextPage(1, 50, 120))
	assert.False(t, HasNextPage(2, 50, 120))
	assert.False(t, HasNextPage(0, 50, 50))
	assert.False(t, HasPrevPage(0))
	assert.True(t, HasPrevPage(1))
}

func TestViewTransitions(t *testing.T) {
	items := sampleItems(120)
	v := NewView(0)
	assert.Equal(t, AllCategories, v.Category)
	assert.Equal(t, DefaultPageSize, v.PageSize)

	t.Run("advance stops at last page", func(t *testing.T) {
		w := v.NextPage(len(items)).NextPage(len(items)).NextPage(len(items))
		assert.Equal(t, 2, w.Page)
	})

	t.Run("retreat stops at first page", func(t *testing.T) {
		w := v.NextPage(len(items)).PrevPage().PrevPage()
		assert.Equal(t, 0, w.Page)
	})

	t.Run("query change resets page", func(t *testing.T) {
		w := v.NextPage(len(items)).WithQuery("item")
		assert.Equal(t, 0, w.Page)
		assert.Equal(t, "item", w.Query)
	})

	t.Run("same query keeps page", func(t *testing.T) {
		w := v.WithQuery("item").NextPage(len(items)).WithQuery("item")
		assert.Equal(t, 1, w.Page)
	})

	t.Run("category change resets page", func(t *testing.T) {
		w := v.NextPage(len(items)).WithCategory("Search")
		assert.Equal(t, 0, w.Page)
		assert.Equal(t, "Search", w.Category)
		assert.Equal(t, AllCategories, w.WithCategory("").Category)
	})
}

func TestViewApply(t *testing.T) {
	items := sampleItems(120)
	v := NewView(DefaultPageSize).NextPage(len(items))

	res := v.Apply(items)
	assert.Equal(t, 120, res.Total())
	assert.Len(t, res.Visible, 50)
	assert.Equal(t, "item-050", res.Visible[0].ID)
	assert.True(t, res.HasNext)
	assert.True(t, res.HasPrev)

	first, last := v.Range(res.Total())
	assert.Equal(t, 51, first)
	assert.Equal(t, 100, last)
	assert.True(t, v.Paginated(res.Total()))

	empty := NewView(DefaultPageSize).WithQuery("nothing matches").Apply(items)
	assert.Zero(t, empty.Total())
	assert.Empty(t, empty.Visible)
	assert.False(t, empty.HasNext)
	first, last = NewView(DefaultPageSize).Range(0)
	assert.Zero(t, first)
	assert.Zero(t, last)
}
