package catalog

import "strings"

// DefaultPageSize is the number of items the sidebar shows per page.
const DefaultPageSize = 50

// Filter returns the items matching category and query, in catalog order.
// Query matching is a case-insensitive substring test against the name.
func Filter(items []Item, category, query string) []Item {
	lowerQuery := strings.ToLower(query)
	var result []Item
	for _, item := range items {
		if category != AllCategories && item.Category != category {
			continue
		}
		if lowerQuery != "" && !strings.Contains(strings.ToLower(item.Name), lowerQuery) {
			continue
		}
		result = append(result, item)
	}
	return result
}

// Page returns the pageIndex-th window of size pageSize. Pages outside the
// range of items are empty.
func Page(items []Item, pageIndex, pageSize int) []Item {
	if pageSize <= 0 || pageIndex < 0 {
		return nil
	}
	start := pageIndex * pageSize
	if start >= len(items) {
		return nil
	}
	end := start + pageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

// HasNextPage reports whether a page follows pageIndex.
func HasNextPage(pageIndex, pageSize, total int) bool {
	return (pageIndex+1)*pageSize < total
}

// HasPrevPage reports whether a page precedes pageIndex.
func HasPrevPage(pageIndex int) bool {
	return pageIndex > 0
}

// View is the sidebar's filter and pagination cursor. It is a value; every
// transition returns a new View.
type View struct {
	Category string `json:"category"`
	Query    string `json:"query"`
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
}

// NewView returns a view over all categories starting at the first page.
func NewView(pageSize int) View {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return View{Category: AllCategories, PageSize: pageSize}
}

// WithCategory selects a category. Changing it resets the page.
func (v View) WithCategory(category string) View {
	if category == "" {
		category = AllCategories
	}
	if category != v.Category {
		v.Category = category
		v.Page = 0
	}
	return v
}

// WithQuery sets the search text. Changing it resets the page.
func (v View) WithQuery(query string) View {
	if query != v.Query {
		v.Query = query
		v.Page = 0
	}
	return v
}

// NextPage advances when another page exists for total filtered items.
func (v View) NextPage(total int) View {
	if HasNextPage(v.Page, v.pageSize(), total) {
		v.Page++
	}
	return v
}

// PrevPage goes back one page when possible.
func (v View) PrevPage() View {
	if HasPrevPage(v.Page) {
		v.Page--
	}
	return v
}

func (v View) pageSize() int {
	if v.PageSize <= 0 {
		return DefaultPageSize
	}
	return v.PageSize
}

// Result is a view applied to a concrete item list.
type Result struct {
	Filtered []Item
	Visible  []Item
	Page     int
	HasNext  bool
	HasPrev  bool
}

// Total is the number of items matching the filter.
func (r Result) Total() int {
	return len(r.Filtered)
}

// Apply filters items and slices out the current page.
func (v View) Apply(items []Item) Result {
	filtered := Filter(items, v.Category, v.Query)
	size := v.pageSize()
	return Result{
		Filtered: filtered,
		Visible:  Page(filtered, v.Page, size),
		Page:     v.Page,
		HasNext:  HasNextPage(v.Page, size, len(filtered)),
		HasPrev:  HasPrevPage(v.Page),
	}
}

// Paginated reports whether the filtered set spans more than one page.
func (v View) Paginated(total int) bool {
	return total > v.pageSize()
}

// Range returns the 1-based first and last positions shown on the current
// page, or 0, 0 when nothing is visible.
func (v View) Range(total int) (first, last int) {
	size := v.pageSize()
	start := v.Page * size
	if start >= total {
		return 0, 0
	}
	end := start + size
	if end > total {
		end = total
	}
	return start + 1, end
}
