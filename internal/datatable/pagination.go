package datatable

// PageCount returns the number of pages of the filtered rows.
func (v *View[T, K]) PageCount() int {
	return (len(v.rows) + v.pageSize - 1) / v.pageSize
}

// PageIndex returns the current zero-based page.
func (v *View[T, K]) PageIndex() int { return v.pageIndex }

// PageSize returns the rows per page.
func (v *View[T, K]) PageSize() int { return v.pageSize }

// SetPage moves to page index, clamped to the existing pages.
func (v *View[T, K]) SetPage(index int) {
	v.pageIndex = index
	v.clampPage()
	v.notify(ChangePage)
}

// SetPageSize changes the rows per page and moves to the page that
// holds the current top row.
func (v *View[T, K]) SetPageSize(n int) error {
	if n < 1 {
		return ErrInvalidPageSize
	}
	top := v.pageIndex * v.pageSize
	v.pageSize = n
	v.pageIndex = top / n
	v.clampPage()
	v.notify(ChangePage)
	return nil
}

func (v *View[T, K]) clampPage() {
	last := v.PageCount() - 1
	if v.pageIndex > last {
		v.pageIndex = last
	}
	if v.pageIndex < 0 {
		v.pageIndex = 0
	}
}

// Page returns the rows of the current page.
func (v *View[T, K]) Page() Page[T] {
	start := v.pageIndex * v.pageSize
	end := min(start+v.pageSize, len(v.rows))
	if start > end {
		start = end
	}
	return Page[T]{
		Rows:  v.rows[start:end:end],
		Index: v.pageIndex,
		Size:  v.pageSize,
		Count: v.PageCount(),
		Total: len(v.rows),
	}
}
