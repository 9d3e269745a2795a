package database

// Page holds normalized list pagination parameters.
type Page struct {
	Page  int
	Limit int
}

// NormalizePage clamps page to >= 1 and limit to [1, 100], defaulting to 10.
func NormalizePage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}
	return Page{Page: page, Limit: limit}
}

// Offset returns the SQL offset for the page.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}
