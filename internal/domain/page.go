package domain

// Page is an optional offset/limit slice for listing operations. A nil
// *Page means "return everything".
type Page struct {
	From int64 // zero-based row offset
	Size int64 // page length, >= 1
}

// PageOf builds a Page when both parameters are present; callers pass the
// result straight to a repository.
func PageOf(from, size *int64) *Page {
	if from == nil || size == nil {
		return nil
	}
	return &Page{From: *from, Size: *size}
}
