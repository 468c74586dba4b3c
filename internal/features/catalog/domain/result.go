package domain

// Result is a browse response: the visible subset plus counts for the
// "Showing N of M crafts" display.
type Result struct {
	// Total is the size of the full catalog.
	Total int `json:"total"`
	// Count is the number of visible items after filtering.
	Count int `json:"count"`
	// Items is the filtered, sorted subset.
	Items []Item `json:"items"`
}
