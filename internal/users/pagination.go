package users

import "strconv"

// PageNumbers returns the page links shown around page: its neighbours and
// itself, dropping anything outside [1, totalPages].
func PageNumbers(page, totalPages int) []int {
	numbers := make([]int, 0, 3)
	for p := page - 1; p <= page+1; p++ {
		if p > 0 && p <= totalPages {
			numbers = append(numbers, p)
		}
	}
	return numbers
}

// ClampPage parses a page query value. Anything unparsable or below 1 is page 1.
func ClampPage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// HasPrevious reports whether a Previous link applies to page.
func HasPrevious(page int) bool {
	return page > 1
}

// HasNext reports whether a Next link applies to page.
func HasNext(page, totalPages int) bool {
	return page < totalPages
}
