// ABOUTME: Deterministic pagination of extracted article text
// ABOUTME: Splits plain text into fixed-capacity rune slices for resumable reading

package reading

// Capacity bounds for device-derived page sizes. Clients derive a capacity
// from viewport area; anything outside this range is clamped so page
// boundaries stay in a sane band across devices.
const (
	MinPageCapacity = 700
	MaxPageCapacity = 1600
)

// Paginate splits text into consecutive non-overlapping slices of exactly
// capacity runes; the last slice may be shorter. Empty text yields a single
// empty page, never an empty sequence, so a successfully extracted but empty
// article still has a page 0. A capacity below 1 is treated as the minimum
// capacity rather than an error.
//
// Paginate is a pure function of (text, capacity): identical inputs always
// produce identical page boundaries, which is what keeps a persisted page
// index meaningful across sessions.
func Paginate(text string, capacity int) []string {
	if capacity < 1 {
		capacity = MinPageCapacity
	}
	if text == "" {
		return []string{""}
	}

	runes := []rune(text)
	pages := make([]string, 0, (len(runes)+capacity-1)/capacity)
	for i := 0; i < len(runes); i += capacity {
		end := i + capacity
		if end > len(runes) {
			end = len(runes)
		}
		pages = append(pages, string(runes[i:end]))
	}
	return pages
}

// ClampCapacity bounds a device-derived capacity into
// [MinPageCapacity, MaxPageCapacity].
func ClampCapacity(capacity int) int {
	if capacity < MinPageCapacity {
		return MinPageCapacity
	}
	if capacity > MaxPageCapacity {
		return MaxPageCapacity
	}
	return capacity
}

// ClampPageIndex bounds a stored page index into [0, totalPages-1]. A stale
// index past the end (the text shrank on re-extraction) lands on the last
// page instead of being trusted verbatim.
func ClampPageIndex(index, totalPages int) int {
	if index < 0 {
		return 0
	}
	if totalPages > 0 && index >= totalPages {
		return totalPages - 1
	}
	return index
}
