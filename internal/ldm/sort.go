package ldm

import "sort"

// SortByStatus orders items by their Status string, keeping the original
// order within a status. "Active" sorts before "Non-Active".
func SortByStatus[T Record](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].StatusValue() < items[j].StatusValue()
	})
}

// FilterStatus returns the items whose status equals status. An empty status keeps everything.
func FilterStatus[T Record](items []T, status string) []T {
	if status == "" {
		return items
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		if item.StatusValue() == status {
			out = append(out, item)
		}
	}
	return out
}
