package domain

import "sort"

func sortByPosition[T any](items []T, pos func(T) int) {
	sort.SliceStable(items, func(i, j int) bool { return pos(items[i]) < pos(items[j]) })
}

// renumber rewrites positions to 0..n-1 following slice order.
func renumber[T any](items []T, set func(*T, int)) {
	for i := range items {
		set(&items[i], i)
	}
}

// moveItem relocates items[from] to index to, clamping to bounds.
func moveItem[T any](items []T, from, to int) []T {
	if to < 0 {
		to = 0
	}
	if to >= len(items) {
		to = len(items) - 1
	}
	if from == to {
		return items
	}
	item := items[from]
	items = append(items[:from], items[from+1:]...)
	items = append(items[:to], append([]T{item}, items[to:]...)...)
	return items
}

func removeAt[T any](items []T, idx int) []T {
	return append(items[:idx], items[idx+1:]...)
}

func insertAt[T any](items []T, idx int, item T) []T {
	if idx < 0 || idx > len(items) {
		idx = len(items)
	}
	return append(items[:idx], append([]T{item}, items[idx:]...)...)
}

func indexWhere[T any](items []T, match func(T) bool) int {
	for i, item := range items {
		if match(item) {
			return i
		}
	}
	return -1
}
