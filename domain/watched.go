package domain

// WatchedList is an ordered child collection that remembers its load-time snapshot
// so a repository can persist only what changed.
type WatchedList[K comparable, T any] struct {
	key     func(T) K
	items   []T
	initial map[K]T
	added   map[K]T
	removed map[K]T
}

func NewWatchedList[K comparable, T any](key func(T) K, initial []T) *WatchedList[K, T] {
	w := &WatchedList[K, T]{
		key:     key,
		items:   make([]T, 0, len(initial)),
		initial: make(map[K]T, len(initial)),
		added:   make(map[K]T),
		removed: make(map[K]T),
	}
	for _, item := range initial {
		k := key(item)
		if _, dup := w.initial[k]; dup {
			continue
		}
		w.initial[k] = item
		w.items = append(w.items, item)
	}
	return w
}

func (w *WatchedList[K, T]) Items() []T {
	out := make([]T, len(w.items))
	copy(out, w.items)
	return out
}

func (w *WatchedList[K, T]) Len() int { return len(w.items) }

func (w *WatchedList[K, T]) Exists(item T) bool {
	return w.indexOf(w.key(item)) >= 0
}

// Add appends item. Re-adding an item removed since load restores it without marking it new.
func (w *WatchedList[K, T]) Add(item T) bool {
	k := w.key(item)
	if w.indexOf(k) >= 0 {
		return false
	}
	if _, wasRemoved := w.removed[k]; wasRemoved {
		delete(w.removed, k)
	} else if _, wasInitial := w.initial[k]; !wasInitial {
		w.added[k] = item
	}
	w.items = append(w.items, item)
	return true
}

// Remove drops item. Removing an item added since load forgets it entirely.
func (w *WatchedList[K, T]) Remove(item T) bool {
	k := w.key(item)
	idx := w.indexOf(k)
	if idx < 0 {
		return false
	}
	w.items = append(w.items[:idx], w.items[idx+1:]...)
	if _, wasAdded := w.added[k]; wasAdded {
		delete(w.added, k)
	} else if original, wasInitial := w.initial[k]; wasInitial {
		w.removed[k] = original
	}
	return true
}

// NewItems lists items present now but absent at load, in current order.
func (w *WatchedList[K, T]) NewItems() []T {
	var out []T
	for _, item := range w.items {
		if _, ok := w.added[w.key(item)]; ok {
			out = append(out, item)
		}
	}
	return out
}

// RemovedItems lists items present at load but absent now.
func (w *WatchedList[K, T]) RemovedItems() []T {
	out := make([]T, 0, len(w.removed))
	for _, item := range w.removed {
		out = append(out, item)
	}
	return out
}

func (w *WatchedList[K, T]) HasChanges() bool {
	return len(w.added) > 0 || len(w.removed) > 0
}

// Commit makes the current items the new snapshot. Repositories call it after a successful save.
func (w *WatchedList[K, T]) Commit() {
	w.initial = make(map[K]T, len(w.items))
	for _, item := range w.items {
		w.initial[w.key(item)] = item
	}
	w.added = make(map[K]T)
	w.removed = make(map[K]T)
}

func (w *WatchedList[K, T]) indexOf(k K) int {
	for i, item := range w.items {
		if w.key(item) == k {
			return i
		}
	}
	return -1
}
