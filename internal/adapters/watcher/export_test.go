package watcher

// BufferedEvents returns the number of events waiting to be read from w.
func BufferedEvents(w *Watcher) int {
	return len(w.events)
}
