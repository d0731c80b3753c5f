package storage

import "time"

// Slot is a single named duration record. It satisfies the simulation's
// best-time store.
type Slot struct {
	store *Store
	name  string
}

// Slot returns the named record.
func (s *Store) Slot(name string) *Slot {
	return &Slot{store: s, name: name}
}

// Load reads the record.
func (sl *Slot) Load() (time.Duration, bool, error) {
	return sl.store.BestTime(sl.name)
}

// Save writes the record and returns the value it holds afterwards.
func (sl *Slot) Save(d time.Duration) (time.Duration, error) {
	return sl.store.SetBestTime(sl.name, d)
}
