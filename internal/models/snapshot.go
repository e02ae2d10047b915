package models

// Snapshot is the durable subset of a session's store state. It is what
// the persistence layer writes after cart, favorites, or user changes and
// what hydrates a store on first access. UI state is never persisted.
type Snapshot struct {
	Cart      map[string]int  `json:"cart"`
	Favorites map[string]bool `json:"favorites"`
	User      *Session        `json:"user"`
}
