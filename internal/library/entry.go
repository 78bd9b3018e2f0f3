package library

import "time"

// Origin says where a library entry lives. It is decided once, when the
// entry is created or fetched, and carried on the entry itself — never
// re-inferred from the shape of an id.
type Origin string

const (
	// OriginServer - a custom record owned by the API's store.
	OriginServer Origin = "server"
	// OriginLocal - an external (Open Library) record tracked only in the
	// local cache file.
	OriginLocal Origin = "local"
)

// Entry is one book in the personal library, merged from either source.
type Entry struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	PublishYear *int     `json:"publishYear,omitempty"`
	CoverURL    *string  `json:"coverUrl,omitempty"`
	Status      string   `json:"status"`
	Origin      Origin   `json:"origin"`

	AddedDate     time.Time  `json:"addedDate"`
	UpdatedDate   *time.Time `json:"updatedDate,omitempty"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
}

// Stats summarizes a library snapshot.
type Stats struct {
	Total            int `json:"total"`
	WantToRead       int `json:"wantToRead"`
	CurrentlyReading int `json:"currentlyReading"`
	Read             int `json:"read"`
	Custom           int `json:"custom"`
}

// Snapshot is the merged "all books" view. Degraded is true when the
// server could not be reached and the custom records are missing, so the
// caller can tell an empty library from an outage.
type Snapshot struct {
	Entries  []Entry `json:"entries"`
	Degraded bool    `json:"degraded"`
}

func (s *Snapshot) Stats() Stats {
	stats := Stats{Total: len(s.Entries)}
	for _, e := range s.Entries {
		switch e.Status {
		case "want-to-read":
			stats.WantToRead++
		case "currently-reading":
			stats.CurrentlyReading++
		case "read":
			stats.Read++
		}
		if e.Origin == OriginServer {
			stats.Custom++
		}
	}
	return stats
}

func (s *Snapshot) ByStatus(status string) []Entry {
	var entries []Entry
	for _, e := range s.Entries {
		if e.Status == status {
			entries = append(entries, e)
		}
	}
	return entries
}
