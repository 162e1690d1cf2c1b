package post

type (
	// Aggregate is the one-per-username posts document. Images holds opaque
	// stored file names in upload order.
	Aggregate struct {
		Username string
		Images   []string
	}
	Aggregates []*Aggregate

	FeedEntry struct {
		Username string
		Image    string
	}
	Feed []FeedEntry
)
