package library

// Status tracks where a manga sits in the collection lifecycle.
type Status string

const (
	StatusWishlist  Status = "wishlist"
	StatusPreparing Status = "preparing"
	StatusCompleted Status = "completed"
)

// ValidStatus reports whether the value is a known status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusWishlist, StatusPreparing, StatusCompleted:
		return true
	default:
		return false
	}
}

// Manga is one tracked series.
type Manga struct {
	ID               int64
	Slug             string
	Title            string
	Status           Status
	PreparedChapters int
	CreatedAt        string
	UpdatedAt        string
}

// ChapterRecord is one prepared chapter archive in one language.
type ChapterRecord struct {
	ID          int64
	MangaID     int64
	Number      string
	Language    string
	ArchivePath string
	PageCount   int
	PreparedAt  string
}

// RunRecord is the persisted statistics of one alignment run.
type RunRecord struct {
	ID            int64
	RunID         string
	MangaID       int64
	ChapterNumber string
	TotalPages    int
	Matched       int
	OnlyA         int
	OnlyB         int
	AvgDistance   float64
	Threshold     int
	CreatedAt     string
}
