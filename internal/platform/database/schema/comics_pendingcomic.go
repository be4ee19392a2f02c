package schema

// ComicsPendingComicTable represents the 'comics.pending_comic' table
type ComicsPendingComicTable struct {
	Table        string
	ID           string
	ModeratorID  string
	Name         string
	ArtistID     string
	Category     string
	Tag          string
	NumPages     string
	Finished     string
	HasThumbnail string
	Processed    string
	Approved     string
	CreatedAt    string
}

// ComicsPendingComic is the schema definition for comics.pending_comic
var ComicsPendingComic = ComicsPendingComicTable{
	Table:        "comics.pending_comic",
	ID:           "id",
	ModeratorID:  "moderator_id",
	Name:         "name",
	ArtistID:     "artist_id",
	Category:     "category",
	Tag:          "tag",
	NumPages:     "num_pages",
	Finished:     "finished",
	HasThumbnail: "has_thumbnail",
	Processed:    "processed",
	Approved:     "approved",
	CreatedAt:    "created_at",
}

func (t ComicsPendingComicTable) Columns() []string {
	return []string{
		t.ID, t.ModeratorID, t.Name, t.ArtistID, t.Category, t.Tag,
		t.NumPages, t.Finished, t.HasThumbnail, t.Processed, t.Approved, t.CreatedAt,
	}
}
