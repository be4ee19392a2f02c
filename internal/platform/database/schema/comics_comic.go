package schema

// ComicsComicTable represents the 'comics.comic' table
type ComicsComicTable struct {
	Table     string
	ID        string
	Name      string
	ArtistID  string
	Category  string
	Tag       string
	NumPages  string
	Finished  string
	CreatedAt string
	UpdatedAt string
}

// ComicsComic is the schema definition for comics.comic
var ComicsComic = ComicsComicTable{
	Table:     "comics.comic",
	ID:        "id",
	Name:      "name",
	ArtistID:  "artist_id",
	Category:  "category",
	Tag:       "tag",
	NumPages:  "num_pages",
	Finished:  "finished",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
}

func (t ComicsComicTable) Columns() []string {
	return []string{
		t.ID, t.Name, t.ArtistID, t.Category, t.Tag,
		t.NumPages, t.Finished, t.CreatedAt, t.UpdatedAt,
	}
}
