package schema

// ComicsArtistTable represents the 'comics.artist' table
type ComicsArtistTable struct {
	Table     string
	ID        string
	Name      string
	CreatedAt string
}

// ComicsArtist is the schema definition for comics.artist
var ComicsArtist = ComicsArtistTable{
	Table:     "comics.artist",
	ID:        "id",
	Name:      "name",
	CreatedAt: "created_at",
}

func (t ComicsArtistTable) Columns() []string {
	return []string{t.ID, t.Name, t.CreatedAt}
}
