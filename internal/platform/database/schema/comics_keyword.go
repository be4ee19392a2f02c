package schema

// ComicsComicKeywordTable represents the 'comics.comic_keyword' association table
type ComicsComicKeywordTable struct {
	Table   string
	ComicID string
	Keyword string
}

// ComicsComicKeyword is the schema definition for comics.comic_keyword
var ComicsComicKeyword = ComicsComicKeywordTable{
	Table:   "comics.comic_keyword",
	ComicID: "comic_id",
	Keyword: "keyword",
}

// ComicsPendingKeywordTable represents the 'comics.pending_comic_keyword' association table
type ComicsPendingKeywordTable struct {
	Table     string
	PendingID string
	Keyword   string
}

// ComicsPendingKeyword is the schema definition for comics.pending_comic_keyword
var ComicsPendingKeyword = ComicsPendingKeywordTable{
	Table:     "comics.pending_comic_keyword",
	PendingID: "pending_id",
	Keyword:   "keyword",
}
