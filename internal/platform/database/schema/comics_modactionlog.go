package schema

// ComicsModActionLogTable represents the 'comics.mod_action_log' table
type ComicsModActionLogTable struct {
	Table     string
	ID        string
	ComicName string
	Moderator string
	Action    string
	CreatedAt string
}

// ComicsModActionLog is the schema definition for comics.mod_action_log
var ComicsModActionLog = ComicsModActionLogTable{
	Table:     "comics.mod_action_log",
	ID:        "id",
	ComicName: "comic_name",
	Moderator: "moderator",
	Action:    "action",
	CreatedAt: "created_at",
}
