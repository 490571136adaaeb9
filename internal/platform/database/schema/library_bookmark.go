package schema

// LibraryBookmarkTable represents the 'library.bookmark' table
type LibraryBookmarkTable struct {
	Table     string
	ID        string
	UserID    string
	TitleID   string
	CreatedAt string
}

// LibraryBookmark is the schema definition for library.bookmark
var LibraryBookmark = LibraryBookmarkTable{
	Table:     "library.bookmark",
	ID:        "id",
	UserID:    "userid",
	TitleID:   "titleid",
	CreatedAt: "createdat",
}
