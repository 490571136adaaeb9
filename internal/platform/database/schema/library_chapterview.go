package schema

// LibraryChapterViewTable represents the 'library.chapterview' audit table
type LibraryChapterViewTable struct {
	Table     string
	ID        string
	ChapterID string
	TitleID   string
	UserID    string
	ViewedAt  string
}

// LibraryChapterView is the schema definition for library.chapterview
var LibraryChapterView = LibraryChapterViewTable{
	Table:     "library.chapterview",
	ID:        "id",
	ChapterID: "chapterid",
	TitleID:   "titleid",
	UserID:    "userid",
	ViewedAt:  "viewedat",
}
