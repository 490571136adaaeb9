package schema

// LibraryReadingHistoryTable represents the 'library.readinghistory' table
type LibraryReadingHistoryTable struct {
	Table           string
	ID              string
	UserID          string
	ChapterID       string
	TitleID         string
	CurrentPage     string
	TotalPages      string
	ProgressPercent string
	IsComplete      string
	LastActivityAt  string
}

// LibraryReadingHistory is the schema definition for library.readinghistory
var LibraryReadingHistory = LibraryReadingHistoryTable{
	Table:           "library.readinghistory",
	ID:              "id",
	UserID:          "userid",
	ChapterID:       "chapterid",
	TitleID:         "titleid",
	CurrentPage:     "currentpage",
	TotalPages:      "totalpages",
	ProgressPercent: "progresspercent",
	IsComplete:      "iscomplete",
	LastActivityAt:  "lastactivityat",
}

func (t LibraryReadingHistoryTable) Columns() []string {
	return []string{
		t.ID, t.UserID, t.ChapterID, t.TitleID, t.CurrentPage, t.TotalPages,
		t.ProgressPercent, t.IsComplete, t.LastActivityAt,
	}
}
