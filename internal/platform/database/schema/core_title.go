package schema

// CoreTitleTable represents the 'core.title' table
type CoreTitleTable struct {
	Table            string
	ID               string
	OwnerID          string
	Name             string
	Slug             string
	AltNames         string
	Description      string
	ThumbnailURL     string
	CoverURL         string
	LifecycleStatus  string
	ModerationStatus string
	ChapterCount     string
	ViewCount        string
	RatingAvg        string
	RatingCount      string
	BookmarkCount    string
	LastChapterAt    string
	CreatedAt        string
	UpdatedAt        string
	DeletedAt        string
}

// CoreTitle is the schema definition for core.title
var CoreTitle = CoreTitleTable{
	Table:            "core.title",
	ID:               "id",
	OwnerID:          "ownerid",
	Name:             "name",
	Slug:             "slug",
	AltNames:         "altnames",
	Description:      "description",
	ThumbnailURL:     "thumbnailurl",
	CoverURL:         "coverurl",
	LifecycleStatus:  "lifecyclestatus",
	ModerationStatus: "moderationstatus",
	ChapterCount:     "chaptercount",
	ViewCount:        "viewcount",
	RatingAvg:        "ratingavg",
	RatingCount:      "ratingcount",
	BookmarkCount:    "bookmarkcount",
	LastChapterAt:    "lastchapterat",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
	DeletedAt:        "deletedat",
}

func (t CoreTitleTable) Columns() []string {
	return []string{
		t.ID, t.OwnerID, t.Name, t.Slug, t.AltNames, t.Description,
		t.ThumbnailURL, t.CoverURL, t.LifecycleStatus, t.ModerationStatus,
		t.ChapterCount, t.ViewCount, t.RatingAvg, t.RatingCount,
		t.BookmarkCount, t.LastChapterAt, t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
