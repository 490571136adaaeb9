package schema

// CoreChapterTable represents the 'core.chapter' table
type CoreChapterTable struct {
	Table         string
	ID            string
	TitleID       string
	OwnerID       string
	Name          string
	Slug          string
	Ordinal       string
	Pages         string
	ImageCount    string
	ViewCount     string
	PublishStatus string
	PublishedAt   string
	CreatedAt     string
	UpdatedAt     string
	DeletedAt     string
}

// CoreChapter is the schema definition for core.chapter
var CoreChapter = CoreChapterTable{
	Table:         "core.chapter",
	ID:            "id",
	TitleID:       "titleid",
	OwnerID:       "ownerid",
	Name:          "name",
	Slug:          "slug",
	Ordinal:       "ordinal",
	Pages:         "pages",
	ImageCount:    "imagecount",
	ViewCount:     "viewcount",
	PublishStatus: "publishstatus",
	PublishedAt:   "publishedat",
	CreatedAt:     "createdat",
	UpdatedAt:     "updatedat",
	DeletedAt:     "deletedat",
}

func (t CoreChapterTable) Columns() []string {
	return []string{
		t.ID, t.TitleID, t.OwnerID, t.Name, t.Slug, t.Ordinal, t.Pages,
		t.ImageCount, t.ViewCount, t.PublishStatus, t.PublishedAt,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
