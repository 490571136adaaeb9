package schema

// CoreTitleTagTable represents the 'core.titletag' join table
type CoreTitleTagTable struct {
	Table   string
	TitleID string
	TagID   string
}

// CoreTitleTag is the schema definition for core.titletag
var CoreTitleTag = CoreTitleTagTable{
	Table:   "core.titletag",
	TitleID: "titleid",
	TagID:   "tagid",
}
