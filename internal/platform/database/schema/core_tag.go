package schema

// CoreTagTable represents the 'core.tag' table
type CoreTagTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	CreatedAt   string
}

// CoreTag is the schema definition for core.tag
var CoreTag = CoreTagTable{
	Table:       "core.tag",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	CreatedAt:   "createdat",
}
