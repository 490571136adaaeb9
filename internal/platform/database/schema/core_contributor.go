package schema

// CoreContributorTable represents the 'core.contributor' table
type CoreContributorTable struct {
	Table       string
	ID          string
	Name        string
	Slug        string
	Description string
	CreatedAt   string
}

// CoreContributor is the schema definition for core.contributor
var CoreContributor = CoreContributorTable{
	Table:       "core.contributor",
	ID:          "id",
	Name:        "name",
	Slug:        "slug",
	Description: "description",
	CreatedAt:   "createdat",
}
