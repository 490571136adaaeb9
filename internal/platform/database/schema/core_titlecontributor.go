package schema

// CoreTitleContributorTable represents the 'core.titlecontributor' join table
type CoreTitleContributorTable struct {
	Table         string
	TitleID       string
	ContributorID string
	Credit        string
}

// CoreTitleContributor is the schema definition for core.titlecontributor
var CoreTitleContributor = CoreTitleContributorTable{
	Table:         "core.titlecontributor",
	TitleID:       "titleid",
	ContributorID: "contributorid",
	Credit:        "credit",
}
