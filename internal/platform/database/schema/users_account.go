package schema

// UsersAccountTable represents the 'users.account' table
type UsersAccountTable struct {
	Table        string
	ID           string
	Email        string
	Handle       string
	PasswordHash string
	Role         string
	Status       string
	CreatedAt    string
	UpdatedAt    string
	DeletedAt    string
}

// UsersAccount is the schema definition for users.account
var UsersAccount = UsersAccountTable{
	Table:        "users.account",
	ID:           "id",
	Email:        "email",
	Handle:       "handle",
	PasswordHash: "passwordhash",
	Role:         "role",
	Status:       "status",
	CreatedAt:    "createdat",
	UpdatedAt:    "updatedat",
	DeletedAt:    "deletedat",
}

func (t UsersAccountTable) Columns() []string {
	return []string{
		t.ID, t.Email, t.Handle, t.PasswordHash, t.Role, t.Status,
		t.CreatedAt, t.UpdatedAt, t.DeletedAt,
	}
}
