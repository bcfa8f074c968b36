package domain

// Role identifiers from the user_roles reference table.
const (
	RoleAdmin            = 1
	RoleFinancialManager = 2
	RoleEmployee         = 3
)

// User is an application account. ID 0 means not yet persisted.
type User struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	RoleID    int    `json:"roleId"`
}

// UserFields maps lookup keys accepted from clients to app_users columns.
// The password column is deliberately not searchable.
var UserFields = FieldSet{
	"id":        "user_id",
	"username":  "username",
	"firstName": "first_name",
	"lastName":  "last_name",
	"email":     "email",
	"roleId":    "user_role_id",
}
