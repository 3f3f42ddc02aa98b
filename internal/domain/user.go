package domain

// User is a row from the external identity directory: the core reads it for
// notification addressing and role resolution, never writes it.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
