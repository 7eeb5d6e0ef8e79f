package domain

// User is a read-only reference to a person owned by the external user
// service. The core never creates or updates users.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	LastName string `json:"last_name"`
}

// EmptyUser returns the zero user used when a task has no assignee.
func EmptyUser() User {
	return User{}
}

// IsEmpty reports whether the user is the empty placeholder.
func (u User) IsEmpty() bool {
	return u.ID == ""
}
