package user

import "time"

// User is a directory entry of the time tracker backend.
type User struct {
	Id          string
	Email       string
	FirstName   string
	LastName    string
	DateOfBirth string
	IsAdmin     bool
	CreatedAt   time.Time `hash:"ignore"`
	UpdatedAt   time.Time `hash:"ignore"`
}

// ById indexes users by their id.
func ById(users []User) map[string]User {
	byId := make(map[string]User, len(users))
	for _, u := range users {
		byId[u.Id] = u
	}
	return byId
}
