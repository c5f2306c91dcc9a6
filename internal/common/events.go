package common

// UserCreatedEvent is the body published with UserCreatedKey after a signup.
type UserCreatedEvent struct {
	Email string
	Name  string
}
