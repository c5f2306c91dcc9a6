package userservice

func (u *User) IsAnonymous() bool {
	return u == nil || u == &AnonymousUser
}

// IsActive reports whether the account may still sign in.
func (u *User) IsActive() bool {
	return u.Status
}
