package model

// Role is the capability tier derived from an identity. Roles form a
// ceiling: admin subsumes contributor, contributor subsumes user.
type Role int

const (
	// RoleAnonymous is an unauthenticated caller.
	RoleAnonymous Role = iota
	// RoleUser is any authenticated identity without extra grants.
	RoleUser
	// RoleContributor may directly edit dictionary entries.
	RoleContributor
	// RoleAdmin may verify, delete, moderate and grant roles.
	RoleAdmin
)

// String returns the role name used in APIs and logs.
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleContributor:
		return "contributor"
	case RoleUser:
		return "user"
	default:
		return "anonymous"
	}
}

// AtLeast reports whether the role meets the given minimum tier.
func (r Role) AtLeast(min Role) bool {
	return r >= min
}

// RoleOf derives the role of an identity. A nil user is anonymous.
// The result is computed per call and never cached.
func RoleOf(user *User) Role {
	switch {
	case user == nil:
		return RoleAnonymous
	case user.IsAdmin:
		return RoleAdmin
	case user.IsContributor:
		return RoleContributor
	default:
		return RoleUser
	}
}
