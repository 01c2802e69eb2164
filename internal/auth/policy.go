package auth

import "github.com/frahmantamala/employee-board/internal/core/user"

// CanModify reports whether u may edit or delete a resource written by res.
//
// The author employee id decides when present. Otherwise the stored
// author_id is compared with the employee id, and only rows carrying
// neither fall back to the author name. Empty and anonymous names never
// match.
func CanModify(u *user.User, res Authorship) bool {
	if u == nil {
		return false
	}
	if res.AuthorEmployeeID != nil {
		return *res.AuthorEmployeeID == u.EmployeeID
	}
	if res.AuthorID != "" {
		return res.AuthorID == u.EmployeeID
	}
	if res.AuthorName == "" || res.AuthorName == user.AnonymousName {
		return false
	}
	return res.AuthorName == u.Name
}

func IsAdmin(u *user.User) bool {
	return u != nil && u.IsAdmin
}

// ResolveAnonymity decides whether a new row is anonymous. Boards that
// are not anonymous never allow it; anonymous boards use requested, or
// fallback when the client sent nothing.
func ResolveAnonymity(boardAnonymous bool, requested *bool, fallback bool) bool {
	if !boardAnonymous {
		return false
	}
	if requested == nil {
		return fallback
	}
	return *requested
}

// AuthorshipFor is the authorship stored for a row u writes.
func AuthorshipFor(u *user.User, anonymous bool) Authorship {
	if anonymous {
		return Authorship{AuthorID: u.EmployeeID, AuthorName: user.AnonymousName}
	}
	employeeID := u.EmployeeID
	return Authorship{
		AuthorID:         u.EmployeeID,
		AuthorName:       u.Name,
		AuthorEmployeeID: &employeeID,
	}
}
