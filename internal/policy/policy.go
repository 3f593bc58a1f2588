// Package policy holds the role- and ownership-based authorization rules.
// Everything here is a pure function over an AuthContext and a resource
// snapshot; existence checks and lookups belong to the services.
package policy

import (
	"errors"

	"github.com/classmeet/classmeet/internal/domain"
)

// ErrWrongPermissions reports an authenticated actor that is not authorized
// for the attempted action. Distinct from not-found: services check
// existence first, so a denial always refers to a real resource.
var ErrWrongPermissions = errors.New("policy: wrong permissions")

// CanCreateMeeting allows meeting creation for teachers only.
func CanCreateMeeting(actor domain.AuthContext) error {
	if actor.Role != domain.RoleTeacher {
		return ErrWrongPermissions
	}
	return nil
}

// CanReadMeeting allows the owner and the assigned student.
func CanReadMeeting(actor domain.AuthContext, m domain.Meeting) error {
	if actor.ID == m.OwnerID {
		return nil
	}
	if m.StudentID != "" && actor.ID == m.StudentID {
		return nil
	}
	return ErrWrongPermissions
}

// CanMutateMeeting allows update and delete for the owner only.
func CanMutateMeeting(actor domain.AuthContext, m domain.Meeting) error {
	if actor.ID != m.OwnerID {
		return ErrWrongPermissions
	}
	return nil
}

// CanMutateUser allows update and delete of a user record for that user only.
func CanMutateUser(actor domain.AuthContext, targetUserID string) error {
	if actor.ID != targetUserID {
		return ErrWrongPermissions
	}
	return nil
}

// VisibleMeetings filters a meeting list down to what the actor may see:
// teachers see meetings they own, students see meetings they are assigned
// to. Any other role sees nothing; listing fails closed, not with an error.
func VisibleMeetings(actor domain.AuthContext, meetings []domain.Meeting) []domain.Meeting {
	visible := make([]domain.Meeting, 0, len(meetings))
	switch actor.Role {
	case domain.RoleTeacher:
		for _, m := range meetings {
			if m.OwnerID == actor.ID {
				visible = append(visible, m)
			}
		}
	case domain.RoleStudent:
		for _, m := range meetings {
			if m.StudentID != "" && m.StudentID == actor.ID {
				visible = append(visible, m)
			}
		}
	}
	return visible
}
