// Package policy is the single place where role and ownership checks live.
// Every handler asks Allow instead of repeating the comparison inline, so
// the rules below hold uniformly across the API.
//
// Some rules look lopsided on purpose; they are the platform's actual
// behavior and changing one of them is an API change, not a refactor:
//
//   - creating a lesson checks the caller's role only, never ownership of
//     the target course, so any teacher may attach a lesson to any course;
//   - lesson read/update/delete authorize against the lesson's own owner
//     (its creator), not the course's current owner;
//   - enroll requires the role to be exactly learner, so admins and
//     teachers cannot enroll themselves.
package policy

import "learnhub/backend/models"

type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionEnroll Action = "enroll"
	ActionRoster Action = "roster"
)

type Kind string

const (
	KindAccount Kind = "account"
	KindCourse  Kind = "course"
	KindLesson  Kind = "lesson"
)

// Ref identifies a resource by kind and owning account. For an account the
// owner is the account itself.
type Ref struct {
	Kind  Kind
	Owner uint
}

func Account(id uint) Ref       { return Ref{Kind: KindAccount, Owner: id} }
func Course(ownerID uint) Ref   { return Ref{Kind: KindCourse, Owner: ownerID} }
func Lesson(creatorID uint) Ref { return Ref{Kind: KindLesson, Owner: creatorID} }

// Allow decides whether caller may perform action on the referenced
// resource. A nil caller (no session, no token) is always denied; public
// reads such as the catalog never consult Allow.
func Allow(caller *models.User, action Action, ref Ref) bool {
	if caller == nil {
		return false
	}
	admin := caller.Role == models.RoleAdmin

	switch ref.Kind {
	case KindAccount:
		if action == ActionCreate {
			return admin
		}
		return admin || caller.ID == ref.Owner

	case KindCourse:
		switch action {
		case ActionCreate:
			// any authenticated account may create a course
			return true
		case ActionEnroll:
			return caller.Role == models.RoleLearner
		case ActionRead, ActionUpdate, ActionDelete, ActionRoster:
			return admin || caller.ID == ref.Owner
		}

	case KindLesson:
		switch action {
		case ActionCreate:
			return admin || caller.Role == models.RoleTeacher
		case ActionRead, ActionUpdate, ActionDelete:
			return admin || caller.ID == ref.Owner
		}
	}
	return false
}

// CanSetRole reports whether caller may change an account's role. A role
// field sent by anyone else is dropped, not rejected.
func CanSetRole(caller *models.User) bool {
	return caller != nil && caller.Role == models.RoleAdmin
}

// CanSetCourseOwner reports whether caller may create a course on behalf of
// another account.
func CanSetCourseOwner(caller *models.User) bool {
	return caller != nil && caller.Role == models.RoleAdmin
}

// CanSeeUnpublished reports whether caller sees unpublished lessons of a
// course in the catalog view.
func CanSeeUnpublished(caller *models.User, courseOwnerID uint) bool {
	if caller == nil {
		return false
	}
	return caller.Role == models.RoleAdmin || caller.ID == courseOwnerID
}

// Cascades records, per deleted entity, which dependent kinds are removed
// with it. Deleting an account takes its courses along; lessons it created
// and its rows in other courses' student lists survive. Course and lesson
// deletion remove only the record itself.
var Cascades = map[Kind][]Kind{
	KindAccount: {KindCourse},
	KindCourse:  {},
	KindLesson:  {},
}
