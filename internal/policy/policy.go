// Package policy holds the ownership and team predicates shared by every
// resource. Callers load the entities; the predicates never touch storage.
package policy

import (
	"github.com/yukikurage/feedback-management-api/internal/models"
)

// IsManagerOf reports whether employee is a direct report of manager.
func IsManagerOf(manager, employee *models.User) bool {
	return manager.IsManager() && employee.ReportsTo(manager.ID)
}

// SameTeam reports whether two distinct employees share a manager.
func SameTeam(a, b *models.User) bool {
	if a.ID == b.ID || a.ManagerID == nil || b.ManagerID == nil {
		return false
	}
	return *a.ManagerID == *b.ManagerID
}

// BelongsToTeam reports whether user is the manager identified by managerID
// or one of that manager's direct reports.
func BelongsToTeam(user *models.User, managerID uint64) bool {
	if user.IsManager() {
		return user.ID == managerID
	}
	return user.ReportsTo(managerID)
}

// CanViewFeedback allows the employee it was written for and its author.
func CanViewFeedback(user *models.User, feedback *models.Feedback) bool {
	if user.IsEmployee() {
		return feedback.EmployeeID == user.ID
	}
	return feedback.ManagerID == user.ID
}

// CanViewDocument allows the uploader, and the uploader's manager once the
// document is public.
func CanViewDocument(user *models.User, document *models.Document, uploader *models.User) bool {
	if user.IsEmployee() {
		return document.EmployeeID == user.ID
	}
	return document.IsPublic && uploader.ID == document.EmployeeID && IsManagerOf(user, uploader)
}

// CanViewAnnouncement allows the author and, while active, the author's reports.
func CanViewAnnouncement(user *models.User, announcement *models.Announcement) bool {
	if user.IsManager() {
		return announcement.ManagerID == user.ID
	}
	return announcement.IsActive && user.ReportsTo(announcement.ManagerID)
}

// CanAccessAssignment allows the owning manager and that manager's reports.
func CanAccessAssignment(user *models.User, assignment *models.Assignment) bool {
	return BelongsToTeam(user, assignment.ManagerID)
}

// CanViewSubmission allows the submitter and the manager who owns the assignment.
func CanViewSubmission(user *models.User, submission *models.Submission, assignment *models.Assignment) bool {
	if user.IsEmployee() {
		return submission.EmployeeID == user.ID
	}
	return assignment.ID == submission.AssignmentID && assignment.ManagerID == user.ID
}

// IsAuthor reports whether user wrote the resource identified by authorID.
func IsAuthor(user *models.User, authorID uint64) bool {
	return user.ID == authorID
}
