package feedback

import "time"

const TypeGeneral = "general"

// Feedback is a manager's rating of an employee. ManagerID is the author
// and is immutable after creation; ownership for update and delete follows
// authorship, not the subject.
type Feedback struct {
	ID           string
	EmployeeID   string
	ManagerID    string
	Rating       int
	Comments     string
	FeedbackType string
	IsPrivate    bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeName       *string
	EmployeeDepartment *string
	ManagerName        *string
}
