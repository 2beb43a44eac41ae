package feedback

import "errors"

var (
	ErrFeedbackNotFound = errors.New("feedback not found")
	ErrEmployeeNotFound = errors.New("feedback employee not found")
	ErrNotAuthor        = errors.New("only the original author may modify this feedback")
	ErrOutsideScope     = errors.New("can only provide feedback to direct reports")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)
