package goal

import "errors"

var (
	ErrGoalNotFound     = errors.New("goal not found")
	ErrEmployeeNotFound = errors.New("goal employee not found")
	ErrNoFieldsToUpdate = errors.New("no fields to update")
)
