package budget

import "errors"

var (
	ErrBudgetNotFound = errors.New("budget not found")
	ErrGoalNotFound   = errors.New("goal not found")
	ErrInvalidScope   = errors.New("scope must be INCLUSIVE or EXCLUSIVE")
	ErrInvalidType    = errors.New("budget type must be Savings or Expense")
	ErrInvalidPeriod  = errors.New("period must be daily, weekly, monthly or yearly")
)
