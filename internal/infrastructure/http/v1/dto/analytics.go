// Package dto defines request/response shapes for the v1 API.
package dto

// PeriodQuery binds the window parameter of the short-window KPI endpoints.
type PeriodQuery struct {
	PeriodDays int `form:"period_days,default=30" binding:"min=7,max=90"`
}

// LongPeriodQuery binds the window parameter of the long-window KPI
// endpoints (retention, maintenance costs).
type LongPeriodQuery struct {
	PeriodDays int `form:"period_days,default=90" binding:"min=30,max=365"`
}

// MonthsQuery binds the projection horizon.
type MonthsQuery struct {
	Months int `form:"months,default=6" binding:"min=1,max=12"`
}
