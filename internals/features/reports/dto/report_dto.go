package dto

import (
	"time"

	"nojom_backend/internals/domain/aggregate"
	"nojom_backend/internals/helpers/apperr"
	"nojom_backend/internals/helpers/dbtime"
)

type ReportQuery struct {
	StartDate string `query:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `query:"end_date" validate:"required,datetime=2006-01-02"`
	Format    string `query:"format" validate:"omitempty,oneof=json xlsx"`
}

// Range parses both bounds and rejects an end before the start.
func (q ReportQuery) Range() (aggregate.DateRange, error) {
	start, err := dbtime.ParseDate(q.StartDate, time.UTC)
	if err != nil {
		return aggregate.DateRange{}, apperr.Field("start_date", "start_date is not a valid date")
	}
	end, err := dbtime.ParseDate(q.EndDate, time.UTC)
	if err != nil {
		return aggregate.DateRange{}, apperr.Field("end_date", "end_date is not a valid date")
	}
	if end.Before(start) {
		return aggregate.DateRange{}, apperr.Field("end_date", "end_date must be a date after or equal to start_date")
	}
	return aggregate.NewDateRange(start, end), nil
}

func (q ReportQuery) WantsXLSX() bool { return q.Format == "xlsx" }

type Period struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func PeriodOf(q ReportQuery) Period {
	return Period{StartDate: q.StartDate, EndDate: q.EndDate}
}

type FinancialSummaryResponse struct {
	Period Period `json:"period"`
	aggregate.FinancialSummaryReport
}

type EnrollmentResponse struct {
	Period Period `json:"period"`
	aggregate.EnrollmentReport
}

type ClassPerformanceResponse struct {
	Period Period `json:"period"`
	aggregate.ClassPerformanceReport
}

type TeacherPerformanceResponse struct {
	Period Period `json:"period"`
	aggregate.TeacherPerformanceReport
}

type AttendanceResponse struct {
	Period Period `json:"period"`
	aggregate.AttendanceReport
}
