package service

import (
	"nojom_backend/internals/domain/aggregate"
	"nojom_backend/internals/helpers/spreadsheet"
)

func periodSheet(start, end string) spreadsheet.Sheet {
	return spreadsheet.Sheet{
		Name:   "Period",
		Header: []string{"start_date", "end_date"},
		Rows:   [][]any{{start, end}},
	}
}

func statusSheet(name string, counts []aggregate.StatusCount) spreadsheet.Sheet {
	sh := spreadsheet.Sheet{Name: name, Header: []string{"status", "count"}}
	for _, s := range counts {
		sh.Rows = append(sh.Rows, []any{s.Status, s.Count})
	}
	return sh
}

func FinancialSheets(start, end string, rep aggregate.FinancialSummaryReport) []spreadsheet.Sheet {
	summary := spreadsheet.Sheet{
		Name:   "Summary",
		Header: []string{"start_date", "end_date", "total_revenue"},
		Rows:   [][]any{{start, end, rep.TotalRevenue}},
	}
	methods := spreadsheet.Sheet{Name: "By Method", Header: []string{"payment_method", "total", "count"}}
	for _, m := range rep.RevenueByMethod {
		methods.Rows = append(methods.Rows, []any{m.PaymentMethod, m.Total, m.Count})
	}
	classes := spreadsheet.Sheet{Name: "By Class", Header: []string{"class_id", "class_name", "total"}}
	for _, c := range rep.RevenueByClass {
		classes.Rows = append(classes.Rows, []any{c.ClassID, c.ClassName, c.Total})
	}
	trend := spreadsheet.Sheet{Name: "Monthly Trend", Header: []string{"year", "month", "total"}}
	for _, t := range rep.MonthlyTrend {
		trend.Rows = append(trend.Rows, []any{t.Year, t.Month, t.Total})
	}
	return []spreadsheet.Sheet{summary, methods, classes, trend}
}

func EnrollmentSheets(start, end string, rep aggregate.EnrollmentReport) []spreadsheet.Sheet {
	summary := spreadsheet.Sheet{
		Name:   "Summary",
		Header: []string{"start_date", "end_date", "total_students", "new_students"},
		Rows:   [][]any{{start, end, rep.TotalStudents, rep.NewStudents}},
	}
	grades := spreadsheet.Sheet{Name: "By Grade", Header: []string{"grade", "count"}}
	for _, g := range rep.StudentsByGrade {
		grades.Rows = append(grades.Rows, []any{g.Grade, g.Count})
	}
	trend := spreadsheet.Sheet{Name: "Enrollment Trend", Header: []string{"year", "month", "count"}}
	for _, t := range rep.EnrollmentTrend {
		trend.Rows = append(trend.Rows, []any{t.Year, t.Month, t.Count})
	}
	return []spreadsheet.Sheet{summary, grades, statusSheet("By Status", rep.StudentsByStatus), trend}
}

func ClassPerformanceSheets(start, end string, rep aggregate.ClassPerformanceReport) []spreadsheet.Sheet {
	summary := spreadsheet.Sheet{
		Name:   "Summary",
		Header: []string{"start_date", "end_date", "total_classes", "new_classes"},
		Rows:   [][]any{{start, end, rep.TotalClasses, rep.NewClasses}},
	}
	subjects := spreadsheet.Sheet{Name: "By Subject", Header: []string{"subject_id", "subject_name", "count"}}
	for _, s := range rep.ClassesBySubject {
		subjects.Rows = append(subjects.Rows, []any{s.SubjectID, s.SubjectName, s.Count})
	}
	capacity := spreadsheet.Sheet{
		Name:   "Capacity",
		Header: []string{"id", "name", "max_students", "current_students", "utilization_rate"},
	}
	for _, c := range rep.CapacityUtilization {
		capacity.Rows = append(capacity.Rows, []any{c.ID, c.Name, c.MaxStudents, c.CurrentStudents, c.UtilizationRate})
	}
	return []spreadsheet.Sheet{summary, statusSheet("By Status", rep.ClassesByStatus), subjects, capacity}
}

func TeacherPerformanceSheets(start, end string, rep aggregate.TeacherPerformanceReport) []spreadsheet.Sheet {
	summary := spreadsheet.Sheet{
		Name:   "Summary",
		Header: []string{"start_date", "end_date", "total_teachers", "new_teachers"},
		Rows:   [][]any{{start, end, rep.TotalTeachers, rep.NewTeachers}},
	}
	top := spreadsheet.Sheet{
		Name:   "Top Teachers",
		Header: []string{"id", "first_name", "last_name", "email", "status", "classes_count"},
	}
	for _, t := range rep.TopTeachers {
		top.Rows = append(top.Rows, []any{t.ID, t.FirstName, t.LastName, t.Email, t.Status, t.ClassesCount})
	}
	dist := spreadsheet.Sheet{Name: "Subject Distribution", Header: []string{"subject_id", "subject_name", "teacher_count"}}
	for _, d := range rep.TeacherSubjectDistribution {
		dist.Rows = append(dist.Rows, []any{d.SubjectID, d.SubjectName, d.TeacherCount})
	}
	return []spreadsheet.Sheet{summary, statusSheet("By Status", rep.TeachersByStatus), top, dist}
}

func AttendanceSheets(start, end string, rep aggregate.AttendanceReport) []spreadsheet.Sheet {
	o := rep.OverallAttendance
	overall := spreadsheet.Sheet{
		Name: "Overall",
		Header: []string{"average_attendance", "total_students", "good_attendance",
			"average_attendance_count", "poor_attendance"},
		Rows: [][]any{{o.AverageAttendance, o.TotalStudents, o.GoodAttendance, o.AverageAttendanceCount, o.PoorAttendance}},
	}
	grades := spreadsheet.Sheet{Name: "By Grade", Header: []string{"grade", "average_attendance", "student_count"}}
	for _, g := range rep.AttendanceByGrade {
		grades.Rows = append(grades.Rows, []any{g.Grade, g.AverageAttendance, g.StudentCount})
	}
	poor := spreadsheet.Sheet{Name: "Poor Attendance", Header: []string{"id", "first_name", "last_name", "grade", "attendance_rate"}}
	for _, p := range rep.PoorAttendanceStudents {
		poor.Rows = append(poor.Rows, []any{p.ID, p.FirstName, p.LastName, p.Grade, p.AttendanceRate})
	}
	return []spreadsheet.Sheet{periodSheet(start, end), overall, grades, poor}
}
