package aggregate

import "sort"

const (
	goodAttendance    = 80.0
	averageAttendance = 60.0
	poorListCap       = 20
)

type AttendanceRow struct {
	ID             uint
	FirstName      string
	LastName       string
	Grade          string
	AttendanceRate float64
}

type OverallAttendance struct {
	AverageAttendance      float64 `json:"average_attendance"`
	TotalStudents          int64   `json:"total_students"`
	GoodAttendance         int64   `json:"good_attendance"`
	AverageAttendanceCount int64   `json:"average_attendance_count"`
	PoorAttendance         int64   `json:"poor_attendance"`
}

type GradeAttendance struct {
	Grade             string  `json:"grade"`
	AverageAttendance float64 `json:"average_attendance"`
	StudentCount      int64   `json:"student_count"`
}

type PoorAttendanceStudent struct {
	ID             uint    `json:"id"`
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Grade          string  `json:"grade"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type AttendanceReport struct {
	OverallAttendance      OverallAttendance       `json:"overall_attendance"`
	AttendanceByGrade      []GradeAttendance       `json:"attendance_by_grade"`
	PoorAttendanceStudents []PoorAttendanceStudent `json:"poor_attendance_students"`
}

// AttendanceBucket: good >= 80, average 60..<80, poor < 60.
func AttendanceBucket(rate float64) string {
	switch {
	case rate >= goodAttendance:
		return "good"
	case rate >= averageAttendance:
		return "average"
	default:
		return "poor"
	}
}

func Attendance(rows []AttendanceRow) AttendanceReport {
	var (
		overall OverallAttendance
		sum     float64
		poor    []PoorAttendanceStudent
	)
	type acc struct {
		sum   float64
		count int64
	}
	byGrade := map[string]*acc{}

	for _, r := range rows {
		overall.TotalStudents++
		sum += r.AttendanceRate
		switch AttendanceBucket(r.AttendanceRate) {
		case "good":
			overall.GoodAttendance++
		case "average":
			overall.AverageAttendanceCount++
		default:
			overall.PoorAttendance++
			poor = append(poor, PoorAttendanceStudent{
				ID: r.ID, FirstName: r.FirstName, LastName: r.LastName,
				Grade: r.Grade, AttendanceRate: r.AttendanceRate,
			})
		}
		a, ok := byGrade[r.Grade]
		if !ok {
			a = &acc{}
			byGrade[r.Grade] = a
		}
		a.sum += r.AttendanceRate
		a.count++
	}
	overall.AverageAttendance = Round2(Ratio(sum, float64(overall.TotalStudents)))

	grades := make([]GradeAttendance, 0, len(byGrade))
	for g, a := range byGrade {
		grades = append(grades, GradeAttendance{
			Grade:             g,
			AverageAttendance: Round2(Ratio(a.sum, float64(a.count))),
			StudentCount:      a.count,
		})
	}
	sort.Slice(grades, func(i, j int) bool { return gradeLess(grades[i].Grade, grades[j].Grade) })

	sort.Slice(poor, func(i, j int) bool {
		if poor[i].AttendanceRate != poor[j].AttendanceRate {
			return poor[i].AttendanceRate < poor[j].AttendanceRate
		}
		return poor[i].ID < poor[j].ID
	})
	if len(poor) > poorListCap {
		poor = poor[:poorListCap]
	}
	if poor == nil {
		poor = []PoorAttendanceStudent{}
	}

	return AttendanceReport{
		OverallAttendance:      overall,
		AttendanceByGrade:      grades,
		PoorAttendanceStudents: poor,
	}
}

// AverageRate is the mean of rates rounded to 2 decimals, 0 for none.
func AverageRate(rates []float64) float64 {
	var sum float64
	for _, r := range rates {
		sum += r
	}
	return Round2(Ratio(sum, float64(len(rates))))
}
