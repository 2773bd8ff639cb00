package aggregate

import (
	"sort"
	"time"
)

type GradeCount struct {
	Grade string `json:"grade"`
	Count int64  `json:"count"`
}

type StatusCount struct {
	Status string `json:"status"`
	Count  int64  `json:"count"`
}

type MonthCount struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

func statusCounts(statuses []string) []StatusCount {
	m := map[string]int64{}
	for _, s := range statuses {
		m[s]++
	}
	out := make([]StatusCount, 0, len(m))
	for s, n := range m {
		out = append(out, StatusCount{Status: s, Count: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Status < out[j].Status })
	return out
}

func monthCounts(times []time.Time, r DateRange) []MonthCount {
	m := map[MonthKey]int64{}
	for _, t := range times {
		if r.Contains(t) {
			m[MonthOf(t.In(r.Start.Location()))]++
		}
	}
	keys := make([]MonthKey, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })
	out := make([]MonthCount, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthCount{Year: k.Year, Month: k.Month, Count: m[k]})
	}
	return out
}

func countIn(times []time.Time, r DateRange) int64 {
	var n int64
	for _, t := range times {
		if r.Contains(t) {
			n++
		}
	}
	return n
}

/* ===== students ===== */

type StudentRow struct {
	ID        uint
	Grade     string
	Status    string
	CreatedAt time.Time
}

type EnrollmentReport struct {
	TotalStudents    int64         `json:"total_students"`
	NewStudents      int64         `json:"new_students"`
	StudentsByGrade  []GradeCount  `json:"students_by_grade"`
	StudentsByStatus []StatusCount `json:"students_by_status"`
	EnrollmentTrend  []MonthCount  `json:"enrollment_trend"`
}

func Enrollment(rows []StudentRow, r DateRange) EnrollmentReport {
	created := make([]time.Time, 0, len(rows))
	statuses := make([]string, 0, len(rows))
	byGrade := map[string]int64{}
	for _, s := range rows {
		created = append(created, s.CreatedAt)
		statuses = append(statuses, s.Status)
		byGrade[s.Grade]++
	}
	grades := make([]GradeCount, 0, len(byGrade))
	for g, n := range byGrade {
		grades = append(grades, GradeCount{Grade: g, Count: n})
	}
	sort.Slice(grades, func(i, j int) bool { return gradeLess(grades[i].Grade, grades[j].Grade) })

	return EnrollmentReport{
		TotalStudents:    int64(len(rows)),
		NewStudents:      countIn(created, r),
		StudentsByGrade:  grades,
		StudentsByStatus: statusCounts(statuses),
		EnrollmentTrend:  monthCounts(created, r),
	}
}

/* ===== classes ===== */

type ClassRow struct {
	ID              uint
	Name            string
	SubjectID       uint
	SubjectName     string
	Status          string
	MaxStudents     int
	CurrentStudents int64
	CreatedAt       time.Time
}

type SubjectCount struct {
	SubjectID   uint   `json:"subject_id"`
	SubjectName string `json:"subject_name"`
	Count       int64  `json:"count"`
}

type ClassPerformanceReport struct {
	TotalClasses        int64           `json:"total_classes"`
	NewClasses          int64           `json:"new_classes"`
	ClassesByStatus     []StatusCount   `json:"classes_by_status"`
	ClassesBySubject    []SubjectCount  `json:"classes_by_subject"`
	CapacityUtilization []CapacityEntry `json:"capacity_utilization"`
}

func ClassPerformance(rows []ClassRow, r DateRange) ClassPerformanceReport {
	created := make([]time.Time, 0, len(rows))
	statuses := make([]string, 0, len(rows))
	capacity := make([]ClassCapacityRow, 0, len(rows))
	bySubject := map[uint]*SubjectCount{}
	for _, c := range rows {
		created = append(created, c.CreatedAt)
		statuses = append(statuses, c.Status)
		capacity = append(capacity, ClassCapacityRow{
			ID: c.ID, Name: c.Name, MaxStudents: c.MaxStudents, CurrentStudents: c.CurrentStudents,
		})
		sc, ok := bySubject[c.SubjectID]
		if !ok {
			sc = &SubjectCount{SubjectID: c.SubjectID, SubjectName: c.SubjectName}
			bySubject[c.SubjectID] = sc
		}
		sc.Count++
	}

	return ClassPerformanceReport{
		TotalClasses:        int64(len(rows)),
		NewClasses:          countIn(created, r),
		ClassesByStatus:     statusCounts(statuses),
		ClassesBySubject:    rankSubjects(bySubject),
		CapacityUtilization: CapacityUtilization(capacity),
	}
}

func rankSubjects(m map[uint]*SubjectCount) []SubjectCount {
	out := make([]SubjectCount, 0, len(m))
	for _, sc := range m {
		out = append(out, *sc)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].SubjectID < out[j].SubjectID
	})
	return out
}

/* ===== teachers ===== */

type SubjectRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name_en"`
}

type TeacherRow struct {
	ID        uint
	FirstName string
	LastName  string
	Email     string
	Status    string
	CreatedAt time.Time
	Subjects  []SubjectRef
}

// TeacherClassRow is one class with its owner and creation time.
type TeacherClassRow struct {
	TeacherID uint
	CreatedAt time.Time
}

type TopTeacher struct {
	ID           uint         `json:"id"`
	FirstName    string       `json:"first_name"`
	LastName     string       `json:"last_name"`
	Email        string       `json:"email"`
	Status       string       `json:"status"`
	ClassesCount int64        `json:"classes_count"`
	Subjects     []SubjectRef `json:"subjects"`
}

type SubjectTeacherCount struct {
	SubjectID    uint   `json:"subject_id"`
	SubjectName  string `json:"subject_name"`
	TeacherCount int64  `json:"teacher_count"`
}

type TeacherPerformanceReport struct {
	TotalTeachers              int64                 `json:"total_teachers"`
	NewTeachers                int64                 `json:"new_teachers"`
	TeachersByStatus           []StatusCount         `json:"teachers_by_status"`
	TopTeachers                []TopTeacher          `json:"top_teachers"`
	TeacherSubjectDistribution []SubjectTeacherCount `json:"teacher_subject_distribution"`
}

const topTeachers = 10

// TeacherPerformance ranks teachers by classes created inside r. Equal counts
// are ordered by teacher id ascending.
func TeacherPerformance(teachers []TeacherRow, classes []TeacherClassRow, r DateRange) TeacherPerformanceReport {
	classCount := map[uint]int64{}
	for _, c := range classes {
		if r.Contains(c.CreatedAt) {
			classCount[c.TeacherID]++
		}
	}

	created := make([]time.Time, 0, len(teachers))
	statuses := make([]string, 0, len(teachers))
	top := make([]TopTeacher, 0, len(teachers))
	dist := map[uint]*SubjectTeacherCount{}
	for _, t := range teachers {
		created = append(created, t.CreatedAt)
		statuses = append(statuses, t.Status)
		subjects := t.Subjects
		if subjects == nil {
			subjects = []SubjectRef{}
		}
		top = append(top, TopTeacher{
			ID: t.ID, FirstName: t.FirstName, LastName: t.LastName, Email: t.Email,
			Status: t.Status, ClassesCount: classCount[t.ID], Subjects: subjects,
		})
		seen := map[uint]bool{}
		for _, s := range t.Subjects {
			if seen[s.ID] {
				continue
			}
			seen[s.ID] = true
			d, ok := dist[s.ID]
			if !ok {
				d = &SubjectTeacherCount{SubjectID: s.ID, SubjectName: s.Name}
				dist[s.ID] = d
			}
			d.TeacherCount++
		}
	}

	sort.Slice(top, func(i, j int) bool {
		if top[i].ClassesCount != top[j].ClassesCount {
			return top[i].ClassesCount > top[j].ClassesCount
		}
		return top[i].ID < top[j].ID
	})
	if len(top) > topTeachers {
		top = top[:topTeachers]
	}

	distribution := make([]SubjectTeacherCount, 0, len(dist))
	for _, d := range dist {
		distribution = append(distribution, *d)
	}
	sort.Slice(distribution, func(i, j int) bool {
		if distribution[i].TeacherCount != distribution[j].TeacherCount {
			return distribution[i].TeacherCount > distribution[j].TeacherCount
		}
		return distribution[i].SubjectID < distribution[j].SubjectID
	})

	return TeacherPerformanceReport{
		TotalTeachers:              int64(len(teachers)),
		NewTeachers:                countIn(created, r),
		TeachersByStatus:           statusCounts(statuses),
		TopTeachers:                top,
		TeacherSubjectDistribution: distribution,
	}
}
