package aggregate

const (
	PaymentStatusNoSubjects = "no_subjects"
	PaymentStatusPaid       = "paid"
	PaymentStatusPartial    = "partial"
	PaymentStatusUnpaid     = "unpaid"
)

// PaymentStatus classifies a student from subject counts for the reference month.
func PaymentStatus(totalSubjects, paidSubjects int) string {
	switch {
	case totalSubjects <= 0:
		return PaymentStatusNoSubjects
	case paidSubjects >= totalSubjects:
		return PaymentStatusPaid
	case paidSubjects > 0:
		return PaymentStatusPartial
	default:
		return PaymentStatusUnpaid
	}
}

// PaidSubjects counts the student's subjects that appear in covered.
func PaidSubjects(subjectIDs []uint, covered map[uint]bool) int {
	n := 0
	seen := make(map[uint]bool, len(subjectIDs))
	for _, id := range subjectIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if covered[id] {
			n++
		}
	}
	return n
}

// CoveredSubjects returns the subjects paid for in month/year by completed
// payments. A payment covers its own subject_id and the subject taught by its class.
func CoveredSubjects(rows []PaymentRow, classSubject map[uint]uint, key MonthKey) map[uint]bool {
	out := map[uint]bool{}
	for _, p := range rows {
		if !p.completed() || p.PaymentYear != key.Year || p.PaymentMonth != key.Month {
			continue
		}
		if p.SubjectID != nil {
			out[*p.SubjectID] = true
		}
		if sid, ok := classSubject[p.ClassID]; ok {
			out[sid] = true
		}
	}
	return out
}

type StudentPaymentInfo struct {
	PaymentStatus  string `json:"payment_status"`
	TotalSubjects  int    `json:"total_subjects"`
	PaidSubjects   int    `json:"paid_subjects"`
	UnpaidSubjects int    `json:"unpaid_subjects"`
}

func StudentPaymentInfoOf(subjectIDs []uint, covered map[uint]bool) StudentPaymentInfo {
	total := len(uniq(subjectIDs))
	paid := PaidSubjects(subjectIDs, covered)
	return StudentPaymentInfo{
		PaymentStatus:  PaymentStatus(total, paid),
		TotalSubjects:  total,
		PaidSubjects:   paid,
		UnpaidSubjects: total - paid,
	}
}

func uniq(ids []uint) []uint {
	seen := make(map[uint]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
