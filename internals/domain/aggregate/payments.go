package aggregate

import (
	"sort"
	"time"
)

const StatusCompleted = "completed"
const StatusPending = "pending"

// PaymentRow is the subset of a payment the reports need.
type PaymentRow struct {
	ID           uint
	StudentID    uint
	ClassID      uint
	ClassName    string
	SubjectID    *uint
	Amount       float64
	Method       string
	Status       string
	PaymentMonth int
	PaymentYear  int
	PaymentDate  time.Time
}

func (p PaymentRow) completed() bool { return p.Status == StatusCompleted }

type MethodTotal struct {
	PaymentMethod string  `json:"payment_method"`
	Total         float64 `json:"total"`
	Count         int64   `json:"count"`
}

type ClassTotal struct {
	ClassID   uint    `json:"class_id"`
	ClassName string  `json:"class_name"`
	Total     float64 `json:"total"`
}

type MonthTotal struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}

type FinancialSummaryReport struct {
	TotalRevenue    float64       `json:"total_revenue"`
	RevenueByMethod []MethodTotal `json:"revenue_by_method"`
	RevenueByClass  []ClassTotal  `json:"revenue_by_class"`
	MonthlyTrend    []MonthTotal  `json:"monthly_trend"`
}

// FinancialSummary aggregates completed payments only. Rows are expected to be
// already restricted to the report window by payment_date.
func FinancialSummary(rows []PaymentRow) FinancialSummaryReport {
	var total float64
	byClass := map[uint]*ClassTotal{}
	byMonth := map[MonthKey]float64{}
	for _, p := range rows {
		if !p.completed() {
			continue
		}
		total += p.Amount
		ct, ok := byClass[p.ClassID]
		if !ok {
			ct = &ClassTotal{ClassID: p.ClassID, ClassName: p.ClassName}
			byClass[p.ClassID] = ct
		}
		ct.Total += p.Amount
		byMonth[MonthOf(p.PaymentDate)] += p.Amount
	}

	classes := make([]ClassTotal, 0, len(byClass))
	for _, ct := range byClass {
		ct.Total = Round2(ct.Total)
		classes = append(classes, *ct)
	}
	sort.Slice(classes, func(i, j int) bool {
		if classes[i].Total != classes[j].Total {
			return classes[i].Total > classes[j].Total
		}
		return classes[i].ClassID < classes[j].ClassID
	})

	return FinancialSummaryReport{
		TotalRevenue:    Round2(total),
		RevenueByMethod: methodTotals(rows),
		RevenueByClass:  classes,
		MonthlyTrend:    monthTotals(byMonth, true),
	}
}

func methodTotals(rows []PaymentRow) []MethodTotal {
	byMethod := map[string]*MethodTotal{}
	for _, p := range rows {
		if !p.completed() {
			continue
		}
		mt, ok := byMethod[p.Method]
		if !ok {
			mt = &MethodTotal{PaymentMethod: p.Method}
			byMethod[p.Method] = mt
		}
		mt.Total += p.Amount
		mt.Count++
	}
	out := make([]MethodTotal, 0, len(byMethod))
	for _, mt := range byMethod {
		mt.Total = Round2(mt.Total)
		out = append(out, *mt)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PaymentMethod < out[j].PaymentMethod })
	return out
}

func monthTotals(byMonth map[MonthKey]float64, ascending bool) []MonthTotal {
	keys := make([]MonthKey, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if ascending {
			return keys[i].Less(keys[j])
		}
		return keys[j].Less(keys[i])
	})
	out := make([]MonthTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, MonthTotal{Year: k.Year, Month: k.Month, Total: Round2(byMonth[k])})
	}
	return out
}

type PaymentStats struct {
	TotalPayments     int64         `json:"total_payments"`
	CompletedPayments int64         `json:"completed_payments"`
	PendingPayments   int64         `json:"pending_payments"`
	TotalAmount       float64       `json:"total_amount"`
	PaymentMethods    []MethodTotal `json:"payment_methods"`
	MonthlyRevenue    []MonthTotal  `json:"monthly_revenue"`
}

// PaymentStatistics counts every row, sums completed ones, and reports the
// latest 6 months (by payment_date) newest first.
func PaymentStatistics(rows []PaymentRow) PaymentStats {
	st := PaymentStats{TotalPayments: int64(len(rows))}
	byMonth := map[MonthKey]float64{}
	for _, p := range rows {
		switch p.Status {
		case StatusCompleted:
			st.CompletedPayments++
			st.TotalAmount += p.Amount
			byMonth[MonthOf(p.PaymentDate)] += p.Amount
		case StatusPending:
			st.PendingPayments++
		}
	}
	st.TotalAmount = Round2(st.TotalAmount)
	st.PaymentMethods = methodTotals(rows)
	st.MonthlyRevenue = monthTotals(byMonth, false)
	if len(st.MonthlyRevenue) > 6 {
		st.MonthlyRevenue = st.MonthlyRevenue[:6]
	}
	return st
}

type StudentPaymentSummary struct {
	TotalPaid            float64 `json:"total_paid"`
	PendingPaymentsCount int64   `json:"pending_payments_count"`
	PendingAmount        float64 `json:"pending_amount"`
}

func SummarizeStudentPayments(rows []PaymentRow) StudentPaymentSummary {
	var s StudentPaymentSummary
	for _, p := range rows {
		switch p.Status {
		case StatusCompleted:
			s.TotalPaid += p.Amount
		case StatusPending:
			s.PendingPaymentsCount++
			s.PendingAmount += p.Amount
		}
	}
	s.TotalPaid = Round2(s.TotalPaid)
	s.PendingAmount = Round2(s.PendingAmount)
	return s
}

type ClassPaymentSummary struct {
	TotalCollected  float64 `json:"total_collected"`
	ExpectedRevenue float64 `json:"expected_revenue"`
	CollectionRate  float64 `json:"collection_rate"`
	TotalStudents   int64   `json:"total_students"`
}

// SummarizeClassPayments: collection rate is completed sum over enrolled × monthly fee.
func SummarizeClassPayments(rows []PaymentRow, enrolled int64, monthlyFee float64) ClassPaymentSummary {
	var collected float64
	for _, p := range rows {
		if p.completed() {
			collected += p.Amount
		}
	}
	return ClassPaymentSummary{
		TotalCollected:  Round2(collected),
		ExpectedRevenue: Round2(float64(enrolled) * monthlyFee),
		CollectionRate:  CollectionRate(collected, enrolled, monthlyFee),
		TotalStudents:   enrolled,
	}
}

// PeriodTotal is a SUM(amount) grouped by (payment_year, payment_month).
type PeriodTotal struct {
	Year  int
	Month int
	Total float64
}

func TotalsByMonth(rows []PeriodTotal) map[MonthKey]float64 {
	out := make(map[MonthKey]float64, len(rows))
	for _, r := range rows {
		out[MonthKey{Year: r.Year, Month: r.Month}] += r.Total
	}
	return out
}

func SumYear(totals map[MonthKey]float64, year int) float64 {
	var s float64
	for k, v := range totals {
		if k.Year == year {
			s += v
		}
	}
	return s
}

// TeacherShare is the suggested teacher payment: collected × percentage / 100.
func TeacherShare(collected, percentage float64) float64 {
	if collected <= 0 || percentage <= 0 {
		return 0
	}
	return Round2(collected * percentage / 100)
}
