package aggregate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentStatus(t *testing.T) {
	tests := []struct {
		total, paid int
		want        string
	}{
		{0, 0, PaymentStatusNoSubjects},
		{4, 0, PaymentStatusUnpaid},
		{4, 1, PaymentStatusPartial},
		{4, 4, PaymentStatusPaid},
		{1, 1, PaymentStatusPaid},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PaymentStatus(tt.total, tt.paid), "total=%d paid=%d", tt.total, tt.paid)
	}
}

func TestStudentPaymentInfoWithoutPayments(t *testing.T) {
	info := StudentPaymentInfoOf([]uint{1, 2, 3, 4}, CoveredSubjects(nil, nil, MonthKey{2024, 5}))
	assert.Equal(t, StudentPaymentInfo{
		PaymentStatus: "unpaid", TotalSubjects: 4, PaidSubjects: 0, UnpaidSubjects: 4,
	}, info)
}

func TestCoveredSubjects(t *testing.T) {
	sub := func(id uint) *uint { return &id }
	rows := []PaymentRow{
		{ClassID: 10, SubjectID: sub(1), Status: "completed", PaymentMonth: 5, PaymentYear: 2024},
		{ClassID: 11, Status: "completed", PaymentMonth: 5, PaymentYear: 2024},
		{ClassID: 12, SubjectID: sub(3), Status: "pending", PaymentMonth: 5, PaymentYear: 2024},
		{ClassID: 13, SubjectID: sub(4), Status: "completed", PaymentMonth: 4, PaymentYear: 2024},
	}
	classSubject := map[uint]uint{11: 2, 12: 3, 13: 4}

	covered := CoveredSubjects(rows, classSubject, MonthKey{Year: 2024, Month: 5})
	assert.Equal(t, map[uint]bool{1: true, 2: true}, covered)

	info := StudentPaymentInfoOf([]uint{1, 2, 3, 4}, covered)
	assert.Equal(t, "partial", info.PaymentStatus)
	assert.Equal(t, 2, info.PaidSubjects)
	assert.Equal(t, 2, info.UnpaidSubjects)

	assert.Equal(t, "paid", StudentPaymentInfoOf([]uint{2, 1, 1}, covered).PaymentStatus)
	assert.Equal(t, "no_subjects", StudentPaymentInfoOf(nil, covered).PaymentStatus)
}
