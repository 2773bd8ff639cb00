package service

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"

	"nojom_backend/internals/domain/aggregate"
	"nojom_backend/internals/models"
)

// NewReferenceNumber builds PAY-<unix seconds>-<4 random digits>.
func NewReferenceNumber(now time.Time) string {
	return fmt.Sprintf("PAY-%d-%d", now.Unix(), 1000+rand.IntN(9000))
}

// ReferenceTaken reports whether ref is used by a payment other than exceptID.
func ReferenceTaken(db *gorm.DB, ref string, exceptID uint) (bool, error) {
	q := db.Model(&models.Payment{}).Where("reference_number = ?", ref)
	if exceptID > 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	err := q.Count(&n).Error
	return n > 0, err
}

// UniqueReference retries a few times before giving up on a free reference.
func UniqueReference(db *gorm.DB, now time.Time) (string, error) {
	for i := 0; i < 5; i++ {
		ref := NewReferenceNumber(now)
		taken, err := ReferenceTaken(db, ref, 0)
		if err != nil {
			return "", err
		}
		if !taken {
			return ref, nil
		}
	}
	return "", errors.New("could not allocate a unique reference number")
}

// Rows converts payments for the aggregation layer. Class names come from the
// preloaded Class when present.
func Rows(payments []models.Payment) []aggregate.PaymentRow {
	rows := make([]aggregate.PaymentRow, 0, len(payments))
	for _, p := range payments {
		r := aggregate.PaymentRow{
			ID:           p.ID,
			StudentID:    p.StudentID,
			ClassID:      p.ClassID,
			SubjectID:    p.SubjectID,
			Amount:       p.Amount,
			Method:       string(p.PaymentMethod),
			Status:       string(p.Status),
			PaymentMonth: p.PaymentMonth,
			PaymentYear:  p.PaymentYear,
			PaymentDate:  p.PaymentDate,
		}
		if p.Class != nil {
			r.ClassName = p.Class.Name
		}
		rows = append(rows, r)
	}
	return rows
}
