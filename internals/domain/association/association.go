// Package association synchronises many-to-many join rows with an explicit
// diff-then-write instead of ORM association helpers.
package association

import (
	"sort"
	"time"

	"gorm.io/gorm"
)

// Spec names a join table and its two key columns.
type Spec struct {
	Table        string
	OwnerColumn  string
	TargetColumn string
}

// Inverse swaps owner and target, e.g. class_student seen from the student side.
func (s Spec) Inverse() Spec {
	return Spec{Table: s.Table, OwnerColumn: s.TargetColumn, TargetColumn: s.OwnerColumn}
}

var (
	StudentSubjects = Spec{Table: "student_subject", OwnerColumn: "student_id", TargetColumn: "subject_id"}
	TeacherSubjects = Spec{Table: "teacher_subject", OwnerColumn: "teacher_id", TargetColumn: "subject_id"}
	ClassStudents   = Spec{Table: "class_student", OwnerColumn: "class_id", TargetColumn: "student_id"}
	StudentClasses  = ClassStudents.Inverse()
)

// Diff returns the ids to insert and to delete, both deduplicated and sorted.
func Diff(current, desired []uint) (toAdd, toRemove []uint) {
	cur := set(current)
	want := set(desired)
	for id := range want {
		if !cur[id] {
			toAdd = append(toAdd, id)
		}
	}
	for id := range cur {
		if !want[id] {
			toRemove = append(toRemove, id)
		}
	}
	sortIDs(toAdd)
	sortIDs(toRemove)
	return toAdd, toRemove
}

// Current lists target ids attached to owner.
func Current(tx *gorm.DB, s Spec, ownerID uint) ([]uint, error) {
	var ids []uint
	err := tx.Table(s.Table).Where(s.OwnerColumn+" = ?", ownerID).Pluck(s.TargetColumn, &ids).Error
	return ids, err
}

// Sync makes owner's targets equal desired. Run it inside the owner's write transaction.
func Sync(tx *gorm.DB, s Spec, ownerID uint, desired []uint) (added, removed []uint, err error) {
	current, err := Current(tx, s, ownerID)
	if err != nil {
		return nil, nil, err
	}
	added, removed = Diff(current, desired)
	if len(removed) > 0 {
		if err := tx.Table(s.Table).
			Where(s.OwnerColumn+" = ? AND "+s.TargetColumn+" IN ?", ownerID, removed).
			Delete(map[string]any{}).Error; err != nil {
			return nil, nil, err
		}
	}
	if err := insert(tx, s, ownerID, added); err != nil {
		return nil, nil, err
	}
	return added, removed, nil
}

// Attach inserts the missing rows only.
func Attach(tx *gorm.DB, s Spec, ownerID uint, targetIDs ...uint) error {
	current, err := Current(tx, s, ownerID)
	if err != nil {
		return err
	}
	cur := set(current)
	var add []uint
	for id := range set(targetIDs) {
		if !cur[id] {
			add = append(add, id)
		}
	}
	sortIDs(add)
	return insert(tx, s, ownerID, add)
}

// Detach removes the given targets and reports how many rows went away.
func Detach(tx *gorm.DB, s Spec, ownerID uint, targetIDs ...uint) (int64, error) {
	if len(targetIDs) == 0 {
		return 0, nil
	}
	res := tx.Table(s.Table).
		Where(s.OwnerColumn+" = ? AND "+s.TargetColumn+" IN ?", ownerID, targetIDs).
		Delete(map[string]any{})
	return res.RowsAffected, res.Error
}

// DetachAll removes every row for owner, used by cascading deletes.
func DetachAll(tx *gorm.DB, s Spec, ownerID uint) error {
	return tx.Table(s.Table).Where(s.OwnerColumn+" = ?", ownerID).Delete(map[string]any{}).Error
}

func insert(tx *gorm.DB, s Spec, ownerID uint, targetIDs []uint) error {
	if len(targetIDs) == 0 {
		return nil
	}
	now := time.Now()
	rows := make([]map[string]any, 0, len(targetIDs))
	for _, id := range targetIDs {
		rows = append(rows, map[string]any{
			s.OwnerColumn:  ownerID,
			s.TargetColumn: id,
			"created_at":   now,
		})
	}
	return tx.Table(s.Table).Create(rows).Error
}

func set(ids []uint) map[uint]bool {
	m := make(map[uint]bool, len(ids))
	for _, id := range ids {
		m[id] = true
	}
	return m
}

func sortIDs(ids []uint) {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
}
