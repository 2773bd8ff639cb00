// Package policy holds the business rules that guard enrollment and deletes.
// Every handler that can trip a rule calls the same function here.
package policy

import (
	"fmt"

	"nojom_backend/internals/helpers/apperr"
)

func EnsureEnrollable(alreadyEnrolled bool, enrolled int64, maxStudents int) error {
	if alreadyEnrolled {
		return apperr.Rule(apperr.CodeAlreadyEnrolled, "Student is already enrolled in this class")
	}
	if enrolled >= int64(maxStudents) {
		return apperr.Rule(apperr.CodeClassFull, "Class has reached maximum capacity")
	}
	return nil
}

func EnsureClassDeletable(enrolled int64) error {
	if enrolled > 0 {
		return apperr.Rule(apperr.CodeClassHasStudents, "Cannot delete class with enrolled students").
			WithDetails(map[string]int64{"students_count": enrolled})
	}
	return nil
}

func EnsureSubjectDeletable(classCount int64) error {
	if classCount > 0 {
		return apperr.Rule(apperr.CodeSubjectInUse, "Cannot delete subject that is being used by classes").
			WithDetails(map[string]int64{"classes_count": classCount})
	}
	return nil
}

func EnsureTeacherDeletable(classCount int64) error {
	if classCount > 0 {
		return apperr.Rule(apperr.CodeTeacherHasClasses, "Cannot delete teacher assigned to classes").
			WithDetails(map[string]int64{"classes_count": classCount})
	}
	return nil
}

// EnsureCapacityFits rejects lowering max_students below the current enrollment.
func EnsureCapacityFits(newMax int, enrolled int64) error {
	if int64(newMax) < enrolled {
		return apperr.Field("max_students",
			fmt.Sprintf("max_students cannot be less than the %d students already enrolled", enrolled))
	}
	return nil
}
