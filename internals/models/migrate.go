package models

import "gorm.io/gorm"

// All lists every table owned by the application.
func All() []any {
	return []any{
		&User{},
		&TokenBlacklist{},
		&Subject{},
		&Teacher{},
		&Student{},
		&ClassModel{},
		&Payment{},
		&TeacherPayment{},
		&StudentSubject{},
		&TeacherSubject{},
		&ClassStudent{},
	}
}

// SetupJoinTables binds the many2many relations to the explicit join models
// so both sides share one composite-key table.
func SetupJoinTables(db *gorm.DB) error {
	joins := []struct {
		model any
		field string
		join  any
	}{
		{&Student{}, "Subjects", &StudentSubject{}},
		{&Student{}, "Classes", &ClassStudent{}},
		{&Teacher{}, "Subjects", &TeacherSubject{}},
		{&ClassModel{}, "Students", &ClassStudent{}},
	}
	for _, j := range joins {
		if err := db.SetupJoinTable(j.model, j.field, j.join); err != nil {
			return err
		}
	}
	return nil
}

func AutoMigrate(db *gorm.DB) error {
	if err := SetupJoinTables(db); err != nil {
		return err
	}
	return db.AutoMigrate(All()...)
}
