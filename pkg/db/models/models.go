package models

// All lists every persisted model in dependency order. Used for gorm
// AutoMigrate in sqlite mode and in repository tests.
func All() []any {
	return []any{
		&User{},
		&Location{},
		&Template{},
		&ChecklistSection{},
		&ChecklistItem{},
		&DaySchedule{},
		&Activity{},
	}
}
