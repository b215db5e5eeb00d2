package models

import "time"

// DaySchedule is one calendar day of a template.
type DaySchedule struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	TemplateID uint      `gorm:"column:template_id;not null;index:day_schedules_template_id_idx"`
	DayNumber  int       `gorm:"column:day_number;not null"`
	Date       time.Time `gorm:"column:date;type:date;not null"`
	Title      string    `gorm:"column:title;not null"`
	Color      *string   `gorm:"column:color"`

	Activities []Activity `gorm:"foreignKey:DayScheduleID;constraint:OnDelete:CASCADE"`
}

// Activity is a scheduled entry on a day. Location references are plain ids with
// no foreign key so location deletion stays independent of activities.
type Activity struct {
	ID                 uint   `gorm:"column:id;primaryKey;autoIncrement"`
	DayScheduleID      uint   `gorm:"column:day_schedule_id;not null;index:activities_day_schedule_id_idx"`
	Time               string `gorm:"column:time;not null"`
	Description        string `gorm:"column:description;not null"`
	LocationID         uint   `gorm:"column:location_id;not null"`
	PreviousLocationID *uint  `gorm:"column:previous_location_id"`
	OrderIndex         int    `gorm:"column:order_index;not null;default:0"`
}
