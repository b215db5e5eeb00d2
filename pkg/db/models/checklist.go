package models

// ChecklistSection groups checklist items under a template.
type ChecklistSection struct {
	ID         uint    `gorm:"column:id;primaryKey;autoIncrement"`
	TemplateID uint    `gorm:"column:template_id;not null;index:checklist_sections_template_id_idx"`
	Title      string  `gorm:"column:title;not null"`
	Icon       *string `gorm:"column:icon"`
	OrderIndex int     `gorm:"column:order_index;not null;default:0"`

	Items []ChecklistItem `gorm:"foreignKey:SectionID;constraint:OnDelete:CASCADE"`
}

// ChecklistItem is a single line within a section.
type ChecklistItem struct {
	ID         uint   `gorm:"column:id;primaryKey;autoIncrement"`
	SectionID  uint   `gorm:"column:section_id;not null;index:checklist_items_section_id_idx"`
	Label      string `gorm:"column:label;not null"`
	OrderIndex int    `gorm:"column:order_index;not null;default:0"`
}
