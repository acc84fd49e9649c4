package types

type CoursePrerequisite struct {
	CourseID       string  `gorm:"primaryKey;column:course_id;index" json:"course_id"`
	PrerequisiteID string  `gorm:"primaryKey;column:prerequisite_id" json:"prerequisite_id"`
	Course         *Course `gorm:"constraint:OnDelete:CASCADE;foreignKey:CourseID;references:ID" json:"-"`
	Prerequisite   *Course `gorm:"constraint:OnDelete:CASCADE;foreignKey:PrerequisiteID;references:ID" json:"-"`
}

func (CoursePrerequisite) TableName() string { return "course_prerequisite" }
