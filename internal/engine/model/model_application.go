package model

// Application is a client system that reads configuration with its Sid/SKey pair.
type Application struct {
	AuditModel
	Name     string `gorm:"column:name;size:128;uniqueIndex:idx_application_name" json:"name"`
	IsLocked bool   `gorm:"column:is_locked;default:false" json:"isLocked"`
	Sid      string `gorm:"column:sid;size:64;index:idx_application_sid" json:"sid"`
	SKey     string `gorm:"column:skey;size:64" json:"skey"`
}

func (Application) TableName() string {
	return "t_application"
}
