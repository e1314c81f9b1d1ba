package model

// Environment is a deployment tier. Exactly one row carries IsDefault once the table is populated.
type Environment struct {
	AuditModel
	Name      string `gorm:"column:name;size:64;uniqueIndex:idx_environment_name" json:"name"`
	IsDefault bool   `gorm:"column:is_default;default:false" json:"isDefault"`
}

func (Environment) TableName() string {
	return "t_environment"
}
