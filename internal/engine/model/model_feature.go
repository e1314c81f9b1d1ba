package model

// Feature is a boolean flag scoped to an (application, environment) pair.
type Feature struct {
	AuditModel
	Key           string `gorm:"column:key;size:512;not null;uniqueIndex:idx_feature_key,priority:1" json:"key"`
	EnvironmentID uint64 `gorm:"column:environment_id;uniqueIndex:idx_feature_key,priority:2" json:"environmentId"`
	ApplicationID uint64 `gorm:"column:application_id;uniqueIndex:idx_feature_key,priority:3" json:"applicationId"`
	Value         bool   `gorm:"column:value;default:false" json:"value"`
	Enabled       bool   `gorm:"column:enabled" json:"enabled"`
	Comment       string `gorm:"column:comment;size:1024" json:"comment,omitempty"`
}

func (Feature) TableName() string {
	return "t_feature"
}
