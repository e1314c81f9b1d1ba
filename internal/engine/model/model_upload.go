package model

// Upload is one imported JSON document for an (application, environment) pair.
type Upload struct {
	AuditModel
	FileName      string  `gorm:"column:file_name;size:260" json:"fileName"`
	ApplicationID uint64  `gorm:"column:application_id;not null;index:idx_upload_app_env" json:"applicationId"`
	EnvironmentID *uint64 `gorm:"column:environment_id;index:idx_upload_app_env" json:"environmentId,omitempty"`
	Json          string  `gorm:"column:json;type:text" json:"json,omitempty"`
	Size          int64   `gorm:"column:size" json:"size"`
}

func (Upload) TableName() string {
	return "t_upload"
}

// EnvironmentKey is the environment id carried onto settings, 0 when the upload has none.
func (u *Upload) EnvironmentKey() uint64 {
	if u.EnvironmentID == nil {
		return 0
	}
	return *u.EnvironmentID
}
