package model

/**
 * @author: gagral.x@gmail.com
 * @time: 2024/10/11 21:59
 * @file: model_setting.go
 * @description: flattened configuration entry
 */

// Setting is one flattened key of an upload. A nil Value marks a structural node.
// When IsSecret is set, Value is the name of a secret rather than the value itself.
type Setting struct {
	AuditModel
	UploadID      uint64  `gorm:"column:upload_id;not null;uniqueIndex:idx_setting_key,priority:4" json:"uploadId"`
	Key           string  `gorm:"column:key;size:512;not null;uniqueIndex:idx_setting_key,priority:1" json:"key"`
	EnvironmentID uint64  `gorm:"column:environment_id;uniqueIndex:idx_setting_key,priority:2;index:idx_setting_scope,priority:2" json:"environmentId"`
	ApplicationID uint64  `gorm:"column:application_id;uniqueIndex:idx_setting_key,priority:3;index:idx_setting_scope,priority:1" json:"applicationId"`
	Value         *string `gorm:"column:value;type:text" json:"value"`
	Comment       string  `gorm:"column:comment;size:1024" json:"comment,omitempty"`
	IsSecret      bool    `gorm:"column:is_secret;default:false" json:"isSecret"`
}

func (Setting) TableName() string {
	return "t_setting"
}
