package model

// Secret is a named value sealed with AES-256-GCM. SecretValue holds base64(nonce||ciphertext).
type Secret struct {
	AuditModel
	Name        string `gorm:"column:name;size:256;uniqueIndex:idx_secret_name" json:"name"`
	SecretValue string `gorm:"column:secret_value;type:text" json:"-"`
	Description string `gorm:"column:description;size:1024" json:"description"`
}

func (Secret) TableName() string {
	return "t_secret"
}
