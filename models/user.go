package models

// User platform kullanıcısıdır (etkinlik sahibi).
// Kimlik yönetimi dış işbirlikçi sayılır; burada sadece uygulamanın
// ihtiyaç duyduğu kadarı tutulur.
type User struct {
	BaseModel
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string `gorm:"type:varchar(100)" json:"firstName"`
	LastName     string `gorm:"type:varchar(100)" json:"lastName"`
	// IsSystem true ise kullanıcı yönetici yetkilerine sahiptir.
	IsSystem bool `gorm:"default:false;index" json:"-"`
}
