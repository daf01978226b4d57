package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment bir etkinlik için kaydedilen ödeme hareketidir.
// Gerçek ödeme sağlayıcı entegrasyonu kapsam dışıdır; kayıt,
// etkinliğin snapshot tutarı üzerinden oluşturulur.
type Payment struct {
	BaseModel
	UserID  uint `gorm:"index;not null" json:"-"`
	EventID uint `gorm:"index;not null" json:"eventId"`

	Plan        string          `gorm:"type:varchar(50);not null" json:"plan"` // paket adı snapshot'ı
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Status      string          `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	PaidAt      *time.Time      `gorm:"type:timestamptz" json:"paidAt,omitempty"`
	Description string          `gorm:"type:varchar(500)" json:"description,omitempty"`

	// İlişkiler
	User  User  `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}
