package models

// EventTable oturma düzeni için bir masadır. Masa yönetimi
// "table-management" ek hizmetine yetkili etkinliklerde kullanılabilir.
type EventTable struct {
	BaseModel
	EventID     uint   `gorm:"index;not null" json:"-"`
	Name        string `gorm:"type:varchar(100);not null" json:"name"`
	Capacity    int    `gorm:"type:integer;not null" json:"capacity"`
	Description string `gorm:"type:varchar(500)" json:"description,omitempty"`
	Shape       string `gorm:"type:varchar(50)" json:"shape,omitempty"` // Round, Rectangle, Square
	IsActive    bool   `gorm:"default:true" json:"isActive"`

	// İlişkiler
	Event Event `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// Masa kapasite sınırları.
const (
	MinTableCapacity = 1
	MaxTableCapacity = 20
)
