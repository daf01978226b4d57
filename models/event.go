package models

import (
	"encoding/json"
	"time"

	"etkinlik.link/pkg/pricing"

	"github.com/shopspring/decimal"
)

// EventType kapalı etkinlik türü enum'u. Wire formatı 0 tabanlı tamsayıdır.
type EventType int

const (
	EventTypeWedding EventType = iota
	EventTypeBirthday
	EventTypeEngagement
	EventTypeGraduation
	EventTypeCorporate
	EventTypeOther
)

// String insan okunur tür adını döner.
func (t EventType) String() string {
	switch t {
	case EventTypeWedding:
		return "Wedding"
	case EventTypeBirthday:
		return "Birthday"
	case EventTypeEngagement:
		return "Engagement"
	case EventTypeGraduation:
		return "Graduation"
	case EventTypeCorporate:
		return "Corporate"
	case EventTypeOther:
		return "Other"
	default:
		return "Unknown"
	}
}

// Key özel alan şeması için küçük harfli tür anahtarını döner.
func (t EventType) Key() string {
	switch t {
	case EventTypeWedding:
		return "wedding"
	case EventTypeBirthday:
		return "birthday"
	case EventTypeEngagement:
		return "engagement"
	case EventTypeGraduation:
		return "graduation"
	case EventTypeCorporate:
		return "corporate"
	default:
		return "other"
	}
}

// IsValid tür değerinin tanımlı aralıkta olup olmadığını söyler.
func (t EventType) IsValid() bool {
	return t >= EventTypeWedding && t <= EventTypeOther
}

// Ödeme durumları.
const (
	PaymentStatusPending   = "Pending"
	PaymentStatusCompleted = "Completed"
	PaymentStatusFailed    = "Failed"
	PaymentStatusRefunded  = "Refunded"
)

// Event bir davet etkinliğinin ana kaydıdır.
//
// Fiyat alanları (PackagePrice, SelectedAddOns, TotalAmount) seçim anında
// katalogdan alınmış SNAPSHOT'lardır: katalog fiyatı sonradan değişse bile
// mevcut etkinliğin fiyatı ve yetkileri donuk kalır. Snapshot yalnızca
// kullanıcı paketi/ek hizmetleri açıkça değiştirdiğinde yeniden hesaplanır
// ve bu durumda ödeme durumu Pending'e döner.
type Event struct {
	BaseModel
	CreatorUserID uint `gorm:"index;not null" json:"-"`

	Title string `gorm:"type:varchar(200);not null" json:"title"`
	// Slug public URL'leri sırtlar; benzersizlik kapsamı GLOBALDİR.
	// Unique index asıl doğruluk garantisidir, tahsis döngüsü optimizasyondur.
	Slug        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"slug"`
	EventDate   time.Time `gorm:"index;type:timestamptz;not null" json:"eventDate"`
	Location    string    `gorm:"type:varchar(500)" json:"location"`
	Description string    `gorm:"type:varchar(1000)" json:"description"`
	Theme       string    `gorm:"type:varchar(50)" json:"theme"`
	MusicURL    string    `gorm:"type:varchar(500)" json:"musicUrl"`
	IsPublic    bool      `gorm:"default:true" json:"isPublic"`
	EventType   EventType `gorm:"type:integer;default:0;index" json:"eventType"`
	// CustomFields depolama sınırında opak bir JSON nesnesidir; uygulama
	// sınırında pkg/customfields türe özgü şemayla doğrular.
	CustomFields string `gorm:"type:jsonb;default:'{}'" json:"customFields"`

	// Paket snapshot'ı.
	PackageTier  pricing.PackageTier `gorm:"type:integer;default:0;index" json:"packageType"`
	PackagePrice decimal.Decimal     `gorm:"type:numeric(12,2);default:0.00" json:"packagePrice"`
	// SelectedAddOns JSON dizi olarak serileştirilmiş anahtar listesi.
	SelectedAddOns string          `gorm:"type:jsonb;default:'[]'" json:"-"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);default:0.00" json:"totalAmount"`

	// Ödeme durumu.
	IsPaid        bool       `gorm:"default:false" json:"isPaid"`
	PaidAt        *time.Time `gorm:"type:timestamptz" json:"paidAt,omitempty"`
	PaymentStatus string     `gorm:"type:varchar(20);default:'Pending'" json:"paymentStatus"`

	// İlişkiler
	Creator User         `gorm:"foreignKey:CreatorUserID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`
	Guests  []Guest      `gorm:"foreignKey:EventID" json:"-"`
	Tables  []EventTable `gorm:"foreignKey:EventID" json:"-"`
}

// AddOnsList snapshot'taki ek hizmet anahtarlarını çözer.
// Bozuk/boş veri sessizce boş liste sayılır (eski kayıtlar hesabı bozmasın).
func (e *Event) AddOnsList() []string {
	if e.SelectedAddOns == "" {
		return []string{}
	}
	var keys []string
	if err := json.Unmarshal([]byte(e.SelectedAddOns), &keys); err != nil {
		return []string{}
	}
	return keys
}

// SetAddOnsList ek hizmet anahtarlarını serileştirip snapshot'a yazar.
func (e *Event) SetAddOnsList(keys []string) {
	if keys == nil {
		keys = []string{}
	}
	raw, err := json.Marshal(keys)
	if err != nil {
		e.SelectedAddOns = "[]"
		return
	}
	e.SelectedAddOns = string(raw)
}
