package models

import "time"

// RSVPStatus olası LCV durumlarını tanımlar.
type RSVPStatus string

const (
	RSVPStatusPending   RSVPStatus = "Pending"   // Henüz cevap verilmedi
	RSVPStatusAttending RSVPStatus = "Attending" // Katılacak
	RSVPStatusDeclined  RSVPStatus = "Declined"  // Katılmayacak
)

// IsValid durumun gönderilebilir bir değer olup olmadığını söyler.
func (s RSVPStatus) IsValid() bool {
	return s == RSVPStatusPending || s == RSVPStatusAttending || s == RSVPStatusDeclined
}

// RSVP misafirin LCV yanıtıdır. Misafir başına tek satır tutulur;
// tekrar gönderimde son yanıt öncekinin üzerine yazılır.
type RSVP struct {
	BaseModel
	GuestID uint       `gorm:"uniqueIndex;not null" json:"-"`
	Status  RSVPStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	// PartySize misafirin kendisi dahil getireceği kişi sayısı (0-20).
	PartySize   int       `gorm:"type:integer;default:1" json:"partySize"`
	Note        string    `gorm:"type:varchar(1000)" json:"note,omitempty"`
	SubmittedAt time.Time `gorm:"type:timestamptz" json:"submittedAt"`

	// İlişkiler
	Guest Guest `gorm:"foreignKey:GuestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// MaxPartySize tek LCV'de bildirilebilecek en yüksek kişi sayısı.
const MaxPartySize = 20
