package models

// Guest bir etkinliğe davet edilen kişidir.
type Guest struct {
	BaseModel
	EventID uint   `gorm:"index;not null" json:"-"`
	Name    string `gorm:"type:varchar(200);not null" json:"name"`
	Email   string `gorm:"type:varchar(255)" json:"email,omitempty"`
	// CustomLink misafirin kişisel davetiye görünümüne kimlik doğrulamasız
	// erişim sağlayan TEK kimlik bilgisidir: opak, tahmin edilemez, global
	// benzersiz 8 hex karakterlik token. Oluşturmada bir kez tahsis edilir
	// ve sonrasında asla değişmez.
	CustomLink  string `gorm:"type:varchar(50);uniqueIndex;not null" json:"customLink"`
	TableNumber string `gorm:"type:varchar(20)" json:"tableNumber,omitempty"`

	// İlişkiler
	Event Event  `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	RSVPs []RSVP `gorm:"foreignKey:GuestID" json:"-"`
}
