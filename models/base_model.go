package models

import (
	"context"
	"time"

	"gorm.io/gorm"
)

type contextKey string

// ContextUserIDKey işlemi yapan kullanıcının ID'sini context üzerinden
// GORM hook'larına taşır (audit kolonları için).
const ContextUserIDKey contextKey = "user_id"

// ContextWithUserID context'e işlemi yapan kullanıcıyı ekler.
func ContextWithUserID(ctx context.Context, userID uint) context.Context {
	return context.WithValue(ctx, ContextUserIDKey, userID)
}

// UserIDFromContext context'ten kullanıcı ID'sini okur.
func UserIDFromContext(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(ContextUserIDKey).(uint)
	return id, ok
}

// BaseModel tüm tablolara gömülen ortak kolonlar: kimlik, zaman damgaları,
// soft delete ve audit alanları. CreatedBy/UpdatedBy hook'lar tarafından
// context'teki kullanıcıdan doldurulur; DeletedBy repository'de manuel ayarlanır.
type BaseModel struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
	CreatedBy *uint          `gorm:"index" json:"-"`
	UpdatedBy *uint          `json:"-"`
	DeletedBy *uint          `json:"-"`
}

// BeforeCreate audit: oluşturanı context'ten al.
func (m *BaseModel) BeforeCreate(tx *gorm.DB) error {
	if userID, ok := UserIDFromContext(tx.Statement.Context); ok && userID != 0 {
		m.CreatedBy = &userID
		m.UpdatedBy = &userID
	}
	return nil
}

// BeforeUpdate audit: güncelleyeni context'ten al.
func (m *BaseModel) BeforeUpdate(tx *gorm.DB) error {
	if userID, ok := UserIDFromContext(tx.Statement.Context); ok && userID != 0 {
		m.UpdatedBy = &userID
	}
	return nil
}
