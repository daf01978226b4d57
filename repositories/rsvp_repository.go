package repositories

import (
	"context"
	"errors"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IRSVPRepository LCV veritabanı işlemleri için arayüz.
type IRSVPRepository interface {
	FindByGuestID(ctx context.Context, guestID uint) (*models.RSVP, error)
	Save(ctx context.Context, rsvp *models.RSVP) error
	FindAllByEventID(ctx context.Context, eventID uint) ([]models.RSVP, error)
}

// RSVPRepository IRSVPRepository arayüzünü uygular.
type RSVPRepository struct {
	db *gorm.DB
}

// NewRSVPRepository yeni bir RSVPRepository örneği oluşturur.
func NewRSVPRepository() IRSVPRepository {
	return &RSVPRepository{db: configs.GetDB()}
}

func (r *RSVPRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// FindByGuestID misafirin mevcut LCV kaydını bulur.
// Misafir başına tek satır tutulur (guest_id unique).
func (r *RSVPRepository) FindByGuestID(ctx context.Context, guestID uint) (*models.RSVP, error) {
	if guestID == 0 {
		return nil, errors.New("geçersiz misafir ID")
	}
	var rsvp models.RSVP
	err := r.getDB(ctx).Where("guest_id = ?", guestID).First(&rsvp).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("RSVPRepository.FindByGuestID: DB error", zap.Uint("guest_id", guestID), zap.Error(err))
		return nil, err
	}
	return &rsvp, nil
}

// Save LCV kaydını oluşturur veya günceller (son yanıt kazanır).
func (r *RSVPRepository) Save(ctx context.Context, rsvp *models.RSVP) error {
	if rsvp == nil {
		return errors.New("kaydedilecek LCV nil olamaz")
	}
	return r.getDB(ctx).Save(rsvp).Error
}

// FindAllByEventID etkinliğin tüm LCV'lerini misafir tablosu üzerinden döner.
func (r *RSVPRepository) FindAllByEventID(ctx context.Context, eventID uint) ([]models.RSVP, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz etkinlik ID")
	}
	var rsvps []models.RSVP
	err := r.getDB(ctx).
		Preload("Guest").
		Joins("JOIN guests ON guests.id = rsvps.guest_id AND guests.deleted_at IS NULL").
		Where("guests.event_id = ?", eventID).
		Order("rsvps.submitted_at DESC").
		Find(&rsvps).Error
	if err != nil {
		configslog.Log.Error("RSVPRepository.FindAllByEventID: DB error", zap.Uint("event_id", eventID), zap.Error(err))
		return nil, err
	}
	return rsvps, nil
}

// Arayüz uyumluluğu kontrolü
var _ IRSVPRepository = (*RSVPRepository)(nil)
