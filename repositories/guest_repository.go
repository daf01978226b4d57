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

// IGuestRepository misafir veritabanı işlemleri için arayüz.
type IGuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	FindByID(ctx context.Context, id uint) (*models.Guest, error)
	FindByCustomLink(ctx context.Context, customLink string) (*models.Guest, error)
	CustomLinkExists(ctx context.Context, customLink string) (bool, error)
	FindAllByEventID(ctx context.Context, eventID uint) ([]models.Guest, error)
	CountByEventID(ctx context.Context, eventID uint) (int64, error)
	CountAssignedToTable(ctx context.Context, eventID uint, tableName string) (int64, error)
	Update(ctx context.Context, guest *models.Guest) error
	Delete(ctx context.Context, guest *models.Guest, deletedByUserID uint) error
}

// GuestRepository IGuestRepository arayüzünü uygular.
type GuestRepository struct {
	db *gorm.DB
}

// NewGuestRepository yeni bir GuestRepository örneği oluşturur.
func NewGuestRepository() IGuestRepository {
	return &GuestRepository{db: configs.GetDB()}
}

func (r *GuestRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir misafir kaydı oluşturur. CustomLink çakışmasında
// duplicate-key hatası döner; çağıran yeni token tahsisiyle tekrar denemelidir.
func (r *GuestRepository) Create(ctx context.Context, guest *models.Guest) error {
	if guest == nil {
		return errors.New("oluşturulacak misafir nil olamaz")
	}
	return r.getDB(ctx).Create(guest).Error
}

// FindByID ID ile misafiri bulur (LCV'leriyle).
func (r *GuestRepository) FindByID(ctx context.Context, id uint) (*models.Guest, error) {
	if id == 0 {
		return nil, errors.New("geçersiz misafir ID")
	}
	var guest models.Guest
	err := r.getDB(ctx).Preload("RSVPs").First(&guest, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("GuestRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &guest, nil
}

// FindByCustomLink opak token ile misafiri bulur (etkinliği ve LCV'leriyle).
// Token public davetiye görünümünün tek kimlik bilgisidir.
func (r *GuestRepository) FindByCustomLink(ctx context.Context, customLink string) (*models.Guest, error) {
	if customLink == "" {
		return nil, errors.New("aranacak misafir linki boş olamaz")
	}
	var guest models.Guest
	err := r.getDB(ctx).Preload("Event").Preload("RSVPs").Where("custom_link = ?", customLink).First(&guest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("GuestRepository.FindByCustomLink: DB error", zap.String("custom_link", customLink), zap.Error(err))
		return nil, err
	}
	return &guest, nil
}

// CustomLinkExists bir token'ın kullanımda olup olmadığını GLOBAL kapsamda
// kontrol eder. Soft delete edilmiş misafirler de sayılır.
func (r *GuestRepository) CustomLinkExists(ctx context.Context, customLink string) (bool, error) {
	if customLink == "" {
		return false, errors.New("kontrol edilecek misafir linki boş olamaz")
	}
	var count int64
	err := r.getDB(ctx).Unscoped().Model(&models.Guest{}).Where("custom_link = ?", customLink).Count(&count).Error
	if err != nil {
		configslog.Log.Error("GuestRepository.CustomLinkExists: DB error", zap.String("custom_link", customLink), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// FindAllByEventID etkinliğin misafirlerini LCV'leriyle döner.
func (r *GuestRepository) FindAllByEventID(ctx context.Context, eventID uint) ([]models.Guest, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz etkinlik ID")
	}
	var guests []models.Guest
	err := r.getDB(ctx).Preload("RSVPs").Where("event_id = ?", eventID).Order("created_at asc").Find(&guests).Error
	if err != nil {
		configslog.Log.Error("GuestRepository.FindAllByEventID: DB error", zap.Uint("event_id", eventID), zap.Error(err))
		return nil, err
	}
	return guests, nil
}

// CountByEventID etkinliğin misafir sayısını döner (misafir limiti kontrolü için).
func (r *GuestRepository) CountByEventID(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Guest{}).Where("event_id = ?", eventID).Count(&count).Error
	if err != nil {
		configslog.Log.Error("GuestRepository.CountByEventID: DB error", zap.Uint("event_id", eventID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// CountAssignedToTable verilen masaya atanmış misafir sayısını döner.
func (r *GuestRepository) CountAssignedToTable(ctx context.Context, eventID uint, tableName string) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Guest{}).
		Where("event_id = ? AND table_number = ?", eventID, tableName).
		Count(&count).Error
	if err != nil {
		configslog.Log.Error("GuestRepository.CountAssignedToTable: DB error", zap.Uint("event_id", eventID), zap.String("table", tableName), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// Update misafiri kaydeder. CustomLink bu yolla asla değiştirilmez.
func (r *GuestRepository) Update(ctx context.Context, guest *models.Guest) error {
	if guest == nil || guest.ID == 0 {
		return errors.New("güncellenecek misafir geçerli değil")
	}
	return r.getDB(ctx).Save(guest).Error
}

// Delete misafiri soft delete eder; DeletedBy manuel ayarlanır.
func (r *GuestRepository) Delete(ctx context.Context, guest *models.Guest, deletedByUserID uint) error {
	if guest == nil || guest.ID == 0 {
		return errors.New("silinecek misafir geçerli değil")
	}
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if deletedByUserID != 0 {
			if err := tx.Model(guest).UpdateColumn("deleted_by", &deletedByUserID).Error; err != nil {
				configslog.Log.Error("GuestRepository.Delete: DeletedBy güncellenemedi", zap.Uint("guest_id", guest.ID), zap.Error(err))
				return err
			}
		}
		result := tx.Delete(guest)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// Arayüz uyumluluğu kontrolü
var _ IGuestRepository = (*GuestRepository)(nil)
