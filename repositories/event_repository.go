package repositories

import (
	"context"
	"errors"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/queryparams"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IEventRepository etkinlik veritabanı işlemleri için arayüz.
type IEventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	FindByID(ctx context.Context, id uint) (*models.Event, error)
	FindByIDWithRelations(ctx context.Context, id uint) (*models.Event, error)
	FindBySlug(ctx context.Context, slug string) (*models.Event, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	FindAllByUserIDPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Event, int64, error)
	Update(ctx context.Context, event *models.Event) error
	Delete(ctx context.Context, event *models.Event, deletedByUserID uint) error
	CountByUserID(ctx context.Context, userID uint) (int64, error)
}

// EventRepository IEventRepository arayüzünü uygular.
type EventRepository struct {
	db *gorm.DB
}

// NewEventRepository yeni bir EventRepository örneği oluşturur.
func NewEventRepository() IEventRepository {
	return &EventRepository{db: configs.GetDB()}
}

// NewEventRepositoryTx transaction'lı repository oluşturur.
func NewEventRepositoryTx(tx *gorm.DB) IEventRepository {
	return &EventRepository{db: tx}
}

func (r *EventRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir etkinlik kaydı oluşturur. Slug çakışması durumunda
// duplicate-key hatası döner; çağıran yeni slug tahsisiyle tekrar denemelidir.
func (r *EventRepository) Create(ctx context.Context, event *models.Event) error {
	if event == nil {
		return errors.New("oluşturulacak etkinlik nil olamaz")
	}
	return r.getDB(ctx).Create(event).Error
}

// FindByID ID ile etkinliği bulur (ilişkisiz).
func (r *EventRepository) FindByID(ctx context.Context, id uint) (*models.Event, error) {
	if id == 0 {
		return nil, errors.New("geçersiz etkinlik ID")
	}
	var event models.Event
	err := r.getDB(ctx).First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// FindByIDWithRelations etkinliği misafirleri (LCV'leriyle) ve masalarıyla çeker.
func (r *EventRepository) FindByIDWithRelations(ctx context.Context, id uint) (*models.Event, error) {
	if id == 0 {
		return nil, errors.New("geçersiz etkinlik ID")
	}
	var event models.Event
	err := r.getDB(ctx).
		Preload("Guests").
		Preload("Guests.RSVPs").
		Preload("Tables").
		First(&event, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindByIDWithRelations: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// FindBySlug public slug ile etkinliği bulur (misafirler ve LCV'lerle).
// Slug global benzersiz olduğu için sahip filtresi yoktur.
func (r *EventRepository) FindBySlug(ctx context.Context, slug string) (*models.Event, error) {
	if slug == "" {
		return nil, errors.New("aranacak slug boş olamaz")
	}
	var event models.Event
	err := r.getDB(ctx).
		Preload("Guests").
		Preload("Guests.RSVPs").
		Where("slug = ?", slug).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("EventRepository.FindBySlug: DB error", zap.String("slug", slug), zap.Error(err))
		return nil, err
	}
	return &event, nil
}

// SlugExists bir slug'ın kullanımda olup olmadığını GLOBAL kapsamda kontrol eder.
// Soft delete edilmiş kayıtlar da sayılır; silinen etkinliğin slug'ı geri
// kullanıma açılmaz (eski public linkler yanlış etkinliğe düşmesin).
func (r *EventRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	if slug == "" {
		return false, errors.New("kontrol edilecek slug boş olamaz")
	}
	var count int64
	err := r.getDB(ctx).Unscoped().Model(&models.Event{}).Where("slug = ?", slug).Count(&count).Error
	if err != nil {
		configslog.Log.Error("EventRepository.SlugExists: DB error", zap.String("slug", slug), zap.Error(err))
		return false, err
	}
	return count > 0, nil
}

// FindAllByUserIDPaginated kullanıcının etkinliklerini sayfalayarak döner.
func (r *EventRepository) FindAllByUserIDPaginated(ctx context.Context, userID uint, params queryparams.ListParams) ([]models.Event, int64, error) {
	var events []models.Event
	var totalCount int64

	query := r.getDB(ctx).Model(&models.Event{}).Where("creator_user_id = ?", userID)
	if err := query.Count(&totalCount).Error; err != nil {
		configslog.Log.Error("EventRepository.FindAllByUserIDPaginated: count error", zap.Uint("userID", userID), zap.Error(err))
		return nil, 0, err
	}

	sortBy := params.SortBy
	if sortBy != "created_at" && sortBy != "event_date" && sortBy != "title" {
		sortBy = "created_at"
	}
	err := query.
		Preload("Guests").
		Preload("Guests.RSVPs").
		Order(sortBy + " " + params.OrderBy).
		Offset(params.Offset()).
		Limit(params.PerPage).
		Find(&events).Error
	if err != nil {
		configslog.Log.Error("EventRepository.FindAllByUserIDPaginated: DB error", zap.Uint("userID", userID), zap.Error(err))
		return nil, 0, err
	}
	return events, totalCount, nil
}

// Update etkinliği tüm alanlarıyla kaydeder.
func (r *EventRepository) Update(ctx context.Context, event *models.Event) error {
	if event == nil || event.ID == 0 {
		return errors.New("güncellenecek etkinlik geçerli değil")
	}
	return r.getDB(ctx).Save(event).Error
}

// Delete etkinliği soft delete eder; DeletedBy manuel ayarlanır.
func (r *EventRepository) Delete(ctx context.Context, event *models.Event, deletedByUserID uint) error {
	if event == nil || event.ID == 0 {
		return errors.New("silinecek etkinlik geçerli değil")
	}
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if deletedByUserID != 0 {
			if err := tx.Model(event).UpdateColumn("deleted_by", &deletedByUserID).Error; err != nil {
				configslog.Log.Error("EventRepository.Delete: DeletedBy güncellenemedi", zap.Uint("event_id", event.ID), zap.Error(err))
				return err
			}
		}
		result := tx.Delete(event)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}

// CountByUserID kullanıcının etkinlik sayısını döner.
func (r *EventRepository) CountByUserID(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.getDB(ctx).Model(&models.Event{}).Where("creator_user_id = ?", userID).Count(&count).Error
	if err != nil {
		configslog.Log.Error("EventRepository.CountByUserID: DB error", zap.Uint("userID", userID), zap.Error(err))
		return 0, err
	}
	return count, nil
}

// Arayüz uyumluluğu kontrolü
var _ IEventRepository = (*EventRepository)(nil)
