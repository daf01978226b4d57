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

// ITableRepository masa veritabanı işlemleri için arayüz.
type ITableRepository interface {
	Create(ctx context.Context, table *models.EventTable) error
	FindByID(ctx context.Context, id uint) (*models.EventTable, error)
	FindAllByEventID(ctx context.Context, eventID uint) ([]models.EventTable, error)
	Update(ctx context.Context, table *models.EventTable) error
	Delete(ctx context.Context, table *models.EventTable, deletedByUserID uint) error
}

// TableRepository ITableRepository arayüzünü uygular.
type TableRepository struct {
	db *gorm.DB
}

// NewTableRepository yeni bir TableRepository örneği oluşturur.
func NewTableRepository() ITableRepository {
	return &TableRepository{db: configs.GetDB()}
}

func (r *TableRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir masa kaydı oluşturur.
func (r *TableRepository) Create(ctx context.Context, table *models.EventTable) error {
	if table == nil {
		return errors.New("oluşturulacak masa nil olamaz")
	}
	return r.getDB(ctx).Create(table).Error
}

// FindByID ID ile masayı bulur.
func (r *TableRepository) FindByID(ctx context.Context, id uint) (*models.EventTable, error) {
	if id == 0 {
		return nil, errors.New("geçersiz masa ID")
	}
	var table models.EventTable
	err := r.getDB(ctx).First(&table, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("TableRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &table, nil
}

// FindAllByEventID etkinliğin masalarını tanım sırasıyla döner.
func (r *TableRepository) FindAllByEventID(ctx context.Context, eventID uint) ([]models.EventTable, error) {
	if eventID == 0 {
		return nil, errors.New("geçersiz etkinlik ID")
	}
	var tables []models.EventTable
	err := r.getDB(ctx).Where("event_id = ?", eventID).Order("created_at asc").Find(&tables).Error
	if err != nil {
		configslog.Log.Error("TableRepository.FindAllByEventID: DB error", zap.Uint("event_id", eventID), zap.Error(err))
		return nil, err
	}
	return tables, nil
}

// Update masayı kaydeder.
func (r *TableRepository) Update(ctx context.Context, table *models.EventTable) error {
	if table == nil || table.ID == 0 {
		return errors.New("güncellenecek masa geçerli değil")
	}
	return r.getDB(ctx).Save(table).Error
}

// Delete masayı soft delete eder; DeletedBy manuel ayarlanır.
func (r *TableRepository) Delete(ctx context.Context, table *models.EventTable, deletedByUserID uint) error {
	if table == nil || table.ID == 0 {
		return errors.New("silinecek masa geçerli değil")
	}
	db := r.getDB(ctx)
	return db.Transaction(func(tx *gorm.DB) error {
		if deletedByUserID != 0 {
			if err := tx.Model(table).UpdateColumn("deleted_by", &deletedByUserID).Error; err != nil {
				configslog.Log.Error("TableRepository.Delete: DeletedBy güncellenemedi", zap.Uint("table_id", table.ID), zap.Error(err))
				return err
			}
		}
		result := tx.Delete(table)
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
var _ ITableRepository = (*TableRepository)(nil)
