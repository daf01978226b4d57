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

// IPaymentRepository ödeme veritabanı işlemleri için arayüz.
type IPaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	FindByID(ctx context.Context, id uint) (*models.Payment, error)
	FindAllByUserID(ctx context.Context, userID uint) ([]models.Payment, error)
	FindAllByEventID(ctx context.Context, eventID uint) ([]models.Payment, error)
	Update(ctx context.Context, payment *models.Payment) error
}

// PaymentRepository IPaymentRepository arayüzünü uygular.
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository yeni bir PaymentRepository örneği oluşturur.
func NewPaymentRepository() IPaymentRepository {
	return &PaymentRepository{db: configs.GetDB()}
}

// NewPaymentRepositoryTx transaction'lı repository oluşturur.
func NewPaymentRepositoryTx(tx *gorm.DB) IPaymentRepository {
	return &PaymentRepository{db: tx}
}

func (r *PaymentRepository) getDB(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create yeni bir ödeme kaydı oluşturur.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	if payment == nil {
		return errors.New("oluşturulacak ödeme nil olamaz")
	}
	return r.getDB(ctx).Create(payment).Error
}

// FindByID ID ile ödemeyi bulur.
func (r *PaymentRepository) FindByID(ctx context.Context, id uint) (*models.Payment, error) {
	if id == 0 {
		return nil, errors.New("geçersiz ödeme ID")
	}
	var payment models.Payment
	err := r.getDB(ctx).First(&payment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		configslog.Log.Error("PaymentRepository.FindByID: DB error", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}
	return &payment, nil
}

// FindAllByUserID kullanıcının ödeme geçmişini döner.
func (r *PaymentRepository) FindAllByUserID(ctx context.Context, userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.getDB(ctx).Where("user_id = ?", userID).Order("created_at desc").Find(&payments).Error
	if err != nil {
		configslog.Log.Error("PaymentRepository.FindAllByUserID: DB error", zap.Uint("user_id", userID), zap.Error(err))
		return nil, err
	}
	return payments, nil
}

// FindAllByEventID etkinliğin ödeme hareketlerini döner.
func (r *PaymentRepository) FindAllByEventID(ctx context.Context, eventID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.getDB(ctx).Where("event_id = ?", eventID).Order("created_at desc").Find(&payments).Error
	if err != nil {
		configslog.Log.Error("PaymentRepository.FindAllByEventID: DB error", zap.Uint("event_id", eventID), zap.Error(err))
		return nil, err
	}
	return payments, nil
}

// Update ödemeyi kaydeder.
func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	if payment == nil || payment.ID == 0 {
		return errors.New("güncellenecek ödeme geçerli değil")
	}
	return r.getDB(ctx).Save(payment).Error
}

// Arayüz uyumluluğu kontrolü
var _ IPaymentRepository = (*PaymentRepository)(nil)
