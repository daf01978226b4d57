package services

import (
	"context"
	"errors"
	"time"

	"etkinlik.link/configs"
	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/repositories"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// PaymentServiceError özel servis hataları
type PaymentServiceError string

func (e PaymentServiceError) Error() string { return string(e) }

const (
	ErrPaymentNotFound      PaymentServiceError = "ödeme kaydı bulunamadı"
	ErrPaymentAlreadyPaid   PaymentServiceError = "bu etkinliğin ödemesi zaten tamamlanmış"
	ErrPaymentRecordFailed  PaymentServiceError = "ödeme kaydedilemedi"
	ErrPaymentInvalidStatus PaymentServiceError = "geçersiz ödeme durumu"
)

// IPaymentService ödeme işlemleri için arayüz.
type IPaymentService interface {
	RecordPayment(ctx context.Context, eventID uint, requestingUserID uint, description string) (*models.Payment, error)
	ListPaymentsForUser(ctx context.Context, userID uint) ([]models.Payment, error)
	ListPaymentsForEvent(ctx context.Context, eventID uint, requestingUserID uint) ([]models.Payment, error)
}

// PaymentService IPaymentService arayüzünü uygular.
type PaymentService struct {
	db             *gorm.DB
	repo           repositories.IPaymentRepository
	eventRepo      repositories.IEventRepository
	userRepo       repositories.IUserRepository
	packageService IPackageService
}

// NewPaymentService yeni bir PaymentService örneği oluşturur.
func NewPaymentService() IPaymentService {
	return &PaymentService{
		db:             configs.GetDB(),
		repo:           repositories.NewPaymentRepository(),
		eventRepo:      repositories.NewEventRepository(),
		userRepo:       repositories.NewUserRepository(),
		packageService: NewPackageService(),
	}
}

// NewPaymentServiceWithDeps bağımlılıkları dışarıdan alır (testler için).
// db nil bırakılırsa yazımlar transaction'sız, verilen repo'lar üzerinden yürür.
func NewPaymentServiceWithDeps(repo repositories.IPaymentRepository, eventRepo repositories.IEventRepository, userRepo repositories.IUserRepository, packageService IPackageService) IPaymentService {
	return &PaymentService{repo: repo, eventRepo: eventRepo, userRepo: userRepo, packageService: packageService}
}

func (s *PaymentService) ownedEvent(ctx context.Context, eventID, requestingUserID uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if event.CreatorUserID != requestingUserID {
		user, uErr := s.userRepo.FindByID(ctx, requestingUserID)
		if uErr != nil || !user.IsSystem {
			return nil, ErrEventForbidden
		}
	}
	return event, nil
}

// RecordPayment etkinliğin snapshot tutarı üzerinden tamamlanmış bir
// ödeme kaydeder ve etkinliği ödenmiş olarak işaretler. Tutar her zaman
// etkinlikteki TotalAmount'tan okunur; istemciden tutar alınmaz.
func (s *PaymentService) RecordPayment(ctx context.Context, eventID uint, requestingUserID uint, description string) (*models.Payment, error) {
	event, err := s.ownedEvent(ctx, eventID, requestingUserID)
	if err != nil {
		return nil, err
	}
	if event.IsPaid {
		return nil, ErrPaymentAlreadyPaid
	}

	planName := s.packageService.PackageName(event.PackageTier)
	if planName == "" {
		planName = event.PackageTier.String()
	}

	now := time.Now()
	payment := &models.Payment{
		UserID:      event.CreatorUserID,
		EventID:     event.ID,
		Plan:        planName,
		Amount:      event.TotalAmount,
		Status:      models.PaymentStatusCompleted,
		PaidAt:      &now,
		Description: description,
	}

	ctxWithUser := models.ContextWithUserID(ctx, requestingUserID)
	markPaid := func(paymentRepo repositories.IPaymentRepository, eventRepo repositories.IEventRepository) error {
		if err := paymentRepo.Create(ctxWithUser, payment); err != nil {
			return err
		}
		event.IsPaid = true
		event.PaidAt = &now
		event.PaymentStatus = models.PaymentStatusCompleted
		return eventRepo.Update(ctxWithUser, event)
	}

	// Ödeme satırı ve etkinlik işareti tek transaction'da yazılır; biri
	// başarısızsa ikisi de geri alınır.
	var saveErr error
	if s.db != nil {
		saveErr = s.db.Transaction(func(tx *gorm.DB) error {
			return markPaid(repositories.NewPaymentRepositoryTx(tx), repositories.NewEventRepositoryTx(tx))
		})
	} else {
		saveErr = markPaid(s.repo, s.eventRepo)
	}
	if saveErr != nil {
		configslog.Log.Error("RecordPayment: ödeme kaydedilemedi", zap.Uint("eventID", eventID), zap.Error(saveErr))
		return nil, ErrPaymentRecordFailed
	}

	configslog.SLog.Infof("Ödeme kaydedildi: Etkinlik %d, Tutar %s", eventID, payment.Amount.StringFixed(2))
	return payment, nil
}

// ListPaymentsForUser kullanıcının kendi ödeme geçmişini döner.
func (s *PaymentService) ListPaymentsForUser(ctx context.Context, userID uint) ([]models.Payment, error) {
	return s.repo.FindAllByUserID(ctx, userID)
}

// ListPaymentsForEvent etkinliğin ödeme hareketlerini döner.
func (s *PaymentService) ListPaymentsForEvent(ctx context.Context, eventID uint, requestingUserID uint) ([]models.Payment, error) {
	if _, err := s.ownedEvent(ctx, eventID, requestingUserID); err != nil {
		return nil, err
	}
	return s.repo.FindAllByEventID(ctx, eventID)
}

// Arayüz uyumluluğu kontrolü
var _ IPaymentService = (*PaymentService)(nil)
