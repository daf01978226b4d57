package services

import (
	"context"
	"errors"
	"fmt"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/identifier"
	"etkinlik.link/repositories"

	"go.uber.org/zap"
)

// GuestServiceError özel servis hataları
type GuestServiceError string

func (e GuestServiceError) Error() string { return string(e) }

const (
	ErrGuestNotFound      GuestServiceError = "misafir bulunamadı"
	ErrGuestNameRequired  GuestServiceError = "misafir adı zorunludur"
	ErrGuestInvalidInput  GuestServiceError = "geçersiz misafir girdisi"
	ErrGuestForbidden     GuestServiceError = "bu işlem için yetkiniz yok"
	ErrGuestLimitExceeded GuestServiceError = "paketinizin misafir sınırına ulaştınız"
	ErrGuestCreateFailed  GuestServiceError = "misafir eklenemedi"
	ErrGuestUpdateFailed  GuestServiceError = "misafir güncellenemedi"
	ErrGuestDeleteFailed  GuestServiceError = "misafir silinemedi"
	// ErrGuestLinkExhausted token tahsis bütçesi aşıldı; sunucu anomalisi.
	ErrGuestLinkExhausted GuestServiceError = "misafir için benzersiz link üretilemedi"
)

// Token yarışına karşı kayıt retry üst sınırı.
const maxLinkSaveRetries = 3

// GuestInput misafir ekleme/güncelleme girdisidir.
type GuestInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	TableNumber string `json:"tableNumber"`
}

// IGuestService misafir işlemleri için arayüz.
type IGuestService interface {
	AddGuest(ctx context.Context, eventID uint, requestingUserID uint, input GuestInput) (*models.Guest, error)
	BulkImportGuests(ctx context.Context, eventID uint, requestingUserID uint, inputs []GuestInput) (*BulkImportResultDTO, error)
	ListGuests(ctx context.Context, eventID uint, requestingUserID uint) ([]GuestDTO, error)
	UpdateGuest(ctx context.Context, eventID, guestID uint, requestingUserID uint, input GuestInput) (*models.Guest, error)
	DeleteGuest(ctx context.Context, eventID, guestID uint, requestingUserID uint) error
	GetGuestByCustomLink(ctx context.Context, customLink string) (*models.Guest, error)
	GuestResponse(guest *models.Guest) GuestDTO
}

// GuestService IGuestService arayüzünü uygular.
type GuestService struct {
	repo           repositories.IGuestRepository
	eventRepo      repositories.IEventRepository
	userRepo       repositories.IUserRepository
	packageService IPackageService
	allocator      *identifier.Allocator
}

// NewGuestService yeni bir GuestService örneği oluşturur.
func NewGuestService() IGuestService {
	return NewGuestServiceWithDeps(
		repositories.NewGuestRepository(),
		repositories.NewEventRepository(),
		repositories.NewUserRepository(),
		NewPackageService(),
	)
}

// NewGuestServiceWithDeps bağımlılıkları dışarıdan alır (testler için).
func NewGuestServiceWithDeps(repo repositories.IGuestRepository, eventRepo repositories.IEventRepository, userRepo repositories.IUserRepository, packageService IPackageService) IGuestService {
	return &GuestService{
		repo:           repo,
		eventRepo:      eventRepo,
		userRepo:       userRepo,
		packageService: packageService,
		allocator:      identifier.NewAllocator(repo.CustomLinkExists, identifier.DefaultMaxAttempts),
	}
}

// ownedEvent etkinliği getirir ve sahipliği doğrular.
func (s *GuestService) ownedEvent(ctx context.Context, eventID, requestingUserID uint) (*models.Event, error) {
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
			return nil, ErrGuestForbidden
		}
	}
	return event, nil
}

// AddGuest etkinliğe misafir ekler. Paket snapshot'ındaki seviyenin misafir
// sınırı aşılmışsa reddedilir. CustomLink kriptografik rastgele tahsis
// edilir; kayıt anında token yarışı kaybedilirse tahsis sınırlı sayıda
// baştan denenir (asıl garanti global unique index'tir).
func (s *GuestService) AddGuest(ctx context.Context, eventID uint, requestingUserID uint, input GuestInput) (*models.Guest, error) {
	if input.Name == "" {
		return nil, ErrGuestNameRequired
	}
	event, err := s.ownedEvent(ctx, eventID, requestingUserID)
	if err != nil {
		return nil, err
	}

	currentCount, err := s.repo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, ErrGuestCreateFailed
	}
	// Yeni misafir eklendiğinde sınır aşılacaksa reddet.
	if s.packageService.IsGuestLimitExceeded(event.PackageTier, int(currentCount)+1) {
		return nil, ErrGuestLimitExceeded
	}

	ctxWithUser := models.ContextWithUserID(ctx, requestingUserID)

	for attempt := 0; attempt < maxLinkSaveRetries; attempt++ {
		customLink, allocErr := s.allocator.AllocateGuestLink(ctx)
		if allocErr != nil {
			if errors.Is(allocErr, identifier.ErrAllocationExhausted) {
				configslog.Log.Error("AddGuest: link tahsis bütçesi aşıldı", zap.Uint("eventID", eventID))
				return nil, ErrGuestLinkExhausted
			}
			return nil, ErrGuestCreateFailed
		}

		guest := &models.Guest{
			EventID:     eventID,
			Name:        input.Name,
			Email:       input.Email,
			CustomLink:  customLink,
			TableNumber: input.TableNumber,
		}
		createErr := s.repo.Create(ctxWithUser, guest)
		if createErr == nil {
			configslog.SLog.Infof("Misafir eklendi: ID %d, Etkinlik %d", guest.ID, eventID)
			return guest, nil
		}
		if repositories.IsDuplicateKey(createErr) {
			configslog.SLog.Warnf("AddGuest: link yarışı kaybedildi, tahsis tekrarlanıyor")
			continue
		}
		configslog.Log.Error("AddGuest: repository hatası", zap.Uint("eventID", eventID), zap.Error(createErr))
		return nil, ErrGuestCreateFailed
	}
	return nil, ErrGuestLinkExhausted
}

// BulkImportGuests misafirleri toplu ekler; satır bazlı hatalar toplanır,
// geçerli satırlar işlenmeye devam eder.
func (s *GuestService) BulkImportGuests(ctx context.Context, eventID uint, requestingUserID uint, inputs []GuestInput) (*BulkImportResultDTO, error) {
	if _, err := s.ownedEvent(ctx, eventID, requestingUserID); err != nil {
		return nil, err
	}

	result := &BulkImportResultDTO{Errors: []string{}}
	for i, input := range inputs {
		if _, err := s.AddGuest(ctx, eventID, requestingUserID, input); err != nil {
			result.ErrorCount++
			result.Errors = append(result.Errors, fmt.Sprintf("satır %d (%s): %v", i+1, input.Name, err))
			// Misafir sınırına çarpıldıysa kalan satırlar da başarısız olur.
			if errors.Is(err, ErrGuestLimitExceeded) {
				result.ErrorCount += len(inputs) - i - 1
				result.Errors = append(result.Errors, "misafir sınırı nedeniyle kalan satırlar atlandı")
				break
			}
			continue
		}
		result.SuccessCount++
	}
	return result, nil
}

// ListGuests etkinliğin misafirlerini son LCV durumlarıyla döner.
func (s *GuestService) ListGuests(ctx context.Context, eventID uint, requestingUserID uint) ([]GuestDTO, error) {
	if _, err := s.ownedEvent(ctx, eventID, requestingUserID); err != nil {
		return nil, err
	}
	guests, err := s.repo.FindAllByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	out := make([]GuestDTO, 0, len(guests))
	for i := range guests {
		out = append(out, s.GuestResponse(&guests[i]))
	}
	return out, nil
}

// UpdateGuest misafir bilgilerini günceller. CustomLink asla değişmez.
func (s *GuestService) UpdateGuest(ctx context.Context, eventID, guestID uint, requestingUserID uint, input GuestInput) (*models.Guest, error) {
	if input.Name == "" {
		return nil, ErrGuestNameRequired
	}
	if _, err := s.ownedEvent(ctx, eventID, requestingUserID); err != nil {
		return nil, err
	}
	guest, err := s.repo.FindByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	if guest.EventID != eventID {
		return nil, ErrGuestNotFound
	}

	guest.Name = input.Name
	guest.Email = input.Email
	guest.TableNumber = input.TableNumber

	ctxWithUser := models.ContextWithUserID(ctx, requestingUserID)
	if err := s.repo.Update(ctxWithUser, guest); err != nil {
		configslog.Log.Error("UpdateGuest: repository hatası", zap.Uint("guestID", guestID), zap.Error(err))
		return nil, ErrGuestUpdateFailed
	}
	return guest, nil
}

// DeleteGuest misafiri soft delete eder.
func (s *GuestService) DeleteGuest(ctx context.Context, eventID, guestID uint, requestingUserID uint) error {
	if _, err := s.ownedEvent(ctx, eventID, requestingUserID); err != nil {
		return err
	}
	guest, err := s.repo.FindByID(ctx, guestID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrGuestNotFound
		}
		return err
	}
	if guest.EventID != eventID {
		return ErrGuestNotFound
	}
	if err := s.repo.Delete(ctx, guest, requestingUserID); err != nil {
		configslog.Log.Error("DeleteGuest: repository hatası", zap.Uint("guestID", guestID), zap.Error(err))
		return ErrGuestDeleteFailed
	}
	return nil
}

// GetGuestByCustomLink opak token ile misafiri public erişim için getirir.
// Token geçersiz formatta ise veritabanına inmeden bulunamadı döner.
func (s *GuestService) GetGuestByCustomLink(ctx context.Context, customLink string) (*models.Guest, error) {
	if len(customLink) != identifier.GuestLinkLength {
		return nil, ErrGuestNotFound
	}
	guest, err := s.repo.FindByCustomLink(ctx, customLink)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	return guest, nil
}

// GuestResponse misafiri son LCV durumuyla DTO'ya çevirir.
func (s *GuestService) GuestResponse(guest *models.Guest) GuestDTO {
	status := string(models.RSVPStatusPending)
	if len(guest.RSVPs) > 0 {
		status = string(guest.RSVPs[0].Status)
	}
	return GuestDTO{
		ID:          guest.ID,
		Name:        guest.Name,
		Email:       guest.Email,
		CustomLink:  guest.CustomLink,
		TableNumber: guest.TableNumber,
		RsvpStatus:  status,
	}
}

// Arayüz uyumluluğu kontrolü
var _ IGuestService = (*GuestService)(nil)
