package services

import (
	"context"
	"errors"
	"time"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/repositories"

	"go.uber.org/zap"
)

// RSVPServiceError özel servis hataları
type RSVPServiceError string

func (e RSVPServiceError) Error() string { return string(e) }

const (
	ErrRSVPInvalidStatus    RSVPServiceError = "geçersiz LCV durumu"
	ErrRSVPInvalidPartySize RSVPServiceError = "kişi sayısı 0 ile 20 arasında olmalıdır"
	ErrRSVPNoteTooLong      RSVPServiceError = "not en fazla 1000 karakter olabilir"
	ErrRSVPSubmitFailed     RSVPServiceError = "LCV yanıtı kaydedilemedi"
)

const maxRSVPNoteLength = 1000

// SubmitRSVPInput misafirin davet sayfasından gönderdiği yanıttır.
type SubmitRSVPInput struct {
	Status    string `json:"status"`
	PartySize int    `json:"partySize"`
	Note      string `json:"note"`
}

// IRSVPService LCV işlemleri için arayüz.
type IRSVPService interface {
	SubmitByCustomLink(ctx context.Context, customLink string, input SubmitRSVPInput) (*models.RSVP, error)
	GetByCustomLink(ctx context.Context, customLink string) (*models.RSVP, error)
	ListForEvent(ctx context.Context, eventID uint, requestingUserID uint) ([]RSVPDetailDTO, error)
}

// RSVPService IRSVPService arayüzünü uygular.
type RSVPService struct {
	repo         repositories.IRSVPRepository
	guestService IGuestService
	eventRepo    repositories.IEventRepository
	userRepo     repositories.IUserRepository
}

// NewRSVPService yeni bir RSVPService örneği oluşturur.
func NewRSVPService() IRSVPService {
	return NewRSVPServiceWithDeps(repositories.NewRSVPRepository(), NewGuestService(),
		repositories.NewEventRepository(), repositories.NewUserRepository())
}

// NewRSVPServiceWithDeps bağımlılıkları dışarıdan alır (testler için).
func NewRSVPServiceWithDeps(repo repositories.IRSVPRepository, guestService IGuestService, eventRepo repositories.IEventRepository, userRepo repositories.IUserRepository) IRSVPService {
	return &RSVPService{repo: repo, guestService: guestService, eventRepo: eventRepo, userRepo: userRepo}
}

// SubmitByCustomLink misafirin LCV yanıtını kaydeder. Misafir başına tek
// kayıt tutulur; önceki yanıt varsa üzerine yazılır, son gönderim geçerlidir.
func (s *RSVPService) SubmitByCustomLink(ctx context.Context, customLink string, input SubmitRSVPInput) (*models.RSVP, error) {
	status := models.RSVPStatus(input.Status)
	if !status.IsValid() {
		return nil, ErrRSVPInvalidStatus
	}
	if input.PartySize < 0 || input.PartySize > models.MaxPartySize {
		return nil, ErrRSVPInvalidPartySize
	}
	if len(input.Note) > maxRSVPNoteLength {
		return nil, ErrRSVPNoteTooLong
	}

	guest, err := s.guestService.GetGuestByCustomLink(ctx, customLink)
	if err != nil {
		return nil, err
	}

	rsvp, err := s.repo.FindByGuestID(ctx, guest.ID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrRSVPSubmitFailed
		}
		rsvp = &models.RSVP{GuestID: guest.ID}
	}

	rsvp.Status = status
	rsvp.PartySize = input.PartySize
	rsvp.Note = input.Note
	rsvp.SubmittedAt = time.Now()

	if err := s.repo.Save(ctx, rsvp); err != nil {
		configslog.Log.Error("SubmitByCustomLink: repository hatası", zap.Uint("guestID", guest.ID), zap.Error(err))
		return nil, ErrRSVPSubmitFailed
	}
	configslog.SLog.Infof("LCV kaydedildi: Misafir %d, Durum %s", guest.ID, status)
	return rsvp, nil
}

// GetByCustomLink misafirin mevcut yanıtını döner; yanıt yoksa davet
// sayfasının ön doldurması için Pending durumlu boş bir kayıt üretilir.
func (s *RSVPService) GetByCustomLink(ctx context.Context, customLink string) (*models.RSVP, error) {
	guest, err := s.guestService.GetGuestByCustomLink(ctx, customLink)
	if err != nil {
		return nil, err
	}
	rsvp, err := s.repo.FindByGuestID(ctx, guest.ID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return &models.RSVP{GuestID: guest.ID, Status: models.RSVPStatusPending, PartySize: 1}, nil
		}
		return nil, err
	}
	return rsvp, nil
}

// ListForEvent etkinlik sahibinin gördüğü LCV listesini döner.
func (s *RSVPService) ListForEvent(ctx context.Context, eventID uint, requestingUserID uint) ([]RSVPDetailDTO, error) {
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

	rsvps, err := s.repo.FindAllByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	out := make([]RSVPDetailDTO, 0, len(rsvps))
	for i := range rsvps {
		rsvp := &rsvps[i]
		out = append(out, RSVPDetailDTO{
			GuestID:     rsvp.GuestID,
			GuestName:   rsvp.Guest.Name,
			Status:      string(rsvp.Status),
			PartySize:   rsvp.PartySize,
			Note:        rsvp.Note,
			SubmittedAt: rsvp.SubmittedAt,
		})
	}
	return out, nil
}

// Arayüz uyumluluğu kontrolü
var _ IRSVPService = (*RSVPService)(nil)
