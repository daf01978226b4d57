package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/pkg/customfields"
	"etkinlik.link/pkg/identifier"
	"etkinlik.link/pkg/pricing"
	"etkinlik.link/pkg/queryparams"
	"etkinlik.link/repositories"

	"go.uber.org/zap"
)

// EventServiceError özel servis hataları
type EventServiceError string

func (e EventServiceError) Error() string { return string(e) }

const (
	ErrEventNotFound       EventServiceError = "etkinlik bulunamadı"
	ErrEventCreationFailed EventServiceError = "etkinlik oluşturulamadı"
	ErrEventUpdateFailed   EventServiceError = "etkinlik güncellenemedi"
	ErrEventDeletionFailed EventServiceError = "etkinlik silinemedi"
	ErrEventForbidden      EventServiceError = "bu işlem için yetkiniz yok"
	ErrEventInvalidInput   EventServiceError = "geçersiz girdi verisi"
	ErrEventTitleRequired  EventServiceError = "etkinlik başlığı zorunludur"
	ErrEventDateInPast     EventServiceError = "etkinlik tarihi gelecekte olmalıdır"
	// ErrEventSlugExhausted tahsis döngüsü bütçesini aştı; kullanıcı hatası
	// değil, alarm verilmeye değer bir sunucu anomalisidir.
	ErrEventSlugExhausted EventServiceError = "etkinlik için benzersiz slug üretilemedi"
)

// Slug tahsisinin kayıt anındaki yarışına karşı üst sınır: veritabanının
// unique index'i ihlal bildirirse tahsis baştan denenir.
const maxSlugSaveRetries = 3

// CreateEventInput etkinlik oluşturma girdisidir.
type CreateEventInput struct {
	Title          string              `json:"title"`
	EventDate      time.Time           `json:"eventDate"`
	Location       string              `json:"location"`
	Description    string              `json:"description"`
	Theme          string              `json:"theme"`
	MusicURL       string              `json:"musicUrl"`
	IsPublic       bool                `json:"isPublic"`
	EventType      models.EventType    `json:"eventType"`
	CustomFields   string              `json:"customFields"`
	PackageType    pricing.PackageTier `json:"packageType"`
	SelectedAddOns []string            `json:"selectedAddOns"`
}

// UpdateEventInput kısmi güncelleme girdisidir; nil alanlar dokunulmaz.
type UpdateEventInput struct {
	Title        *string           `json:"title"`
	EventDate    *time.Time        `json:"eventDate"`
	Location     *string           `json:"location"`
	Description  *string           `json:"description"`
	Theme        *string           `json:"theme"`
	MusicURL     *string           `json:"musicUrl"`
	IsPublic     *bool             `json:"isPublic"`
	EventType    *models.EventType `json:"eventType"`
	CustomFields *string           `json:"customFields"`
	// PackageType verilirse fiyat snapshot'ı yeniden hesaplanır ve ödeme
	// durumu Pending'e döner. SelectedAddOns yalnız bu durumda uygulanır.
	PackageType    *pricing.PackageTier `json:"packageType"`
	SelectedAddOns []string             `json:"selectedAddOns"`
}

// IEventService etkinlik işlemleri için arayüz.
type IEventService interface {
	CreateEvent(ctx context.Context, creatorUserID uint, input CreateEventInput) (*models.Event, error)
	GetEventByID(ctx context.Context, id uint, requestingUserID uint) (*models.Event, error)
	GetEventBySlug(ctx context.Context, slug string) (*models.Event, error)
	GetEventsForUser(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	UpdateEvent(ctx context.Context, id uint, updatingUserID uint, input UpdateEventInput) (*models.Event, error)
	DeleteEvent(ctx context.Context, id uint, deletingUserID uint) error
	GetEventStats(ctx context.Context, id uint, requestingUserID uint) (*EventStatsDTO, error)
	CanUseFeature(event *models.Event, featureKey string) bool
	BuildEventResponse(event *models.Event) *EventResponseDTO
	BuildPublicEventResponse(event *models.Event) *PublicEventDTO
}

// EventService IEventService arayüzünü uygular.
type EventService struct {
	repo           repositories.IEventRepository
	userRepo       repositories.IUserRepository
	packageService IPackageService
	allocator      *identifier.Allocator
}

// NewEventService yeni bir EventService örneği oluşturur.
func NewEventService() IEventService {
	repo := repositories.NewEventRepository()
	return NewEventServiceWithDeps(repo, repositories.NewUserRepository(), NewPackageService())
}

// NewEventServiceWithDeps bağımlılıkları dışarıdan alır (testler için).
func NewEventServiceWithDeps(repo repositories.IEventRepository, userRepo repositories.IUserRepository, packageService IPackageService) IEventService {
	return &EventService{
		repo:           repo,
		userRepo:       userRepo,
		packageService: packageService,
		allocator:      identifier.NewAllocator(repo.SlugExists, identifier.DefaultMaxAttempts),
	}
}

// ValidateCreateEventInput temel validasyonları yapar.
func ValidateCreateEventInput(input CreateEventInput) error {
	if input.Title == "" {
		return ErrEventTitleRequired
	}
	if input.EventDate.IsZero() || !input.EventDate.After(time.Now().UTC()) {
		return ErrEventDateInPast
	}
	if !input.EventType.IsValid() {
		return fmt.Errorf("%w: tanımsız etkinlik türü", ErrEventInvalidInput)
	}
	if err := customfields.Validate(input.EventType.Key(), input.CustomFields); err != nil {
		return fmt.Errorf("%w: %v", ErrEventInvalidInput, err)
	}
	return nil
}

// CreateEvent yeni bir etkinlik oluşturur: başlıktan global benzersiz slug
// tahsis eder, paket+ek hizmet fiyatını hesaplayıp etkinlik üzerine
// snapshot alır. Kayıt anında slug yarışı kaybedilirse (unique index
// ihlali) tahsis sınırlı sayıda baştan denenir.
func (s *EventService) CreateEvent(ctx context.Context, creatorUserID uint, input CreateEventInput) (*models.Event, error) {
	if creatorUserID == 0 {
		return nil, fmt.Errorf("%w: geçersiz oluşturan kullanıcı ID", ErrEventInvalidInput)
	}
	if err := ValidateCreateEventInput(input); err != nil {
		return nil, err
	}

	// Fiyat snapshot'ı: bilinmeyen seviye 400'e çevrilecek hata üretir,
	// bilinmeyen ek hizmet anahtarları sessizce sıfır sayılır.
	breakdown, err := s.packageService.CalculatePrice(input.PackageType, input.SelectedAddOns)
	if err != nil {
		return nil, err
	}

	ctxWithUser := models.ContextWithUserID(ctx, creatorUserID)

	for attempt := 0; attempt < maxSlugSaveRetries; attempt++ {
		slug, allocErr := s.allocator.AllocateSlug(ctx, input.Title)
		if allocErr != nil {
			if errors.Is(allocErr, identifier.ErrAllocationExhausted) {
				configslog.Log.Error("CreateEvent: slug tahsis bütçesi aşıldı",
					zap.String("title", input.Title), zap.Uint("creatorUserID", creatorUserID))
				return nil, ErrEventSlugExhausted
			}
			return nil, ErrEventCreationFailed
		}

		event := &models.Event{
			CreatorUserID: creatorUserID,
			Title:         input.Title,
			Slug:          slug,
			EventDate:     input.EventDate.UTC(),
			Location:      input.Location,
			Description:   input.Description,
			Theme:         input.Theme,
			MusicURL:      input.MusicURL,
			IsPublic:      input.IsPublic,
			EventType:     input.EventType,
			CustomFields:  input.CustomFields,
			PackageTier:   input.PackageType,
			PackagePrice:  breakdown.PackagePrice,
			TotalAmount:   breakdown.TotalPrice,
			PaymentStatus: models.PaymentStatusPending,
		}
		event.SetAddOnsList(input.SelectedAddOns)
		if event.CustomFields == "" {
			event.CustomFields = "{}"
		}

		createErr := s.repo.Create(ctxWithUser, event)
		if createErr == nil {
			configslog.SLog.Infof("Etkinlik oluşturuldu: ID %d, Slug: %s (Oluşturan: %d)", event.ID, event.Slug, creatorUserID)
			return event, nil
		}
		if repositories.IsDuplicateKey(createErr) {
			// Yarış: eşzamanlı bir istek aynı slug'ı kaptı. Yeni tahsisle dene.
			configslog.SLog.Warnf("CreateEvent: slug yarışı kaybedildi (%s), tahsis tekrarlanıyor", slug)
			continue
		}
		configslog.Log.Error("CreateEvent: repository hatası", zap.Error(createErr), zap.Uint("creatorUserID", creatorUserID))
		return nil, ErrEventCreationFailed
	}

	configslog.Log.Error("CreateEvent: slug yarışı retry bütçesi aşıldı", zap.String("title", input.Title))
	return nil, ErrEventSlugExhausted
}

// authorize etkinliğin sahibini veya sistem kullanıcısını doğrular.
func (s *EventService) authorize(ctx context.Context, event *models.Event, requestingUserID uint) error {
	if event.CreatorUserID == requestingUserID {
		return nil
	}
	user, err := s.userRepo.FindByID(ctx, requestingUserID)
	if err != nil || !user.IsSystem {
		return ErrEventForbidden
	}
	return nil
}

// GetEventByID etkinliği ilişkileriyle getirir; sahip veya sistem kullanıcısı erişebilir.
func (s *EventService) GetEventByID(ctx context.Context, id uint, requestingUserID uint) (*models.Event, error) {
	event, err := s.repo.FindByIDWithRelations(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if err := s.authorize(ctx, event, requestingUserID); err != nil {
		return nil, err
	}
	return event, nil
}

// GetEventBySlug public slug ile etkinliği getirir. Slug global benzersiz
// olduğu için tek başına yeterlidir. Public olmayan etkinlik bulunamadı sayılır.
func (s *EventService) GetEventBySlug(ctx context.Context, slug string) (*models.Event, error) {
	if slug == "" {
		return nil, ErrEventNotFound
	}
	event, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if !event.IsPublic {
		return nil, ErrEventNotFound
	}
	return event, nil
}

// GetEventsForUser kullanıcının etkinliklerini sayfalayarak getirir.
func (s *EventService) GetEventsForUser(ctx context.Context, userID uint, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	if userID == 0 {
		return nil, fmt.Errorf("%w: geçersiz kullanıcı ID", ErrEventInvalidInput)
	}
	params.Validate()

	events, totalCount, err := s.repo.FindAllByUserIDPaginated(ctx, userID, params)
	if err != nil {
		return nil, err
	}

	responses := make([]*EventResponseDTO, 0, len(events))
	for i := range events {
		responses = append(responses, s.BuildEventResponse(&events[i]))
	}

	return &queryparams.PaginatedResult{
		Data: responses,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  totalCount,
			TotalPages:  queryparams.CalculateTotalPages(totalCount, params.PerPage),
		},
	}, nil
}

// UpdateEvent mevcut etkinliği kısmi olarak günceller. Paket/ek hizmet
// değişikliğinde fiyat snapshot'ı canlı katalogdan YENİDEN hesaplanır ve
// ödeme durumu Pending'e sıfırlanır; aksi halde snapshot'a dokunulmaz
// (tarihsel fiyat donuk kalır). Slug oluşturmada sabitlenmiştir, başlık
// değişse bile değişmez (public linkler kırılmasın).
func (s *EventService) UpdateEvent(ctx context.Context, id uint, updatingUserID uint, input UpdateEventInput) (*models.Event, error) {
	if id == 0 || updatingUserID == 0 {
		return nil, fmt.Errorf("%w: geçersiz ID veya kullanıcı", ErrEventInvalidInput)
	}

	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	if err := s.authorize(ctx, event, updatingUserID); err != nil {
		return nil, err
	}

	if input.Title != nil && *input.Title != "" {
		event.Title = *input.Title
	}
	if input.EventDate != nil {
		if !input.EventDate.After(time.Now().UTC()) {
			return nil, ErrEventDateInPast
		}
		event.EventDate = input.EventDate.UTC()
	}
	if input.Location != nil {
		event.Location = *input.Location
	}
	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Theme != nil {
		event.Theme = *input.Theme
	}
	if input.MusicURL != nil {
		event.MusicURL = *input.MusicURL
	}
	if input.IsPublic != nil {
		event.IsPublic = *input.IsPublic
	}
	if input.EventType != nil {
		if !input.EventType.IsValid() {
			return nil, fmt.Errorf("%w: tanımsız etkinlik türü", ErrEventInvalidInput)
		}
		event.EventType = *input.EventType
	}
	if input.CustomFields != nil {
		if err := customfields.Validate(event.EventType.Key(), *input.CustomFields); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrEventInvalidInput, err)
		}
		event.CustomFields = *input.CustomFields
	}

	// Paket değişikliği: snapshot'ı yenile, ödemeyi sıfırla.
	if input.PackageType != nil {
		addOns := event.AddOnsList()
		if input.SelectedAddOns != nil {
			addOns = input.SelectedAddOns
		}
		breakdown, calcErr := s.packageService.CalculatePrice(*input.PackageType, addOns)
		if calcErr != nil {
			return nil, calcErr
		}
		event.PackageTier = *input.PackageType
		event.PackagePrice = breakdown.PackagePrice
		event.SetAddOnsList(addOns)
		event.TotalAmount = breakdown.TotalPrice
		event.IsPaid = false
		event.PaidAt = nil
		event.PaymentStatus = models.PaymentStatusPending
	}

	ctxWithUser := models.ContextWithUserID(ctx, updatingUserID)
	if err := s.repo.Update(ctxWithUser, event); err != nil {
		configslog.Log.Error("UpdateEvent: repository hatası", zap.Uint("id", id), zap.Error(err))
		return nil, ErrEventUpdateFailed
	}
	configslog.SLog.Infof("Etkinlik güncellendi: ID %d (Güncelleyen: %d)", id, updatingUserID)
	return event, nil
}

// DeleteEvent etkinliği soft delete eder (misafirler cascade ilişkiyle erişilmez kalır).
func (s *EventService) DeleteEvent(ctx context.Context, id uint, deletingUserID uint) error {
	if id == 0 || deletingUserID == 0 {
		return fmt.Errorf("%w: geçersiz ID veya kullanıcı", ErrEventInvalidInput)
	}
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	if err := s.authorize(ctx, event, deletingUserID); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, event, deletingUserID); err != nil {
		configslog.Log.Error("DeleteEvent: repository hatası", zap.Uint("id", id), zap.Error(err))
		return ErrEventDeletionFailed
	}
	configslog.SLog.Infof("Etkinlik silindi: ID %d (Silen: %d)", id, deletingUserID)
	return nil
}

// GetEventStats etkinliğin LCV ve misafir istatistiklerini hesaplar.
func (s *EventService) GetEventStats(ctx context.Context, id uint, requestingUserID uint) (*EventStatsDTO, error) {
	event, err := s.GetEventByID(ctx, id, requestingUserID)
	if err != nil {
		return nil, err
	}

	confirmed, pending, declined, totalAttending := rsvpCounts(event.Guests)
	totalGuests := len(event.Guests)

	responseRate := 0.0
	if totalGuests > 0 {
		responded := confirmed + declined
		responseRate = math.Round(float64(responded)/float64(totalGuests)*1000) / 10
	}

	return &EventStatsDTO{
		TotalGuests:          totalGuests,
		ConfirmedRsvps:       confirmed,
		PendingRsvps:         pending,
		DeclinedRsvps:        declined,
		TotalAttending:       totalAttending,
		ResponseRate:         responseRate,
		TablesSetup:          len(event.Tables),
		DaysUntilEvent:       int(time.Until(event.EventDate).Hours() / 24),
		IsUpcoming:           event.EventDate.After(time.Now().UTC()),
		PackageName:          s.packageService.PackageName(event.PackageTier),
		IsGuestLimitExceeded: s.packageService.IsGuestLimitExceeded(event.PackageTier, totalGuests),
		MaxGuests:            s.packageService.MaxGuests(event.PackageTier),
	}, nil
}

// CanUseFeature etkinliğin bir özelliği kullanmaya yetkili olup olmadığını
// SNAPSHOT üzerinden değerlendirir: seviyenin dahil kümesi ∪ seçili ek hizmetler.
func (s *EventService) CanUseFeature(event *models.Event, featureKey string) bool {
	return s.packageService.IsFeatureEnabled(event.PackageTier, event.AddOnsList(), featureKey)
}

// BuildEventResponse sahibe dönen tam etkinlik yanıtını kurar.
// canUse* bayrakları etkinliğin SNAPSHOT'ı üzerinden değerlendirilir.
func (s *EventService) BuildEventResponse(event *models.Event) *EventResponseDTO {
	confirmed, pending, declined, _ := rsvpCounts(event.Guests)
	return &EventResponseDTO{
		ID:            event.ID,
		Title:         event.Title,
		Slug:          event.Slug,
		EventDate:     event.EventDate,
		Location:      event.Location,
		Description:   event.Description,
		Theme:         event.Theme,
		MusicURL:      event.MusicURL,
		IsPublic:      event.IsPublic,
		EventType:     event.EventType,
		EventTypeName: event.EventType.String(),
		CustomFields:  event.CustomFields,
		CreatedAt:     event.CreatedAt,
		UpdatedAt:     event.UpdatedAt,

		PackageType:   event.PackageTier,
		PackageName:   s.packageService.PackageName(event.PackageTier),
		PackagePrice:  event.PackagePrice,
		EnabledAddOns: event.AddOnsList(),
		TotalAmount:   event.TotalAmount,

		IsPaid:        event.IsPaid,
		PaidAt:        event.PaidAt,
		PaymentStatus: event.PaymentStatus,

		TotalGuests:    len(event.Guests),
		ConfirmedRsvps: confirmed,
		PendingRsvps:   pending,
		DeclinedRsvps:  declined,

		CanUseQRCode:          s.CanUseFeature(event, "qr-code"),
		CanUseGuestNotes:      s.CanUseFeature(event, "guest-notes"),
		CanUseTableManagement: s.CanUseFeature(event, "table-management"),
		MaxGuests:             s.packageService.MaxGuests(event.PackageTier),
	}
}

// BuildPublicEventResponse public görünüm yanıtını kurar; fiyat/ödeme sızdırmaz.
func (s *EventService) BuildPublicEventResponse(event *models.Event) *PublicEventDTO {
	confirmed, pending, declined, _ := rsvpCounts(event.Guests)
	return &PublicEventDTO{
		ID:             event.ID,
		Title:          event.Title,
		Slug:           event.Slug,
		EventDate:      event.EventDate,
		Location:       event.Location,
		Description:    event.Description,
		Theme:          event.Theme,
		MusicURL:       event.MusicURL,
		EventType:      event.EventType,
		EventTypeName:  event.EventType.String(),
		CustomFields:   event.CustomFields,
		PackageType:    event.PackageTier,
		PackageName:    s.packageService.PackageName(event.PackageTier),
		TotalGuests:    len(event.Guests),
		ConfirmedRsvps: confirmed,
		PendingRsvps:   pending,
		DeclinedRsvps:  declined,
	}
}

// Arayüz uyumluluğu kontrolü
var _ IEventService = (*EventService)(nil)
