package services

import (
	"context"
	"errors"
	"fmt"

	"etkinlik.link/configs/configslog"
	"etkinlik.link/models"
	"etkinlik.link/repositories"

	"go.uber.org/zap"
)

// TableServiceError özel servis hataları
type TableServiceError string

func (e TableServiceError) Error() string { return string(e) }

const (
	ErrTableNotFound        TableServiceError = "masa bulunamadı"
	ErrTableNameRequired    TableServiceError = "masa adı zorunludur"
	ErrTableFeatureRequired TableServiceError = "masa yönetimi bu etkinliğin paketine dahil değil"
	ErrTableCreateFailed    TableServiceError = "masa oluşturulamadı"
	ErrTableUpdateFailed    TableServiceError = "masa güncellenemedi"
	ErrTableDeleteFailed    TableServiceError = "masa silinemedi"
)

// ErrTableInvalidCapacity mesajı sınır sabitlerinden üretilir.
var ErrTableInvalidCapacity = TableServiceError(fmt.Sprintf("masa kapasitesi %d ile %d arasında olmalıdır", models.MinTableCapacity, models.MaxTableCapacity))

// TableInput masa oluşturma/güncelleme girdisidir.
type TableInput struct {
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
	Shape       string `json:"shape"`
	IsActive    *bool  `json:"isActive"`
}

// ITableService masa yönetimi için arayüz.
type ITableService interface {
	CreateTable(ctx context.Context, eventID uint, requestingUserID uint, input TableInput) (*models.EventTable, error)
	ListTables(ctx context.Context, eventID uint, requestingUserID uint) ([]TableDTO, error)
	UpdateTable(ctx context.Context, eventID, tableID uint, requestingUserID uint, input TableInput) (*models.EventTable, error)
	DeleteTable(ctx context.Context, eventID, tableID uint, requestingUserID uint) error
}

// TableService ITableService arayüzünü uygular.
type TableService struct {
	repo           repositories.ITableRepository
	guestRepo      repositories.IGuestRepository
	eventRepo      repositories.IEventRepository
	userRepo       repositories.IUserRepository
	packageService IPackageService
}

// NewTableService yeni bir TableService örneği oluşturur.
func NewTableService() ITableService {
	return NewTableServiceWithDeps(
		repositories.NewTableRepository(),
		repositories.NewGuestRepository(),
		repositories.NewEventRepository(),
		repositories.NewUserRepository(),
		NewPackageService(),
	)
}

// NewTableServiceWithDeps bağımlılıkları dışarıdan alır (testler için).
func NewTableServiceWithDeps(repo repositories.ITableRepository, guestRepo repositories.IGuestRepository, eventRepo repositories.IEventRepository, userRepo repositories.IUserRepository, packageService IPackageService) ITableService {
	return &TableService{repo: repo, guestRepo: guestRepo, eventRepo: eventRepo, userRepo: userRepo, packageService: packageService}
}

// entitledEvent etkinliği getirir, sahipliği ve masa yönetimi
// yetkisini (paket snapshot'ı üzerinden) doğrular.
func (s *TableService) entitledEvent(ctx context.Context, eventID, requestingUserID uint) (*models.Event, error) {
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
	if !s.packageService.IsFeatureEnabled(event.PackageTier, event.AddOnsList(), "table-management") {
		return nil, ErrTableFeatureRequired
	}
	return event, nil
}

func validateTableInput(input TableInput) error {
	if input.Name == "" {
		return ErrTableNameRequired
	}
	if input.Capacity < models.MinTableCapacity || input.Capacity > models.MaxTableCapacity {
		return ErrTableInvalidCapacity
	}
	return nil
}

// CreateTable etkinliğe yeni masa ekler.
func (s *TableService) CreateTable(ctx context.Context, eventID uint, requestingUserID uint, input TableInput) (*models.EventTable, error) {
	if err := validateTableInput(input); err != nil {
		return nil, err
	}
	if _, err := s.entitledEvent(ctx, eventID, requestingUserID); err != nil {
		return nil, err
	}

	table := &models.EventTable{
		EventID:     eventID,
		Name:        input.Name,
		Capacity:    input.Capacity,
		Description: input.Description,
		Shape:       input.Shape,
		IsActive:    true,
	}
	if input.IsActive != nil {
		table.IsActive = *input.IsActive
	}

	ctxWithUser := models.ContextWithUserID(ctx, requestingUserID)
	if err := s.repo.Create(ctxWithUser, table); err != nil {
		configslog.Log.Error("CreateTable: repository hatası", zap.Uint("eventID", eventID), zap.Error(err))
		return nil, ErrTableCreateFailed
	}
	configslog.SLog.Infof("Masa oluşturuldu: ID %d, Etkinlik %d", table.ID, eventID)
	return table, nil
}

// ListTables etkinliğin masalarını atanmış misafir sayılarıyla döner.
func (s *TableService) ListTables(ctx context.Context, eventID uint, requestingUserID uint) ([]TableDTO, error) {
	if _, err := s.entitledEvent(ctx, eventID, requestingUserID); err != nil {
		return nil, err
	}
	tables, err := s.repo.FindAllByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	out := make([]TableDTO, 0, len(tables))
	for i := range tables {
		table := &tables[i]
		assigned, cErr := s.guestRepo.CountAssignedToTable(ctx, eventID, table.Name)
		if cErr != nil {
			assigned = 0
		}
		out = append(out, TableDTO{
			ID:             table.ID,
			Name:           table.Name,
			Capacity:       table.Capacity,
			Description:    table.Description,
			Shape:          table.Shape,
			IsActive:       table.IsActive,
			AssignedGuests: int(assigned),
		})
	}
	return out, nil
}

// UpdateTable masa bilgilerini günceller.
func (s *TableService) UpdateTable(ctx context.Context, eventID, tableID uint, requestingUserID uint, input TableInput) (*models.EventTable, error) {
	if err := validateTableInput(input); err != nil {
		return nil, err
	}
	if _, err := s.entitledEvent(ctx, eventID, requestingUserID); err != nil {
		return nil, err
	}
	table, err := s.repo.FindByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	if table.EventID != eventID {
		return nil, ErrTableNotFound
	}

	table.Name = input.Name
	table.Capacity = input.Capacity
	table.Description = input.Description
	table.Shape = input.Shape
	if input.IsActive != nil {
		table.IsActive = *input.IsActive
	}

	ctxWithUser := models.ContextWithUserID(ctx, requestingUserID)
	if err := s.repo.Update(ctxWithUser, table); err != nil {
		configslog.Log.Error("UpdateTable: repository hatası", zap.Uint("tableID", tableID), zap.Error(err))
		return nil, ErrTableUpdateFailed
	}
	return table, nil
}

// DeleteTable masayı soft delete eder. Masaya atanmış misafirlerin
// TableNumber alanı korunur; tekrar atama kullanıcıya bırakılır.
func (s *TableService) DeleteTable(ctx context.Context, eventID, tableID uint, requestingUserID uint) error {
	if _, err := s.entitledEvent(ctx, eventID, requestingUserID); err != nil {
		return err
	}
	table, err := s.repo.FindByID(ctx, tableID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTableNotFound
		}
		return err
	}
	if table.EventID != eventID {
		return ErrTableNotFound
	}
	if err := s.repo.Delete(ctx, table, requestingUserID); err != nil {
		configslog.Log.Error("DeleteTable: repository hatası", zap.Uint("tableID", tableID), zap.Error(err))
		return ErrTableDeleteFailed
	}
	return nil
}

// Arayüz uyumluluğu kontrolü
var _ ITableService = (*TableService)(nil)
