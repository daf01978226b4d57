package services

import (
	"context"
	"testing"
	"time"

	"etkinlik.link/models"
	"etkinlik.link/pkg/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type tableServiceFixture struct {
	service   ITableService
	tableRepo *fakeTableRepo
	guestRepo *fakeGuestRepo
	eventRepo *fakeEventRepo
	userRepo  *fakeUserRepo
	event     *models.Event
	ownerID   uint
}

// newTableServiceFixture masa yönetimine yetkili (Premium) bir etkinlik kurar.
func newTableServiceFixture(t *testing.T, tier pricing.PackageTier) *tableServiceFixture {
	t.Helper()
	tableRepo := newFakeTableRepo()
	guestRepo := newFakeGuestRepo()
	eventRepo := newFakeEventRepo()
	userRepo := newFakeUserRepo()

	owner := userRepo.add(models.User{Email: "sahip@etkinlik.link"})
	event := &models.Event{
		CreatorUserID: owner.ID,
		Title:         "Test Etkinliği",
		Slug:          "test-etkinligi",
		EventDate:     time.Now().UTC().Add(24 * time.Hour),
		PackageTier:   tier,
	}
	require.NoError(t, eventRepo.Create(context.Background(), event))

	return &tableServiceFixture{
		service:   NewTableServiceWithDeps(tableRepo, guestRepo, eventRepo, userRepo, NewPackageService()),
		tableRepo: tableRepo,
		guestRepo: guestRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		event:     event,
		ownerID:   owner.ID,
	}
}

func TestCreateTableRequiresEntitlement(t *testing.T) {
	// Essential'da masa yönetimi ne dahil ne de seçili: 402'ye çevrilecek hata.
	f := newTableServiceFixture(t, pricing.TierEssential)
	_, err := f.service.CreateTable(context.Background(), f.event.ID, f.ownerID, TableInput{Name: "Masa 1", Capacity: 8})
	assert.ErrorIs(t, err, ErrTableFeatureRequired)
}

func TestCreateTableWithPurchasedAddOn(t *testing.T) {
	// Essential snapshot'ında seçilmiş table-management de yetki verir.
	f := newTableServiceFixture(t, pricing.TierEssential)
	f.event.SetAddOnsList([]string{"table-management"})
	require.NoError(t, f.eventRepo.Update(context.Background(), f.event))

	table, err := f.service.CreateTable(context.Background(), f.event.ID, f.ownerID, TableInput{Name: "Masa 1", Capacity: 8})
	require.NoError(t, err)
	assert.True(t, table.IsActive)
}

func TestCreateTableValidation(t *testing.T) {
	f := newTableServiceFixture(t, pricing.TierPremium)
	ctx := context.Background()

	_, err := f.service.CreateTable(ctx, f.event.ID, f.ownerID, TableInput{Capacity: 8})
	assert.ErrorIs(t, err, ErrTableNameRequired)

	_, err = f.service.CreateTable(ctx, f.event.ID, f.ownerID, TableInput{Name: "Masa", Capacity: 0})
	assert.ErrorIs(t, err, ErrTableInvalidCapacity)

	_, err = f.service.CreateTable(ctx, f.event.ID, f.ownerID, TableInput{Name: "Masa", Capacity: 21})
	assert.ErrorIs(t, err, ErrTableInvalidCapacity)

	stranger := f.userRepo.add(models.User{Email: "yabanci@etkinlik.link"})
	_, err = f.service.CreateTable(ctx, f.event.ID, stranger.ID, TableInput{Name: "Masa", Capacity: 8})
	assert.ErrorIs(t, err, ErrEventForbidden)
}

func TestListTablesWithAssignedCounts(t *testing.T) {
	f := newTableServiceFixture(t, pricing.TierPremium)
	ctx := context.Background()

	_, err := f.service.CreateTable(ctx, f.event.ID, f.ownerID, TableInput{Name: "Masa 1", Capacity: 8})
	require.NoError(t, err)
	_, err = f.service.CreateTable(ctx, f.event.ID, f.ownerID, TableInput{Name: "Masa 2", Capacity: 6})
	require.NoError(t, err)

	// İki misafir Masa 1'e atanmış olsun.
	require.NoError(t, f.guestRepo.Create(ctx, &models.Guest{EventID: f.event.ID, Name: "Ali", CustomLink: "aaaa1111", TableNumber: "Masa 1"}))
	require.NoError(t, f.guestRepo.Create(ctx, &models.Guest{EventID: f.event.ID, Name: "Ayşe", CustomLink: "bbbb2222", TableNumber: "Masa 1"}))

	tables, err := f.service.ListTables(ctx, f.event.ID, f.ownerID)
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, 2, tables[0].AssignedGuests)
	assert.Equal(t, 0, tables[1].AssignedGuests)
}

func TestUpdateTable(t *testing.T) {
	f := newTableServiceFixture(t, pricing.TierPremium)
	ctx := context.Background()

	table, err := f.service.CreateTable(ctx, f.event.ID, f.ownerID, TableInput{Name: "Masa 1", Capacity: 8})
	require.NoError(t, err)

	inactive := false
	updated, err := f.service.UpdateTable(ctx, f.event.ID, table.ID, f.ownerID, TableInput{
		Name:     "Şeref Masası",
		Capacity: 10,
		Shape:    "Round",
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, "Şeref Masası", updated.Name)
	assert.Equal(t, 10, updated.Capacity)
	assert.False(t, updated.IsActive)
}

func TestDeleteTable(t *testing.T) {
	f := newTableServiceFixture(t, pricing.TierPremium)
	ctx := context.Background()

	table, err := f.service.CreateTable(ctx, f.event.ID, f.ownerID, TableInput{Name: "Masa 1", Capacity: 8})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteTable(ctx, f.event.ID, table.ID, f.ownerID))
	assert.ErrorIs(t, f.service.DeleteTable(ctx, f.event.ID, table.ID, f.ownerID), ErrTableNotFound)
}

func TestTableWrongEventIsNotFound(t *testing.T) {
	f := newTableServiceFixture(t, pricing.TierPremium)
	ctx := context.Background()

	otherEvent := &models.Event{CreatorUserID: f.ownerID, Title: "Diğer", Slug: "diger", EventDate: time.Now().Add(time.Hour), PackageTier: pricing.TierPremium}
	require.NoError(t, f.eventRepo.Create(ctx, otherEvent))

	table, err := f.service.CreateTable(ctx, f.event.ID, f.ownerID, TableInput{Name: "Masa 1", Capacity: 8})
	require.NoError(t, err)

	_, err = f.service.UpdateTable(ctx, otherEvent.ID, table.ID, f.ownerID, TableInput{Name: "Masa", Capacity: 8})
	assert.ErrorIs(t, err, ErrTableNotFound)
}
