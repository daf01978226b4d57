package services

import (
	"context"
	"testing"
	"time"

	"etkinlik.link/models"
	"etkinlik.link/pkg/identifier"
	"etkinlik.link/pkg/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type guestServiceFixture struct {
	service   IGuestService
	guestRepo *fakeGuestRepo
	eventRepo *fakeEventRepo
	userRepo  *fakeUserRepo
	event     *models.Event
	ownerID   uint
}

func newGuestServiceFixture(t *testing.T, tier pricing.PackageTier) *guestServiceFixture {
	t.Helper()
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

	return &guestServiceFixture{
		service:   NewGuestServiceWithDeps(guestRepo, eventRepo, userRepo, NewPackageService()),
		guestRepo: guestRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
		event:     event,
		ownerID:   owner.ID,
	}
}

func TestAddGuestAllocatesCustomLink(t *testing.T) {
	f := newGuestServiceFixture(t, pricing.TierEssential)

	guest, err := f.service.AddGuest(context.Background(), f.event.ID, f.ownerID, GuestInput{Name: "Ali Veli"})
	require.NoError(t, err)

	assert.Equal(t, "Ali Veli", guest.Name)
	assert.Len(t, guest.CustomLink, identifier.GuestLinkLength)
	assert.Equal(t, f.event.ID, guest.EventID)
}

func TestAddGuestValidation(t *testing.T) {
	f := newGuestServiceFixture(t, pricing.TierEssential)
	ctx := context.Background()

	_, err := f.service.AddGuest(ctx, f.event.ID, f.ownerID, GuestInput{})
	assert.ErrorIs(t, err, ErrGuestNameRequired)

	_, err = f.service.AddGuest(ctx, 999, f.ownerID, GuestInput{Name: "Ali"})
	assert.ErrorIs(t, err, ErrEventNotFound)

	stranger := f.userRepo.add(models.User{Email: "yabanci@etkinlik.link"})
	_, err = f.service.AddGuest(ctx, f.event.ID, stranger.ID, GuestInput{Name: "Ali"})
	assert.ErrorIs(t, err, ErrGuestForbidden)
}

func TestAddGuestEnforcesPackageLimit(t *testing.T) {
	f := newGuestServiceFixture(t, pricing.TierEssential)
	ctx := context.Background()

	// Essential sınırı 50: sınıra kadar doldur.
	for i := 0; i < 50; i++ {
		_, err := f.service.AddGuest(ctx, f.event.ID, f.ownerID, GuestInput{Name: "Misafir"})
		require.NoError(t, err)
	}

	_, err := f.service.AddGuest(ctx, f.event.ID, f.ownerID, GuestInput{Name: "51. Misafir"})
	assert.ErrorIs(t, err, ErrGuestLimitExceeded)
}

func TestAddGuestUnlimitedTierHasNoLimit(t *testing.T) {
	f := newGuestServiceFixture(t, pricing.TierProfessional)
	ctx := context.Background()

	for i := 0; i < 60; i++ {
		_, err := f.service.AddGuest(ctx, f.event.ID, f.ownerID, GuestInput{Name: "Misafir"})
		require.NoError(t, err)
	}
}

func TestAddGuestRetriesOnLinkRace(t *testing.T) {
	f := newGuestServiceFixture(t, pricing.TierEssential)

	// İlk kayıt denemesi unique index ihlaliyle düşer, ikinci tahsis tutar.
	f.guestRepo.createErrs = []error{gorm.ErrDuplicatedKey}

	guest, err := f.service.AddGuest(context.Background(), f.event.ID, f.ownerID, GuestInput{Name: "Ali"})
	require.NoError(t, err)
	assert.Len(t, guest.CustomLink, identifier.GuestLinkLength)
}

func TestBulkImportGuestsCollectsRowErrors(t *testing.T) {
	f := newGuestServiceFixture(t, pricing.TierEssential)

	inputs := []GuestInput{
		{Name: "Ali"},
		{Name: ""}, // geçersiz satır
		{Name: "Ayşe"},
	}
	result, err := f.service.BulkImportGuests(context.Background(), f.event.ID, f.ownerID, inputs)
	require.NoError(t, err)

	assert.Equal(t, 2, result.SuccessCount)
	assert.Equal(t, 1, result.ErrorCount)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "satır 2")
}

func TestBulkImportStopsAtGuestLimit(t *testing.T) {
	f := newGuestServiceFixture(t, pricing.TierEssential)
	ctx := context.Background()

	for i := 0; i < 49; i++ {
		_, err := f.service.AddGuest(ctx, f.event.ID, f.ownerID, GuestInput{Name: "Misafir"})
		require.NoError(t, err)
	}

	inputs := []GuestInput{{Name: "50"}, {Name: "51"}, {Name: "52"}}
	result, err := f.service.BulkImportGuests(ctx, f.event.ID, f.ownerID, inputs)
	require.NoError(t, err)

	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 2, result.ErrorCount)
}

func TestListGuestsIncludesRSVPStatus(t *testing.T) {
	f := newGuestServiceFixture(t, pricing.TierProfessional)
	ctx := context.Background()

	guest, err := f.service.AddGuest(ctx, f.event.ID, f.ownerID, GuestInput{Name: "Ali"})
	require.NoError(t, err)
	guest.RSVPs = []models.RSVP{{Status: models.RSVPStatusAttending, PartySize: 2}}
	require.NoError(t, f.guestRepo.Update(ctx, guest))

	_, err = f.service.AddGuest(ctx, f.event.ID, f.ownerID, GuestInput{Name: "Ayşe"})
	require.NoError(t, err)

	guests, err := f.service.ListGuests(ctx, f.event.ID, f.ownerID)
	require.NoError(t, err)
	require.Len(t, guests, 2)
	assert.Equal(t, string(models.RSVPStatusAttending), guests[0].RsvpStatus)
	assert.Equal(t, string(models.RSVPStatusPending), guests[1].RsvpStatus)
}

func TestUpdateGuestKeepsCustomLink(t *testing.T) {
	f := newGuestServiceFixture(t, pricing.TierEssential)
	ctx := context.Background()

	guest, err := f.service.AddGuest(ctx, f.event.ID, f.ownerID, GuestInput{Name: "Ali"})
	require.NoError(t, err)
	originalLink := guest.CustomLink

	updated, err := f.service.UpdateGuest(ctx, f.event.ID, guest.ID, f.ownerID, GuestInput{
		Name:        "Ali Veli",
		Email:       "ali@ornek.com",
		TableNumber: "Masa 3",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ali Veli", updated.Name)
	assert.Equal(t, originalLink, updated.CustomLink)
}

func TestUpdateGuestWrongEventIsNotFound(t *testing.T) {
	f := newGuestServiceFixture(t, pricing.TierEssential)
	ctx := context.Background()

	otherEvent := &models.Event{CreatorUserID: f.ownerID, Title: "Diğer", Slug: "diger", EventDate: time.Now().Add(time.Hour)}
	require.NoError(t, f.eventRepo.Create(ctx, otherEvent))

	guest, err := f.service.AddGuest(ctx, f.event.ID, f.ownerID, GuestInput{Name: "Ali"})
	require.NoError(t, err)

	_, err = f.service.UpdateGuest(ctx, otherEvent.ID, guest.ID, f.ownerID, GuestInput{Name: "Ali"})
	assert.ErrorIs(t, err, ErrGuestNotFound)
}

func TestDeleteGuest(t *testing.T) {
	f := newGuestServiceFixture(t, pricing.TierEssential)
	ctx := context.Background()

	guest, err := f.service.AddGuest(ctx, f.event.ID, f.ownerID, GuestInput{Name: "Ali"})
	require.NoError(t, err)

	require.NoError(t, f.service.DeleteGuest(ctx, f.event.ID, guest.ID, f.ownerID))
	assert.ErrorIs(t, f.service.DeleteGuest(ctx, f.event.ID, guest.ID, f.ownerID), ErrGuestNotFound)
}

func TestGetGuestByCustomLink(t *testing.T) {
	f := newGuestServiceFixture(t, pricing.TierEssential)
	ctx := context.Background()

	guest, err := f.service.AddGuest(ctx, f.event.ID, f.ownerID, GuestInput{Name: "Ali"})
	require.NoError(t, err)

	found, err := f.service.GetGuestByCustomLink(ctx, guest.CustomLink)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, found.ID)

	// Yanlış uzunluktaki token veritabanına inmeden reddedilir.
	_, err = f.service.GetGuestByCustomLink(ctx, "kisa")
	assert.ErrorIs(t, err, ErrGuestNotFound)

	_, err = f.service.GetGuestByCustomLink(ctx, "deadbeef")
	assert.ErrorIs(t, err, ErrGuestNotFound)
}
