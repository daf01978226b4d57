package services

import (
	"context"
	"testing"
	"time"

	"etkinlik.link/models"
	"etkinlik.link/pkg/pricing"
	"etkinlik.link/pkg/queryparams"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEventServiceForTest() (IEventService, *fakeEventRepo, *fakeUserRepo) {
	eventRepo := newFakeEventRepo()
	userRepo := newFakeUserRepo()
	service := NewEventServiceWithDeps(eventRepo, userRepo, NewPackageService())
	return service, eventRepo, userRepo
}

func validCreateInput() CreateEventInput {
	return CreateEventInput{
		Title:          "Sarah & John Wedding",
		EventDate:      time.Now().UTC().Add(30 * 24 * time.Hour),
		Location:       "İstanbul",
		IsPublic:       true,
		EventType:      models.EventTypeWedding,
		PackageType:    pricing.TierEssential,
		SelectedAddOns: []string{"qr-code"},
	}
}

func TestCreateEventSnapshotsPrice(t *testing.T) {
	service, _, _ := newEventServiceForTest()

	event, err := service.CreateEvent(context.Background(), 1, validCreateInput())
	require.NoError(t, err)

	assert.Equal(t, "sarah-john-wedding", event.Slug)
	assert.True(t, event.PackagePrice.Equal(decimal.NewFromInt(49)))
	assert.True(t, event.TotalAmount.Equal(decimal.NewFromInt(74)))
	assert.Equal(t, []string{"qr-code"}, event.AddOnsList())
	assert.Equal(t, models.PaymentStatusPending, event.PaymentStatus)
	assert.False(t, event.IsPaid)
	assert.Equal(t, "{}", event.CustomFields)
}

func TestCreateEventSlugCollisionGetsSuffix(t *testing.T) {
	service, _, _ := newEventServiceForTest()
	ctx := context.Background()

	first, err := service.CreateEvent(ctx, 1, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "sarah-john-wedding", first.Slug)

	// Farklı kullanıcı bile olsa slug kapsamı globaldir.
	second, err := service.CreateEvent(ctx, 2, validCreateInput())
	require.NoError(t, err)
	assert.Equal(t, "sarah-john-wedding-1", second.Slug)
}

func TestCreateEventRetriesOnDuplicateKeyRace(t *testing.T) {
	service, eventRepo, _ := newEventServiceForTest()

	// Varlık kontrolü boş dedi ama kayıt anında unique index ihlali geldi:
	// eşzamanlı istek yarışının simülasyonu. Servis tahsisi tekrar denemeli.
	eventRepo.createErrs = []error{gorm.ErrDuplicatedKey}

	event, err := service.CreateEvent(context.Background(), 1, validCreateInput())
	require.NoError(t, err)
	assert.NotEmpty(t, event.Slug)
}

func TestCreateEventValidation(t *testing.T) {
	service, _, _ := newEventServiceForTest()
	ctx := context.Background()

	input := validCreateInput()
	input.Title = ""
	_, err := service.CreateEvent(ctx, 1, input)
	assert.ErrorIs(t, err, ErrEventTitleRequired)

	input = validCreateInput()
	input.EventDate = time.Now().UTC().Add(-time.Hour)
	_, err = service.CreateEvent(ctx, 1, input)
	assert.ErrorIs(t, err, ErrEventDateInPast)

	input = validCreateInput()
	input.EventType = models.EventType(42)
	_, err = service.CreateEvent(ctx, 1, input)
	assert.ErrorIs(t, err, ErrEventInvalidInput)

	input = validCreateInput()
	input.CustomFields = `{"cakeFlavor":"chocolate"}`
	_, err = service.CreateEvent(ctx, 1, input)
	assert.ErrorIs(t, err, ErrEventInvalidInput)

	input = validCreateInput()
	input.PackageType = pricing.PackageTier(42)
	_, err = service.CreateEvent(ctx, 1, input)
	assert.ErrorIs(t, err, ErrPackageUnknownTier)

	_, err = service.CreateEvent(ctx, 0, validCreateInput())
	assert.ErrorIs(t, err, ErrEventInvalidInput)
}

func TestGetEventByIDAuthorization(t *testing.T) {
	service, _, userRepo := newEventServiceForTest()
	ctx := context.Background()

	owner := userRepo.add(models.User{Email: "sahip@etkinlik.link"})
	stranger := userRepo.add(models.User{Email: "yabanci@etkinlik.link"})
	admin := userRepo.add(models.User{Email: "sistem@etkinlik.link", IsSystem: true})

	event, err := service.CreateEvent(ctx, owner.ID, validCreateInput())
	require.NoError(t, err)

	_, err = service.GetEventByID(ctx, event.ID, owner.ID)
	assert.NoError(t, err)

	_, err = service.GetEventByID(ctx, event.ID, stranger.ID)
	assert.ErrorIs(t, err, ErrEventForbidden)

	_, err = service.GetEventByID(ctx, event.ID, admin.ID)
	assert.NoError(t, err)

	_, err = service.GetEventByID(ctx, 999, owner.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestGetEventBySlugPublicOnly(t *testing.T) {
	service, _, _ := newEventServiceForTest()
	ctx := context.Background()

	input := validCreateInput()
	input.IsPublic = false
	event, err := service.CreateEvent(ctx, 1, input)
	require.NoError(t, err)

	// Public olmayan etkinlik dışarıya bulunamadı görünür.
	_, err = service.GetEventBySlug(ctx, event.Slug)
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = service.GetEventBySlug(ctx, "")
	assert.ErrorIs(t, err, ErrEventNotFound)

	public, err := service.CreateEvent(ctx, 1, validCreateInput())
	require.NoError(t, err)
	found, err := service.GetEventBySlug(ctx, public.Slug)
	require.NoError(t, err)
	assert.Equal(t, public.ID, found.ID)
}

func TestUpdateEventPackageChangeResetsPayment(t *testing.T) {
	service, eventRepo, _ := newEventServiceForTest()
	ctx := context.Background()

	event, err := service.CreateEvent(ctx, 1, validCreateInput())
	require.NoError(t, err)

	// Etkinlik ödenmiş olsun.
	paidAt := time.Now()
	event.IsPaid = true
	event.PaidAt = &paidAt
	event.PaymentStatus = models.PaymentStatusCompleted
	require.NoError(t, eventRepo.Update(ctx, event))

	newTier := pricing.TierPremium
	updated, err := service.UpdateEvent(ctx, event.ID, 1, UpdateEventInput{
		PackageType:    &newTier,
		SelectedAddOns: []string{"custom-branding"},
	})
	require.NoError(t, err)

	assert.Equal(t, pricing.TierPremium, updated.PackageTier)
	assert.True(t, updated.PackagePrice.Equal(decimal.NewFromInt(149)))
	assert.True(t, updated.TotalAmount.Equal(decimal.NewFromInt(179)))
	assert.False(t, updated.IsPaid)
	assert.Nil(t, updated.PaidAt)
	assert.Equal(t, models.PaymentStatusPending, updated.PaymentStatus)
}

func TestUpdateEventWithoutPackageChangeKeepsSnapshot(t *testing.T) {
	service, _, _ := newEventServiceForTest()
	ctx := context.Background()

	event, err := service.CreateEvent(ctx, 1, validCreateInput())
	require.NoError(t, err)
	originalTotal := event.TotalAmount
	originalSlug := event.Slug

	newTitle := "Tamamen Yeni Başlık"
	updated, err := service.UpdateEvent(ctx, event.ID, 1, UpdateEventInput{Title: &newTitle})
	require.NoError(t, err)

	assert.Equal(t, newTitle, updated.Title)
	// Başlık değişse de slug ve fiyat snapshot'ı sabit kalır.
	assert.Equal(t, originalSlug, updated.Slug)
	assert.True(t, originalTotal.Equal(updated.TotalAmount))
}

func TestUpdateEventForbiddenForStranger(t *testing.T) {
	service, _, userRepo := newEventServiceForTest()
	ctx := context.Background()

	owner := userRepo.add(models.User{Email: "sahip@etkinlik.link"})
	stranger := userRepo.add(models.User{Email: "yabanci@etkinlik.link"})

	event, err := service.CreateEvent(ctx, owner.ID, validCreateInput())
	require.NoError(t, err)

	newTitle := "Ele Geçirildi"
	_, err = service.UpdateEvent(ctx, event.ID, stranger.ID, UpdateEventInput{Title: &newTitle})
	assert.ErrorIs(t, err, ErrEventForbidden)
}

func TestDeleteEvent(t *testing.T) {
	service, _, _ := newEventServiceForTest()
	ctx := context.Background()

	event, err := service.CreateEvent(ctx, 1, validCreateInput())
	require.NoError(t, err)

	require.NoError(t, service.DeleteEvent(ctx, event.ID, 1))
	_, err = service.GetEventByID(ctx, event.ID, 1)
	assert.ErrorIs(t, err, ErrEventNotFound)

	assert.ErrorIs(t, service.DeleteEvent(ctx, 999, 1), ErrEventNotFound)
}

func TestGetEventsForUserPagination(t *testing.T) {
	service, _, _ := newEventServiceForTest()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		input := validCreateInput()
		input.Title = "Etkinlik " + string(rune('A'+i))
		_, err := service.CreateEvent(ctx, 1, input)
		require.NoError(t, err)
	}

	result, err := service.GetEventsForUser(ctx, 1, queryparams.ListParams{Page: 1, PerPage: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Meta.TotalItems)
	assert.Equal(t, 3, result.Meta.TotalPages)
	assert.Len(t, result.Data.([]*EventResponseDTO), 2)

	// Başka kullanıcının listesi boştur.
	other, err := service.GetEventsForUser(ctx, 2, queryparams.ListParams{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), other.Meta.TotalItems)
}

func TestGetEventStats(t *testing.T) {
	service, eventRepo, _ := newEventServiceForTest()
	ctx := context.Background()

	event, err := service.CreateEvent(ctx, 1, validCreateInput())
	require.NoError(t, err)

	// İlişkiler repo fake'inde aynı struct üzerinde taşınır.
	event.Guests = []models.Guest{
		{Name: "A", RSVPs: []models.RSVP{{Status: models.RSVPStatusAttending, PartySize: 2}}},
		{Name: "B", RSVPs: []models.RSVP{{Status: models.RSVPStatusDeclined, PartySize: 1}}},
		{Name: "C"},
		{Name: "D", RSVPs: []models.RSVP{{Status: models.RSVPStatusAttending, PartySize: 3}}},
	}
	require.NoError(t, eventRepo.Update(ctx, event))

	stats, err := service.GetEventStats(ctx, event.ID, 1)
	require.NoError(t, err)

	assert.Equal(t, 4, stats.TotalGuests)
	assert.Equal(t, 2, stats.ConfirmedRsvps)
	assert.Equal(t, 1, stats.PendingRsvps)
	assert.Equal(t, 1, stats.DeclinedRsvps)
	assert.Equal(t, 5, stats.TotalAttending)
	assert.Equal(t, 75.0, stats.ResponseRate)
	assert.True(t, stats.IsUpcoming)
	assert.Equal(t, "Essential", stats.PackageName)
	assert.False(t, stats.IsGuestLimitExceeded)
	require.NotNil(t, stats.MaxGuests)
	assert.Equal(t, 50, *stats.MaxGuests)
}

func TestBuildEventResponseEntitlements(t *testing.T) {
	service, _, _ := newEventServiceForTest()
	ctx := context.Background()

	input := validCreateInput()
	input.PackageType = pricing.TierPremium
	input.SelectedAddOns = nil
	event, err := service.CreateEvent(ctx, 1, input)
	require.NoError(t, err)

	dto := service.BuildEventResponse(event)
	assert.True(t, dto.CanUseQRCode)
	assert.True(t, dto.CanUseGuestNotes)
	assert.True(t, dto.CanUseTableManagement)
	assert.Equal(t, "Premium", dto.PackageName)
	assert.Nil(t, dto.MaxGuests)

	// Public görünüm fiyat sızdırmaz: DTO'da yalnız paket adı taşınır.
	public := service.BuildPublicEventResponse(event)
	assert.Equal(t, event.Slug, public.Slug)
	assert.Equal(t, "Premium", public.PackageName)
}

func TestEventServiceCanUseFeature(t *testing.T) {
	service, _, _ := newEventServiceForTest()

	// Premium dahil küme: snapshot'ta seçim olmasa da yetkili.
	premium := &models.Event{PackageTier: pricing.TierPremium}
	assert.True(t, service.CanUseFeature(premium, "table-management"))
	assert.True(t, service.CanUseFeature(premium, "qr-code"))
	assert.False(t, service.CanUseFeature(premium, "sms-notifications"))

	// Essential yalnızca satın aldığı anahtara yetkilidir.
	essential := &models.Event{PackageTier: pricing.TierEssential}
	essential.SetAddOnsList([]string{"qr-code"})
	assert.True(t, service.CanUseFeature(essential, "qr-code"))
	assert.False(t, service.CanUseFeature(essential, "table-management"))
}
