package services

import (
	"time"

	"etkinlik.link/models"
	"etkinlik.link/pkg/pricing"

	"github.com/shopspring/decimal"
)

// Bu dosya API katmanına dönen veri yapılarını tanımlar. Alan adları React
// istemcisinin tükettiği JSON sözleşmesiyle birebir aynıdır.

// AddOnDTO katalogdaki bir ek hizmetin tanımıdır.
type AddOnDTO struct {
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// PackageDTO katalog listeleme çıktısındaki paket tanımıdır.
type PackageDTO struct {
	ID              pricing.PackageTier `json:"id"`
	Name            string              `json:"name"`
	Price           decimal.Decimal     `json:"price"`
	Features        []string            `json:"features"`
	MaxGuests       *int                `json:"maxGuests,omitempty"`
	Popular         bool                `json:"popular"`
	AvailableAddOns []AddOnDTO          `json:"availableAddOns"`
	IncludedAddOns  []string            `json:"includedAddOns"`
}

// AddOnPriceDTO fiyat dökümündeki bir satırdır.
type AddOnPriceDTO struct {
	Key         string          `json:"key"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	IsIncluded  bool            `json:"isIncluded"`
	Description string          `json:"description"`
}

// PriceBreakdownDTO calculate-price ucunun yanıtıdır.
type PriceBreakdownDTO struct {
	PackagePrice     decimal.Decimal `json:"packagePrice"`
	AddOnPrices      []AddOnPriceDTO `json:"addOnPrices"`
	TotalPrice       decimal.Decimal `json:"totalPrice"`
	IncludedFeatures []string        `json:"includedFeatures"`
}

// EventResponseDTO etkinlik detay yanıtıdır (sahibi için).
type EventResponseDTO struct {
	ID            uint                `json:"id"`
	Title         string              `json:"title"`
	Slug          string              `json:"slug"`
	EventDate     time.Time           `json:"eventDate"`
	Location      string              `json:"location,omitempty"`
	Description   string              `json:"description,omitempty"`
	Theme         string              `json:"theme,omitempty"`
	MusicURL      string              `json:"musicUrl,omitempty"`
	IsPublic      bool                `json:"isPublic"`
	EventType     models.EventType    `json:"eventType"`
	EventTypeName string              `json:"eventTypeName"`
	CustomFields  string              `json:"customFields,omitempty"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`

	// Paket snapshot'ı
	PackageType   pricing.PackageTier `json:"packageType"`
	PackageName   string              `json:"packageName"`
	PackagePrice  decimal.Decimal     `json:"packagePrice"`
	EnabledAddOns []string            `json:"enabledAddOns"`
	TotalAmount   decimal.Decimal     `json:"totalAmount"`

	// Ödeme
	IsPaid        bool       `json:"isPaid"`
	PaidAt        *time.Time `json:"paidAt,omitempty"`
	PaymentStatus string     `json:"paymentStatus"`

	// İstatistikler
	TotalGuests    int `json:"totalGuests"`
	ConfirmedRsvps int `json:"confirmedRsvps"`
	PendingRsvps   int `json:"pendingRsvps"`
	DeclinedRsvps  int `json:"declinedRsvps"`

	// Özellik yetkileri (snapshot üzerinden)
	CanUseQRCode          bool `json:"canUseQRCode"`
	CanUseGuestNotes      bool `json:"canUseGuestNotes"`
	CanUseTableManagement bool `json:"canUseTableManagement"`
	MaxGuests             *int `json:"maxGuests,omitempty"`
}

// PublicEventDTO public slug görünümüdür; fiyat ve ödeme bilgisi sızdırmaz.
type PublicEventDTO struct {
	ID             uint                `json:"id"`
	Title          string              `json:"title"`
	Slug           string              `json:"slug"`
	EventDate      time.Time           `json:"eventDate"`
	Location       string              `json:"location,omitempty"`
	Description    string              `json:"description,omitempty"`
	Theme          string              `json:"theme,omitempty"`
	MusicURL       string              `json:"musicUrl,omitempty"`
	EventType      models.EventType    `json:"eventType"`
	EventTypeName  string              `json:"eventTypeName"`
	CustomFields   string              `json:"customFields,omitempty"`
	PackageType    pricing.PackageTier `json:"packageType"`
	PackageName    string              `json:"packageName"`
	TotalGuests    int                 `json:"totalGuests"`
	ConfirmedRsvps int                 `json:"confirmedRsvps"`
	PendingRsvps   int                 `json:"pendingRsvps"`
	DeclinedRsvps  int                 `json:"declinedRsvps"`
}

// EventStatsDTO etkinlik istatistik yanıtıdır.
type EventStatsDTO struct {
	TotalGuests          int     `json:"totalGuests"`
	ConfirmedRsvps       int     `json:"confirmedRsvps"`
	PendingRsvps         int     `json:"pendingRsvps"`
	DeclinedRsvps        int     `json:"declinedRsvps"`
	TotalAttending       int     `json:"totalAttending"`
	ResponseRate         float64 `json:"responseRate"`
	TablesSetup          int     `json:"tablesSetup"`
	DaysUntilEvent       int     `json:"daysUntilEvent"`
	IsUpcoming           bool    `json:"isUpcoming"`
	PackageName          string  `json:"packageName"`
	IsGuestLimitExceeded bool    `json:"isGuestLimitExceeded"`
	MaxGuests            *int    `json:"maxGuests,omitempty"`
}

// GuestDTO misafir liste/detay yanıtıdır.
type GuestDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	CustomLink  string `json:"customLink"`
	TableNumber string `json:"tableNumber,omitempty"`
	RsvpStatus  string `json:"rsvpStatus"`
}

// RSVPDetailDTO sahibin LCV listesindeki bir satırdır.
type RSVPDetailDTO struct {
	GuestID     uint      `json:"guestId"`
	GuestName   string    `json:"guestName"`
	Status      string    `json:"status"`
	PartySize   int       `json:"partySize"`
	Note        string    `json:"note,omitempty"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// BulkImportResultDTO toplu misafir aktarım sonucudur.
type BulkImportResultDTO struct {
	SuccessCount int      `json:"successCount"`
	ErrorCount   int      `json:"errorCount"`
	Errors       []string `json:"errors"`
}

// TableDTO masa yanıtıdır.
type TableDTO struct {
	ID             uint   `json:"id"`
	Name           string `json:"name"`
	Capacity       int    `json:"capacity"`
	Description    string `json:"description,omitempty"`
	Shape          string `json:"shape,omitempty"`
	IsActive       bool   `json:"isActive"`
	AssignedGuests int    `json:"assignedGuests"`
}

// rsvpCounts bir LCV kümesinin durum dağılımını sayar.
func rsvpCounts(guests []models.Guest) (confirmed, pending, declined, totalAttending int) {
	for _, guest := range guests {
		if len(guest.RSVPs) == 0 {
			pending++
			continue
		}
		// Misafir başına tek LCV satırı tutulur; ilk kayıt günceldir.
		rsvp := guest.RSVPs[0]
		switch rsvp.Status {
		case models.RSVPStatusAttending:
			confirmed++
			totalAttending += rsvp.PartySize
		case models.RSVPStatusDeclined:
			declined++
		default:
			pending++
		}
	}
	return confirmed, pending, declined, totalAttending
}
