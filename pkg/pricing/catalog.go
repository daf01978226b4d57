package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// PackageTier kapalı paket seviyesi enum'u. Sıralama anlamlıdır:
// Essential < Professional < Premium. Wire formatı React istemcisinin
// beklediği 0 tabanlı tamsayıdır.
type PackageTier int

const (
	TierEssential PackageTier = iota
	TierProfessional
	TierPremium
)

// String insan okunur paket adını döner.
func (t PackageTier) String() string {
	switch t {
	case TierEssential:
		return "Essential"
	case TierProfessional:
		return "Professional"
	case TierPremium:
		return "Premium"
	default:
		return fmt.Sprintf("PackageTier(%d)", int(t))
	}
}

// ErrUnknownTier katalogda tanımlı olmayan bir paket seviyesi istendiğinde döner.
// Enum pratikte kapalıdır, bu kontrol savunma amaçlıdır.
var ErrUnknownTier = errors.New("pricing: bilinmeyen paket seviyesi")

// Package bir paket seviyesinin katalog kaydıdır.
type Package struct {
	Tier      PackageTier
	Name      string
	BasePrice decimal.Decimal
	// MaxGuests nil ise misafir sayısı sınırsızdır.
	MaxGuests *int
	// Features pazarlama amaçlı, insan okunur özellik listesi (sıralı).
	Features []string
	// IncludedAddOnKeys pakete dahil (ücretsiz) ek hizmet anahtarları.
	IncludedAddOnKeys []string
	// AllowedAddOnKeys ayrıca satın alınabilir ek hizmet anahtarları.
	// IncludedAddOnKeys'in bunların alt kümesi olması ZORUNLU DEĞİLDİR;
	// örn. Premium qr-code'u dahil eder ama satışa sunmaz.
	AllowedAddOnKeys []string
}

// AddOn bağımsız fiyatlandırılan, bazı paketlerde ücretsiz dahil edilen
// opsiyonel bir ek hizmettir. Key kalıcı ve kararlıdır.
type AddOn struct {
	Key         string
	Name        string
	Price       decimal.Decimal
	Description string
}

// Catalog paket ve ek hizmet kataloğudur. Süreç başlangıcında bir kez
// kurulur, sonrasında asla değiştirilmez; bu yüzden kilitlenmeden
// eşzamanlı okunması güvenlidir.
type Catalog struct {
	packages     map[PackageTier]Package
	addOns       map[string]AddOn
	tierOrder    []PackageTier
	addOnOrder   []string
	includedSets map[PackageTier]map[string]struct{}
}

// NewCatalog verilen tanımlardan değişmez bir katalog kurar.
// Tanım sırası korunur (listeleme çıktıları bu sırayı izler).
func NewCatalog(packages []Package, addOns []AddOn) *Catalog {
	c := &Catalog{
		packages:     make(map[PackageTier]Package, len(packages)),
		addOns:       make(map[string]AddOn, len(addOns)),
		tierOrder:    make([]PackageTier, 0, len(packages)),
		addOnOrder:   make([]string, 0, len(addOns)),
		includedSets: make(map[PackageTier]map[string]struct{}, len(packages)),
	}
	for _, p := range packages {
		c.packages[p.Tier] = p
		c.tierOrder = append(c.tierOrder, p.Tier)

		set := make(map[string]struct{}, len(p.IncludedAddOnKeys))
		for _, key := range p.IncludedAddOnKeys {
			set[key] = struct{}{}
		}
		c.includedSets[p.Tier] = set
	}
	for _, a := range addOns {
		c.addOns[a.Key] = a
		c.addOnOrder = append(c.addOnOrder, a.Key)
	}
	return c
}

// Package seviyeye ait katalog kaydını döner.
// Tanımsız seviye için ErrUnknownTier döner (400'e çevrilir, varsayılan uydurulmaz).
func (c *Catalog) Package(tier PackageTier) (Package, error) {
	p, ok := c.packages[tier]
	if !ok {
		return Package{}, fmt.Errorf("%w: %d", ErrUnknownTier, int(tier))
	}
	return p, nil
}

// AddOn anahtara ait kaydı döner. Bulunamaması HATA DEĞİLDİR: eski
// etkinliklerde kalmış, katalogdan kaldırılmış anahtarlar sessizce
// sıfır değerli sayılır. Çağıran ok bayrağını kontrol etmelidir.
func (c *Catalog) AddOn(key string) (AddOn, bool) {
	a, ok := c.addOns[key]
	return a, ok
}

// Packages tüm paketleri tanım sırasıyla döner.
func (c *Catalog) Packages() []Package {
	out := make([]Package, 0, len(c.tierOrder))
	for _, tier := range c.tierOrder {
		out = append(out, c.packages[tier])
	}
	return out
}

// AvailableAddOns seviyenin AllowedAddOnKeys kümesindeki ek hizmetleri
// katalog tanım sırasıyla döner.
func (c *Catalog) AvailableAddOns(tier PackageTier) ([]AddOn, error) {
	p, err := c.Package(tier)
	if err != nil {
		return nil, err
	}
	allowed := make(map[string]struct{}, len(p.AllowedAddOnKeys))
	for _, key := range p.AllowedAddOnKeys {
		allowed[key] = struct{}{}
	}
	out := make([]AddOn, 0, len(p.AllowedAddOnKeys))
	for _, key := range c.addOnOrder {
		if _, ok := allowed[key]; ok {
			out = append(out, c.addOns[key])
		}
	}
	return out, nil
}

// isIncluded seviyenin dahil kümesinde anahtarın olup olmadığını söyler.
func (c *Catalog) isIncluded(tier PackageTier, key string) bool {
	set, ok := c.includedSets[tier]
	if !ok {
		return false
	}
	_, ok = set[key]
	return ok
}

func intPtr(n int) *int { return &n }

// Default ürünün canlı kataloğudur: üç seviye, yedi ek hizmet.
// Fiyatlar tek (örtük) para birimindedir, iki ondalık basamak hassasiyetle.
var Default = NewCatalog(
	[]Package{
		{
			Tier:      TierEssential,
			Name:      "Essential",
			BasePrice: decimal.NewFromInt(49),
			MaxGuests: intPtr(50),
			Features: []string{
				"Up to 50 guests",
				"Basic customization",
				"RSVP tracking",
				"Email notifications",
				"Custom guest links",
			},
			AllowedAddOnKeys: []string{"qr-code", "sms-notifications", "premium-music"},
		},
		{
			Tier:      TierProfessional,
			Name:      "Professional",
			BasePrice: decimal.NewFromInt(89),
			MaxGuests: nil, // sınırsız
			Features: []string{
				"Unlimited guests",
				"Premium themes & customization",
				"Location map integration",
				"Music upload",
				"RSVP management dashboard",
				"Analytics & reporting",
			},
			IncludedAddOnKeys: []string{"analytics"},
			AllowedAddOnKeys:  []string{"qr-code", "guest-notes", "sms-notifications", "premium-music"},
		},
		{
			Tier:      TierPremium,
			Name:      "Premium",
			BasePrice: decimal.NewFromInt(149),
			MaxGuests: nil,
			Features: []string{
				"Everything in Professional",
				"Guest notes & dietary preferences",
				"Table management system",
				"QR code check-in",
				"Priority support",
				"Advanced analytics",
			},
			IncludedAddOnKeys: []string{"qr-code", "guest-notes", "table-management", "analytics"},
			AllowedAddOnKeys:  []string{"sms-notifications", "premium-music", "custom-branding"},
		},
	},
	[]AddOn{
		{Key: "qr-code", Name: "QR Code Check-in", Price: decimal.NewFromInt(25), Description: "Generate QR codes for easy guest check-in"},
		{Key: "guest-notes", Name: "Guest Notes & Preferences", Price: decimal.NewFromInt(20), Description: "Collect dietary restrictions and special notes"},
		{Key: "table-management", Name: "Table Management System", Price: decimal.NewFromInt(30), Description: "Assign guests to tables with seating charts"},
		{Key: "sms-notifications", Name: "SMS Notifications", Price: decimal.NewFromInt(10), Description: "Send RSVP reminders via SMS"},
		{Key: "premium-music", Name: "Premium Music Library", Price: decimal.NewFromInt(15), Description: "Access to curated wedding music collection"},
		{Key: "custom-branding", Name: "Custom Branding", Price: decimal.NewFromInt(30), Description: "Add your logo and custom colors"},
		{Key: "analytics", Name: "Advanced Analytics", Price: decimal.Zero, Description: "Detailed RSVP and engagement reports"},
	},
)
