package services

import (
	"errors"

	"etkinlik.link/pkg/pricing"
)

// PackageServiceError özel servis hataları
type PackageServiceError string

func (e PackageServiceError) Error() string { return string(e) }

const (
	// ErrPackageUnknownTier tanımsız paket seviyesi istendi (400'e çevrilir).
	ErrPackageUnknownTier PackageServiceError = "bilinmeyen paket seviyesi"
)

// IPackageService paket kataloğu ve fiyatlandırma işlemleri için arayüz.
// Tüm metodlar saf hesaplamadır; I/O yapmaz, kilit gerektirmez.
type IPackageService interface {
	ListPackages() []PackageDTO
	CalculatePrice(tier pricing.PackageTier, addOnKeys []string) (*PriceBreakdownDTO, error)
	PackageName(tier pricing.PackageTier) string
	MaxGuests(tier pricing.PackageTier) *int
	IsGuestLimitExceeded(tier pricing.PackageTier, guestCount int) bool
	IsFeatureEnabled(tier pricing.PackageTier, selectedAddOns []string, featureKey string) bool
}

// PackageService IPackageService arayüzünü uygular. Katalog süreç
// başlangıcında kurulan değişmez değerdir; enjeksiyonla taşınır.
type PackageService struct {
	catalog *pricing.Catalog
}

// NewPackageService canlı katalogla yeni bir PackageService örneği oluşturur.
func NewPackageService() IPackageService {
	return &PackageService{catalog: pricing.Default}
}

// NewPackageServiceWithCatalog testlerde özel katalog enjekte etmek içindir.
func NewPackageServiceWithCatalog(catalog *pricing.Catalog) IPackageService {
	return &PackageService{catalog: catalog}
}

// ListPackages tüm paketleri tanım sırasıyla, satın alınabilir ek
// hizmetleriyle birlikte döner. Popular bayrağı Professional'a aittir.
func (s *PackageService) ListPackages() []PackageDTO {
	packages := s.catalog.Packages()
	out := make([]PackageDTO, 0, len(packages))
	for _, p := range packages {
		available, err := s.catalog.AvailableAddOns(p.Tier)
		if err != nil {
			// Katalog tutarlı kurulduğu için buraya düşülmez.
			available = nil
		}
		addOns := make([]AddOnDTO, 0, len(available))
		for _, a := range available {
			addOns = append(addOns, AddOnDTO{
				Key:         a.Key,
				Name:        a.Name,
				Price:       a.Price,
				Description: a.Description,
			})
		}
		included := p.IncludedAddOnKeys
		if included == nil {
			included = []string{}
		}
		out = append(out, PackageDTO{
			ID:              p.Tier,
			Name:            p.Name,
			Price:           p.BasePrice,
			Features:        p.Features,
			MaxGuests:       p.MaxGuests,
			Popular:         p.Name == "Professional",
			AvailableAddOns: addOns,
			IncludedAddOns:  included,
		})
	}
	return out
}

// CalculatePrice (seviye, ek hizmet seçimi) için satır bazlı fiyat dökümü üretir.
func (s *PackageService) CalculatePrice(tier pricing.PackageTier, addOnKeys []string) (*PriceBreakdownDTO, error) {
	breakdown, err := s.catalog.Breakdown(tier, addOnKeys)
	if err != nil {
		if errors.Is(err, pricing.ErrUnknownTier) {
			return nil, ErrPackageUnknownTier
		}
		return nil, err
	}

	items := make([]AddOnPriceDTO, 0, len(breakdown.AddOnPrices))
	for _, item := range breakdown.AddOnPrices {
		items = append(items, AddOnPriceDTO{
			Key:         item.Key,
			Name:        item.Name,
			Price:       item.Price,
			IsIncluded:  item.IsIncluded,
			Description: item.Description,
		})
	}
	return &PriceBreakdownDTO{
		PackagePrice:     breakdown.PackagePrice,
		AddOnPrices:      items,
		TotalPrice:       breakdown.TotalPrice,
		IncludedFeatures: breakdown.IncludedFeatures,
	}, nil
}

// PackageName seviyenin katalog adını döner; tanımsız seviye için boş döner.
func (s *PackageService) PackageName(tier pricing.PackageTier) string {
	p, err := s.catalog.Package(tier)
	if err != nil {
		return ""
	}
	return p.Name
}

// MaxGuests seviyenin misafir sınırını döner (nil = sınırsız).
func (s *PackageService) MaxGuests(tier pricing.PackageTier) *int {
	p, err := s.catalog.Package(tier)
	if err != nil {
		return nil
	}
	return p.MaxGuests
}

// IsGuestLimitExceeded misafir sayısının seviye sınırını aşıp aşmadığını söyler.
func (s *PackageService) IsGuestLimitExceeded(tier pricing.PackageTier, guestCount int) bool {
	return s.catalog.IsGuestLimitExceeded(tier, guestCount)
}

// IsFeatureEnabled özellik yetkisini etkinliğin SNAPSHOT seçimi üzerinden
// değerlendirir: seviyenin dahil kümesi ∪ seçili ek hizmetler.
func (s *PackageService) IsFeatureEnabled(tier pricing.PackageTier, selectedAddOns []string, featureKey string) bool {
	return s.catalog.IsEntitled(tier, selectedAddOns, featureKey)
}

// Arayüz uyumluluğu kontrolü
var _ IPackageService = (*PackageService)(nil)
