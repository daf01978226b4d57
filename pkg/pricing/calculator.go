package pricing

import (
	"slices"

	"github.com/shopspring/decimal"
)

// AddOnLineItem fiyat dökümünde TALEP EDİLEN her anahtar için bir satırdır.
// IsIncluded true ise ek hizmet pakete dahildir ve toplamı etkilemez
// ama seçili olarak raporlanmaya devam eder.
type AddOnLineItem struct {
	Key         string
	Name        string
	Price       decimal.Decimal
	Description string
	IsIncluded  bool
}

// PriceBreakdown bir (seviye, ek hizmet seçimi) çiftinin türetilmiş fiyat
// dökümüdür. Kalıcı bir varlık değildir; talep üzerine yeniden hesaplanır
// ve etkinlik oluşturma/güncelleme anında Event üzerine snapshot alınır.
type PriceBreakdown struct {
	PackagePrice decimal.Decimal
	AddOnPrices  []AddOnLineItem
	TotalPrice   decimal.Decimal
	// IncludedFeatures her zaman SEVİYENİN dahil kümesidir; kullanıcının
	// ne seçtiğinden bağımsız olarak paketle bedava geleni gösterir.
	IncludedFeatures []string
}

// CalculateTotal taban fiyattan başlayıp talep edilen ek hizmetleri toplar.
// Dahil anahtarlar 0 katkı yapar; katalogda olmayan anahtarlar ücretsiz ve
// hatasız yok sayılır (eski etkinliklerdeki kaldırılmış anahtarlar fiyat
// hesabını bozmasın diye bilinçli hoşgörülü politika).
func (c *Catalog) CalculateTotal(tier PackageTier, requestedAddOnKeys []string) (decimal.Decimal, error) {
	p, err := c.Package(tier)
	if err != nil {
		return decimal.Zero, err
	}

	total := p.BasePrice
	for _, key := range requestedAddOnKeys {
		addOn, ok := c.AddOn(key)
		if !ok {
			continue
		}
		if c.isIncluded(tier, key) {
			continue
		}
		total = total.Add(addOn.Price)
	}
	return total, nil
}

// Breakdown satır bazında fiyat dökümü üretir. Saf fonksiyondur: aynı
// girdiyle her çağrı aynı çıktıyı verir.
func (c *Catalog) Breakdown(tier PackageTier, requestedAddOnKeys []string) (PriceBreakdown, error) {
	p, err := c.Package(tier)
	if err != nil {
		return PriceBreakdown{}, err
	}

	total, err := c.CalculateTotal(tier, requestedAddOnKeys)
	if err != nil {
		return PriceBreakdown{}, err
	}

	items := make([]AddOnLineItem, 0, len(requestedAddOnKeys))
	for _, key := range requestedAddOnKeys {
		addOn, ok := c.AddOn(key)
		item := AddOnLineItem{
			Key:        key,
			IsIncluded: c.isIncluded(tier, key),
		}
		if ok {
			item.Name = addOn.Name
			item.Price = addOn.Price
			item.Description = addOn.Description
		} else {
			// Tanınmayan anahtar: ad/açıklama boş, fiyat 0.
			item.Price = decimal.Zero
		}
		items = append(items, item)
	}

	// JSON'da `includedFeatures` her zaman dizi olmalı; dahil kümesi boş
	// seviyelerde nil yerine boş dilim döner.
	included := slices.Clone(p.IncludedAddOnKeys)
	if included == nil {
		included = []string{}
	}

	return PriceBreakdown{
		PackagePrice:     p.BasePrice,
		AddOnPrices:      items,
		TotalPrice:       total,
		IncludedFeatures: included,
	}, nil
}

// IsEntitled bir özellik anahtarının kullanılabilir olup olmadığını söyler:
// seviyenin dahil kümesindeyse VEYA kullanıcının seçtiği ek hizmetler
// arasındaysa true döner. Seçim, etkinlik üzerindeki snapshot'tan gelir;
// canlı katalog fiyatlarından bağımsızdır.
func (c *Catalog) IsEntitled(tier PackageTier, selectedAddOnKeys []string, featureKey string) bool {
	if c.isIncluded(tier, featureKey) {
		return true
	}
	return slices.Contains(selectedAddOnKeys, featureKey)
}

// IsGuestLimitExceeded yalnızca seviye sonlu bir MaxGuests tanımlıyorsa ve
// mevcut misafir sayısı onu aşıyorsa true döner. Sınırsız seviyeler asla aşmaz.
func (c *Catalog) IsGuestLimitExceeded(tier PackageTier, currentGuestCount int) bool {
	p, err := c.Package(tier)
	if err != nil || p.MaxGuests == nil {
		return false
	}
	return currentGuestCount > *p.MaxGuests
}
