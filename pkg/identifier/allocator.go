package identifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrAllocationExhausted tahsis döngüsü deneme bütçesini tüketti demektir.
// Bu bir kullanıcı hatası değil, operasyonel bir anomalidir (ad alanı çok
// küçük veya patolojik çekişme); alarm verilmeye değer bir sunucu hatasıdır.
var ErrAllocationExhausted = errors.New("identifier: benzersiz tanımlayıcı tahsisi deneme bütçesini aştı")

// GuestLinkLength misafir linki token uzunluğu (hex karakter).
const GuestLinkLength = 8

// DefaultMaxAttempts tahsis döngüsünün varsayılan deneme üst sınırı.
const DefaultMaxAttempts = 100

// ExistsFunc bir aday tanımlayıcının kalıcı katmanda zaten kullanımda olup
// olmadığını söyler. Repository'ler tarafından sağlanır.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// Allocator check-then-act yöntemiyle benzersiz tanımlayıcı üretir.
// Bu döngü yalnızca yaygın durumda constraint hatasından kaçınan bir
// optimizasyondur; asıl doğruluk garantisi veritabanındaki global unique
// index'tir. Kayıt sırasında duplicate-key hatası alan çağıran, yeni bir
// adayla tahsisi tekrarlamalıdır.
type Allocator struct {
	exists      ExistsFunc
	maxAttempts int
}

// NewAllocator verilen varlık kontrolüyle bir tahsisçi kurar.
// maxAttempts <= 0 ise DefaultMaxAttempts kullanılır.
func NewAllocator(exists ExistsFunc, maxAttempts int) *Allocator {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &Allocator{exists: exists, maxAttempts: maxAttempts}
}

// AllocateSlug başlıktan türetilen slug'ı, çakışma varsa -1, -2, ...
// ekleyerek boş bir aday bulana kadar dener. Benzersizlik kapsamı
// GLOBALDİR: slug'lar public URL'leri sırtladığı için sahip bazlı kapsam
// kullanılmaz (iki sahibin aynı slug'ı üretmesi public aramayı bozardı).
func (a *Allocator) AllocateSlug(ctx context.Context, title string) (string, error) {
	base := Slugify(title)
	if base == "" {
		base = "etkinlik"
	}

	candidate := base
	for attempt := 1; attempt <= a.maxAttempts; attempt++ {
		taken, err := a.exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("identifier: slug varlık kontrolü başarısız: %w", err)
		}
		if !taken {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}
	return "", ErrAllocationExhausted
}

// AllocateGuestLink misafire özel, tahmin edilemez, global benzersiz kısa
// token üretir (8 hex karakter). Token misafirin davetiye görünümüne
// erişen TEK kimlik bilgisi olduğu için kriptografik güçte rastgele
// kaynaktan gelir; ardışık/tahmin edilebilir olamaz.
func (a *Allocator) AllocateGuestLink(ctx context.Context) (string, error) {
	for attempt := 0; attempt < a.maxAttempts; attempt++ {
		candidate := NewGuestLinkCandidate()
		taken, err := a.exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("identifier: link varlık kontrolü başarısız: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrAllocationExhausted
}

// NewGuestLinkCandidate tek bir rastgele aday üretir. uuid.New crypto/rand
// beslemelidir; hex gösterimin ilk 8 karakteri alınır.
func NewGuestLinkCandidate() string {
	u := uuid.New()
	return fmt.Sprintf("%x", u[:])[:GuestLinkLength]
}
