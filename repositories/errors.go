package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrNotFound kayıt bulunamadığında repository katmanından dönen ortak hatadır.
var ErrNotFound = errors.New("kayıt bulunamadı")

// IsDuplicateKey hatanın bir unique constraint ihlali olup olmadığını söyler.
// TranslateError açık olduğunda GORM ErrDuplicatedKey üretir; eski sürücü
// davranışına karşı metin kontrolü de korunur.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}
