package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Repository katmanının ortak hataları. Servisler gorm hatalarını değil
// bunları görür.
var (
	// ErrNotFound kayıt bulunamadığında (silinmişler dahil görünmez).
	ErrNotFound = errors.New("kayıt bulunamadı")

	// ErrStateConflict koşullu güncelleme (compare-and-swap) beklenen
	// durumda kayıt bulamadığında döner; yarışı kaybeden taraf bunu görür.
	ErrStateConflict = errors.New("kayıt beklenen durumda değil")
)

type txContextKey string

// TxContextKey transaction'ın context üzerinden taşınması için anahtar.
const TxContextKey txContextKey = "tx"

// getDB context'te transaction varsa onu, yoksa verilen bağlantıyı döndürür.
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(TxContextKey).(*gorm.DB); ok && tx != nil {
		return tx
	}
	return db.WithContext(ctx)
}
