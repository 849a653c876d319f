// Package obfuscate dış taraflara iç müşteri ID'si yerine gösterilen,
// tasarım gereği geri çevrilemez referanslar üretir. Aynı secret ile aynı
// müşteri her zaman aynı referansı alır; secret bilinmeden ID'ye dönüş yoktur
// ve ardışık ID'lerden müşteri listesi taranamaz.
package obfuscate

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
)

// ReferenceLength üretilen referansın hex karakter uzunluğu.
const ReferenceLength = 16

// ErrNoSecret secret tanımlı değilken referans istenirse döner.
var ErrNoSecret = errors.New("referans gizleme için secret tanımlı değil")

// CustomerReference müşteri ID'sinden gizlenmiş referans üretir.
func CustomerReference(secret string, customerID uint) (string, error) {
	if secret == "" {
		return "", ErrNoSecret
	}
	if customerID == 0 {
		return "", errors.New("geçersiz müşteri ID")
	}
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "customer:%d", customerID)
	return hex.EncodeToString(mac.Sum(nil))[:ReferenceLength], nil
}
