package configs

import (
	"os"
	"strconv"
	"strings"
	"time"

	"teklif.link/configs/configslog"

	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/joho/godotenv"
)

// AppConfig uygulamanın ortamdan okunan ayarlarını taşır.
// Servislere global erişim yerine constructor üzerinden verilir.
type AppConfig struct {
	ListenAddr string
	BaseURL    string // Public form linklerinin ön eki (örn. https://teklif.link)

	// Form linki varsayılanları
	DefaultExpirationHours int

	// Müşteri referansı gizleme (obfuscation) için HMAC anahtarı.
	ReferenceSecret string

	// Dış doğrulama API'si için izin verilen anahtarlar (virgülle ayrılmış).
	VerificationAPIKeys []string

	// İlk admin kullanıcısı (seeder)
	SystemUserEmail    string
	SystemUserPassword string
}

// LoadConfig .env dosyasını (varsa) ve ortam değişkenlerini okur.
func LoadConfig() *AppConfig {
	if err := godotenv.Load(); err != nil {
		// .env opsiyonel; production'da değişkenler ortamdan gelir.
		configslog.SLog.Debug(".env dosyası bulunamadı, ortam değişkenleri kullanılacak.")
	}

	cfg := &AppConfig{
		ListenAddr:             getEnv("LISTEN_ADDR", ":3000"),
		BaseURL:                strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:3000"), "/"),
		DefaultExpirationHours: getEnvInt("FORM_LINK_DEFAULT_EXPIRATION_HOURS", 72),
		ReferenceSecret:        os.Getenv("CUSTOMER_REFERENCE_SECRET"),
		SystemUserEmail:        getEnv("SYSTEM_USER_EMAIL", "admin@teklif.link"),
		SystemUserPassword:     os.Getenv("SYSTEM_USER_PASSWORD"),
	}

	for _, key := range strings.Split(os.Getenv("VERIFICATION_API_KEYS"), ",") {
		key = strings.TrimSpace(key)
		if key != "" {
			cfg.VerificationAPIKeys = append(cfg.VerificationAPIKeys, key)
		}
	}

	if cfg.ReferenceSecret == "" {
		configslog.SLog.Warn("CUSTOMER_REFERENCE_SECRET tanımlı değil; müşteri referansları gizlenemeyecek (degraded mod).")
	}

	return cfg
}

// SetupSession panel oturumları için session store oluşturur.
func SetupSession() *session.Store {
	return session.New(session.Config{
		Expiration:     12 * time.Hour,
		KeyLookup:      "cookie:teklif_session",
		CookieHTTPOnly: true,
		CookieSameSite: "Lax",
	})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		configslog.SLog.Warnf("%s değeri sayı değil (%q), varsayılan %d kullanılıyor.", key, v, fallback)
		return fallback
	}
	return n
}
