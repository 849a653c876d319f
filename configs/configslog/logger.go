package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log yapılandırılmış (structured) loglama için global zap logger.
// SLog ise printf tarzı kısa loglamalar için sugared versiyonu.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger APP_ENV değerine göre logger'ı başlatır.
// "production" dışındaki ortamlarda development config kullanılır.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "ts"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		// Logger olmadan devam edemeyiz.
		panic("logger başlatılamadı: " + err.Error())
	}

	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger buffer'daki logları flush eder. main'de defer ile çağrılmalı.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync() // stderr'e sync hatası yoksayılabilir
	}
}
