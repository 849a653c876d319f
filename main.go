package main

import (
	"os"
	"os/signal"
	"syscall"

	"teklif.link/configs"
	"teklif.link/configs/configsdatabase"
	"teklif.link/configs/configslog"
	apihandlers "teklif.link/handlers/api"
	authhandlers "teklif.link/handlers/auth"
	linkhandlers "teklif.link/handlers/link"
	panelhandlers "teklif.link/handlers/panel"
	"teklif.link/repositories"
	"teklif.link/routes"
	"teklif.link/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg := configs.LoadConfig()

	configsdatabase.InitDB()
	defer configsdatabase.CloseDB()
	db := configsdatabase.GetDB()

	sessionStore := configs.SetupSession()

	// Repository katmanı
	formLinkRepo := repositories.NewFormLinkRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	userRepo := repositories.NewUserRepository(db)
	offerRepo := repositories.NewOfferRepository(db)

	// Yan etki collaborator'ları
	audit := services.NewZapAuditLogger(configslog.Log)
	notifier := services.NewLogNotificationEmitter(configslog.Log)

	// Servis katmanı
	validationService := services.NewFormLinkValidationService(formLinkRepo)
	tokenService := services.NewFormLinkTokenService(formLinkRepo, customerRepo, audit, cfg)
	submissionService := services.NewSubmissionService(formLinkRepo, validationService, notifier, audit)
	offerService := services.NewOfferService(offerRepo, customerRepo, audit)
	approvalService := services.NewApprovalService(formLinkRepo, userRepo, offerService, notifier, audit)
	verificationService := services.NewVerificationService(validationService, audit, cfg)
	authService := services.NewAuthService(userRepo)
	adminService := services.NewFormLinkAdminService(formLinkRepo, audit)

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:                 engine,
		ViewsLayout:           "layouts/panel_layout",
		AppName:               "teklif.link",
		ReadBufferSize:        16384,
		DisableStartupMessage: os.Getenv("APP_ENV") == "production",
	})

	routes.SetupRoutes(app, routes.Handlers{
		Auth:  authhandlers.NewAuthHandler(authService),
		Link:  linkhandlers.NewFormLinkHandler(validationService, submissionService),
		API:   apihandlers.NewVerificationHandler(verificationService),
		Panel: panelhandlers.NewPanelFormLinkHandler(tokenService, adminService, approvalService),
	}, sessionStore)

	// Graceful shutdown: SIGINT/SIGTERM geldiğinde açık istekler tamamlanır.
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-shutdownChan
		configslog.SLog.Infof("Kapatma sinyali alındı (%v), sunucu durduruluyor...", sig)
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata oluştu", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Sunucu %s adresinde dinliyor...", cfg.ListenAddr)
	if err := app.Listen(cfg.ListenAddr); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}

	configslog.SLog.Info("Sunucu kapatıldı.")
}
