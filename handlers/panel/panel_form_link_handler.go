package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"teklif.link/configs/configslog"
	"teklif.link/models"
	"teklif.link/pkg/flashmessages"
	"teklif.link/pkg/queryparams"
	"teklif.link/pkg/renderer"
	"teklif.link/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PanelFormLinkHandler personelin form linki işlemleri için handler.
type PanelFormLinkHandler struct {
	tokenService    services.IFormLinkTokenService
	adminService    services.IFormLinkAdminService
	approvalService services.IApprovalService
}

// NewPanelFormLinkHandler yeni bir PanelFormLinkHandler örneği oluşturur.
func NewPanelFormLinkHandler(
	tokenService services.IFormLinkTokenService,
	adminService services.IFormLinkAdminService,
	approvalService services.IApprovalService,
) *PanelFormLinkHandler {
	return &PanelFormLinkHandler{
		tokenService:    tokenService,
		adminService:    adminService,
		approvalService: approvalService,
	}
}

// ListFormLinks (GET /panel/form-links) tüm linkleri listeler.
func (h *PanelFormLinkHandler) ListFormLinks(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	paginatedResult, err := h.adminService.GetFormLinksPaginated(c.UserContext(), params)

	renderData := fiber.Map{
		"Title":  "Form Linkleri",
		"Result": paginatedResult,
		"Params": params,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))

	if err != nil {
		renderData[renderer.FlashErrorKeyView] = "Form linkleri listelenirken hata oluştu."
		renderData["Result"] = &queryparams.PaginatedResult{Data: []models.FormLink{}, Meta: queryparams.PaginationMeta{}}
		configslog.Log.Error("Panel - ListFormLinks Error", zap.Uint("userID", userID), zap.Error(err))
	}
	return renderer.Render(c, "panel/form_links/list", "layouts/panel_layout", renderData, http.StatusOK)
}

// ShowCreateFormLink (GET /panel/form-links/create) üretim formunu gösterir.
func (h *PanelFormLinkHandler) ShowCreateFormLink(c *fiber.Ctx) error {
	return renderer.Render(c, "panel/form_links/create", "layouts/panel_layout", fiber.Map{
		"Title": "Yeni Form Linki",
	})
}

// CreateFormLink (POST /panel/form-links) müşteri için yeni link üretir.
func (h *PanelFormLinkHandler) CreateFormLink(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	customerID, err := strconv.Atoi(c.FormValue("customer_id"))
	if err != nil || customerID <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçerli bir müşteri seçilmelidir.")
		return c.Redirect("/panel/form-links/create", fiber.StatusSeeOther)
	}
	expirationHours, _ := strconv.Atoi(c.FormValue("expiration_hours"))

	result, err := h.tokenService.IssueFormLink(c.UserContext(), services.IssueFormLinkInput{
		CustomerID:        uint(customerID),
		ExpirationHours:   expirationHours,
		CreatedBy:         &userID,
		ExternalProjectID: c.FormValue("external_project_id"),
	})
	if err != nil {
		configslog.Log.Error("Panel - CreateFormLink Error", zap.Uint("userID", userID), zap.Error(err))
		errMsg := "Form linki oluşturulamadı."
		switch {
		case errors.Is(err, services.ErrNotFound):
			errMsg = "Müşteri bulunamadı."
		case errors.Is(err, services.ErrValidation):
			errMsg = "Girdi verisi geçersiz."
		case errors.Is(err, services.ErrCollisionExhausted):
			errMsg = "Benzersiz token üretilemedi, lütfen tekrar deneyin."
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/panel/form-links/create", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Form linki oluşturuldu: "+result.PublicURL)
	return c.Redirect("/panel/form-links", fiber.StatusFound)
}

// ShowFormLink (GET /panel/form-links/:id) gönderim detayını gösterir.
func (h *PanelFormLinkHandler) ShowFormLink(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/form-links")
	}

	link, err := h.adminService.GetFormLinkByID(c.UserContext(), uint(id))
	if err != nil {
		errMsg := "Form linki bulunamadı."
		if !errors.Is(err, services.ErrNotFound) {
			errMsg = "Form linki alınırken hata oluştu."
			configslog.Log.Error("Panel - ShowFormLink Error", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/panel/form-links")
	}

	renderData := fiber.Map{
		"Title":    "Form Linki Detayı",
		"FormLink": link,
		"Customer": link.Customer,
	}
	renderer.SetFlashMessages(renderData, flashmessages.GetFlashMessages(c))
	return renderer.Render(c, "panel/form_links/show", "layouts/panel_layout", renderData, http.StatusOK)
}

// DecideFormLink (POST /panel/form-links/:id/decide) onay/ret kararını işler.
func (h *PanelFormLinkHandler) DecideFormLink(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/form-links")
	}

	input := services.DecideInput{
		FormLinkID:  uint(id),
		ApproverID:  userID,
		Action:      services.ApprovalAction(c.FormValue("action")),
		Notes:       c.FormValue("notes"),
		CreateOffer: c.FormValue("create_offer") == "on" || c.FormValue("create_offer") == "true",
	}

	result, err := h.approvalService.Decide(c.UserContext(), input)
	if err != nil {
		configslog.Log.Warn("Panel - DecideFormLink failed",
			zap.Int("id", id), zap.Uint("userID", userID), zap.Error(err))
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, decideErrorMessage(err))
		return c.Redirect(formLinkShowPath(id), fiber.StatusSeeOther)
	}

	msg := "Karar kaydedildi: " + string(result.FormLink.Status)
	if result.Offer != nil {
		msg += " — Teklif oluşturuldu: " + result.Offer.OfferNumber
	}
	for _, warning := range result.Warnings {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Uyarı: "+warning)
	}
	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, msg)
	return c.Redirect(formLinkShowPath(id), fiber.StatusFound)
}

// DeleteFormLink (POST /panel/form-links/:id/delete) linki iptal eder.
func (h *PanelFormLinkHandler) DeleteFormLink(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok || userID == 0 {
		return c.Redirect("/auth/login")
	}

	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, "Geçersiz ID.")
		return c.Redirect("/panel/form-links")
	}

	if err := h.adminService.DeleteFormLink(c.UserContext(), uint(id), userID); err != nil {
		errMsg := "Form linki silinemedi."
		switch {
		case errors.Is(err, services.ErrNotFound):
			errMsg = "Form linki bulunamadı."
		case errors.Is(err, services.ErrInvalidStateTransition):
			errMsg = "Karar bekleyen gönderim silinemez, önce karara bağlayın."
		default:
			configslog.Log.Error("Panel - DeleteFormLink Error", zap.Int("id", id), zap.Error(err))
		}
		_ = flashmessages.SetFlashMessage(c, flashmessages.FlashErrorKey, errMsg)
		return c.Redirect("/panel/form-links", fiber.StatusSeeOther)
	}

	_ = flashmessages.SetFlashMessage(c, flashmessages.FlashSuccessKey, "Form linki iptal edildi.")
	return c.Redirect("/panel/form-links", fiber.StatusFound)
}

func decideErrorMessage(err error) string {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return "Form linki bulunamadı."
	case errors.Is(err, services.ErrInvalidStateTransition):
		return "Bu gönderim karar verilebilir durumda değil."
	case errors.Is(err, services.ErrPermissionDenied):
		return "Bu işlem için yetkiniz yok."
	case errors.Is(err, services.ErrValidation):
		return "Ret için gerekçe girilmesi zorunludur."
	default:
		return "Karar kaydedilirken bir hata oluştu."
	}
}

func formLinkShowPath(id int) string {
	return "/panel/form-links/" + strconv.Itoa(id)
}
