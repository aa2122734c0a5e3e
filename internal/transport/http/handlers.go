package rest

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/tienda_sales/internal/domain"
	"github.com/Gunvolt24/tienda_sales/internal/ports"
	"github.com/Gunvolt24/tienda_sales/pkg/httpx"
)

// Заголовки идентичности: аутентификация — внешний коллаборатор,
// ядро доверяет уже проверенной роли.
const (
	headerActorRole = "X-Actor-Role"
	headerActorID   = "X-Actor-ID"
)

type lineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type createSaleRequest struct {
	CustomerID    string        `json:"customer_id"`
	PaymentMethod string        `json:"payment_method"`
	DeliveryType  string        `json:"delivery_type"`
	Lines         []lineRequest `json:"lines"`
}

// requestContext — контекст с бюджетом обработки (если задан).
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.timeout <= 0 {
		return c.Request.Context(), func() {}
	}
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

// actorRole — роль из заголовка; пустая или неизвестная роль — ошибка 400
// (ролевые проверки самих переходов остаются в домене).
func actorRole(c *gin.Context) (domain.ActorRole, bool) {
	role := domain.ActorRole(c.GetHeader(headerActorRole))
	if role != domain.RoleCustomer && role != domain.RoleAdmin {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown or missing X-Actor-Role header")
		return "", false
	}
	return role, true
}

func (h *Handler) createSale(c *gin.Context) {
	var req createSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	lines := make([]domain.Line, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, domain.Line{ProductID: l.ProductID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	sale, err := h.service.CreateSale(ctx, ports.CheckoutInput{
		CustomerID:    req.CustomerID,
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
		DeliveryType:  domain.DeliveryType(req.DeliveryType),
		Lines:         lines,
	})
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusCreated, sale)
}

func (h *Handler) getSale(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	sale, err := h.service.GetSale(ctx, c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, sale)
}

func (h *Handler) paymentInfo(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	info, err := h.service.PaymentInfo(ctx, c.Param("id"))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, info)
}

func (h *Handler) changePaymentMethod(c *gin.Context) {
	role, ok := actorRole(c)
	if !ok {
		return
	}
	var req struct {
		PaymentMethod string `json:"payment_method"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	sale, err := h.service.ChangePaymentMethod(ctx, c.Param("id"), role, domain.PaymentMethod(req.PaymentMethod))
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, sale)
}

func (h *Handler) submitReceipt(c *gin.Context) {
	role, ok := actorRole(c)
	if !ok {
		return
	}
	var req struct {
		Reference string `json:"reference"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	sale, err := h.service.SubmitPayment(ctx, c.Param("id"), role, req.Reference)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, sale)
}

// gatewayConfirm — redirect-return или webhook платёжного шлюза.
// Роль не требуется: источник — внешняя система, не пользователь.
func (h *Handler) gatewayConfirm(c *gin.Context) {
	var req struct {
		Transaction string `json:"transaction"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	sale, err := h.service.ConfirmGatewayPayment(ctx, c.Param("id"), req.Transaction)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, sale)
}

// reviewDecision — решение админа по оплате: {"action":"approve"|"reject"}.
func (h *Handler) reviewDecision(c *gin.Context) {
	role, ok := actorRole(c)
	if !ok {
		return
	}
	var req struct {
		Action string `json:"action"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	var (
		sale *domain.Sale
		err  error
	)
	switch req.Action {
	case "approve":
		sale, err = h.service.Approve(ctx, c.Param("id"), role)
	case "reject":
		sale, err = h.service.Reject(ctx, c.Param("id"), role)
	default:
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "action must be approve or reject")
		return
	}
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, sale)
}

func (h *Handler) dispatch(c *gin.Context) {
	role, ok := actorRole(c)
	if !ok {
		return
	}
	var req struct {
		TrackingCode    string `json:"tracking_code"`
		PickupConfirmed bool   `json:"pickup_confirmed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request body")
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	sale, err := h.service.Dispatch(ctx, c.Param("id"), role, req.TrackingCode, req.PickupConfirmed)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, sale)
}

func (h *Handler) markDelivered(c *gin.Context) {
	role, ok := actorRole(c)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	sale, err := h.service.MarkDelivered(ctx, c.Param("id"), role)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, sale)
}

func (h *Handler) cancel(c *gin.Context) {
	role, ok := actorRole(c)
	if !ok {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	sale, err := h.service.Cancel(ctx, c.Param("id"), role)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, sale)
}

// listSalesByCustomer — история продаж клиента. Покупатель видит только
// свои продажи (X-Actor-ID должен совпадать с :id), админ — любые.
func (h *Handler) listSalesByCustomer(c *gin.Context) {
	role, ok := actorRole(c)
	if !ok {
		return
	}
	id := c.Param("id")
	if id == "" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "empty customer id")
		return
	}
	if role == domain.RoleCustomer && c.GetHeader(headerActorID) != id {
		respondError(c, http.StatusForbidden, "VALIDATION_ERROR", "customers may only list their own sales")
		return
	}
	limit, offset := httpx.ParseLimitOffset(c, 20, 100)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	sales, err := h.service.SalesByCustomer(ctx, id, limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, sales)
}

// reviewQueue — админская очередь проверки. Только чтение; X-Actor-Role
// должен быть ADMIN.
func (h *Handler) reviewQueue(c *gin.Context) {
	role, ok := actorRole(c)
	if !ok {
		return
	}
	if role != domain.RoleAdmin {
		respondError(c, http.StatusForbidden, "VALIDATION_ERROR", "admin only")
		return
	}

	queue := domain.ReviewQueue(c.DefaultQuery("queue", string(domain.QueueAll)))
	if !queue.Valid() {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown queue")
		return
	}
	f := domain.ReviewFilter{Queue: queue}

	if m := c.Query("method"); m != "" {
		method := domain.PaymentMethod(m)
		if !method.Valid() {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown payment method")
			return
		}
		f.Method = method
	}
	if v, err := strconv.Atoi(c.DefaultQuery("month", "0")); err == nil && v >= 1 && v <= 12 {
		f.Month = v
	}
	if v, err := strconv.Atoi(c.DefaultQuery("year", "0")); err == nil && v > 0 {
		f.Year = v
	}

	limit, offset := httpx.ParseLimitOffset(c, 20, 100)

	ctx, cancel := h.requestContext(c)
	defer cancel()

	sales, err := h.service.ReviewQueue(ctx, f, limit, offset)
	if err != nil {
		respondDomainError(c, err)
		return
	}
	respond(c, http.StatusOK, sales)
}
