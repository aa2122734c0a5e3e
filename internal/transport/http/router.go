package rest

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/Gunvolt24/tienda_sales/internal/ports"
	"github.com/Gunvolt24/tienda_sales/pkg/httpx"
)

type Handler struct {
	service ports.SaleService
	log     ports.Logger
	timeout time.Duration // бюджет обработки одного запроса; 0 — без лимита
}

func NewHandler(service ports.SaleService, log ports.Logger, timeout time.Duration) *Handler {
	return &Handler{service: service, log: log, timeout: timeout}
}

// NewRouter — маршруты API. otelServiceName != "" включает otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpx.RequestIDMiddleware())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(200, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.POST("/sales", h.createSale)
	r.GET("/sales/:id", h.getSale)
	r.GET("/sales/:id/payment-info", h.paymentInfo)
	r.PUT("/sales/:id/payment-method", h.changePaymentMethod)
	r.POST("/sales/:id/receipt", h.submitReceipt)
	r.POST("/sales/:id/gateway-confirm", h.gatewayConfirm)
	r.PUT("/sales/:id/status", h.reviewDecision)
	r.PUT("/sales/:id/dispatch", h.dispatch)
	r.PUT("/sales/:id/delivered", h.markDelivered)
	r.PUT("/sales/:id/cancel", h.cancel)

	r.GET("/customer/:id/sales", h.listSalesByCustomer)
	r.GET("/admin/review", h.reviewQueue)

	return r
}
