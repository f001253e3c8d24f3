package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pos-service/internal/cart"
	"pos-service/internal/catalog"
	"pos-service/internal/models"
	"pos-service/internal/people"
	"pos-service/internal/service"
	"pos-service/internal/settings"
	"pos-service/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const dateLayout = "2006-01-02"

// Handler contains HTTP handlers
type Handler struct {
	posService *service.PosService
	catalog    *catalog.Store
	settings   *settings.Store
	people     *people.Store
}

// NewHandler creates a new HTTP handler
func NewHandler(posService *service.PosService, catalogStore *catalog.Store, settingsStore *settings.Store, peopleStore *people.Store) *Handler {
	return &Handler{
		posService: posService,
		catalog:    catalogStore,
		settings:   settingsStore,
		people:     peopleStore,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(gin.Recovery())
	router.Use(prometheusMiddleware())
	router.Use(gin.Logger())

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/products", h.listProducts)
		v1.POST("/products", h.createProduct)
		v1.DELETE("/products/:id", h.deleteProduct)

		v1.GET("/categories", h.listCategories)
		v1.POST("/categories", h.createCategory)
		v1.PUT("/categories/:id", h.updateCategory)

		v1.GET("/cart/:session", h.getCart)
		v1.POST("/cart/:session/items", h.addCartItem)
		v1.PATCH("/cart/:session/items", h.updateCartItem)
		v1.DELETE("/cart/:session", h.clearCart)

		v1.POST("/checkout/:session", h.checkout)

		v1.GET("/transactions", h.listTransactions)
		v1.GET("/reports/summary", h.reportSummary)
		v1.GET("/reports/daily", h.reportDaily)
		v1.GET("/reports/insight", h.reportInsight)

		v1.GET("/customers", h.listCustomers)
		v1.POST("/customers", h.createCustomer)
		v1.GET("/suppliers", h.listSuppliers)
		v1.POST("/suppliers", h.createSupplier)

		v1.GET("/settings/pricing", h.getPricing)
		v1.PUT("/settings/pricing", h.updatePricing)
		v1.GET("/settings/receipt", h.getReceipt)
		v1.PUT("/settings/receipt", h.updateReceipt)
		v1.GET("/settings/payment-methods", h.listPaymentMethods)
		v1.POST("/settings/payment-methods", h.createPaymentMethod)
		v1.PATCH("/settings/payment-methods/:id", h.togglePaymentMethod)
		v1.GET("/settings/outlets", h.listOutlets)
		v1.POST("/settings/outlets", h.createOutlet)
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck handles readiness check requests
func (h *Handler) readinessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) listProducts(c *gin.Context) {
	if category := c.Query("category"); category != "" {
		c.JSON(http.StatusOK, gin.H{"products": h.catalog.ProductsByCategory(category)})
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": h.catalog.Products()})
}

type createProductRequest struct {
	ID       string           `json:"id"`
	Name     string           `json:"name" binding:"required"`
	Price    int64            `json:"price" binding:"min=0"`
	Category string           `json:"category" binding:"required"`
	ImageURL string           `json:"image_url"`
	Stock    int              `json:"stock"`
	Variants []models.Variant `json:"variants"`
}

func (h *Handler) createProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	product := models.Product{
		ID:       req.ID,
		Name:     req.Name,
		Price:    req.Price,
		Category: req.Category,
		ImageURL: req.ImageURL,
		Stock:    req.Stock,
		Variants: req.Variants,
	}

	if err := h.catalog.AddProduct(product); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create product", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"product": product})
}

func (h *Handler) deleteProduct(c *gin.Context) {
	if err := h.catalog.DeleteProduct(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found", "details": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listCategories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": h.catalog.Categories()})
}

type categoryRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name" binding:"required"`
	ParentID string `json:"parent_id"`
}

func (h *Handler) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if req.ID == "" {
		req.ID = uuid.New().String()
	}
	category := models.Category{ID: req.ID, Name: req.Name, ParentID: req.ParentID}

	if err := h.catalog.AddCategory(category); err != nil {
		status := http.StatusConflict
		if errors.Is(err, catalog.ErrParentNotFound) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": "Failed to create category", "details": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

func (h *Handler) updateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	category := models.Category{ID: c.Param("id"), Name: req.Name, ParentID: req.ParentID}

	if err := h.catalog.UpdateCategory(category); err != nil {
		status := http.StatusNotFound
		if errors.Is(err, catalog.ErrCategoryCycle) || errors.Is(err, catalog.ErrParentNotFound) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": "Failed to update category", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

func (h *Handler) getCart(c *gin.Context) {
	c.JSON(http.StatusOK, h.posService.Cart(c.Param("session")))
}

type cartItemRequest struct {
	ProductID   string `json:"product_id" binding:"required"`
	VariantName string `json:"variant_name"`
}

func (h *Handler) addCartItem(c *gin.Context) {
	var req cartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	view, err := h.posService.AddToCart(c.Param("session"), req.ProductID, req.VariantName)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidSelection):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid variant selection", "details": err.Error()})
		case errors.Is(err, catalog.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found", "details": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add item", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, view)
}

type cartQuantityRequest struct {
	ProductID   string `json:"product_id" binding:"required"`
	VariantName string `json:"variant_name"`
	// No binding tag: a zero delta is a valid no-op adjustment.
	Delta int `json:"delta"`
}

func (h *Handler) updateCartItem(c *gin.Context) {
	var req cartQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	view := h.posService.UpdateQuantity(c.Param("session"), req.ProductID, req.VariantName, req.Delta)
	c.JSON(http.StatusOK, view)
}

func (h *Handler) clearCart(c *gin.Context) {
	h.posService.ClearCart(c.Param("session"))
	c.Status(http.StatusNoContent)
}

func (h *Handler) checkout(c *gin.Context) {
	var req service.CheckoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
			return
		}
	}

	tx, err := h.posService.Checkout(c.Request.Context(), c.Param("session"), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmptyCart):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Cart is empty", "details": err.Error()})
		case errors.Is(err, service.ErrUnknownPaymentMethod):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Unknown payment method", "details": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete checkout", "details": err.Error()})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"transaction": tx, "receipt": h.settings.Receipt()})
}

func (h *Handler) listTransactions(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"transactions": h.posService.Transactions(start, end)})
}

func (h *Handler) reportSummary(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, h.posService.Summary(start, end))
}

func (h *Handler) reportDaily(c *gin.Context) {
	start, end, err := parseDateRange(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range", "details": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"series": h.posService.DailyRevenue(start, end)})
}

func (h *Handler) reportInsight(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"insight": h.posService.Insight(c.Request.Context())})
}

func (h *Handler) listCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"customers": h.people.Customers()})
}

func (h *Handler) createCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.ShouldBindJSON(&customer); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if err := h.people.AddCustomer(customer); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create customer", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"customer": customer})
}

func (h *Handler) listSuppliers(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suppliers": h.people.Suppliers()})
}

func (h *Handler) createSupplier(c *gin.Context) {
	var supplier models.Supplier
	if err := c.ShouldBindJSON(&supplier); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if supplier.ID == "" {
		supplier.ID = uuid.New().String()
	}
	if err := h.people.AddSupplier(supplier); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create supplier", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"supplier": supplier})
}

func (h *Handler) getPricing(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Pricing())
}

func (h *Handler) updatePricing(c *gin.Context) {
	var cfg models.PricingConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	h.settings.SetPricing(cfg)
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) getReceipt(c *gin.Context) {
	c.JSON(http.StatusOK, h.settings.Receipt())
}

func (h *Handler) updateReceipt(c *gin.Context) {
	var cfg models.ReceiptConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	h.settings.SetReceipt(cfg)
	c.JSON(http.StatusOK, cfg)
}

func (h *Handler) listPaymentMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"payment_methods": h.settings.PaymentMethods()})
}

func (h *Handler) createPaymentMethod(c *gin.Context) {
	var pm models.PaymentMethod
	if err := c.ShouldBindJSON(&pm); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if pm.ID == "" {
		pm.ID = uuid.New().String()
	}
	if err := h.settings.AddPaymentMethod(pm); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create payment method", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"payment_method": pm})
}

type toggleRequest struct {
	Active bool `json:"active"`
}

func (h *Handler) togglePaymentMethod(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}
	h.settings.SetPaymentMethodActive(c.Param("id"), req.Active)
	c.Status(http.StatusNoContent)
}

func (h *Handler) listOutlets(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"outlets": h.settings.Outlets()})
}

func (h *Handler) createOutlet(c *gin.Context) {
	var outlet models.Outlet
	if err := c.ShouldBindJSON(&outlet); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body", "details": err.Error()})
		return
	}

	if outlet.ID == "" {
		outlet.ID = uuid.New().String()
	}
	if err := h.settings.AddOutlet(outlet); err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Failed to create outlet", "details": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"outlet": outlet})
}

// parseDateRange reads optional inclusive start/end query params (YYYY-MM-DD).
func parseDateRange(c *gin.Context) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if raw := c.Query("start"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if raw := c.Query("end"); raw != "" {
		t, err := time.ParseInLocation(dateLayout, raw, time.Local)
		if err != nil {
			return nil, nil, err
		}
		end = &t
	}
	return start, end, nil
}

// prometheusMiddleware collects HTTP metrics
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		util.HTTPRequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Observe(duration)

		util.HTTPRequestsTotal.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			status,
		).Inc()
	}
}
