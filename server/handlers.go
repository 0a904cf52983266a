package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"storebot/services"
)

type chatRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	_ = c.ShouldBindJSON(&req)

	convID := s.conversationID(c)
	ctx := c.Request.Context()
	state, err := s.conversations.Get(ctx, convID)
	if err != nil {
		s.log.WithError(err).Error("load conversation")
		c.JSON(http.StatusOK, gin.H{"response": "Terjadi kesalahan pada server saat memproses pesan. Coba lagi."})
		return
	}

	reply := s.router.Reply(ctx, req.Message, state)

	if err := s.conversations.Save(ctx, convID, state); err != nil {
		s.log.WithError(err).Error("save conversation")
	}
	// The web chat renders HTML; line breaks become <br/>.
	c.JSON(http.StatusOK, gin.H{"response": strings.ReplaceAll(reply, "\n", "<br/>")})
}

type searchRequest struct {
	Q string `json:"q"`
}

type searchResult struct {
	ID          int64  `json:"id"`
	Code        string `json:"code"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Price       int64  `json:"price"`
	Description string `json:"description"`
}

func (s *Server) handleSearch(c *gin.Context) {
	var req searchRequest
	_ = c.ShouldBindJSON(&req)
	q := strings.TrimSpace(req.Q)
	if q == "" {
		c.JSON(http.StatusOK, gin.H{"results": []searchResult{}})
		return
	}
	products, err := services.SearchProducts(c.Request.Context(), s.catalog, q, 8, 0.4)
	if err != nil {
		s.log.WithError(err).Error("api search")
		c.JSON(http.StatusOK, gin.H{"results": []searchResult{}})
		return
	}
	results := make([]searchResult, 0, len(products))
	for _, p := range products {
		results = append(results, searchResult{
			ID:          p.ID,
			Code:        p.Code,
			Name:        p.Name,
			Category:    p.Category,
			Price:       p.Price,
			Description: p.Description,
		})
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

type cartAddRequest struct {
	ProductID int64 `json:"product_id"`
	Qty       int   `json:"qty"`
}

func (s *Server) handleCartAdd(c *gin.Context) {
	var req cartAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "permintaan tidak valid"})
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}

	convID := s.conversationID(c)
	ctx := c.Request.Context()
	state, err := s.conversations.Get(ctx, convID)
	if err != nil {
		s.log.WithError(err).Error("load conversation")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}
	if err := services.AddToCart(state, req.ProductID, req.Qty); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		return
	}
	if err := s.conversations.Save(ctx, convID, state); err != nil {
		s.log.WithError(err).Error("save conversation")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}
	s.log.WithFields(map[string]interface{}{"product_id": req.ProductID, "qty": req.Qty}).Info("cart add")
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type cartViewItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Qty       int    `json:"qty"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

func (s *Server) handleCartView(c *gin.Context) {
	convID := s.conversationID(c)
	ctx := c.Request.Context()
	state, err := s.conversations.Get(ctx, convID)
	if err != nil {
		s.log.WithError(err).Error("load conversation")
		c.JSON(http.StatusOK, gin.H{"items": []cartViewItem{}, "subtotal": 0})
		return
	}
	lines, subtotal, err := services.CartView(ctx, s.catalog, state)
	if err != nil {
		s.log.WithError(err).Error("cart view")
		c.JSON(http.StatusOK, gin.H{"items": []cartViewItem{}, "subtotal": 0})
		return
	}
	items := make([]cartViewItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, cartViewItem{
			ID:        l.Product.ID,
			Name:      l.Product.Name,
			Qty:       l.Qty,
			UnitPrice: l.Product.Price,
			LineTotal: l.LineTotal,
		})
	}
	c.JSON(http.StatusOK, gin.H{"items": items, "subtotal": subtotal})
}

type checkoutRequest struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Address         string `json:"address"`
	Promo           string `json:"promo"`
	IsCatering      bool   `json:"is_catering"`
	Pax             int    `json:"pax"`
	CateringPackage string `json:"catering_package"`
}

func (s *Server) handleCheckout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, gin.H{"ok": false, "message": "Permintaan tidak valid."})
		return
	}

	convID := s.conversationID(c)
	ctx := c.Request.Context()
	state, err := s.conversations.Get(ctx, convID)
	if err != nil {
		s.log.WithError(err).Error("load conversation")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Terjadi kesalahan saat checkout."})
		return
	}

	result, err := services.Checkout(ctx, s.catalog, s.orders, state, services.CheckoutInput{
		Name:                strings.TrimSpace(req.Name),
		Phone:               strings.TrimSpace(req.Phone),
		Address:             strings.TrimSpace(req.Address),
		PromoCode:           req.Promo,
		IsCatering:          req.IsCatering,
		Pax:                 req.Pax,
		CateringPackageCode: strings.TrimSpace(req.CateringPackage),
	})
	if err != nil {
		if services.IsValidation(err) {
			c.JSON(http.StatusOK, gin.H{"ok": false, "message": err.Error()})
			return
		}
		s.log.WithError(err).Error("checkout")
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "Terjadi kesalahan saat checkout."})
		return
	}

	if err := s.conversations.Save(ctx, convID, state); err != nil {
		s.log.WithError(err).Error("save conversation")
	}
	o := result.Order
	s.log.WithFields(map[string]interface{}{"order_no": o.OrderNo, "total": o.Total}).Info("new order")
	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"message":  "Pesanan dibuat: " + o.OrderNo + ". Total " + services.FormatMoney(o.Total) + ". Status: " + o.Status + ".",
		"order_no": o.OrderNo,
	})
}
