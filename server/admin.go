package server

import (
	"fmt"
	"html"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"storebot/models"
	"storebot/services"
)

// handleAdminOrders renders the order list as simple server-side HTML, one
// card per order with its items and a status form.
func (s *Server) handleAdminOrders(c *gin.Context) {
	ctx := c.Request.Context()
	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		s.log.WithError(err).Error("admin list orders")
		c.String(http.StatusInternalServerError, "gagal memuat pesanan")
		return
	}

	var b strings.Builder
	b.WriteString("<h2>Orders</h2><a href='/admin/export'>Export CSV</a> | <a href='/admin/export.xlsx'>Export XLSX</a><hr/>")
	for _, o := range orders {
		fmt.Fprintf(&b, "<div style='border:1px solid #ddd;padding:8px;margin:8px;'><b>%s</b> - %s | %s | %s | %s<br/>",
			html.EscapeString(o.OrderNo), html.EscapeString(o.CustomerName),
			services.FormatMoney(o.Total), html.EscapeString(o.Status), o.CreatedAt.Format("2006-01-02 15:04"))
		items, err := s.orders.ListOrderItems(ctx, o.ID)
		if err != nil {
			s.log.WithError(err).WithField("order_id", o.ID).Error("admin list order items")
		}
		if len(items) > 0 {
			b.WriteString("<ul>")
			for _, it := range items {
				name := fmt.Sprintf("produk #%d", it.ProductID)
				if p, err := s.catalog.ProductByID(ctx, it.ProductID); err == nil && p != nil {
					name = p.Name
				}
				fmt.Fprintf(&b, "<li>%s x%d = %s</li>",
					html.EscapeString(name), it.Quantity, services.FormatMoney(it.UnitPrice*int64(it.Quantity)))
			}
			b.WriteString("</ul>")
		}
		fmt.Fprintf(&b, "<form method='post' action='/admin/orders/%d/status'><select name='status'>", o.ID)
		for _, st := range models.OrderStatuses {
			fmt.Fprintf(&b, "<option%s>%s</option>", selectedAttr(st == o.Status), st)
		}
		b.WriteString("</select><button type='submit'>Set</button></form></div>")
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
}

func selectedAttr(selected bool) string {
	if selected {
		return " selected"
	}
	return ""
}

func (s *Server) handleAdminUpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "id tidak valid")
		return
	}
	status := c.PostForm("status")
	if err := s.orders.UpdateOrderStatus(c.Request.Context(), id, status); err != nil {
		if services.IsValidation(err) {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		s.log.WithError(err).Error("admin update status")
		c.String(http.StatusInternalServerError, "gagal memperbarui status")
		return
	}
	c.Redirect(http.StatusSeeOther, "/admin/orders")
}

func (s *Server) handleAdminExportCSV(c *gin.Context) {
	c.Header("Content-Disposition", "attachment; filename=orders_export.csv")
	c.Header("Content-Type", "text/csv")
	if err := services.WriteOrdersCSV(c.Request.Context(), s.orders, c.Writer); err != nil {
		s.log.WithError(err).Error("admin export csv")
		c.Status(http.StatusInternalServerError)
	}
}

func (s *Server) handleAdminExportXLSX(c *gin.Context) {
	c.Header("Content-Disposition", "attachment; filename=orders_export.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := services.WriteOrdersXLSX(c.Request.Context(), s.orders, c.Writer); err != nil {
		s.log.WithError(err).Error("admin export xlsx")
		c.Status(http.StatusInternalServerError)
	}
}
