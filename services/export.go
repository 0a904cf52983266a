package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/tealeg/xlsx"

	"storebot/models"
)

var exportHeader = []string{
	"order_no", "name", "phone", "address", "is_catering", "pax",
	"subtotal", "discount", "tax", "delivery_fee", "total", "promo", "status", "created_at",
}

func exportRow(o models.Order) []string {
	return []string{
		o.OrderNo,
		o.CustomerName,
		o.Phone,
		o.Address,
		strconv.FormatBool(o.IsCatering),
		strconv.Itoa(o.Pax),
		strconv.FormatInt(o.Subtotal, 10),
		strconv.FormatInt(o.Discount, 10),
		strconv.FormatInt(o.Tax, 10),
		strconv.FormatInt(o.DeliveryFee, 10),
		strconv.FormatInt(o.Total, 10),
		o.PromoCode,
		o.Status,
		o.CreatedAt.Format(time.RFC3339),
	}
}

// WriteOrdersCSV writes all orders, newest first, as CSV.
func WriteOrdersCSV(ctx context.Context, store OrderStore, w io.Writer) error {
	orders, err := store.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(exportHeader); err != nil {
		return err
	}
	for _, o := range orders {
		if err := cw.Write(exportRow(o)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteOrdersXLSX writes the same export as a single-sheet XLSX workbook.
func WriteOrdersXLSX(ctx context.Context, store OrderStore, w io.Writer) error {
	orders, err := store.ListOrders(ctx)
	if err != nil {
		return fmt.Errorf("list orders: %w", err)
	}
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Orders")
	if err != nil {
		return fmt.Errorf("add sheet: %w", err)
	}
	row := sheet.AddRow()
	for _, h := range exportHeader {
		row.AddCell().SetString(h)
	}
	for _, o := range orders {
		row := sheet.AddRow()
		for _, v := range exportRow(o) {
			row.AddCell().SetString(v)
		}
	}
	return file.Write(w)
}
