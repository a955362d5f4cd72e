package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf/v2"
)

// ReportService renders printable exports of the payment model.
type ReportService struct {
	Sales    SaleStore
	Payments PaymentStore
}

func NewReportService(sales SaleStore, payments PaymentStore) *ReportService {
	return &ReportService{
		Sales:    sales,
		Payments: payments,
	}
}

// SchedulePDF renders one sale's payment schedule as a printable PDF.
func (s *ReportService) SchedulePDF(ctx context.Context, saleID int) ([]byte, error) {
	sale, err := s.Sales.Get(ctx, saleID)
	if err != nil {
		return nil, err
	}
	payments, err := s.Payments.ListBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 10, "Installment Payment Schedule")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Contract: %s", sale.ContractNumber))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Client: %s", sale.ClientName))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Phone model: %s", sale.PhoneModel))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Total price: $%s (down payment $%s)",
		sale.TotalPriceUSD.StringFixed(2), sale.DownPayment.StringFixed(2)))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Plan: %d months at $%s/month from %s",
		sale.Months, sale.MonthlyPayment.StringFixed(2), sale.StartDate.Format("2006-01-02")))
	pdf.Ln(12)

	// Table header
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(15, 8, "#", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 8, "Due date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(45, 8, "Amount (USD)", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 8, "Status", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 11)
	for i, p := range payments {
		pdf.CellFormat(15, 8, strconv.Itoa(i+1), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 8, p.DueDate.Format("2006-01-02"), "1", 0, "C", false, 0, "")
		pdf.CellFormat(45, 8, p.Amount.StringFixed(2), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, string(p.Status), "1", 0, "C", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render schedule PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// PaymentsCSV exports every payment row (admin report).
func (s *ReportService) PaymentsCSV(ctx context.Context) ([]byte, error) {
	payments, err := s.Payments.List(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"id", "sale_id", "due_date", "amount_usd", "status", "paid_at"}); err != nil {
		return nil, err
	}
	for _, p := range payments {
		paidAt := ""
		if p.PaidAt != nil {
			paidAt = p.PaidAt.Format("2006-01-02 15:04:05")
		}
		record := []string{
			strconv.Itoa(p.ID),
			strconv.Itoa(p.SaleID),
			p.DueDate.Format("2006-01-02"),
			p.Amount.StringFixed(2),
			string(p.Status),
			paidAt,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
