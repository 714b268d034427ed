package pdf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/ataousCode/agro-backend/internal/models"
)

// Generator builds order documents on disk and returns the absolute path.
type Generator interface {
	GenerateInvoice(order *models.Order, customer *models.User) (string, error)
}

type InvoiceGenerator struct {
	RootDir string // storage root, e.g. "./files"
}

func NewInvoiceGenerator(rootDir string) *InvoiceGenerator {
	return &InvoiceGenerator{RootDir: filepath.Clean(rootDir)}
}

const invoiceFont = "Helvetica"

func (g *InvoiceGenerator) GenerateInvoice(order *models.Order, customer *models.User) (string, error) {
	absPath, err := g.ensureTarget(fmt.Sprintf("invoice_order_%d.pdf", order.ID))
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Invoice #%d", order.ID), false)
	pdf.SetAuthor("AgriPlant", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()

	// ===== header
	pdf.SetFont(invoiceFont, "B", 18)
	pdf.CellFormat(0, 10, "INVOICE", "", 1, "C", false, 0, "")
	pdf.SetFont(invoiceFont, "", 12)
	sub := fmt.Sprintf("No. AGP-%06d  of  %s", order.ID, order.CreatedAt.Format("02.01.2006"))
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	// ===== customer
	g.sectionTitle(pdf, "Billed To")
	g.kvLine(pdf, "Customer", customer.Name)
	g.kvLine(pdf, "Email", customer.Email)
	g.kvLine(pdf, "Address", fmt.Sprintf("%s, %s %s",
		order.ShippingAddress.Address,
		order.ShippingAddress.City,
		order.ShippingAddress.PostalCode,
	))
	g.kvLine(pdf, "Phone", order.ShippingAddress.Phone)
	pdf.Ln(2)
	g.hr(pdf)

	// ===== items
	g.sectionTitle(pdf, "Items")
	pdf.SetFont(invoiceFont, "B", 11)
	pdf.CellFormat(85, 7, "Item", "B", 0, "L", false, 0, "")
	pdf.CellFormat(25, 7, "Qty", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Price", "B", 0, "R", false, 0, "")
	pdf.CellFormat(30, 7, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont(invoiceFont, "", 11)
	for _, it := range order.Items {
		name := it.Name
		if it.IsRental && it.RentalDuration != nil && it.RentalUnit != nil {
			name = fmt.Sprintf("%s (rental, %d %s)", it.Name, *it.RentalDuration, *it.RentalUnit)
		}
		pdf.CellFormat(85, 7, name, "", 0, "L", false, 0, "")
		pdf.CellFormat(25, 7, fmt.Sprintf("%d", it.Quantity), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", it.Price), "", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, fmt.Sprintf("%.2f", it.Price*float64(it.Quantity)), "", 1, "R", false, 0, "")
	}
	pdf.Ln(1)
	g.hr(pdf)

	// ===== totals
	g.kvLine(pdf, "Delivery charge", fmt.Sprintf("%.2f", order.DeliveryCharge))
	g.kvLine(pdf, "Discount", fmt.Sprintf("%.2f", order.Discount))
	pdf.SetFont(invoiceFont, "B", 12)
	pdf.CellFormat(45, 7, "Total:", "", 0, "L", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("%.2f", order.TotalPrice), "", 1, "L", false, 0, "")
	pdf.Ln(2)

	g.kvLine(pdf, "Payment method", order.PaymentMethod)
	paid := "no"
	if order.IsPaid {
		paid = "yes"
	}
	g.kvLine(pdf, "Paid", paid)
	g.kvLine(pdf, "Status", order.Status)
	if order.EstimatedDelivery != nil {
		g.kvLine(pdf, "Estimated delivery", order.EstimatedDelivery.Format("02.01.2006"))
	}

	// ===== page numbers
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(invoiceFont, "", 10)
		pdf.CellFormat(0, 10,
			fmt.Sprintf("Page %d/{nb}", pdf.PageNo()),
			"", 0, "C", false, 0, "",
		)
	})

	if err := pdf.OutputFileAndClose(absPath); err != nil {
		return "", err
	}
	return absPath, nil
}

// ===== helpers =====

func (g *InvoiceGenerator) ensureTarget(filename string) (string, error) {
	if err := os.MkdirAll(g.RootDir, 0o755); err != nil {
		return "", fmt.Errorf("create files dir: %w", err)
	}
	filename = filepath.Base(filename) // safety
	return filepath.Join(g.RootDir, filename), nil
}

func (g *InvoiceGenerator) sectionTitle(pdf *gofpdf.Fpdf, s string) {
	pdf.SetFont(invoiceFont, "B", 12)
	pdf.CellFormat(0, 7, s, "", 1, "L", false, 0, "")
	pdf.SetFont(invoiceFont, "", 11)
}

func (g *InvoiceGenerator) kvLine(pdf *gofpdf.Fpdf, key, val string) {
	pdf.SetFont(invoiceFont, "B", 11)
	pdf.CellFormat(45, 6, key+":", "", 0, "L", false, 0, "")
	pdf.SetFont(invoiceFont, "", 11)
	pdf.CellFormat(0, 6, val, "", 1, "L", false, 0, "")
}

func (g *InvoiceGenerator) hr(pdf *gofpdf.Fpdf) {
	y := pdf.GetY() + 1.5
	pdf.SetLineWidth(0.2)
	pdf.Line(20, y, 190, y)
	pdf.SetY(y + 2)
}
