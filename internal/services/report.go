package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"

	"github.com/lifetrack-health/lifetrack-backend/internal/bmi"
	"github.com/lifetrack-health/lifetrack-backend/internal/models"
)

// ReportData is the field set rendered on a health report. Values always come
// from the stored row; nothing is recomputed at render time.
type ReportData struct {
	PatientName string
	PatientID   int64
	Age         *int
	Gender      string
	HeightCm    float64
	WeightKg    float64
	BMI         float64
	Category    bmi.Category
	Date        time.Time
}

// InvoiceData extends ReportData with the billing fields.
type InvoiceData struct {
	ReportData
	InvoiceNumber string
	Fees          models.FeeSchedule
	TotalAmount   float64
	PaymentTerms  string
	InvoiceDate   time.Time
}

// ReportService renders PDF documents onto durable local storage.
type ReportService struct {
	dir string
}

func NewReportService(dir string) *ReportService {
	return &ReportService{dir: dir}
}

// LifeTrack Health Hub palette.
var (
	hospitalBlue = [3]int{15, 76, 129}
	textDark     = [3]int{31, 41, 55}
	textMuted    = [3]int{75, 85, 99}
	lightBlue    = [3]int{240, 247, 255}
)

func categoryColor(c bmi.Category) [3]int {
	switch c {
	case bmi.Underweight:
		return [3]int{37, 99, 235}
	case bmi.Normal:
		return [3]int{5, 150, 105}
	case bmi.Overweight:
		return [3]int{217, 119, 6}
	case bmi.Obese:
		return [3]int{220, 38, 38}
	default:
		return hospitalBlue
	}
}

// HealthReport renders the personal health report and returns the file path.
func (s *ReportService) HealthReport(d ReportData) (string, error) {
	pdf := newDocument()

	brandHeader(pdf, "PERSONAL HEALTH REPORT")

	sectionTitle(pdf, "PATIENT INFORMATION")
	fieldRow(pdf, "Patient Name", d.PatientName, "Patient ID", fmt.Sprintf("PID-%d", d.PatientID))
	fieldRow(pdf, "Gender", orDefault(d.Gender, "Not Specified"), "Report Date", d.Date.Format("02-01-2006 15:04:05"))
	pdf.Ln(6)

	sectionTitle(pdf, "ANTHROPOMETRIC MEASUREMENTS")
	fieldRow(pdf, "Height (cm)", fmt.Sprintf("%.1f cm", d.HeightCm), "Weight (kg)", fmt.Sprintf("%.1f kg", d.WeightKg))
	fieldRow(pdf, "BMI Value", fmt.Sprintf("%.2f", d.BMI), "Category", string(d.Category))
	pdf.Ln(8)

	bmiCard(pdf, d.BMI, d.Category)
	pdf.Ln(8)

	sectionTitle(pdf, "HEALTH ADVICE")
	pdf.Ln(2)
	setColor(pdf, textDark)
	pdf.SetFont("Helvetica", "", 10)
	pdf.MultiCell(0, 6, bmi.AdviceFor(d.Category), "", "L", false)
	pdf.Ln(20)

	signatureBlock(pdf, "Personal Health Report")

	pdf.Ln(6)
	setColor(pdf, textMuted)
	pdf.SetFont("Helvetica", "", 8)
	pdf.MultiCell(0, 4, "This is a digitally generated report. For medical diagnosis, please consult a healthcare professional.", "", "C", false)

	name := fmt.Sprintf("BMI_Report_%d_%s.pdf", d.PatientID, uuid.NewString())
	return s.write(pdf, name)
}

// InvoicePDF renders the medical and wellness invoice report and returns the
// file path.
func (s *ReportService) InvoicePDF(d InvoiceData) (string, error) {
	pdf := newDocument()

	brandHeader(pdf, "MEDICAL & WELLNESS REPORT")

	setColor(pdf, textDark)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Report ID: %s  |  Date: %s", d.InvoiceNumber, d.InvoiceDate.Format("02-01-2006 15:04:05")), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	sectionTitle(pdf, "PATIENT INFORMATION")
	ageStr := "N/A"
	if d.Age != nil {
		ageStr = fmt.Sprintf("%d yrs", *d.Age)
	}
	fieldRow(pdf, "Patient Name", d.PatientName, "Age", ageStr)
	fieldRow(pdf, "Gender", orDefault(d.Gender, "Not Specified"), "Visit Type", "Wellness Assessment")
	pdf.Ln(6)

	riskLevel, classification := bmi.RiskProfile(d.Category)

	sectionTitle(pdf, "ANTHROPOMETRIC MEASUREMENTS")
	fieldRow(pdf, "Height (cm)", fmt.Sprintf("%.1f cm", d.HeightCm), "Weight (kg)", fmt.Sprintf("%.1f kg", d.WeightKg))
	fieldRow(pdf, "BMI Reference", "WHO Standards", "WHO Category", classification)
	pdf.Ln(6)

	bmiCard(pdf, d.BMI, d.Category)
	pdf.Ln(6)

	sectionTitle(pdf, "CLINICAL INTERPRETATION")
	pdf.Ln(2)
	setColor(pdf, textDark)
	pdf.SetFont("Helvetica", "", 10)
	interp := fmt.Sprintf(
		"Based on the recorded Body Mass Index (BMI) of %.2f, the patient is clinically classified as %s. "+
			"This assessment indicates a %s risk level according to World Health Organization (WHO) protocols. "+
			"BMI is a specialized screening tool used by healthcare professionals to evaluate body composition and related health risks.",
		d.BMI, d.Category, riskLevel)
	pdf.MultiCell(0, 5.5, interp, "", "L", false)
	pdf.Ln(4)

	sectionTitle(pdf, "ASSESSMENT CHARGES")
	feeRow(pdf, "Consultation & Evaluation", d.Fees.Consultation, false)
	feeRow(pdf, "BMI Assessment & Analysis", d.Fees.BMIAssessment, false)
	feeRow(pdf, "Health Report", d.Fees.HealthReport, false)
	feeRow(pdf, "Total Amount", d.TotalAmount, true)
	setColor(pdf, textMuted)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 6, "Payment Terms: "+d.PaymentTerms, "", 1, "L", false, 0, "")
	pdf.Ln(4)

	sectionTitle(pdf, "Rx - DOCTOR'S WELLNESS PRESCRIPTION")
	pdf.Ln(1)
	setColor(pdf, textDark)
	pdf.SetFont("Helvetica", "", 9.5)
	for _, item := range []string{
		"Maintain a balanced nutritional intake focusing on whole grains, lean proteins, and micronutrients.",
		"Ensure consistent physical activity (minimum 150 minutes of moderate aerobic exercise weekly).",
		"Monitor hydration levels (2.5 - 3.0 Liters daily) and maintain a consistent sleep-wake cycle.",
		"Limit intake of processed carbohydrates, saturated fats, and high-sodium dietary items.",
		"Schedule a follow-up consultation with a clinical specialist for personalized metabolic evaluation.",
	} {
		pdf.MultiCell(0, 5.5, "- "+item, "", "L", false)
	}
	pdf.Ln(10)

	doctorPanel(pdf)
	pdf.Ln(14)

	signatureBlock(pdf, "Medical & Wellness Report")

	name := fmt.Sprintf("Invoice_%s_%s.pdf", d.InvoiceNumber, uuid.NewString())
	return s.write(pdf, name)
}

func (s *ReportService) write(pdf *gofpdf.Fpdf, name string) (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(s.dir, name)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return path, nil
}

func newDocument() *gofpdf.Fpdf {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(13, 13, 13)
	pdf.SetAutoPageBreak(true, 13)
	pdf.AddPage()
	return pdf
}

func setColor(pdf *gofpdf.Fpdf, c [3]int) {
	pdf.SetTextColor(c[0], c[1], c[2])
}

func brandHeader(pdf *gofpdf.Fpdf, subtitle string) {
	setColor(pdf, hospitalBlue)
	pdf.SetFont("Helvetica", "B", 22)
	pdf.CellFormat(120, 10, "LifeTrack Health Hub", "", 0, "L", false, 0, "")
	setColor(pdf, textMuted)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 10, "support@lifetrack.com | www.lifetrack.com", "", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 6, subtitle, "", 1, "L", false, 0, "")
	pdf.SetDrawColor(hospitalBlue[0], hospitalBlue[1], hospitalBlue[2])
	pdf.SetLineWidth(0.5)
	x, y := pdf.GetXY()
	pdf.Line(x, y+1, 210-13, y+1)
	pdf.Ln(5)
}

func sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFillColor(hospitalBlue[0], hospitalBlue[1], hospitalBlue[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(0, 7, "  "+title, "", 1, "L", true, 0, "")
	pdf.Ln(1)
}

func fieldRow(pdf *gofpdf.Fpdf, label1, value1, label2, value2 string) {
	setColor(pdf, textDark)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(32, 7, label1, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(60, 7, ": "+value1, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(32, 7, label2, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 7, ": "+value2, "", 1, "L", false, 0, "")
}

func feeRow(pdf *gofpdf.Fpdf, label string, amount float64, total bool) {
	setColor(pdf, textDark)
	style := ""
	if total {
		style = "B"
	}
	pdf.SetFont("Helvetica", style, 9.5)
	pdf.CellFormat(124, 7, label, "B", 0, "L", false, 0, "")
	pdf.CellFormat(60, 7, fmt.Sprintf("Rs. %.2f", amount), "B", 1, "R", false, 0, "")
}

func bmiCard(pdf *gofpdf.Fpdf, value float64, category bmi.Category) {
	cardWidth := 64.0
	x := (210 - cardWidth) / 2
	pdf.SetX(x)
	pdf.SetDrawColor(hospitalBlue[0], hospitalBlue[1], hospitalBlue[2])
	pdf.SetFillColor(lightBlue[0], lightBlue[1], lightBlue[2])
	pdf.SetLineWidth(0.8)
	setColor(pdf, hospitalBlue)
	pdf.SetFont("Helvetica", "B", 32)
	pdf.CellFormat(cardWidth, 16, fmt.Sprintf("%.2f", value), "LTR", 1, "C", true, 0, "")
	pdf.SetX(x)
	cc := categoryColor(category)
	pdf.SetTextColor(cc[0], cc[1], cc[2])
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(cardWidth, 10, strings.ToUpper(string(category)), "LBR", 1, "C", true, 0, "")
}

func doctorPanel(pdf *gofpdf.Fpdf) {
	doctors := []struct{ name, role, reg string }{
		{"Dr. Sarah Thompson (MD)", "Primary Consultant (Endocrinology)", "Reg No: LT-DR-001"},
		{"Dr. Rajesh Kumar (MS)", "Clinical Nutritionist", "Reg No: LT-DR-002"},
		{"Dr. Anita Desai (MD)", "General Medicine", "Reg No: LT-DR-003"},
	}
	aligns := []string{"L", "C", "R"}
	colWidth := 184.0 / 3

	pdf.SetFont("Helvetica", "B", 9)
	setColor(pdf, textDark)
	for i, d := range doctors {
		pdf.CellFormat(colWidth, 5, d.name, "", boolToLn(i == 2), aligns[i], false, 0, "")
	}
	pdf.SetFont("Helvetica", "", 8)
	setColor(pdf, textMuted)
	for i, d := range doctors {
		pdf.CellFormat(colWidth, 4, d.role, "", boolToLn(i == 2), aligns[i], false, 0, "")
	}
	for i, d := range doctors {
		pdf.CellFormat(colWidth, 4, d.reg, "", boolToLn(i == 2), aligns[i], false, 0, "")
	}
}

func signatureBlock(pdf *gofpdf.Fpdf, documentName string) {
	blockWidth := 64.0
	x := 210 - 13 - blockWidth
	pdf.SetX(x)
	pdf.SetDrawColor(textDark[0], textDark[1], textDark[2])
	pdf.SetLineWidth(0.3)
	y := pdf.GetY()
	pdf.Line(x, y, x+blockWidth, y)
	setColor(pdf, textDark)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(blockWidth, 6, "Authorized Signature", "", 1, "C", false, 0, "")
	pdf.SetX(x)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(blockWidth, 5, "LifeTrack Health Hub", "", 1, "C", false, 0, "")
	pdf.SetX(x)
	setColor(pdf, textMuted)
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(blockWidth, 4, documentName, "", 1, "C", false, 0, "")
	pdf.SetX(x)
	pdf.CellFormat(blockWidth, 4, "Digitally Verified Document", "", 1, "C", false, 0, "")
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func boolToLn(last bool) int {
	if last {
		return 1
	}
	return 0
}
