package export

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/rpggio/costtrack/internal/domain/metrics"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/rpggio/costtrack/internal/timeutil"
)

// The core PDF fonts only cover cp1252; the Turkish letters outside it are
// written without their diacritics.
var asciiTurkish = strings.NewReplacer(
	"ğ", "g", "Ğ", "G",
	"ş", "s", "Ş", "S",
	"ı", "i", "İ", "I",
)

// WriteProjectReportPDF renders an A4 cost report for one project.
func WriteProjectReportPDF(w io.Writer, r Report) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle("MegaCost Proje Raporu", true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(asciiTurkish.Replace(s)) }

	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(0, 12, text("MegaCost Proje Karnesi"), "", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "", 9)
	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.CellFormat(0, 6, text("Oluşturulma: "+generated.Format("2006-01-02 15:04")), "", 1, "R", false, 0, "")
	pdf.Ln(2)

	section := func(title string) {
		pdf.SetFont("Arial", "B", 13)
		pdf.SetFillColor(230, 230, 230)
		pdf.CellFormat(0, 8, text(title), "", 1, "L", true, 0, "")
		pdf.Ln(1)
	}
	pair := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(70, 7, text(label), "1", 0, "L", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 7, text(value), "1", 1, "L", false, 0, "")
	}

	p, m := r.Project, r.Metrics
	section("Proje Bilgileri")
	pair("Proje", p.Name)
	pair("Kategori", categoryLabel(p.Category))
	pair("Lokasyon", p.Location)
	pair("Durum", string(p.Status))
	pair("Kapasite", fmt.Sprintf("%s %s", Money(p.Capacity, 2), p.UnitLabel()))
	pair("Başlangıç", p.StartDate.Format(timeutil.DateLayout))
	if p.TargetEndDate != nil {
		pair("Hedef Bitiş", p.TargetEndDate.Format(timeutil.DateLayout))
	}
	pair("Tamamlanma", "%"+Money(p.PercentComplete, 1))
	pdf.Ln(3)

	section("Maliyet Göstergeleri")
	pair("Bütçe", Money(p.TotalBudget, 2)+" TL")
	pair("Fiili Harcama (AC)", Money(m.ActualCost, 2)+" TL")
	pair("İşçilik Maliyeti", Money(m.LaborCost, 2)+" TL")
	pair("Kazanılmış Değer (EV)", Money(m.EarnedValue, 2)+" TL")
	pair("CPI", Money(m.CPI, 2))
	pair("Tahmini Final Maliyeti (EAC)", Money(m.EAC, 2)+" TL")
	pair("Varyans", Money(m.Variance, 2)+" TL")
	pair("Birim Maliyet", fmt.Sprintf("%s TL/%s", Money(m.UnitCost, 2), m.UnitLabel))
	pair("Günlük Harcama Hızı", Money(m.BurnRate, 2)+" TL")
	pair("Kalan Gün", Money(m.RemainingDays, 0))
	pair("Harcama Hızına Göre Tahmin", Money(m.ForecastAtCompletion, 2)+" TL")
	pair("Bütçe Sapması", Money(m.BudgetDeviation, 2)+" TL")
	if p.Category == project.CategorySolar {
		pair("Karbon Tasarrufu", Money(m.CarbonSaved, 0)+" ton CO2")
	}
	pair("Durum Değerlendirmesi", healthLabel(m.Health))
	pdf.Ln(3)

	if len(m.CategoryTotals) > 0 {
		section("Kategori Dağılımı")
		names := make([]string, 0, len(m.CategoryTotals))
		for name := range m.CategoryTotals {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			pair(name, Money(m.CategoryTotals[name], 2)+" TL")
		}
		pdf.Ln(3)
	}

	if len(r.Expenses) > 0 {
		section("Harcamalar")
		widths := []float64{25, 45, 70, 40}
		pdf.SetFont("Arial", "B", 9)
		pdf.SetFillColor(230, 230, 230)
		for i, h := range []string{"Tarih", "Kategori", "Açıklama", "Tutar"} {
			pdf.CellFormat(widths[i], 7, text(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
		for _, e := range r.Expenses {
			pdf.CellFormat(widths[0], 6, e.Date.Format(timeutil.DateLayout), "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[1], 6, text(truncate(e.Category, 28)), "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[2], 6, text(truncate(e.Description, 45)), "1", 0, "L", false, 0, "")
			pdf.CellFormat(widths[3], 6, Money(e.Amount, 2), "1", 1, "R", false, 0, "")
		}
		pdf.Ln(3)
	}

	if strings.TrimSpace(r.Narrative) != "" {
		section("Yapay Zeka Değerlendirmesi")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 5, text(r.Narrative), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing pdf: %w", err)
	}
	return nil
}

func categoryLabel(c project.Category) string {
	switch c {
	case project.CategorySolar:
		return "GES (Güneş Enerjisi)"
	case project.CategoryRoad:
		return "YOL (Karayolu)"
	default:
		return string(c)
	}
}

func healthLabel(h metrics.Health) string {
	if h == metrics.HealthCritical {
		return "KRİTİK"
	}
	return "STABİL"
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
