package insight

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rpggio/costtrack/internal/domain/metrics"
	"github.com/rpggio/costtrack/internal/domain/project"
	"github.com/shopspring/decimal"
)

// SystemInstruction frames the model as the product's cost-control analyst.
const SystemInstruction = `Sen 'MegaCost' uygulamasının baş maliyet kontrol (Cost Control) analistisin.
Kullanıcıya inşaat projesinin (GES veya Yol) finansal sağlığı hakkında profesyonel,
stratejik ve aksiyon odaklı bir rapor sun.

Raporun şunları içermeli:
1. Mevcut CPI değerine göre bütçe risk analizi.
2. Kategori bazlı (Malzeme, İşçilik vb.) anormal sapmaların tespiti.
3. Projenin EAC (Tahmini Bitiş Maliyeti) bütçeyi aşıyorsa alınması gereken somut tasarruf tedbirleri.
4. Gelecek dönem nakit akışı için stratejik tavsiye.

Dili profesyonel, güven verici ama risk durumunda uyarıcı olsun. Türkçe yanıt ver. Markdown kullanma, düz metin veya liste yapısı kullan.`

// RequestPrefix precedes the project summary in the user turn.
const RequestPrefix = "Bu verileri analiz et: "

var categoryNames = map[project.Category]string{
	project.CategorySolar: "GES",
	project.CategoryRoad:  "YOL",
}

// BuildSummary renders the "project report card" the model is asked to analyse.
func BuildSummary(p project.Project, m metrics.Metrics) string {
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("PROJE KARNESİ:")
	line("Adı: %s", p.Name)
	line("Tip: %s", categoryNames[p.Category])
	line("Tamamlanma Oranı: %%%s", decimal.NewFromFloat(p.PercentComplete).String())
	line("Bütçe: %s TL", money(p.TotalBudget))
	line("Fiili Harcama (AC): %s TL", money(m.ActualCost))
	line("İşçilik Maliyeti: %s TL", money(m.LaborCost))
	line("Kazanılmış Değer (EV): %s TL", money(m.EarnedValue))
	line("Performans Endeksi (CPI): %s", decimal.NewFromFloat(m.CPI).StringFixed(2))
	line("Tahmini Final Maliyeti (EAC): %s TL", money(m.EAC))
	line("Varyans: %s TL", money(m.Variance))
	line("Günlük Harcama Hızı: %s TL/gün", money(m.BurnRate))
	line("Kalan Gün: %s", decimal.NewFromFloat(m.RemainingDays).String())
	line("Harcama Hızına Göre Tahmini Maliyet: %s TL", money(m.ForecastAtCompletion))
	line("Bütçe Sapması: %s TL", money(m.BudgetDeviation))
	if p.Category == project.CategorySolar {
		line("Karbon Tasarrufu: %s ton CO2", money(m.CarbonSaved))
	}
	line("Kategori Detayları: %s", categoryDetails(m.CategoryTotals))
	return b.String()
}

// BuildPrompt is the full user turn sent to the model.
func BuildPrompt(p project.Project, m metrics.Metrics) string {
	return RequestPrefix + BuildSummary(p, m)
}

func money(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(0)
}

func categoryDetails(totals map[string]float64) string {
	if len(totals) == 0 {
		return "{}"
	}
	// json.Marshal orders map keys, which keeps the prompt stable.
	data, err := json.Marshal(totals)
	if err != nil {
		return "{}"
	}
	return string(data)
}
