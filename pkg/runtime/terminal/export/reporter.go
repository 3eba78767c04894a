package export

import (
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/shopspring/decimal"

	"github.com/de-tools/sales-atlas/pkg/models/domain"
	"github.com/de-tools/sales-atlas/pkg/services/report"
)

// Reporter prints the key insights of an analysis to the console.
type Reporter struct {
	writer io.Writer
}

// NewReporter creates a new console reporter.
func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{writer: writer}
}

func (c *Reporter) Handle(a *domain.Analysis) error {
	funcMap := template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return report.Currency(d)
		},
		"top": func(groups []domain.GroupTotal) *domain.GroupTotal {
			if len(groups) == 0 {
				return nil
			}
			return &groups[0]
		},
	}

	tmpl := `
Key Insights:
Total Sales: {{money .TotalSales}}
Average Sale: {{money .AvgSale}} | Maximum Sale: {{money .MaxSale}}
{{with top .ProductSales}}Best-selling product: {{.Key}} ({{money .Total}})
{{end}}{{with top .RegionSales}}Top-performing region: {{.Key}} ({{money .Total}})
{{end}}{{with top .ChannelSales}}Best sales channel: {{.Key}} ({{money .Total}})
{{end}}`

	t, err := template.New("insights").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, a)
}
