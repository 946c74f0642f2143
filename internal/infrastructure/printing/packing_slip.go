package printing

import (
	"bytes"
	"context"
	"html/template"
	"strings"

	apptrade "github.com/Charan2012-gif/Shopping-App/internal/application/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Ensure PackingSlipPrinter implements apptrade.PackingSlipRenderer
var _ apptrade.PackingSlipRenderer = (*PackingSlipPrinter)(nil)

// PackingSlipPrinter renders packing slips to PDF
type PackingSlipPrinter struct {
	renderer PDFRenderer
	tmpl     *template.Template
	logger   *zap.Logger
}

// NewPackingSlipPrinter creates a printer that renders through renderer
func NewPackingSlipPrinter(renderer PDFRenderer, logger *zap.Logger) *PackingSlipPrinter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PackingSlipPrinter{
		renderer: renderer,
		tmpl:     template.Must(template.New("packing_slip").Funcs(slipFuncs).Parse(packingSlipTemplate)),
		logger:   logger,
	}
}

// RenderHTML produces the slip as an HTML document
func (p *PackingSlipPrinter) RenderHTML(slip apptrade.PackingSlip) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, slip); err != nil {
		return "", NewRenderError(ErrCodeTemplate, "failed to execute packing slip template", err)
	}
	return buf.String(), nil
}

// RenderPackingSlip produces the slip as a PDF
func (p *PackingSlipPrinter) RenderPackingSlip(ctx context.Context, slip apptrade.PackingSlip) ([]byte, error) {
	doc, err := p.RenderHTML(slip)
	if err != nil {
		return nil, err
	}
	result, err := p.renderer.Render(ctx, &RenderRequest{
		HTML:  doc,
		Title: "Packing slip " + slip.Package.PackageNumber,
	})
	if err != nil {
		p.logger.Warn("Packing slip rendering failed",
			zap.String("package_number", slip.Package.PackageNumber),
			zap.Error(err),
		)
		return nil, err
	}
	return result.PDFData, nil
}

var slipFuncs = template.FuncMap{
	"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	"upper": strings.ToUpper,
	"nonzero": func(d decimal.Decimal) bool {
		return !d.IsZero()
	},
}

const packingSlipTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>Packing slip {{.Package.PackageNumber}}</title>
<style>
body { font-family: Arial, sans-serif; font-size: 12px; color: #222; }
h1 { font-size: 18px; margin: 0 0 8px; }
h2 { font-size: 14px; margin: 16px 0 4px; }
table { width: 100%; border-collapse: collapse; margin-top: 4px; }
th, td { border: 1px solid #ccc; padding: 4px 6px; text-align: left; }
td.num, th.num { text-align: right; }
.order { page-break-inside: avoid; }
.meta td { border: none; padding: 2px 6px 2px 0; }
</style>
</head>
<body>
<h1>Packing slip {{.Package.PackageNumber}}</h1>
<table class="meta">
<tr><td>Status</td><td>{{upper .Package.Status}}</td></tr>
{{- if .Package.CourierService}}
<tr><td>Courier</td><td>{{.Package.CourierService}}</td></tr>
{{- end}}
{{- if .Package.TrackingID}}
<tr><td>Tracking ID</td><td>{{.Package.TrackingID}}</td></tr>
{{- end}}
{{- if nonzero .Package.Weight}}
<tr><td>Weight</td><td>{{.Package.Weight}} kg</td></tr>
{{- end}}
{{- with .Package.Dimensions}}{{if nonzero .Length}}
<tr><td>Dimensions</td><td>{{.Length}} x {{.Width}} x {{.Height}} cm</td></tr>
{{- end}}{{end}}
<tr><td>Generated</td><td>{{.GeneratedAt.Format "2006-01-02 15:04"}}</td></tr>
</table>
{{range .Orders}}
<div class="order">
<h2>Order {{.OrderNumber}}</h2>
<p>{{.CustomerName}}{{with .ShippingAddress}}<br>{{.Line1}}{{if .Area}}, {{.Area}}{{end}}<br>{{.City}} {{.Pincode}}{{end}}</p>
<p>Payment: {{.PaymentMethod}} ({{.PaymentStatus}})</p>
<table>
<tr><th>Product</th><th>Size</th><th>Color</th><th class="num">Qty</th><th class="num">Price</th><th class="num">Amount</th></tr>
{{- range .Items}}
<tr><td>{{.ProductName}}</td><td>{{.Size}}</td><td>{{.Color}}</td><td class="num">{{.Quantity}}</td><td class="num">{{money .Price}}</td><td class="num">{{money .Amount}}</td></tr>
{{- end}}
<tr><td colspan="5" class="num">Total</td><td class="num">{{money .FinalAmount}}</td></tr>
</table>
</div>
{{end}}
</body>
</html>
`
