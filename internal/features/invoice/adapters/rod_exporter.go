package adapters

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"io"
	"time"

	"crafts-market/internal/core/logger"
	checkoutdomain "crafts-market/internal/features/checkout/domain"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

const exportTimeout = 30 * time.Second

// RodExporter renders invoices through a headless Chrome print-to-PDF.
// When browserURL is set it attaches to a running browser, otherwise it
// launches one per export.
type RodExporter struct {
	browserURL string
	tmpl       *template.Template
	logger     *zap.Logger
}

// NewRodExporter creates a new RodExporter.
func NewRodExporter(browserURL string) *RodExporter {
	return &RodExporter{
		browserURL: browserURL,
		tmpl:       template.Must(template.New("invoice").Parse(invoiceTemplate)),
		logger:     logger.Named("invoice"),
	}
}

// Export renders the order into HTML and prints it to PDF.
func (e *RodExporter) Export(ctx context.Context, order checkoutdomain.Order) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, exportTimeout)
	defer cancel()

	html, err := e.renderHTML(order)
	if err != nil {
		return nil, err
	}

	controlURL := e.browserURL
	if controlURL == "" {
		e.logger.Debug("Launching browser for invoice export", zap.String("order_id", order.ID))

		l := launcher.New().
			Context(ctx).
			Headless(true).
			NoSandbox(true)

		u, err := l.Launch()
		if err != nil {
			return nil, fmt.Errorf("failed to launch browser: %w", err)
		}
		controlURL = u
	}

	browser := rod.New().Context(ctx).ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer page.Close()

	if err := page.SetDocumentContent(html); err != nil {
		return nil, fmt.Errorf("failed to set invoice content: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("failed to wait for invoice render: %w", err)
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to print invoice: %w", err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read pdf stream: %w", err)
	}
	return pdf, nil
}

func (e *RodExporter) renderHTML(order checkoutdomain.Order) (string, error) {
	var buf bytes.Buffer
	if err := e.tmpl.Execute(&buf, order); err != nil {
		return "", fmt.Errorf("failed to render invoice template: %w", err)
	}
	return buf.String(), nil
}

const invoiceTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  body { font-family: Georgia, serif; color: #3e2c20; margin: 40px; }
  h1 { border-bottom: 2px solid #b08d57; padding-bottom: 8px; }
  table { width: 100%; border-collapse: collapse; margin-top: 24px; }
  th, td { text-align: left; padding: 6px 4px; border-bottom: 1px solid #e0d5c5; }
  td.num, th.num { text-align: right; }
  .totals td { border: none; padding: 3px 4px; }
  .totals .grand { font-weight: bold; border-top: 2px solid #b08d57; }
  .meta { color: #7a6a55; font-size: 0.9em; }
</style>
</head>
<body>
<h1>Crafts Market</h1>
<p class="meta">Invoice {{.ID}} &middot; {{.CreatedAt.Format "January 2, 2006"}} &middot; {{.Status}}</p>

<p>
{{.Customer.FullName}}<br>
{{.Customer.Address.Street}}<br>
{{.Customer.Address.City}}, {{.Customer.Address.Country}} {{.Customer.Address.Zip}}<br>
{{.Customer.Phone}}
</p>

{{if .Payment.CardLast4}}<p class="meta">Paid with card ending in {{.Payment.CardLast4}}</p>{{end}}

<table>
<tr><th>Item</th><th class="num">Unit</th><th class="num">Qty</th><th class="num">Total</th></tr>
{{range .Lines}}
<tr><td>{{.Name}}</td><td class="num">{{.UnitPrice}}</td><td class="num">{{.Quantity}}</td><td class="num">{{.LineTotal}}</td></tr>
{{end}}
</table>

<table class="totals">
<tr><td>Subtotal</td><td class="num">{{.Totals.Subtotal}}</td></tr>
<tr><td>Shipping ({{.Shipping.Method}})</td><td class="num">{{.Totals.Shipping}}</td></tr>
<tr><td>Tax</td><td class="num">{{.Totals.Tax}}</td></tr>
<tr class="grand"><td>Total</td><td class="num">{{.Totals.Total}}</td></tr>
</table>
</body>
</html>`
