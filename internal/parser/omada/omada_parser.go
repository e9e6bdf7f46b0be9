package omada

import (
	"github.com/gabriel-vasile/mimetype"
)

const vendorName = "TP-Link Omada"

const description = `Export vouchers from the TP-Link Omada Controller:

1. Open the Omada Controller and select your site.
2. Go to Settings > Hotspot > Vouchers.
3. Select the vouchers to export, or leave the selection empty to export all.
4. Click Export and choose CSV (or print the voucher list to PDF).
5. Upload the exported file here.

For CSV exports the code column is auto-detected and expired vouchers are skipped.
For PDF exports every 8-digit voucher code printed in the document is imported.`

// Parser decodes TP-Link Omada Controller voucher exports. The controller
// produces either a CSV table or a printable PDF; the container is told
// apart by its leading bytes.
type Parser struct{}

// NewParser returns an Omada voucher parser.
func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Name() string { return "TP-Link Omada Controller" }

func (p *Parser) Description() string { return description }

func (p *Parser) FileExtensions() []string { return []string{".csv", ".pdf"} }

func (p *Parser) MimeTypes() []string {
	return []string{"text/csv", "application/csv", "application/pdf"}
}

func (p *Parser) Parse(data []byte) ([]string, error) {
	if isPDF(data) {
		return ParsePDF(data)
	}
	return ParseCSV(data)
}

func isPDF(data []byte) bool {
	return mimetype.Detect(data).Is("application/pdf")
}

// appendUnique appends code to codes unless it was already seen.
func appendUnique(codes []string, seen map[string]struct{}, code string) []string {
	if _, dup := seen[code]; dup {
		return codes
	}
	seen[code] = struct{}{}
	return append(codes, code)
}
