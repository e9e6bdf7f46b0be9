package plaintext

import (
	"bytes"
	"strings"
)

var utf8BOM = []byte("\xef\xbb\xbf")

const description = `Upload a plain text file with one voucher code per line.

Leading and trailing whitespace is ignored and blank lines are skipped.
Duplicate lines are kept as-is.`

// Parser reads newline separated codes.
type Parser struct{}

// NewParser returns a plain text parser.
func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Name() string { return "Plain Text" }

func (p *Parser) Description() string { return description }

func (p *Parser) FileExtensions() []string { return []string{".txt"} }

func (p *Parser) MimeTypes() []string { return []string{"text/plain"} }

// Parse splits data on LF only. A CRLF line keeps its CR until trimming, so
// Windows files work; a file using bare CR separators stays a single line.
// A leading BOM is dropped and invalid UTF-8 sequences become U+FFFD.
func (p *Parser) Parse(data []byte) ([]string, error) {
	codes := []string{}
	text := strings.ToValidUTF8(string(bytes.TrimPrefix(data, utf8BOM)), "\uFFFD")
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		codes = append(codes, line)
	}
	return codes, nil
}
