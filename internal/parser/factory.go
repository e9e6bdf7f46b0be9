package parser

import (
	"otpshare/internal/domain"
	"otpshare/internal/parser/omada"
	"otpshare/internal/parser/plaintext"
	"otpshare/internal/port"
)

// Factory creates a fresh CodeParser for one import.
type Factory func() port.CodeParser

// factories maps every supported vendor to its parser constructor.
var factories = map[domain.VendorType]Factory{
	domain.VendorPlainText:   func() port.CodeParser { return plaintext.NewParser() },
	domain.VendorTPLinkOmada: func() port.CodeParser { return omada.NewParser() },
}

// NewParser returns a new parser for the given vendor. It never looks at file
// content; an unknown vendor yields *domain.UnsupportedVendorError.
func NewParser(vendor domain.VendorType) (port.CodeParser, error) {
	factory, ok := factories[vendor]
	if !ok {
		return nil, &domain.UnsupportedVendorError{Value: string(vendor)}
	}
	return factory(), nil
}

// Metadata describes every supported vendor in declaration order.
func Metadata() []domain.ParserMetadata {
	return Describe(NewParser)
}

// Describe builds the metadata listing from an arbitrary parser constructor,
// skipping vendors it cannot build.
func Describe(newParser func(domain.VendorType) (port.CodeParser, error)) []domain.ParserMetadata {
	vendors := domain.VendorTypes()
	out := make([]domain.ParserMetadata, 0, len(vendors))
	for _, v := range vendors {
		p, err := newParser(v)
		if err != nil {
			continue
		}
		out = append(out, domain.ParserMetadata{
			VendorType:     v,
			Name:           p.Name(),
			Description:    p.Description(),
			FileExtensions: p.FileExtensions(),
			MimeTypes:      p.MimeTypes(),
		})
	}
	return out
}
