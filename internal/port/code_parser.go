package port

// CodeParser turns the raw bytes of a vendor export into voucher codes.
// Implementations are stateless; Parse must not retain data after returning.
type CodeParser interface {
	Name() string
	Description() string
	FileExtensions() []string
	MimeTypes() []string
	Parse(data []byte) ([]string, error)
}
