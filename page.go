package artex

// Input is one raw document handed to an Extractor.
type Input struct {
	// HTML is the raw, possibly non-UTF-8, document bytes.
	HTML []byte

	// URL is the address the document was fetched from. Optional; used to
	// resolve relative links and as the last canonical URL fallback.
	URL string

	// Encoding is an explicitly declared character encoding label.
	Encoding string

	// ContentType is the HTTP Content-Type header, if any.
	ContentType string

	// Language is an explicitly declared ISO 639-1 language code.
	Language string
}

// Page is a decoded document ready for parsing.
type Page struct {
	HTML     string
	URL      string
	Language string

	// Encoding is the canonical name of the encoding the bytes were decoded from.
	Encoding string

	// Warnings lists recoverable problems found while decoding.
	Warnings []string
}

// Decoder turns raw document bytes into UTF-8 HTML.
type Decoder interface {
	// Decode resolves the character encoding of in and decodes it.
	// Empty input decodes to an empty page. Returns EINVALID when the bytes
	// are not text at all.
	Decode(in *Input) (*Page, error)
}
