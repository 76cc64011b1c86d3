package artex

// Converter converts article HTML to another markup.
type Converter interface {
	// Convert transforms the content HTML of a Result into the target markup.
	Convert(html string) (string, error)
}
