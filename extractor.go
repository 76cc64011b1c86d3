package artex

// Engine names accepted by the CLI and recorded on stored articles.
const (
	EngineGoquery     = "goquery"
	EngineReadability = "readability"
	EngineTrafilatura = "trafilatura"
)

// Engines lists the content engines in preference order.
var Engines = []string{EngineGoquery, EngineReadability, EngineTrafilatura}
