package names

import (
	"embed"
	"regexp"
	"strings"
)

//go:embed dictionaries
var dictionaries embed.FS

var adjGen = NewDictionary("adjectives")
var nounGen = NewDictionary("nouns")
var intGen = NewInteger(1000, 10000)

var gens = []Generator{adjGen, nounGen, intGen}
var compGen = Composite{generators: gens, separator: "-"}

// GenerateOrderCode returns a human-friendly order reference such as
// TS-BRAVE-FALCON-4821. Uniqueness is enforced by the orders table, so
// callers retry on collision.
func GenerateOrderCode() string {
	return "TS-" + strings.ToUpper(compGen.Generate())
}

var slugStripRx = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify turns free text into a URL slug: lowercased, runs of anything
// outside [a-z0-9] collapsed to single dashes.
func Slugify(text string) string {
	slug := slugStripRx.ReplaceAllString(strings.ToLower(text), "-")
	return strings.Trim(slug, "-")
}
