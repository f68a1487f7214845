package usecase

import "regexp"

// productAliases maps canonical catalog names to the shorthand,
// abbreviations and misspellings customers actually type. Keys follow
// the catalog naming convention but are compared in normalized form,
// so a key with no matching product in the current stock snapshot is
// simply inert.
var productAliases = map[string][]string{
	"Samsung Galaxy S24 Ultra 256GB": {
		"s24u", "s24 ultra", "s24ultra", "galaxy s24 ultra", "24 ultra", "s 24 ultra",
	},
	"Samsung Galaxy S24 128GB": {
		"s24", "galaxy s24", "s 24", "galaxy 24",
	},
	"Samsung Galaxy A15 128GB": {
		"a15", "galaxy a15", "a 15",
	},
	"Samsung Galaxy Z Fold6 512GB": {
		"fold", "fold6", "z fold", "zfold", "z fold 6", "galaxy fold",
	},
	"Samsung Galaxy Z Flip6 256GB": {
		"flip", "flip6", "z flip", "zflip", "z flip 6", "galaxy flip",
	},
	"iPhone 15 Pro Max 256GB": {
		"15pm", "15 pro max", "15promax", "iphone 15 pm", "ip15pm", "ip 15 pro max",
	},
	"iPhone 15 Pro 128GB": {
		"15p", "15 pro", "iphone 15 pro", "ip15p",
	},
	"iPhone 15 128GB": {
		"iphone 15", "iphone15", "ip15",
	},
	"iPhone SE 2022 64GB": {
		"se", "iphone se", "se 2022",
	},
	"Xiaomi Redmi Note 13 256GB": {
		"note 13", "note13", "redmi note 13", "rn13",
	},
	"Xiaomi Poco X6 Pro 256GB": {
		"poco x6", "pocox6", "x6 pro", "poco",
	},
	"Motorola Edge 50 Fusion 256GB": {
		"edge 50", "edge50", "moto edge 50",
	},
	"Motorola Moto G84 256GB": {
		"g84", "moto g84", "motog84",
	},
}

// brandCorrection holds the canonical (lowercased) brand token and the
// misspellings that get substituted for it. Order is fixed so repeated
// runs correct the same input the same way.
type brandCorrection struct {
	canonical string
	variants  []string
}

// brandTypos lists common brand misspellings seen in chat transcripts.
// Replacement is plain substring substitution; a variant embedded in a
// longer token is still corrected. Corrected text is an intermediate
// value only and never surfaces as a product identifier.
var brandTypos = []brandCorrection{
	{"samsung", []string{"sumsung", "samsumg", "samsum", "sansung", "samgsung", "samsun"}},
	{"iphone", []string{"ifone", "aifon", "ayfon", "iphon", "ipone", "ifon"}},
	{"apple", []string{"aple", "appel", "appl"}},
	{"xiaomi", []string{"xaomi", "siaomi", "shaomi", "chaomi", "xiomi"}},
	{"motorola", []string{"motorla", "motorolla", "mortorola"}},
	{"huawei", []string{"juawei", "hawei", "huwei"}},
}

// colloquialPattern maps a colloquial description to a reference phrase
// that is then located in the catalog by substring containment.
type colloquialPattern struct {
	re     *regexp.Regexp
	phrase string
}

// colloquialPatterns is evaluated in order against normalized input and
// the first match wins. Specific patterns must precede general ones:
// "el samsung mas caro" has to hit the Ultra entry before any generic
// "samsung" rule gets a chance.
var colloquialPatterns = []colloquialPattern{
	{regexp.MustCompile(`samsung.*(mas caro|mas grande|mas potente|tope de gama)|(mas caro|mas grande|mas potente).*samsung`), "s24 ultra"},
	{regexp.MustCompile(`iphone.*(mas caro|mas grande|mas potente)|(mas caro|mas grande|mas potente).*iphone`), "pro max"},
	{regexp.MustCompile(`samsung.*(mas nuevo|mas reciente|ultimo)|(ultimo|mas nuevo|mas reciente).*samsung`), "s24"},
	{regexp.MustCompile(`iphone.*(mas nuevo|mas reciente|ultimo)|(ultimo|mas nuevo|mas reciente).*iphone`), "iphone 15"},
	{regexp.MustCompile(`samsung.*(mas barato|economico)|(mas barato|economico).*samsung`), "a15"},
	{regexp.MustCompile(`plegable|se dobla|doble pantalla`), "fold"},
	{regexp.MustCompile(`mejor camara|para fotos|para fotografia`), "ultra"},
	{regexp.MustCompile(`mas barato|economico|gama baja|para el dia a dia`), "a15"},
}

// normalizedAliases is the alias table re-keyed by normalized canonical
// name with normalized alias values, built once at startup.
var normalizedAliases = buildNormalizedAliases()

func buildNormalizedAliases() map[string][]string {
	m := make(map[string][]string, len(productAliases))
	for canonical, aliases := range productAliases {
		key := Normalize(canonical)
		values := make([]string, 0, len(aliases))
		for _, a := range aliases {
			if n := Normalize(a); n != "" {
				values = append(values, n)
			}
		}
		m[key] = values
	}
	return m
}
