package usecase

import (
	"log"
	"sort"
	"strings"

	"github.com/tiendafon/backend/internal/domain"
)

// Confidence produced by each scoring tier. The final score is the
// maximum across tiers, never a sum: independent heuristics catching
// the same true positive must not inflate confidence past what any
// single strong signal justifies.
const (
	scoreExact          = 100 // normalized query equals normalized name
	scoreAliasExact     = 95  // query equals a known alias
	scoreAliasPartial   = 90  // query contains a known alias
	scoreNameContains   = 88  // product name contains the query
	scoreBrandQualified = 85  // brand + remainder found in the name
	scoreWordOverlap    = 85  // ceiling for the word-overlap tier
	scoreQueryContains  = 80  // query contains the product name
	scoreEditDistance   = 80  // ceiling for the edit-distance tier
	scoreBrandOnly      = 40  // query names a brand, not a model
)

const (
	// autoAcceptConfidence marks the boundary below which a match
	// needs user confirmation.
	autoAcceptConfidence = 85

	// colloquialConfidence is assigned when a colloquial pattern
	// resolves directly to a product.
	colloquialConfidence = 85

	// canonicalThreshold is the minimum confidence for rewriting a
	// free-text model reference to its canonical name.
	canonicalThreshold = 70

	// noiseFloor filters weak candidates out of ranked results.
	noiseFloor = 30

	// defaultCandidateLimit caps ranked results when the caller does
	// not ask for a specific amount.
	defaultCandidateLimit = 5

	// Edit-distance similarity only applies to mid-length queries and
	// only counts when the strings are mostly the same.
	editDistanceMinLen        = 4
	editDistanceMaxLen        = 30
	editDistanceMinSimilarity = 0.6
)

// MatcherConfig holds configuration for the matcher
type MatcherConfig struct {
	EnableDebugLogging bool
}

// Matcher resolves free-text model references against a caller-supplied
// catalog snapshot. It holds no mutable state; the alias, typo and
// pattern tables are package-level constants, so concurrent calls need
// no coordination.
type Matcher struct {
	enableDebugLogging bool
}

// NewMatcher creates a new matcher with the given configuration
func NewMatcher(config MatcherConfig) *Matcher {
	return &Matcher{
		enableDebugLogging: config.EnableDebugLogging,
	}
}

// FindBestMatch returns the highest-confidence product for a user
// utterance. Colloquial descriptions short-circuit the scorer when they
// resolve to a concrete product. Empty queries and empty catalogs
// degrade to a zero-confidence result, never an error.
func (m *Matcher) FindBestMatch(query string, products []domain.Product) domain.MatchResult {
	result := domain.MatchResult{
		OriginalQuery:     query,
		NeedsConfirmation: true,
	}
	if strings.TrimSpace(query) == "" || len(products) == 0 {
		return result
	}

	if phrase, ok := MatchColloquialPattern(query); ok {
		hint := Normalize(phrase)
		for i := range products {
			name := Normalize(products[i].Name)
			brand := Normalize(products[i].Brand)
			if strings.Contains(name, hint) || strings.Contains(brand, hint) {
				if m.enableDebugLogging {
					log.Printf("[MATCH] Colloquial %q -> %q -> %q", query, phrase, products[i].Name)
				}
				return domain.MatchResult{
					Product:       &products[i],
					Confidence:    colloquialConfidence,
					MatchedTerm:   products[i].Name,
					OriginalQuery: query,
				}
			}
		}
		// Hint phrase names nothing in stock; fall through to scoring.
	}

	corrected := CorrectBrandTypos(Normalize(query))

	best := 0
	var bestProduct *domain.Product
	for i := range products {
		score := m.scoreBoth(query, corrected, products[i])
		if m.enableDebugLogging {
			log.Printf("[MATCH] %q vs %q: %d", query, products[i].Name, score)
		}
		// Strict > keeps the first product on ties; catalog order is
		// the tie-break.
		if score > best {
			best = score
			bestProduct = &products[i]
		}
	}

	if bestProduct == nil {
		return result
	}

	result.Product = bestProduct
	result.Confidence = best
	result.MatchedTerm = bestProduct.Name
	result.NeedsConfirmation = best < autoAcceptConfidence
	return result
}

// FindAllMatches returns candidates ranked by confidence, filtered to
// those above the noise floor and truncated to limit (default 5). The
// colloquial short-circuit does not apply here; ranked results always
// come from the general scorer.
func (m *Matcher) FindAllMatches(query string, products []domain.Product, limit int) []domain.MatchResult {
	if limit < 1 {
		limit = defaultCandidateLimit
	}
	if strings.TrimSpace(query) == "" || len(products) == 0 {
		return nil
	}

	corrected := CorrectBrandTypos(Normalize(query))

	results := make([]domain.MatchResult, 0, len(products))
	for i := range products {
		score := m.scoreBoth(query, corrected, products[i])
		if score <= noiseFloor {
			continue
		}
		results = append(results, domain.MatchResult{
			Product:           &products[i],
			Confidence:        score,
			MatchedTerm:       products[i].Name,
			OriginalQuery:     query,
			NeedsConfirmation: score < autoAcceptConfidence,
		})
	}

	// Stable sort so equal scores keep catalog order.
	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Confidence > results[b].Confidence
	})

	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// NormalizeModelName canonicalizes a free-text model reference for
// storage. When the best match reaches the canonical threshold the
// catalog name is returned; otherwise the input passes through
// unchanged.
func (m *Matcher) NormalizeModelName(modelName string, products []domain.Product) string {
	match := m.FindBestMatch(modelName, products)
	if match.Product != nil && match.Confidence >= canonicalThreshold {
		if m.enableDebugLogging && match.Product.Name != modelName {
			log.Printf("[MATCH] Canonicalized %q -> %q (confidence %d)", modelName, match.Product.Name, match.Confidence)
		}
		return match.Product.Name
	}
	return modelName
}

// scoreBoth scores the raw and the typo-corrected query and keeps the
// better result, so a correction can only ever raise confidence.
func (m *Matcher) scoreBoth(query, corrected string, p domain.Product) int {
	score := m.ScoreMatch(query, p)
	if s := m.ScoreMatch(corrected, p); s > score {
		score = s
	}
	return score
}

// ScoreMatch computes the 0-100 confidence between a query and one
// product. Each tier produces an independent candidate score and the
// maximum wins. Deterministic and total: malformed input scores 0.
func (m *Matcher) ScoreMatch(query string, p domain.Product) int {
	q := Normalize(query)
	name := Normalize(p.Name)
	if q == "" || name == "" {
		return 0
	}

	if q == name {
		return scoreExact
	}

	brand := Normalize(p.Brand)

	// A query that is exactly the brand names a manufacturer, not a
	// model. Short-circuit before the substring tiers so it stays
	// ambiguous instead of scoring an auto-accept on containment.
	if brand != "" && q == brand {
		return scoreBrandOnly
	}

	best := 0

	// Alias tiers: exact alias hit, or alias contained in the query.
	for _, alias := range normalizedAliases[name] {
		if q == alias {
			best = maxScore(best, scoreAliasExact)
		} else if strings.Contains(q, alias) {
			best = maxScore(best, scoreAliasPartial)
		}
	}

	// Substring tiers.
	if strings.Contains(name, q) {
		best = maxScore(best, scoreNameContains)
	}
	if strings.Contains(q, name) {
		best = maxScore(best, scoreQueryContains)
	}

	// Brand-qualified: the query names the brand and the remainder
	// locates the model within the product name.
	if brand != "" && strings.Contains(q, brand) {
		remainder := Normalize(strings.ReplaceAll(q, brand, " "))
		if remainder != "" && strings.Contains(name, remainder) {
			best = maxScore(best, scoreBrandQualified)
		}
	}

	best = maxScore(best, wordOverlapScore(q, name))
	best = maxScore(best, editDistanceScore(q, name))

	return best
}

// wordOverlapScore scores the fraction of query words (longer than one
// rune) found in the product name's words, by substring containment in
// either direction, scaled to the tier ceiling.
func wordOverlapScore(query, name string) int {
	queryWords := strings.Fields(query)
	nameWords := strings.Fields(name)

	total := 0
	matched := 0
	for _, qw := range queryWords {
		if len([]rune(qw)) <= 1 {
			continue
		}
		total++
		for _, nw := range nameWords {
			if strings.Contains(nw, qw) || strings.Contains(qw, nw) {
				matched++
				break
			}
		}
	}
	if total == 0 || matched == 0 {
		return 0
	}
	return scoreWordOverlap * matched / total
}

// editDistanceScore turns Levenshtein distance into a similarity score
// for mid-length queries. Short queries produce too many accidental
// near-misses and long ones are better served by the substring tiers.
func editDistanceScore(query, name string) int {
	queryLen := len([]rune(query))
	if queryLen < editDistanceMinLen || queryLen > editDistanceMaxLen {
		return 0
	}

	nameLen := len([]rune(name))
	maxLen := queryLen
	if nameLen > maxLen {
		maxLen = nameLen
	}

	similarity := 1.0 - float64(levenshteinDistance(query, name))/float64(maxLen)
	if similarity <= editDistanceMinSimilarity {
		return 0
	}
	return int(similarity * scoreEditDistance)
}

// levenshteinDistance calculates the edit distance between two strings
// over code points, with unit cost for insertions, deletions and
// substitutions. Two rows instead of the full table.
func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len([]rune(s2))
	}
	if len(s2) == 0 {
		return len([]rune(s1))
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	n := len(r2)

	prev := make([]int, n+1)
	curr := make([]int, n+1)

	for j := 0; j <= n; j++ {
		prev[j] = j
	}

	for i := 1; i <= len(r1); i++ {
		curr[0] = i
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			curr[j] = min(
				prev[j]+1,      // deletion
				curr[j-1]+1,    // insertion
				prev[j-1]+cost, // substitution
			)
		}
		prev, curr = curr, prev
	}

	return prev[n]
}

func maxScore(a, b int) int {
	if a > b {
		return a
	}
	return b
}
