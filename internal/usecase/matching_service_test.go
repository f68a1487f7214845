package usecase

import (
	"testing"

	"github.com/tiendafon/backend/internal/domain"
)

// testCatalog returns an in-stock snapshot in a fixed order; several
// tests depend on that order for tie-breaking.
func testCatalog() []domain.Product {
	return []domain.Product{
		{ID: "p1", Name: "Samsung Galaxy S24 Ultra 256GB", Brand: "Samsung", Price: 1299},
		{ID: "p2", Name: "Samsung Galaxy S24 128GB", Brand: "Samsung", Price: 899},
		{ID: "p3", Name: "Samsung Galaxy A15 128GB", Brand: "Samsung", Price: 199},
		{ID: "p4", Name: "iPhone 15 Pro Max 256GB", Brand: "Apple", Price: 1399},
		{ID: "p5", Name: "iPhone 15 128GB", Brand: "Apple", Price: 949},
		{ID: "p6", Name: "Xiaomi Redmi Note 13 256GB", Brand: "Xiaomi", Price: 299},
	}
}

func TestScoreMatch(t *testing.T) {
	m := NewMatcher(MatcherConfig{})

	t.Run("exact name scores 100", func(t *testing.T) {
		for _, p := range testCatalog() {
			if score := m.ScoreMatch(p.Name, p); score != 100 {
				t.Errorf("ScoreMatch(%q) = %d, want 100", p.Name, score)
			}
		}
	})

	t.Run("case and accent variations still score 100", func(t *testing.T) {
		p := domain.Product{Name: "Samsung Galaxy S24 Ultra 256GB", Brand: "Samsung"}
		for _, query := range []string{
			"SAMSUNG GALAXY S24 ULTRA 256GB",
			"sámsung gálaxy s24 ultra 256gb",
			"  samsung   galaxy  s24 ultra 256gb  ",
		} {
			if score := m.ScoreMatch(query, p); score != 100 {
				t.Errorf("ScoreMatch(%q) = %d, want 100", query, score)
			}
		}
	})

	t.Run("known aliases score at least 95", func(t *testing.T) {
		catalog := testCatalog()
		byName := make(map[string]domain.Product, len(catalog))
		for _, p := range catalog {
			byName[Normalize(p.Name)] = p
		}

		for canonical, aliases := range productAliases {
			p, ok := byName[Normalize(canonical)]
			if !ok {
				continue // alias key not in this snapshot; must stay inert
			}
			for _, alias := range aliases {
				if score := m.ScoreMatch(alias, p); score < 95 {
					t.Errorf("ScoreMatch(%q, %q) = %d, want >= 95", alias, p.Name, score)
				}
			}
		}
	})

	t.Run("query containing an alias scores 90", func(t *testing.T) {
		p := domain.Product{Name: "Samsung Galaxy S24 Ultra 256GB", Brand: "Samsung"}
		score := m.ScoreMatch("quiero el s24u por favor", p)
		if score != 90 {
			t.Errorf("score = %d, want 90 (alias partial)", score)
		}
	})

	t.Run("name containing the query scores 88", func(t *testing.T) {
		p := domain.Product{Name: "Samsung Galaxy S24 Ultra 256GB", Brand: "Samsung"}
		// "galaxy s24 ultra" is also an alias (90); use a fragment that isn't.
		score := m.ScoreMatch("ultra 256gb", p)
		if score != 88 {
			t.Errorf("score = %d, want 88 (name contains query)", score)
		}
	})

	t.Run("query containing the name scores 80", func(t *testing.T) {
		p := domain.Product{Name: "iPhone 15 128GB", Brand: "Apple"}
		score := m.ScoreMatch("quisiera comprar iphone 15 128gb hoy", p)
		if score < 80 {
			t.Errorf("score = %d, want >= 80 (query contains name)", score)
		}
	})

	t.Run("brand plus model fragment scores 85", func(t *testing.T) {
		// No alias entry for this product, so the brand-qualified tier
		// is the strongest applicable signal.
		p := domain.Product{Name: "Samsung Galaxy M55 256GB", Brand: "Samsung"}
		score := m.ScoreMatch("samsung m55", p)
		if score != 85 {
			t.Errorf("score = %d, want 85 (brand qualified)", score)
		}
	})

	t.Run("bare brand query stays ambiguous at 40", func(t *testing.T) {
		p := domain.Product{Name: "Samsung Galaxy S24 Ultra 256GB", Brand: "Samsung"}
		for _, query := range []string{"samsung", "SAMSUNG", " Samsung "} {
			if score := m.ScoreMatch(query, p); score != 40 {
				t.Errorf("ScoreMatch(%q) = %d, want 40 (brand only)", query, score)
			}
		}
	})

	t.Run("unrelated query scores 0", func(t *testing.T) {
		p := domain.Product{Name: "Samsung Galaxy S24 Ultra 256GB", Brand: "Samsung"}
		if score := m.ScoreMatch("xyzzy", p); score != 0 {
			t.Errorf("score = %d, want 0", score)
		}
	})

	t.Run("empty query and empty name score 0", func(t *testing.T) {
		p := domain.Product{Name: "Samsung Galaxy S24 Ultra 256GB", Brand: "Samsung"}
		if score := m.ScoreMatch("", p); score != 0 {
			t.Errorf("empty query score = %d, want 0", score)
		}
		if score := m.ScoreMatch("   ", p); score != 0 {
			t.Errorf("blank query score = %d, want 0", score)
		}
		if score := m.ScoreMatch("s24", domain.Product{}); score != 0 {
			t.Errorf("empty product score = %d, want 0", score)
		}
	})

	t.Run("never exceeds 100", func(t *testing.T) {
		for _, p := range testCatalog() {
			for _, query := range []string{p.Name, p.Brand, "s24u", "el samsung mas caro", "galaxy"} {
				if score := m.ScoreMatch(query, p); score < 0 || score > 100 {
					t.Errorf("ScoreMatch(%q, %q) = %d, out of range", query, p.Name, score)
				}
			}
		}
	})
}

func TestWordOverlapScore(t *testing.T) {
	t.Run("full overlap reaches the tier ceiling", func(t *testing.T) {
		if score := wordOverlapScore("galaxy s24", "samsung galaxy s24 128gb"); score != 85 {
			t.Errorf("score = %d, want 85", score)
		}
	})

	t.Run("partial overlap scales down", func(t *testing.T) {
		// 1 of 2 qualifying words matches: 85*1/2 = 42.
		if score := wordOverlapScore("galaxy xyzzy", "samsung galaxy s24 128gb"); score != 42 {
			t.Errorf("score = %d, want 42", score)
		}
	})

	t.Run("single-rune words are ignored", func(t *testing.T) {
		if score := wordOverlapScore("a b c", "samsung galaxy a15"); score != 0 {
			t.Errorf("score = %d, want 0", score)
		}
	})
}

func TestEditDistanceScore(t *testing.T) {
	t.Run("near miss inside the length window scores", func(t *testing.T) {
		score := editDistanceScore("iphone 15 pro", "iphone 15 pro 128gb")
		if score <= 0 || score > 80 {
			t.Errorf("score = %d, want within (0,80]", score)
		}
	})

	t.Run("short queries are excluded", func(t *testing.T) {
		if score := editDistanceScore("s24", "s24 128gb"); score != 0 {
			t.Errorf("score = %d, want 0 for 3-rune query", score)
		}
	})

	t.Run("long queries are excluded", func(t *testing.T) {
		q := "una descripcion larguisima de un telefono cualquiera"
		if score := editDistanceScore(q, "samsung galaxy s24 128gb"); score != 0 {
			t.Errorf("score = %d, want 0 for overlong query", score)
		}
	})

	t.Run("weak similarity is discarded", func(t *testing.T) {
		if score := editDistanceScore("motorola", "iphone 15 pro max 256gb"); score != 0 {
			t.Errorf("score = %d, want 0 below similarity cutoff", score)
		}
	})
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1, s2 string
		want   int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"s24", "s24u", 1},
		{"sumsung", "samsung", 1},
		{"télefono", "telefono", 1}, // code points, not bytes
	}

	for _, tt := range tests {
		if got := levenshteinDistance(tt.s1, tt.s2); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.s1, tt.s2, got, tt.want)
		}
	}
}

func TestFindBestMatch(t *testing.T) {
	m := NewMatcher(MatcherConfig{})
	catalog := testCatalog()

	t.Run("empty query degrades to zero confidence", func(t *testing.T) {
		for _, query := range []string{"", "   "} {
			result := m.FindBestMatch(query, catalog)
			if result.Product != nil {
				t.Errorf("Product = %v, want nil", result.Product)
			}
			if result.Confidence != 0 {
				t.Errorf("Confidence = %d, want 0", result.Confidence)
			}
			if !result.NeedsConfirmation {
				t.Error("NeedsConfirmation = false, want true")
			}
		}
	})

	t.Run("empty catalog degrades to zero confidence", func(t *testing.T) {
		result := m.FindBestMatch("s24u", nil)
		if result.Product != nil || result.Confidence != 0 || !result.NeedsConfirmation {
			t.Errorf("result = %+v, want nil product, 0 confidence, confirmation", result)
		}
	})

	t.Run("alias resolves without confirmation", func(t *testing.T) {
		result := m.FindBestMatch("15pm", catalog)
		if result.Product == nil || result.Product.ID != "p4" {
			t.Fatalf("Product = %v, want iPhone 15 Pro Max", result.Product)
		}
		if result.Confidence != 95 {
			t.Errorf("Confidence = %d, want 95", result.Confidence)
		}
		if result.NeedsConfirmation {
			t.Error("NeedsConfirmation = true, want false at 95")
		}
		if result.MatchedTerm != "iPhone 15 Pro Max 256GB" {
			t.Errorf("MatchedTerm = %q, want canonical name", result.MatchedTerm)
		}
		if result.OriginalQuery != "15pm" {
			t.Errorf("OriginalQuery = %q, want %q", result.OriginalQuery, "15pm")
		}
	})

	t.Run("colloquial description short-circuits at 85", func(t *testing.T) {
		result := m.FindBestMatch("el samsung mas caro", catalog)
		if result.Product == nil || result.Product.ID != "p1" {
			t.Fatalf("Product = %v, want S24 Ultra", result.Product)
		}
		if result.Confidence != 85 {
			t.Errorf("Confidence = %d, want exactly 85", result.Confidence)
		}
		if result.NeedsConfirmation {
			t.Error("NeedsConfirmation = true, want false on colloquial match")
		}
	})

	t.Run("biggest iphone resolves to the Pro Max", func(t *testing.T) {
		result := m.FindBestMatch("el iphone mas grande", catalog)
		if result.Product == nil || result.Product.ID != "p4" {
			t.Fatalf("Product = %v, want iPhone 15 Pro Max", result.Product)
		}
		if result.Confidence != 85 {
			t.Errorf("Confidence = %d, want 85", result.Confidence)
		}
	})

	t.Run("colloquial hint without a stocked product falls through", func(t *testing.T) {
		// "plegable" maps to a fold hint, but no foldable is in this
		// snapshot, so the general scorer takes over and finds nothing.
		result := m.FindBestMatch("quiero un telefono plegable", catalog)
		if result.Confidence >= 85 {
			t.Errorf("Confidence = %d, want < 85 when hint has no product", result.Confidence)
		}
		if !result.NeedsConfirmation {
			t.Error("NeedsConfirmation = false, want true")
		}
	})

	t.Run("brand typo is corrected before scoring", func(t *testing.T) {
		result := m.FindBestMatch("sumsung s24", catalog)
		if result.Product == nil || result.Product.ID != "p2" {
			t.Fatalf("Product = %v, want Galaxy S24", result.Product)
		}
		if result.Confidence < 85 {
			t.Errorf("Confidence = %d, want >= 85 after typo correction", result.Confidence)
		}
	})

	t.Run("typo correction never lowers the result", func(t *testing.T) {
		// The corrected query scores via max with the original, so a
		// correction can only raise confidence.
		corrected := m.FindBestMatch("sumsung", catalog)
		original := m.FindBestMatch("samsung", catalog)
		if corrected.Confidence < original.Confidence {
			t.Errorf("corrected confidence %d < original %d", corrected.Confidence, original.Confidence)
		}
	})

	t.Run("bare brand needs confirmation", func(t *testing.T) {
		result := m.FindBestMatch("samsung", catalog)
		if result.Product == nil {
			t.Fatal("Product = nil, want first Samsung product")
		}
		if result.Confidence != 40 {
			t.Errorf("Confidence = %d, want 40", result.Confidence)
		}
		if !result.NeedsConfirmation {
			t.Error("NeedsConfirmation = false, want true at 40")
		}
	})

	t.Run("ties keep catalog order", func(t *testing.T) {
		// "galaxy" scores identically against every Samsung Galaxy
		// product; the first one in the snapshot must win.
		result := m.FindBestMatch("galaxy", catalog)
		if result.Product == nil || result.Product.ID != "p1" {
			t.Errorf("Product = %v, want first catalog entry on tie", result.Product)
		}
	})

	t.Run("unmatchable query returns nil product", func(t *testing.T) {
		result := m.FindBestMatch("xyzzy", catalog)
		if result.Product != nil {
			t.Errorf("Product = %v, want nil", result.Product)
		}
		if result.Confidence != 0 {
			t.Errorf("Confidence = %d, want 0", result.Confidence)
		}
	})
}

func TestFindAllMatches(t *testing.T) {
	m := NewMatcher(MatcherConfig{})
	catalog := testCatalog()

	t.Run("ranking is non-increasing", func(t *testing.T) {
		results := m.FindAllMatches("s24", catalog, 0)
		for i := 1; i < len(results); i++ {
			if results[i].Confidence > results[i-1].Confidence {
				t.Errorf("results[%d].Confidence = %d > results[%d].Confidence = %d",
					i, results[i].Confidence, i-1, results[i-1].Confidence)
			}
		}
	})

	t.Run("alias exact outranks substring hit", func(t *testing.T) {
		results := m.FindAllMatches("s24", catalog, 0)
		if len(results) < 2 {
			t.Fatalf("got %d results, want at least 2", len(results))
		}
		if results[0].Product.ID != "p2" || results[0].Confidence != 95 {
			t.Errorf("top = %s/%d, want p2/95", results[0].Product.ID, results[0].Confidence)
		}
		if results[1].Product.ID != "p1" || results[1].Confidence != 88 {
			t.Errorf("second = %s/%d, want p1/88", results[1].Product.ID, results[1].Confidence)
		}
	})

	t.Run("noise floor filters weak candidates", func(t *testing.T) {
		for _, query := range []string{"s24", "galaxy", "iphone 15", "samsung"} {
			for _, r := range m.FindAllMatches(query, catalog, 0) {
				if r.Confidence <= 30 {
					t.Errorf("query %q: candidate %q at %d, want > 30", query, r.Product.Name, r.Confidence)
				}
			}
		}
	})

	t.Run("limit truncates results", func(t *testing.T) {
		results := m.FindAllMatches("galaxy", catalog, 2)
		if len(results) > 2 {
			t.Errorf("len = %d, want <= 2", len(results))
		}
	})

	t.Run("non-positive limit falls back to default", func(t *testing.T) {
		results := m.FindAllMatches("galaxy", catalog, 0)
		if len(results) > 5 {
			t.Errorf("len = %d, want <= 5 (default limit)", len(results))
		}
	})

	t.Run("equal scores keep catalog order", func(t *testing.T) {
		results := m.FindAllMatches("galaxy", catalog, 0)
		if len(results) < 3 {
			t.Fatalf("got %d results, want 3 galaxy products", len(results))
		}
		want := []string{"p1", "p2", "p3"}
		for i, id := range want {
			if results[i].Product.ID != id {
				t.Errorf("results[%d] = %s, want %s (stable order)", i, results[i].Product.ID, id)
			}
		}
	})

	t.Run("empty query yields no candidates", func(t *testing.T) {
		if results := m.FindAllMatches("", catalog, 0); len(results) != 0 {
			t.Errorf("len = %d, want 0", len(results))
		}
	})
}

func TestNormalizeModelName(t *testing.T) {
	m := NewMatcher(MatcherConfig{})
	catalog := testCatalog()

	t.Run("canonicalizes confident alias matches", func(t *testing.T) {
		got := m.NormalizeModelName("s24u", catalog)
		if got != "Samsung Galaxy S24 Ultra 256GB" {
			t.Errorf("NormalizeModelName(%q) = %q, want canonical name", "s24u", got)
		}
	})

	t.Run("passes unknown references through unchanged", func(t *testing.T) {
		got := m.NormalizeModelName("xyzzy-unknown-model", catalog)
		if got != "xyzzy-unknown-model" {
			t.Errorf("NormalizeModelName = %q, want input unchanged", got)
		}
	})

	t.Run("passes low-confidence brand references through", func(t *testing.T) {
		// Brand-only scores 40, below the canonicalization threshold.
		got := m.NormalizeModelName("samsung", catalog)
		if got != "samsung" {
			t.Errorf("NormalizeModelName = %q, want input unchanged", got)
		}
	})

	t.Run("empty catalog passes through", func(t *testing.T) {
		if got := m.NormalizeModelName("s24u", nil); got != "s24u" {
			t.Errorf("NormalizeModelName = %q, want input unchanged", got)
		}
	})
}
