package usecase

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/tiendafon/backend/internal/domain"
)

const catalogCacheKey = "catalog:instock"

// AssistantConfig holds configuration for the assistant service
type AssistantConfig struct {
	CatalogTTL          time.Duration
	AutoAcceptThreshold int
	ConfirmThreshold    int
	MaxSuggestions      int
	EnableDebugLogging  bool
}

// AssistantService is the confidence-band consumer of the matcher: it
// sources the in-stock catalog, runs the engine and decides how the
// chat should continue.
type AssistantService struct {
	cache      domain.CacheRepository
	catalog    domain.CatalogClient
	matcher    *Matcher
	catalogTTL time.Duration

	autoAcceptThreshold int
	confirmThreshold    int
	maxSuggestions      int
	enableDebugLogging  bool
}

// NewAssistantService creates a new assistant service with dependencies
func NewAssistantService(
	cache domain.CacheRepository,
	catalog domain.CatalogClient,
	config AssistantConfig,
) *AssistantService {
	autoAccept := config.AutoAcceptThreshold
	if autoAccept <= 0 {
		autoAccept = 85
	}
	confirm := config.ConfirmThreshold
	if confirm <= 0 {
		confirm = 60
	}
	suggestions := config.MaxSuggestions
	if suggestions <= 0 {
		suggestions = 3
	}
	catalogTTL := config.CatalogTTL
	if catalogTTL == 0 {
		catalogTTL = 5 * time.Minute
	}

	return &AssistantService{
		cache:               cache,
		catalog:             catalog,
		matcher:             NewMatcher(MatcherConfig{EnableDebugLogging: config.EnableDebugLogging}),
		catalogTTL:          catalogTTL,
		autoAcceptThreshold: autoAccept,
		confirmThreshold:    confirm,
		maxSuggestions:      suggestions,
		enableDebugLogging:  config.EnableDebugLogging,
	}
}

// ResolveModel resolves a user utterance to a dialogue decision.
// Flow: fetch catalog (cached) -> best match -> apply confidence bands.
func (s *AssistantService) ResolveModel(ctx context.Context, utterance string) (*domain.Resolution, error) {
	if utterance == "" {
		return nil, domain.ErrInvalidRequest
	}

	products, err := s.inStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	if len(products) == 0 {
		return nil, domain.ErrEmptyCatalog
	}

	match := s.matcher.FindBestMatch(utterance, products)

	resolution := &domain.Resolution{Match: match}
	switch {
	case match.Product != nil && match.Confidence >= s.autoAcceptThreshold:
		resolution.Action = domain.ActionAccept
	case match.Product != nil && match.Confidence >= s.confirmThreshold:
		resolution.Action = domain.ActionConfirm
	default:
		resolution.Action = domain.ActionClarify
		resolution.Suggestions = s.matcher.FindAllMatches(utterance, products, s.maxSuggestions)
	}

	if s.enableDebugLogging {
		log.Printf("[ASSISTANT] %q -> action=%s confidence=%d", utterance, resolution.Action, match.Confidence)
	}

	return resolution, nil
}

// Candidates returns the ranked match list for an utterance.
func (s *AssistantService) Candidates(ctx context.Context, query string, limit int) ([]domain.MatchResult, error) {
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}

	products, err := s.inStockProducts(ctx)
	if err != nil {
		return nil, err
	}

	return s.matcher.FindAllMatches(query, products, limit), nil
}

// CanonicalName rewrites a free-text model reference to its canonical
// catalog name when the match is confident enough; callers persist the
// returned value.
func (s *AssistantService) CanonicalName(ctx context.Context, modelName string) (string, error) {
	if modelName == "" {
		return "", domain.ErrInvalidRequest
	}

	products, err := s.inStockProducts(ctx)
	if err != nil {
		return "", err
	}

	return s.matcher.NormalizeModelName(modelName, products), nil
}

// inStockProducts returns the current catalog snapshot, serving from
// cache when fresh. Catalog order is preserved end to end; ties in the
// matcher break on it.
func (s *AssistantService) inStockProducts(ctx context.Context) ([]domain.Product, error) {
	if cached, err := s.cache.Get(ctx, catalogCacheKey); err == nil {
		if products, ok := cached.([]domain.Product); ok {
			return products, nil
		}
	}

	products, err := s.catalog.ListInStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}

	if err := s.cache.Set(ctx, catalogCacheKey, products, s.catalogTTL); err != nil && s.enableDebugLogging {
		log.Printf("[ASSISTANT] catalog cache write failed: %v", err)
	}

	return products, nil
}
