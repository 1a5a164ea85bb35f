package suggestion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"pantry-planner/domain"
	"pantry-planner/internal/metrics"
	"pantry-planner/pkg/inventory"
	"pantry-planner/pkg/preference"
)

const fallbackSuggestion = "Suggestions are temporarily unavailable. " +
	"Check that the text-generation service is running and reachable."

type (
	SuggestionService interface {
		SuggestMeal(ctx context.Context) (domain.SuggestionResponse, error)
		SuggestWeeklyMenu(ctx context.Context) (domain.SuggestionResponse, error)
		SuggestShoppingList(ctx context.Context) (domain.SuggestionResponse, error)
	}

	suggestionService struct {
		inventoryRepository  inventory.InventoryRepository
		preferenceRepository preference.PreferenceRepository
		client               OllamaClient
		log                  *logrus.Logger
	}
)

func NewSuggestionService(
	inventoryRepository inventory.InventoryRepository,
	preferenceRepository preference.PreferenceRepository,
	client OllamaClient,
	log *logrus.Logger,
) SuggestionService {
	return &suggestionService{
		inventoryRepository:  inventoryRepository,
		preferenceRepository: preferenceRepository,
		client:               client,
		log:                  log,
	}
}

func (s *suggestionService) SuggestMeal(ctx context.Context) (domain.SuggestionResponse, error) {
	prompt, err := s.buildPrompt(ctx,
		"Suggest one simple, tasty meal I can prepare today. "+
			"Respond with a JSON object containing exactly these fields: "+
			"'meal_name' (string), 'ingredients' (array of strings) and "+
			"'steps' (array of 3-4 strings).")
	if err != nil {
		return domain.SuggestionResponse{}, err
	}
	return s.structured(ctx, prompt), nil
}

func (s *suggestionService) SuggestWeeklyMenu(ctx context.Context) (domain.SuggestionResponse, error) {
	prompt, err := s.buildPrompt(ctx,
		"Propose a menu for 7 days using the available products. "+
			"For each day list breakfast, lunch and dinner.")
	if err != nil {
		return domain.SuggestionResponse{}, err
	}
	return s.plain(ctx, prompt), nil
}

func (s *suggestionService) SuggestShoppingList(ctx context.Context) (domain.SuggestionResponse, error) {
	prompt, err := s.buildPrompt(ctx,
		"What should I buy for a richer and more varied diet? "+
			"Respond with a JSON array of 15-20 product names with amounts.")
	if err != nil {
		return domain.SuggestionResponse{}, err
	}
	return s.structured(ctx, prompt), nil
}

// buildPrompt embeds the available inventory and, when present, the
// dietary profile into the task prompt. Storage failures here are real
// errors; only the generation call itself may degrade.
func (s *suggestionService) buildPrompt(ctx context.Context, task string) (string, error) {
	items, err := s.inventoryRepository.GetItems(ctx, true)
	if err != nil {
		return "", fmt.Errorf("loading inventory for prompt: %w", err)
	}

	products := make([]string, 0, len(items))
	for _, item := range items {
		products = append(products, fmt.Sprintf("%s (%s %s)", item.Name, item.Quantity.String(), item.Unit))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I have these products available: [%s]. ", strings.Join(products, ", "))

	pref, err := s.preferenceRepository.GetPreferences(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("loading preferences for prompt: %w", err)
	}
	if pref != nil {
		if pref.Allergens != "" {
			fmt.Fprintf(&b, "Avoid these allergens: %s. ", pref.Allergens)
		}
		if pref.DietType != "" {
			fmt.Fprintf(&b, "The diet type is %s. ", pref.DietType)
		}
		if pref.DislikedProducts != "" {
			fmt.Fprintf(&b, "Disliked products: %s. ", pref.DislikedProducts)
		}
	}

	b.WriteString(task)
	return b.String(), nil
}

func (s *suggestionService) structured(ctx context.Context, prompt string) domain.SuggestionResponse {
	value, raw, err := s.client.GenerateStructured(ctx, prompt)
	if err != nil {
		return s.degrade(err)
	}
	if value == nil {
		// Model produced text that is not valid JSON; serve it as-is.
		return domain.SuggestionResponse{Suggestion: raw}
	}
	return domain.SuggestionResponse{Suggestion: value, IsStructured: true}
}

func (s *suggestionService) plain(ctx context.Context, prompt string) domain.SuggestionResponse {
	text, err := s.client.Generate(ctx, prompt)
	if err != nil {
		return s.degrade(err)
	}
	return domain.SuggestionResponse{Suggestion: text}
}

// degrade converts an external-service failure into fallback output so
// the request path never fails on the generation capability.
func (s *suggestionService) degrade(err error) domain.SuggestionResponse {
	metrics.SuggestionFailures.Inc()
	s.log.WithError(err).Warn("suggestion generation degraded")
	return domain.SuggestionResponse{
		Suggestion: fallbackSuggestion,
		Degraded:   true,
	}
}
