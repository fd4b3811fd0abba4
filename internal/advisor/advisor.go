// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package advisor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/quixsi/luxeplate/internal/model"
)

// FallbackConfirmation is shown whenever no personal message can be composed.
const FallbackConfirmation = "Booking confirmed! Your chef will be in touch shortly."

var ErrOffline = errors.New("no language model configured")

// Advisor wraps a generative model. Every call degrades to a default value
// instead of failing.
type Advisor struct {
	model  llms.Model
	cache  *RedisCache
	logger *slog.Logger
}

// New returns an advisor. A nil model runs offline and always degrades. A nil
// cache disables caching.
func New(m llms.Model, cache *RedisCache) *Advisor {
	return &Advisor{
		model:  m,
		cache:  cache,
		logger: slog.Default().WithGroup("advisor"),
	}
}

func (a *Advisor) generate(ctx context.Context, prompt string, jsonMode bool) (string, error) {
	if a.model == nil {
		return "", ErrOffline
	}
	var opts []llms.CallOption
	if jsonMode {
		opts = append(opts, llms.WithJSONMode())
	}
	out, err := llms.GenerateFromSinglePrompt(ctx, a.model, prompt, opts...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// SuggestChefs asks which of the candidates fit a free-text request. Only
// names out of candidates are returned, in the order the model ranked them.
func (a *Advisor) SuggestChefs(ctx context.Context, prompt string, candidates []string) Result[[]string] {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Advisor.SuggestChefs", trace.WithAttributes(attribute.Int("candidates", len(candidates))))
	defer span.End()

	if len(candidates) == 0 {
		return Ok([]string{})
	}
	out, err := a.generate(ctx, fmt.Sprintf(
		"From the following list of chefs, which ones are the best match for this request: %q. "+
			"List of chefs: %s. Return only a JSON array of the best matching chef names, like [\"Chef Name 1\", \"Chef Name 2\"].",
		prompt, strings.Join(candidates, ", ")), true)
	if err != nil {
		return degrade(ctx, a, span, "suggest chefs", []string{}, err)
	}

	var names []string
	if err := json.Unmarshal([]byte(stripFence(out)), &names); err != nil {
		return degrade(ctx, a, span, "suggest chefs", []string{}, fmt.Errorf("decode model answer: %w", err))
	}

	known := make(map[string]string, len(candidates))
	for _, c := range candidates {
		known[strings.ToLower(c)] = c
	}
	res := make([]string, 0, len(names))
	seen := map[string]bool{}
	for _, n := range names {
		name, ok := known[strings.ToLower(strings.TrimSpace(n))]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		res = append(res, name)
	}
	return Ok(res)
}

// SimilarMenus proposes alternative menus in the style of the given cuisine
// from chefs other than excludeChefName.
func (a *Advisor) SimilarMenus(ctx context.Context, cuisine string, pricePoint float64, excludeChefName string) Result[[]model.MenuRecommendation] {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Advisor.SimilarMenus", trace.WithAttributes(
		attribute.String("cuisine", cuisine),
		attribute.Float64("price", pricePoint),
	))
	defer span.End()

	var key string
	if a.cache != nil {
		key = a.cache.SimilarMenusKey(cuisine, pricePoint, excludeChefName)
		recs, ok, err := a.cache.GetMenus(ctx, key)
		switch {
		case err != nil:
			a.logger.WarnContext(ctx, "similar menus cache lookup failed", "error", err)
		case ok:
			span.AddEvent("cache hit")
			return Ok(recs)
		}
	}

	out, err := a.generate(ctx, fmt.Sprintf(`Suggest 3 alternative menus from different private chefs (NOT named %s) that are similar to the cuisine style: %q and around the price point of £%.0f.
Return a JSON array. For each suggestion, provide:
- chefName: A new realistic chef name.
- menuName: A creative name for the menu.
- pricePerHead: A price close to £%.0f.
- description: A one-sentence description of the menu vibe.
- matchReason: A short string explaining why it's a good alternative (e.g., "Similar Italian Style", "Great Value Option", "Luxury Upgrade").`,
		excludeChefName, cuisine, pricePoint, pricePoint), true)
	if err != nil {
		return degrade(ctx, a, span, "similar menus", []model.MenuRecommendation{}, err)
	}

	var raw []struct {
		ChefName     string  `json:"chefName"`
		MenuName     string  `json:"menuName"`
		PricePerHead float64 `json:"pricePerHead"`
		Description  string  `json:"description"`
		MatchReason  string  `json:"matchReason"`
	}
	if err := json.Unmarshal([]byte(stripFence(out)), &raw); err != nil {
		return degrade(ctx, a, span, "similar menus", []model.MenuRecommendation{}, fmt.Errorf("decode model answer: %w", err))
	}

	recs := make([]model.MenuRecommendation, 0, len(raw))
	for _, r := range raw {
		if r.ChefName == "" || strings.EqualFold(strings.TrimSpace(r.ChefName), strings.TrimSpace(excludeChefName)) {
			continue
		}
		recs = append(recs, model.MenuRecommendation{
			ChefName:     r.ChefName,
			ChefID:       fmt.Sprintf("sim-chef-%d", len(recs)),
			ChefImage:    fmt.Sprintf("https://ui-avatars.com/api/?name=%s&background=random&size=128", url.QueryEscape(r.ChefName)),
			MenuName:     r.MenuName,
			PricePerHead: r.PricePerHead,
			Description:  r.Description,
			MatchReason:  r.MatchReason,
		})
	}

	if a.cache != nil && len(recs) > 0 {
		if err := a.cache.SetMenus(ctx, key, recs); err != nil {
			a.logger.WarnContext(ctx, "could not cache similar menus", "error", err)
		}
	}
	return Ok(recs)
}

// ConfirmationMessage composes a short personal note for a new booking.
func (a *Advisor) ConfirmationMessage(ctx context.Context, chefName, menuName string, guests int, date, time string) Result[string] {
	var span trace.Span
	ctx, span = tracer.Start(ctx, "Advisor.ConfirmationMessage")
	defer span.End()

	out, err := a.generate(ctx, fmt.Sprintf(
		"Write a sophisticated, warm, and professional booking confirmation message for a client who just booked Chef %s "+
			"for the %q menu on %s at %s for %d guests. Keep it under 50 words.",
		chefName, menuName, date, time, guests), false)
	if err != nil {
		return degrade(ctx, a, span, "confirmation message", FallbackConfirmation, err)
	}
	if out == "" {
		return degrade(ctx, a, span, "confirmation message", FallbackConfirmation, errors.New("empty model answer"))
	}
	return Ok(out)
}

func degrade[T any](ctx context.Context, a *Advisor, span trace.Span, op string, fallback T, err error) Result[T] {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	if errors.Is(err, ErrOffline) {
		a.logger.DebugContext(ctx, "advisor offline, use fallback", "operation", op)
	} else {
		a.logger.WarnContext(ctx, "advisor degraded, use fallback", "operation", op, "error", err)
	}
	return Degraded(fallback, err)
}

// stripFence removes a markdown code fence some models wrap JSON answers in.
func stripFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
