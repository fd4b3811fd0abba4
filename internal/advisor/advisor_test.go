// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package advisor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	answer string
	err    error
	calls  int
}

func (f *fakeModel) GenerateContent(_ context.Context, _ []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: f.answer}}}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func TestSuggestChefs(t *testing.T) {
	candidates := []string{"Julian Marchant", "Elena Ricci", "Kenji Tanaka"}
	tt := []struct {
		name         string
		model        llms.Model
		want         []string
		wantDegraded bool
	}{
		{name: "filters to candidates", model: &fakeModel{answer: `["Kenji Tanaka", "Gordon Ramsay", "elena ricci", "Kenji Tanaka"]`}, want: []string{"Kenji Tanaka", "Elena Ricci"}},
		{name: "fenced json", model: &fakeModel{answer: "```json\n[\"Julian Marchant\"]\n```"}, want: []string{"Julian Marchant"}},
		{name: "garbage", model: &fakeModel{answer: "I would pick Kenji"}, want: []string{}, wantDegraded: true},
		{name: "model error", model: &fakeModel{err: errors.New("quota")}, want: []string{}, wantDegraded: true},
		{name: "offline", model: nil, want: []string{}, wantDegraded: true},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			res := New(tc.model, nil).SuggestChefs(context.Background(), "sushi for six", candidates)
			assert.Equal(t, tc.want, res.Value)
			assert.Equal(t, tc.wantDegraded, res.Degraded)
			assert.Equal(t, tc.wantDegraded, res.Err != nil)
		})
	}
}

const similarAnswer = `[
  {"chefName": "Marco Bellini", "menuName": "Ligurian Summer", "pricePerHead": 115, "description": "Pesto and seafood.", "matchReason": "Similar Italian Style"},
  {"chefName": "Elena Ricci", "menuName": "Self promotion", "pricePerHead": 120, "description": "x", "matchReason": "x"},
  {"chefName": "Sofia Conti", "menuName": "Roman Holiday", "pricePerHead": 99, "description": "Trattoria classics.", "matchReason": "Great Value Option"}
]`

func TestSimilarMenus(t *testing.T) {
	m := &fakeModel{answer: similarAnswer}
	res := New(m, nil).SimilarMenus(context.Background(), "Italian", 120, "Elena Ricci")
	require.False(t, res.Degraded)
	require.Len(t, res.Value, 2)

	assert.Equal(t, "Marco Bellini", res.Value[0].ChefName)
	assert.Equal(t, "sim-chef-0", res.Value[0].ChefID)
	assert.Equal(t, "sim-chef-1", res.Value[1].ChefID)
	assert.Contains(t, res.Value[1].ChefImage, "name=Sofia+Conti")
	assert.Equal(t, 99.0, res.Value[1].PricePerHead)
}

func TestSimilarMenusDegrades(t *testing.T) {
	res := New(&fakeModel{err: errors.New("unavailable")}, nil).SimilarMenus(context.Background(), "Italian", 120, "Elena Ricci")
	assert.True(t, res.Degraded)
	assert.Empty(t, res.Value)
	assert.NotNil(t, res.Value)
}

func TestSimilarMenusCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache := NewRedisCache(rdb, time.Hour)
	m := &fakeModel{answer: similarAnswer}
	a := New(m, cache)
	ctx := context.Background()

	first := a.SimilarMenus(ctx, "Italian", 120, "Elena Ricci")
	second := a.SimilarMenus(ctx, "italian", 120, "elena ricci")
	assert.Equal(t, first.Value, second.Value)
	assert.Equal(t, 1, m.calls)

	key := cache.SimilarMenusKey("Italian", 120, "Elena Ricci")
	assert.True(t, mr.Exists(key))
	mr.FastForward(2 * time.Hour)
	assert.False(t, mr.Exists(key))
}

func TestSimilarMenusBrokenCacheFallsThrough(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:0"})
	m := &fakeModel{answer: similarAnswer}
	res := New(m, NewRedisCache(rdb, time.Minute)).SimilarMenus(context.Background(), "Italian", 120, "Elena Ricci")
	assert.False(t, res.Degraded)
	assert.Len(t, res.Value, 2)
}

func TestConfirmationMessage(t *testing.T) {
	tt := []struct {
		name         string
		model        llms.Model
		want         string
		wantDegraded bool
	}{
		{name: "model answer", model: &fakeModel{answer: "  Your evening with Chef Kenji is set.  "}, want: "Your evening with Chef Kenji is set."},
		{name: "empty answer", model: &fakeModel{answer: ""}, want: FallbackConfirmation, wantDegraded: true},
		{name: "model error", model: &fakeModel{err: errors.New("timeout")}, want: FallbackConfirmation, wantDegraded: true},
		{name: "offline", want: FallbackConfirmation, wantDegraded: true},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			res := New(tc.model, nil).ConfirmationMessage(context.Background(), "Kenji Tanaka", "Edomae Omakase", 4, "2024-06-14", "19:00")
			assert.Equal(t, tc.want, res.Value)
			assert.Equal(t, tc.wantDegraded, res.Degraded)
		})
	}
}
