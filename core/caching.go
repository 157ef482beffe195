package core

import (
	"context"
	"fmt"
	"time"

	"github.com/docu3c/autocodex/internal/contract"
)

// cachedSuggestion returns the generative review text for a file, serving
// from the suggestion cache when the same model has already reviewed
// identical content. Advisor failures degrade to a placeholder so one bad
// generative call never fails the run.
func cachedSuggestion(ctx context.Context, cfg *contract.Config, adv contract.Advisor, store contract.CacheStore, req contract.SuggestionRequest) (string, bool) {
	var key string
	if store != nil {
		key = contract.SuggestionCacheKey(cfg.Model, req.Language, req.Content)
		if value, ok, err := store.Get(key); err == nil && ok {
			return value, true
		}
	}

	text, err := adv.Suggest(ctx, req)
	if err != nil {
		contract.LogWarn(fmt.Sprintf("suggestion failed for %s", req.Path), err)
		return fmt.Sprintf("AI review failed: %v", err), false
	}

	if store != nil {
		// A failed write only costs a re-review next run.
		_ = store.Set(key, text, time.Now().Unix())
	}
	return text, false
}
