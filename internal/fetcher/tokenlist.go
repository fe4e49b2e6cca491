package fetcher

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/quantmind-br/tokenlist-go/internal/domain"
	"github.com/quantmind-br/tokenlist-go/internal/utils"
)

// FetchTokenList retrieves and parses one token list document.
//
// It never fails: any network, status or decoding problem is logged at info
// level and reported as a nil document so the caller can merge whatever
// sources did succeed.
func FetchTokenList(ctx context.Context, f domain.Fetcher, url string, logger *utils.Logger) *domain.TokenList {
	list, err := fetchTokenList(ctx, f, url)
	if err != nil {
		if logger != nil {
			logger.WithURL(url).Info().Err(err).Msg("falling back to static repository")
		}
		return nil
	}
	return list
}

func fetchTokenList(ctx context.Context, f domain.Fetcher, url string) (*domain.TokenList, error) {
	resp, err := f.Get(ctx, url)
	if err != nil {
		return nil, err
	}

	var list domain.TokenList
	if err := json.Unmarshal(resp.Body, &list); err != nil {
		return nil, domain.NewFetchError(url, resp.StatusCode, fmt.Errorf("failed to parse token list: %w", err))
	}
	return &list, nil
}
