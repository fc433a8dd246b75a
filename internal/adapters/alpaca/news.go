package alpaca

import (
	"context"
	"time"
)

const newsPageLimit = 50

// newsResponse is the subset of GET /v1beta1/news we need.
type newsResponse struct {
	News []struct {
		Headline string `json:"headline"`
	} `json:"news"`
	NextPageToken string `json:"next_page_token"`
}

// Headlines returns the headline text of news published for the symbol in
// [from, to], newest first, in the order Alpaca returns them. Pagination is
// followed until the window is exhausted.
func (c *Client) Headlines(ctx context.Context, symbol string, from, to time.Time) ([]string, error) {
	var headlines []string
	pageToken := ""

	for {
		query := map[string]string{
			"symbols": symbol,
			"start":   from.UTC().Format(time.RFC3339),
			"end":     to.UTC().Format(time.RFC3339),
			"limit":   "50",
		}
		if pageToken != "" {
			query["page_token"] = pageToken
		}

		var out newsResponse
		if err := get(ctx, c.data, "Headlines", "/v1beta1/news", query, &out); err != nil {
			return nil, err
		}

		for _, item := range out.News {
			headlines = append(headlines, item.Headline)
		}

		if out.NextPageToken == "" || len(out.News) < newsPageLimit {
			return headlines, nil
		}
		pageToken = out.NextPageToken
	}
}
