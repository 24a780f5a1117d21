package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"travelgate/internal/referencedata/models"
)

// ListCountries returns the country list in API order.
func (c *Client) ListCountries(ctx context.Context) ([]models.Country, error) {
	var out []models.Country
	if err := c.call(ctx, "list_countries", http.MethodGet, "/reference/countries", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListCurrencies returns the currency list in API order.
func (c *Client) ListCurrencies(ctx context.Context) ([]models.Currency, error) {
	var out []models.Currency
	if err := c.call(ctx, "list_currencies", http.MethodGet, "/reference/currencies", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ListEntryPoints returns every entry point.
func (c *Client) ListEntryPoints(ctx context.Context) ([]models.EntryPoint, error) {
	var out []models.EntryPoint
	if err := c.call(ctx, "list_entry_points", http.MethodGet, "/reference/entry-points", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SearchHSCodes runs a free-text classification search.
func (c *Client) SearchHSCodes(ctx context.Context, query string, pageSize int) ([]models.HSCode, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("page_size", strconv.Itoa(pageSize))
	var out []models.HSCode
	if err := c.call(ctx, "search_hs_codes", http.MethodGet, "/reference/hs-codes", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
