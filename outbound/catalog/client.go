package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"stock-alert/common"
	"stock-alert/common/errs"
	"stock-alert/common/otel"
	"stock-alert/model"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Client reads products from the catalog's HTTP API.
type Client struct {
	baseUrl    string
	httpClient *http.Client
}

func NewClient(baseUrl string, timeout time.Duration) *Client {
	return &Client{
		baseUrl:    strings.TrimRight(baseUrl, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (out *Client) ListProducts(ctx context.Context) ([]model.ProductSnapshot, error) {
	ctx, span := otel.Tracer.Start(ctx, "CatalogClient.ListProducts", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	var products []model.ProductSnapshot
	if err := out.getJSON(ctx, "/api/products", &products); err != nil {
		common.UtilSpanError(span, err)
		return nil, fmt.Errorf("list products: %w", err)
	}

	span.SetAttributes(attribute.Int("catalog.products.count", len(products)))
	return products, nil
}

// GetProduct returns errs.ErrProductNotFound when the catalog answers 404 or a null body.
func (out *Client) GetProduct(ctx context.Context, id int64) (model.ProductSnapshot, error) {
	ctx, span := otel.Tracer.Start(ctx, "CatalogClient.GetProduct", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	span.SetAttributes(attribute.Int64("catalog.product.id", id))

	var product *model.ProductSnapshot
	if err := out.getJSON(ctx, fmt.Sprintf("/api/products/%d", id), &product); err != nil {
		common.UtilSpanError(span, err)
		return model.ProductSnapshot{}, fmt.Errorf("get product %d: %w", id, err)
	}

	// a null body is the catalog's other way of saying not found
	if product == nil {
		return model.ProductSnapshot{}, fmt.Errorf("get product %d: %w", id, errs.ErrProductNotFound)
	}

	return *product, nil
}

func (out *Client) getJSON(ctx context.Context, path string, dst any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, out.baseUrl+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := out.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return errs.ErrProductNotFound
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &errs.HttpError{Code: resp.StatusCode, Message: "unexpected catalog response", Data: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode catalog response: %w", err)
	}

	return nil
}
