package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	apphttp "github.com/tuanvumaihuynh/product-catalog/internal/http"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/pkg/correlationid"
	"github.com/tuanvumaihuynh/product-catalog/pkg/validator"
)

type stubHealthChecker struct {
	err error
}

func (h stubHealthChecker) IsHealthy(context.Context) (bool, error) {
	return h.err == nil, h.err
}

type stubProductService struct {
	findAllParams service.FindAllProductsParams
	updateID      int64
	updateParams  service.UpdateProductParams
	validateIDs   []int64
	err           error
}

var _ service.ProductService = (*stubProductService)(nil)

func product(id int64, available bool) model.Product {
	ts := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	return model.Product{ID: id, Name: "Chair", Price: 20, Available: available, CreatedAt: ts, UpdatedAt: ts}
}

func (s *stubProductService) CreateProduct(_ context.Context, params service.CreateProductParams) (model.Product, error) {
	if s.err != nil {
		return model.Product{}, s.err
	}
	p := product(1, true)
	p.Name, p.Price = params.Name, params.Price
	return p, nil
}

func (s *stubProductService) FindAllProducts(_ context.Context, params service.FindAllProductsParams) (model.ProductPage, error) {
	s.findAllParams = params
	if s.err != nil {
		return model.ProductPage{}, s.err
	}
	return model.ProductPage{Data: []model.ProductSummary{}, Meta: model.PageMeta{Page: params.Page}}, nil
}

func (s *stubProductService) FindOneProduct(_ context.Context, id int64) (model.Product, error) {
	if s.err != nil {
		return model.Product{}, s.err
	}
	return product(id, true), nil
}

func (s *stubProductService) UpdateProduct(_ context.Context, id int64, params service.UpdateProductParams) (model.Product, error) {
	s.updateID, s.updateParams = id, params
	if s.err != nil {
		return model.Product{}, s.err
	}
	return product(id, true), nil
}

func (s *stubProductService) RemoveProduct(_ context.Context, id int64) (model.Product, error) {
	if s.err != nil {
		return model.Product{}, s.err
	}
	return product(id, false), nil
}

func (s *stubProductService) ValidateProducts(_ context.Context, ids []int64) ([]model.Product, error) {
	s.validateIDs = ids
	if s.err != nil {
		return nil, s.err
	}
	return []model.Product{}, nil
}

type harness struct {
	handler  http.Handler
	products *stubProductService
}

func newHarness(t *testing.T, health stubHealthChecker) *harness {
	t.Helper()

	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	products := &stubProductService{}
	svc := apphttp.New(
		config.HTTP{Swagger: true, Gateway: true},
		config.Pagination{DefaultLimit: 10, MaxLimit: 100},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		prometheus.NewRegistry(),
		v,
		health,
		products,
	)

	handler, err := svc.Handler()
	require.NoError(t, err)

	return &harness{handler: handler, products: products}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details"`
}

func (h *harness) do(method, target, body string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	resp := httptest.NewRecorder()
	h.handler.ServeHTTP(resp, req)
	return resp
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var e errorBody
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &e))
	return e
}

func TestHealth(t *testing.T) {
	t.Run("Should report ok", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})

		resp := h.do(http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
	})

	t.Run("Should report unavailable when database is down", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{err: errors.New("connection refused")})

		resp := h.do(http.MethodGet, "/healthz", "")
		assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
	})
}

func TestMetrics(t *testing.T) {
	h := newHarness(t, stubHealthChecker{})

	h.do(http.MethodGet, "/products/1", "")
	resp := h.do(http.MethodGet, "/metrics", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "product_catalog_http_requests_total")
}

func TestCorrelationID(t *testing.T) {
	h := newHarness(t, stubHealthChecker{})

	req := httptest.NewRequest(http.MethodGet, "/products/1", nil)
	req.Header.Set(correlationid.Header, "cid-1")
	resp := httptest.NewRecorder()
	h.handler.ServeHTTP(resp, req)

	assert.Equal(t, "cid-1", resp.Header().Get(correlationid.Header))
}

func TestCreateProduct(t *testing.T) {
	t.Run("Should create product", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})

		resp := h.do(http.MethodPost, "/products", `{"name":"Chair","price":20}`)
		require.Equal(t, http.StatusCreated, resp.Code, resp.Body.String())

		var p model.Product
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &p))
		assert.Equal(t, "Chair", p.Name)
		assert.True(t, p.Available)
	})

	t.Run("Should reject missing price", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})

		resp := h.do(http.MethodPost, "/products", `{"name":"Chair"}`)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, apperr.ValidationErrorCode, decodeError(t, resp).Code)
	})

	t.Run("Should reject price with more than four decimals", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})

		resp := h.do(http.MethodPost, "/products", `{"name":"Chair","price":1.23456}`)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Equal(t, apperr.ValidationErrorCode, decodeError(t, resp).Code)
	})

	t.Run("Should hide storage faults", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})
		h.products.err = errors.New("connection reset")

		resp := h.do(http.MethodPost, "/products", `{"name":"Chair","price":20}`)
		assert.Equal(t, http.StatusInternalServerError, resp.Code)
		assert.Equal(t, "internalServerError", decodeError(t, resp).Code)
	})
}

func TestFindAllProducts(t *testing.T) {
	t.Run("Should apply defaults", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})

		resp := h.do(http.MethodGet, "/products", "")
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		assert.Equal(t, service.FindAllProductsParams{Page: 1, Limit: 10}, h.products.findAllParams)
	})

	t.Run("Should bind page and limit", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})

		resp := h.do(http.MethodGet, "/products?page=3&limit=2", "")
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		assert.Equal(t, service.FindAllProductsParams{Page: 3, Limit: 2}, h.products.findAllParams)
	})

	t.Run("Should reject non-numeric page", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})

		resp := h.do(http.MethodGet, "/products?page=abc", "")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})

	t.Run("Should reject limit above maximum", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})

		resp := h.do(http.MethodGet, "/products?limit=500", "")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestFindOneProduct(t *testing.T) {
	t.Run("Should reject non-numeric id", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})

		resp := h.do(http.MethodGet, "/products/abc", "")
		assert.Equal(t, http.StatusBadRequest, resp.Code)

		e := decodeError(t, resp)
		assert.Equal(t, apperr.InvalidIDErrorCode, e.Code)
		assert.Equal(t, "Invalid id", e.Message)
	})

	t.Run("Should reply not found", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})
		h.products.err = apperr.NewProductNotFoundErr(7)

		resp := h.do(http.MethodGet, "/products/7", "")
		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.Equal(t, "Product #7 not found", decodeError(t, resp).Message)
	})
}

func TestUpdateProduct(t *testing.T) {
	h := newHarness(t, stubHealthChecker{})

	resp := h.do(http.MethodPatch, "/products/3", `{"id":99,"name":"X"}`)
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	assert.Equal(t, int64(3), h.products.updateID)
	require.NotNil(t, h.products.updateParams.Name)
	assert.Equal(t, "X", *h.products.updateParams.Name)
	assert.Nil(t, h.products.updateParams.Price)
}

func TestRemoveProduct(t *testing.T) {
	h := newHarness(t, stubHealthChecker{})

	resp := h.do(http.MethodDelete, "/products/5", "")
	require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())

	var p model.Product
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &p))
	assert.False(t, p.Available)
}

func TestValidateProducts(t *testing.T) {
	t.Run("Should pass ids", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})

		resp := h.do(http.MethodPost, "/products/validate", `[2,1,2]`)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		assert.Equal(t, []int64{2, 1, 2}, h.products.validateIDs)
	})

	t.Run("Should accept numeric string ids", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})

		resp := h.do(http.MethodPost, "/products/validate", `["2",1]`)
		require.Equal(t, http.StatusOK, resp.Code, resp.Body.String())
		assert.Equal(t, []int64{2, 1}, h.products.validateIDs)
	})

	t.Run("Should reject non-numeric id in list", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})

		resp := h.do(http.MethodPost, "/products/validate", `[1,"abc"]`)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Nil(t, h.products.validateIDs)
	})

	t.Run("Should reply bad request naming missing ids", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})
		h.products.err = apperr.NewProductsNotFoundErr([]int64{9})

		resp := h.do(http.MethodPost, "/products/validate", `[1,9]`)
		assert.Equal(t, http.StatusBadRequest, resp.Code)

		e := decodeError(t, resp)
		assert.Equal(t, apperr.ProductsNotFoundErrorCode, e.Code)
		assert.Equal(t, "Some products were not found: 9", e.Message)
	})

	t.Run("Should reject empty list", func(t *testing.T) {
		h := newHarness(t, stubHealthChecker{})

		resp := h.do(http.MethodPost, "/products/validate", `[]`)
		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Nil(t, h.products.validateIDs)
	})
}
