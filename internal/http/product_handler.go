package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/tuanvumaihuynh/product-catalog/internal/apperr"
	"github.com/tuanvumaihuynh/product-catalog/internal/config"
	"github.com/tuanvumaihuynh/product-catalog/internal/model"
	"github.com/tuanvumaihuynh/product-catalog/internal/service"
	"github.com/tuanvumaihuynh/product-catalog/pkg/validator"
	"github.com/tuanvumaihuynh/product-catalog/pkg/zerror"
)

type createProductRequest struct {
	Name  string   `json:"name" validate:"required"`
	Price *float64 `json:"price" validate:"required,gte=0,maxdecimals=4"`
}

// updateProductRequest has no id: an id sent in the body is dropped, the
// target always comes from the path.
type updateProductRequest struct {
	Name  *string  `json:"name" validate:"omitnil,min=1"`
	Price *float64 `json:"price" validate:"omitnil,gte=0,maxdecimals=4"`
}

type errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)

type productHandler struct {
	productSvc  service.ProductService
	validator   validator.Validator
	pagination  config.Pagination
	handleError errorHandlerFunc
}

func newProductHandler(
	productSvc service.ProductService,
	validator validator.Validator,
	pagination config.Pagination,
	handleError errorHandlerFunc,
) *productHandler {
	return &productHandler{
		productSvc:  productSvc,
		validator:   validator,
		pagination:  pagination,
		handleError: handleError,
	}
}

func (h *productHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	product, err := h.productSvc.CreateProduct(r.Context(), service.CreateProductParams{
		Name:  req.Name,
		Price: *req.Price,
	})
	if err != nil {
		h.handleError(w, r, fmt.Errorf("product service create product: %w", err))
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

func (h *productHandler) FindAllProducts(w http.ResponseWriter, r *http.Request) {
	var page, limit *int
	if err := runtime.BindQueryParameter("form", true, false, "page", r.URL.Query(), &page); err != nil {
		h.handleError(w, r, apperr.ValidationErr.WithMsg("invalid page").WrapParent(err))
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "limit", r.URL.Query(), &limit); err != nil {
		h.handleError(w, r, apperr.ValidationErr.WithMsg("invalid limit").WrapParent(err))
		return
	}

	params, err := service.NewFindAllProductsParams(page, limit, h.pagination)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	res, err := h.productSvc.FindAllProducts(r.Context(), params)
	if err != nil {
		h.handleError(w, r, fmt.Errorf("product service find all products: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, res)
}

func (h *productHandler) FindOneProduct(w http.ResponseWriter, r *http.Request) {
	id, err := bindProductID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	product, err := h.productSvc.FindOneProduct(r.Context(), id)
	if err != nil {
		h.handleError(w, r, fmt.Errorf("product service find one product: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *productHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := bindProductID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	var req updateProductRequest
	if err := h.decodeBody(r, &req); err != nil {
		h.handleError(w, r, err)
		return
	}

	product, err := h.productSvc.UpdateProduct(r.Context(), id, service.UpdateProductParams{
		Name:  req.Name,
		Price: req.Price,
	})
	if err != nil {
		h.handleError(w, r, fmt.Errorf("product service update product: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *productHandler) RemoveProduct(w http.ResponseWriter, r *http.Request) {
	id, err := bindProductID(r)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	product, err := h.productSvc.RemoveProduct(r.Context(), id)
	if err != nil {
		h.handleError(w, r, fmt.Errorf("product service remove product: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, product)
}

func (h *productHandler) ValidateProducts(w http.ResponseWriter, r *http.Request) {
	var ids []model.ID
	if err := json.NewDecoder(r.Body).Decode(&ids); err != nil {
		var zErr zerror.ZError
		if errors.As(err, &zErr) {
			h.handleError(w, r, zErr)
			return
		}
		h.handleError(w, r, apperr.InvalidPayloadErr.WithMsg(err.Error()).WrapParent(err))
		return
	}
	if err := h.validator.ValidateVar(ids, "min=1,dive,gt=0"); err != nil {
		h.handleError(w, r, apperr.ValidationErr.WithMsg("ids must be a non-empty list of positive integers"))
		return
	}

	products, err := h.productSvc.ValidateProducts(r.Context(), model.Int64s(ids))
	if err != nil {
		h.handleError(w, r, fmt.Errorf("product service validate products: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *productHandler) decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperr.InvalidPayloadErr.WithMsg(err.Error()).WrapParent(err)
	}
	return h.validator.Validate(v)
}

func bindProductID(r *http.Request) (int64, error) {
	var id int64
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	})
	if err != nil || id < 1 {
		return 0, apperr.InvalidIDErr.WrapParent(err)
	}
	return id, nil
}
