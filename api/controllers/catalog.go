package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/demo-018/indiveg-hub/api/responses"
	"github.com/demo-018/indiveg-hub/internal/catalog"
	"github.com/demo-018/indiveg-hub/pkg/enums"
	apperrors "github.com/demo-018/indiveg-hub/pkg/errors"
)

type CatalogController struct {
	service *catalog.Service
}

func NewCatalogController(service *catalog.Service) *CatalogController {
	return &CatalogController{service: service}
}

func (c *CatalogController) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.service.Categories(r.Context())
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, categories)
}

func (c *CatalogController) ListProducts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	band, err := enums.ParsePriceBand(query.Get("priceBand"))
	if err != nil {
		responses.Error(w, apperrors.New(apperrors.CodeValidation, err.Error()))
		return
	}
	sortBy, err := enums.ParseSortBy(query.Get("sortBy"))
	if err != nil {
		responses.Error(w, apperrors.New(apperrors.CodeValidation, err.Error()))
		return
	}

	products, err := c.service.List(r.Context(), catalog.ListParams{
		Search:     query.Get("search"),
		CategoryID: query.Get("category"),
		PriceBand:  band,
		SortBy:     sortBy,
	})
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, products)
}

func (c *CatalogController) Featured(w http.ResponseWriter, r *http.Request) {
	products, err := c.service.Featured(r.Context())
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, products)
}

func (c *CatalogController) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.GetProduct(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, product)
}

// GetProductByName serves pretty URLs like /products/by-name/green-chilies.
func (c *CatalogController) GetProductByName(w http.ResponseWriter, r *http.Request) {
	product, err := c.service.GetProductByName(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, product)
}

func (c *CatalogController) Related(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			responses.Error(w, apperrors.New(apperrors.CodeValidation, "limit must be a non-negative integer"))
			return
		}
		limit = parsed
	}

	products, err := c.service.Related(r.Context(), chi.URLParam(r, "productId"), limit)
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, products)
}

func (c *CatalogController) Reviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := c.service.Reviews(r.Context(), chi.URLParam(r, "productId"))
	if err != nil {
		responses.Error(w, err)
		return
	}
	responses.JSON(w, http.StatusOK, reviews)
}
