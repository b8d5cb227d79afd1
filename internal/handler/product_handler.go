package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shinyyama/catalog-backend/internal/model"
	"github.com/shinyyama/catalog-backend/internal/service"
)

type ProductHandler struct {
	svc service.ProductService
}

func NewProductHandler(svc service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

type ProductResponse struct {
	ID          uint64  `json:"id"`
	CategoryID  *uint64 `json:"categoryId"`
	UserID      *uint64 `json:"userId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       uint    `json:"price"`
	Stock       uint    `json:"stock"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type ImageResponse struct {
	ID        uint64 `json:"id"`
	ProductID uint64 `json:"productId"`
	Path      string `json:"path"`
	CreatedAt string `json:"createdAt"`
}

type ProductDetailResponse struct {
	ProductResponse
	Category *CategoryResponse `json:"category"`
	Owner    *UserResponse     `json:"owner"`
	Images   []ImageResponse   `json:"images"`
}

type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
}

// ProductRequest carries every assignable product field. Values are stored
// as given.
type ProductRequest struct {
	CategoryID  *uint64 `json:"categoryId"`
	UserID      *uint64 `json:"userId"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       uint    `json:"price"`
	Stock       uint    `json:"stock"`
}

func (r ProductRequest) fields() model.ProductFields {
	return model.ProductFields{
		CategoryID:  r.CategoryID,
		UserID:      r.UserID,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
	}
}

type ImageRequest struct {
	Path string `json:"path"`
}

func (h *ProductHandler) Create(c echo.Context) error {
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p, err := h.svc.Create(c.Request().Context(), req.fields())
	if err != nil {
		return storageError(c, err, "product")
	}
	return c.JSON(http.StatusCreated, toProductResponse(p))
}

func (h *ProductHandler) Get(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	detail, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return storageError(c, err, "product")
	}
	return c.JSON(http.StatusOK, toProductDetailResponse(detail))
}

func (h *ProductHandler) Update(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req ProductRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	p, err := h.svc.Update(c.Request().Context(), id, req.fields())
	if err != nil {
		return storageError(c, err, "product")
	}
	return c.JSON(http.StatusOK, toProductResponse(p))
}

func (h *ProductHandler) Delete(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return storageError(c, err, "product")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *ProductHandler) List(c echo.Context) error {
	var in service.ListInput
	if v := c.QueryParam("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid limit"))
		}
		in.Limit = limit
	}
	if v := c.QueryParam("offset"); v != "" {
		offset, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid offset"))
		}
		in.Offset = offset
	}
	if v := c.QueryParam("categoryId"); v != "" {
		id, ok := parseID(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid categoryId"))
		}
		in.CategoryID = &id
	}
	if v := c.QueryParam("userId"); v != "" {
		id, ok := parseID(v)
		if !ok {
			return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid userId"))
		}
		in.UserID = &id
	}
	products, total, err := h.svc.List(c.Request().Context(), in)
	if err != nil {
		return storageError(c, err, "products")
	}
	resp := ProductListResponse{
		Products: make([]ProductResponse, 0, len(products)),
		Total:    total,
	}
	for i := range products {
		resp.Products = append(resp.Products, toProductResponse(&products[i]))
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *ProductHandler) AddImage(c echo.Context) error {
	id, ok := parseID(c.Param("id"))
	if !ok {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid id"))
	}
	var req ImageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "invalid json"))
	}
	path := strings.TrimSpace(req.Path)
	if path == "" {
		return c.JSON(http.StatusBadRequest, NewErrorResponse("bad_request", "path is required"))
	}
	img, err := h.svc.AddImage(c.Request().Context(), id, path)
	if err != nil {
		return storageError(c, err, "product")
	}
	return c.JSON(http.StatusCreated, toImageResponse(img))
}

func parseID(v string) (uint64, bool) {
	id, err := strconv.ParseUint(v, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return id, true
}

// formatTime is the single timestamp encoding of the API.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func toProductResponse(p *model.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		CategoryID:  p.CategoryID,
		UserID:      p.UserID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CreatedAt:   formatTime(p.CreatedAt),
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func toImageResponse(img *model.ProductImage) ImageResponse {
	return ImageResponse{
		ID:        img.ID,
		ProductID: img.ProductID,
		Path:      img.Path,
		CreatedAt: formatTime(img.CreatedAt),
	}
}

func toProductDetailResponse(d *service.ProductDetail) ProductDetailResponse {
	resp := ProductDetailResponse{
		ProductResponse: toProductResponse(&d.Product),
		Images:          make([]ImageResponse, 0, len(d.Images)),
	}
	if d.Category != nil {
		cr := toCategoryResponse(d.Category)
		resp.Category = &cr
	}
	if d.Owner != nil {
		ur := toUserResponse(d.Owner)
		resp.Owner = &ur
	}
	for i := range d.Images {
		resp.Images = append(resp.Images, toImageResponse(&d.Images[i]))
	}
	return resp
}
