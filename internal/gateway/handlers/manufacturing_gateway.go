package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"manufacturing-system/internal/database/models"
	"manufacturing-system/internal/gateway/dto"
	"manufacturing-system/internal/logger"
	"manufacturing-system/internal/services/manufacturing/handler"
	"manufacturing-system/internal/services/manufacturing/repository"
)

const TotalCountHeader = "X-Total-Count"

type requestModel[M any] interface {
	ToModel() M
}

// ResourceHandler serves the five CRUD endpoints of one resource.
type ResourceHandler[M any, Req requestModel[M], Resp any] struct {
	label      string
	service    *handler.Service[M]
	toResponse func(M) Resp
	filters    []string
	log        *logger.Logger
}

func NewResourceHandler[M any, Req requestModel[M], Resp any](
	label string,
	service *handler.Service[M],
	toResponse func(M) Resp,
	log *logger.Logger,
	filters ...string,
) *ResourceHandler[M, Req, Resp] {
	return &ResourceHandler[M, Req, Resp]{
		label:      label,
		service:    service,
		toResponse: toResponse,
		filters:    filters,
		log:        log,
	}
}

func (h *ResourceHandler[M, Req, Resp]) Register(group *gin.RouterGroup) {
	group.POST("/", h.Create)
	group.GET("/", h.List)
	group.GET("/:id", h.Get)
	group.PUT("/:id", h.Update)
	group.DELETE("/:id", h.Delete)
}

func (h *ResourceHandler[M, Req, Resp]) bind(c *gin.Context) (M, error) {
	var req Req
	if err := c.ShouldBindJSON(&req); err != nil {
		var zero M
		return zero, dto.NewValidationError(err)
	}
	return req.ToModel(), nil
}

func (h *ResourceHandler[M, Req, Resp]) Create(c *gin.Context) {
	m, err := h.bind(c)
	if err != nil {
		respondError(c, h.log, h.label, err)
		return
	}

	if err := h.service.Create(c.Request.Context(), &m); err != nil {
		respondError(c, h.log, h.label, err)
		return
	}

	c.JSON(http.StatusCreated, h.toResponse(m))
}

func (h *ResourceHandler[M, Req, Resp]) List(c *gin.Context) {
	q, err := h.listQuery(c)
	if err != nil {
		respondError(c, h.log, h.label, err)
		return
	}

	rows, total, err := h.service.List(c.Request.Context(), q)
	if err != nil {
		respondError(c, h.log, h.label, err)
		return
	}

	out := make([]Resp, len(rows))
	for i, row := range rows {
		out[i] = h.toResponse(row)
	}

	c.Header(TotalCountHeader, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, out)
}

func (h *ResourceHandler[M, Req, Resp]) listQuery(c *gin.Context) (repository.ListQuery, error) {
	offset, err := parseIntQuery(c, "offset", 0)
	if err != nil {
		return repository.ListQuery{}, err
	}
	if offset < 0 {
		return repository.ListQuery{}, badRequest{msg: "offset must not be negative"}
	}

	limit, err := parseIntQuery(c, "limit", repository.DefaultLimit)
	if err != nil {
		return repository.ListQuery{}, err
	}
	if limit < 1 {
		return repository.ListQuery{}, badRequest{msg: "limit must be at least 1"}
	}

	q := repository.ListQuery{Offset: int(offset), Limit: int(limit)}
	for _, name := range h.filters {
		if _, ok := c.GetQuery(name); !ok {
			continue
		}
		val, err := parseIntQuery(c, name, 0)
		if err != nil {
			return repository.ListQuery{}, err
		}
		if q.Filters == nil {
			q.Filters = map[string]interface{}{}
		}
		q.Filters[name] = val
	}
	return q, nil
}

func (h *ResourceHandler[M, Req, Resp]) Get(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, h.log, h.label, err)
		return
	}

	m, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, h.label, err)
		return
	}

	c.JSON(http.StatusOK, h.toResponse(*m))
}

func (h *ResourceHandler[M, Req, Resp]) Update(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, h.log, h.label, err)
		return
	}

	m, err := h.bind(c)
	if err != nil {
		respondError(c, h.log, h.label, err)
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &m)
	if err != nil {
		respondError(c, h.log, h.label, err)
		return
	}

	c.JSON(http.StatusOK, h.toResponse(*updated))
}

func (h *ResourceHandler[M, Req, Resp]) Delete(c *gin.Context) {
	id, err := parseIDParam(c)
	if err != nil {
		respondError(c, h.log, h.label, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, h.label, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterManufacturingRoutes mounts every resource under r.
func RegisterManufacturingRoutes(r gin.IRouter, h *handler.ManufacturingHandler, log *logger.Logger) {
	NewResourceHandler[models.Plant, dto.PlantRequest](
		"Plant", h.Plants, dto.NewPlantResponse, log,
	).Register(r.Group("/plants"))

	NewResourceHandler[models.Product, dto.ProductRequest](
		"Product", h.Products, dto.NewProductResponse, log,
	).Register(r.Group("/products"))

	NewResourceHandler[models.Material, dto.MaterialRequest](
		"Material", h.Materials, dto.NewMaterialResponse, log,
	).Register(r.Group("/materials"))

	NewResourceHandler[models.Order, dto.OrderRequest](
		"Order", h.Orders, dto.NewOrderResponse, log,
	).Register(r.Group("/orders"))

	NewResourceHandler[models.PlantProduct, dto.PlantProductRequest](
		"Plant product", h.PlantProducts, dto.NewPlantProductResponse, log,
		"plant_id", "product_id",
	).Register(r.Group("/plant_products"))

	NewResourceHandler[models.PlantMaterial, dto.PlantMaterialRequest](
		"Plant material", h.PlantMaterials, dto.NewPlantMaterialResponse, log,
		"plant_id", "material_id",
	).Register(r.Group("/plant_materials"))

	NewResourceHandler[models.ProductMaterial, dto.ProductMaterialRequest](
		"Product material", h.ProductMaterials, dto.NewProductMaterialResponse, log,
		"product_id", "material_id",
	).Register(r.Group("/product_materials"))

	NewResourceHandler[models.OrderProduct, dto.OrderProductRequest](
		"Order product", h.OrderProducts, dto.NewOrderProductResponse, log,
		"order_id", "product_id",
	).Register(r.Group("/order_products"))

	NewResourceHandler[models.StorageProduct, dto.StorageProductRequest](
		"Storage product", h.StorageProducts, dto.NewStorageProductResponse, log,
		"product_id",
	).Register(r.Group("/storage_products"))

	NewResourceHandler[models.StorageMaterial, dto.StorageMaterialRequest](
		"Storage material", h.StorageMaterials, dto.NewStorageMaterialResponse, log,
		"material_id",
	).Register(r.Group("/storage_materials"))
}
