package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/muuduuu/ayurtrace/internal/trace/service"
)

// ProductHandler 品类处理器
type ProductHandler struct {
	svc *service.ProductService
}

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

// ListProducts 品类目录
// GET /api/v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	products, err := h.svc.List(c.Request.Context())
	if err != nil {
		Fail(c, err, "failed to fetch products")
		return
	}
	Success(c, gin.H{"items": products})
}

// CreateProduct 创建品类
// POST /api/v1/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "invalid request: "+err.Error())
		return
	}

	product, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		Fail(c, err, "failed to create product")
		return
	}
	Created(c, product)
}

// DeleteProduct 删除品类
// DELETE /api/v1/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		Fail(c, err, "failed to delete product")
		return
	}
	Success(c, nil)
}
