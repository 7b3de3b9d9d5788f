package handlers

import (
	"net/http"

	response "ges_billing/internal/adapter/http/dto/response"
	"ges_billing/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

// ListDepartments returns the fixed unit catalog, source meter included.
func ListDepartments(c *gin.Context) {
	c.JSON(http.StatusOK, response.FromDepartments(entities.Departments()))
}
