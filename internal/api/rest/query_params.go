package rest

import (
	"fmt"

	"github.com/gin-gonic/gin"
)

const MAX_PAGE_SIZE = 100

// GetProvenanceQueryParams holds query parameters for GET /assets/:id/provenance
type GetProvenanceQueryParams struct {
	Limit  int    `form:"limit,default=20"`
	Offset uint64 `form:"offset,default=0"`
}

// ParseGetProvenanceQuery parses query parameters for GET /assets/:id/provenance
func ParseGetProvenanceQuery(c *gin.Context) (*GetProvenanceQueryParams, error) {
	var params GetProvenanceQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		return nil, err
	}

	if params.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", params.Limit)
	}

	// Cap limit
	if params.Limit > MAX_PAGE_SIZE {
		params.Limit = MAX_PAGE_SIZE
	}

	return &params, nil
}
