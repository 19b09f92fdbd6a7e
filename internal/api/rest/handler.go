package rest

import (
	"fmt"
	"net/http"

	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"

	"github.com/feral-file/ff-registry/internal/api/middleware"
	"github.com/feral-file/ff-registry/internal/api/rest/dto"
	"github.com/feral-file/ff-registry/internal/domain"
	"github.com/feral-file/ff-registry/internal/registry"
)

// Handler defines the interface for REST API handlers
// This interface allows for easy mocking and testing
//
//go:generate mockgen -source=handler.go -destination=../../mocks/api_handler.go -package=mocks -mock_names=Handler=MockAPIHandler
type Handler interface {
	// GetAsset retrieves an asset with its owner, listing and approval
	// GET /api/v1/assets/:id
	GetAsset(c *gin.Context)

	// GetProvenance retrieves the history of an asset
	// GET /api/v1/assets/:id/provenance?limit=<limit>&offset=<offset>
	GetProvenance(c *gin.Context)

	// GetBalance retrieves the sale proceeds credited to an identity
	// GET /api/v1/accounts/:address/balance
	GetBalance(c *gin.Context)

	// MintAsset mints a new asset owned by the caller (requires authentication)
	// POST /api/v1/assets
	MintAsset(c *gin.Context)

	// ListAsset puts an asset up for sale (requires authentication)
	// PUT /api/v1/assets/:id/listing
	ListAsset(c *gin.Context)

	// PurchaseAsset buys a listed asset with the attached value (requires authentication)
	// POST /api/v1/assets/:id/purchase
	PurchaseAsset(c *gin.Context)

	// TransferAsset moves an asset to another identity (requires authentication)
	// POST /api/v1/assets/:id/transfer
	TransferAsset(c *gin.Context)

	// ApproveAsset grants an identity the right to move an asset (requires authentication)
	// POST /api/v1/assets/:id/approve
	ApproveAsset(c *gin.Context)

	// ExchangeAssets swaps the owners of two assets (requires authentication)
	// POST /api/v1/exchanges
	ExchangeAssets(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	registry registry.Registry
}

// NewHandler creates a new REST API handler backed by the registry
func NewHandler(reg registry.Registry) Handler {
	return &handler{
		registry: reg,
	}
}

// GetAsset retrieves an asset by its ID
func (h *handler) GetAsset(c *gin.Context) {
	id, ok := parseAssetID(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	asset, err := h.registry.GetAsset(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	listing, err := h.registry.Listing(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	approved, err := h.registry.Approved(ctx, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapAssetToDTO(asset, listing, approved))
}

// GetProvenance retrieves a page of the asset history
func (h *handler) GetProvenance(c *gin.Context) {
	id, ok := parseAssetID(c)
	if !ok {
		return
	}

	queryParams, err := ParseGetProvenanceQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	events, total, err := h.registry.Provenance(c.Request.Context(), id, queryParams.Limit, queryParams.Offset)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := dto.ProvenanceResponse{
		Events: make([]dto.ProvenanceEventResponse, 0, len(events)),
		Offset: queryParams.Offset,
		Total:  total,
	}
	for _, event := range events {
		resp.Events = append(resp.Events, dto.MapProvenanceEventToDTO(event))
	}

	c.JSON(http.StatusOK, resp)
}

// GetBalance retrieves the balance of an identity
func (h *handler) GetBalance(c *gin.Context) {
	address, err := domain.ParseIdentity(c.Param("address"))
	if err != nil {
		respondBadRequest(c, "Invalid address", err.Error())
		return
	}

	balance, err := h.registry.BalanceOf(c.Request.Context(), address)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.BalanceResponse{
		Address: address.Hex(),
		Balance: balance.String(),
	})
}

// MintAsset mints an asset owned by the caller
func (h *handler) MintAsset(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.MintAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	asset, err := h.registry.Mint(c.Request.Context(), req.ID, req.Name, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.MapAssetToDTO(asset, nil, common.Address{}))
}

// ListAsset puts an asset up for sale at the requested price
func (h *handler) ListAsset(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseAssetID(c)
	if !ok {
		return
	}

	var req dto.ListAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	listing, err := h.registry.ListForSale(c.Request.Context(), id, *req.Price, caller)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MapListingToDTO(listing))
}

// PurchaseAsset buys a listed asset
func (h *handler) PurchaseAsset(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseAssetID(c)
	if !ok {
		return
	}

	var req dto.PurchaseAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	if err := h.registry.Purchase(c.Request.Context(), id, caller, *req.Value); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// TransferAsset moves an asset to the requested recipient
func (h *handler) TransferAsset(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseAssetID(c)
	if !ok {
		return
	}

	var req dto.RecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	to, err := req.Recipient()
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.registry.Transfer(c.Request.Context(), to, id, caller); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ApproveAsset grants the requested identity the right to move an asset
func (h *handler) ApproveAsset(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}
	id, ok := parseAssetID(c)
	if !ok {
		return
	}

	var req dto.RecipientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	to, err := req.Recipient()
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.registry.Approve(c.Request.Context(), to, id, caller); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ExchangeAssets swaps the owners of two assets
func (h *handler) ExchangeAssets(c *gin.Context) {
	caller, ok := requireCaller(c)
	if !ok {
		return
	}

	var req dto.ExchangeAssetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	// Validate request body
	if err := req.Validate(); err != nil {
		respondError(c, err)
		return
	}

	if err := h.registry.Exchange(c.Request.Context(), req.AssetA, req.AssetB, caller); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// HealthCheck returns the health status of the API
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "ff-registry-api",
	})
}

// parseAssetID reads the :id path parameter, responding with a bad request when it is invalid
func parseAssetID(c *gin.Context) (domain.AssetID, bool) {
	id, err := domain.ParseAssetID(c.Param("id"))
	if err != nil {
		respondBadRequest(c, "Invalid asset ID", err.Error())
		return 0, false
	}
	return id, true
}

// requireCaller returns the identity resolved by the auth middleware
func requireCaller(c *gin.Context) (common.Address, bool) {
	caller, ok := middleware.CallerFromContext(c)
	if !ok {
		respondUnauthorized(c, "Caller identity is required")
		return common.Address{}, false
	}
	return caller, true
}
