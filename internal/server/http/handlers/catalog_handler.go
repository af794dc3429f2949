package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/errors"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/model"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/server/http/dto"
)

// CatalogHandler manages collection and collectible endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// CreateCollection handles POST /api/collections.
func (h *CatalogHandler) CreateCollection(c *gin.Context) {
	var req dto.CollectionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	collection, err := h.facade.CreateCollection(c.Request.Context(), CurrentArtistID(c), req.Name, req.Symbol, req.RoyaltyBps)
	if err != nil {
		if errors.Is(err, domainErrors.ErrInvalidInput) {
			c.Status(http.StatusBadRequest)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, toCollectionResponse(*collection))
}

// ListCollections handles GET /api/collections.
func (h *CatalogHandler) ListCollections(c *gin.Context) {
	collections, err := h.facade.Collections(c.Request.Context(), CurrentArtistID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.CollectionResponse, 0, len(collections))
	for _, col := range collections {
		response = append(response, toCollectionResponse(col))
	}
	c.JSON(http.StatusOK, response)
}

// GetCollection handles GET /api/collections/:id.
func (h *CatalogHandler) GetCollection(c *gin.Context) {
	collectionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	collection, err := h.facade.Collection(c.Request.Context(), collectionID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toCollectionResponse(*collection))
}

// SetAddresses handles POST /api/collections/:id/addresses.
func (h *CatalogHandler) SetAddresses(c *gin.Context) {
	collectionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.CollectionAddressesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err = h.facade.SetCollectionAddresses(c.Request.Context(), CurrentArtistID(c), collectionID, req.MintAddress, req.TreeAddress)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidWallet):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotOwner):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.Status(http.StatusOK)
}

// CreateCollectible handles POST /api/collections/:id/collectibles.
func (h *CatalogHandler) CreateCollectible(c *gin.Context) {
	collectionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var req dto.CollectibleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	collectible, err := h.facade.CreateCollectible(c.Request.Context(), CurrentArtistID(c), &model.Collectible{
		CollectionID: collectionID,
		Name:         req.Name,
		MetadataURI:  req.MetadataURI,
		PriceUSD:     req.PriceUSD,
		SupplyType:   model.SupplyType(req.SupplyType),
		MaxSupply:    req.MaxSupply,
		NFCPublicKey: req.NFCPublicKey,
		MintStart:    req.MintStart,
		MintEnd:      req.MintEnd,
	})
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidInput):
			c.Status(http.StatusBadRequest)
		case errors.Is(err, domainErrors.ErrNotFound):
			c.Status(http.StatusNotFound)
		case errors.Is(err, domainErrors.ErrNotOwner):
			c.Status(http.StatusForbidden)
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toCollectibleResponse(*collectible))
}

// GetCollectible handles GET /api/collectibles/:id.
func (h *CatalogHandler) GetCollectible(c *gin.Context) {
	collectibleID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	collectible, err := h.facade.Collectible(c.Request.Context(), collectibleID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toCollectibleResponse(*collectible))
}

// ListCollectibles handles GET /api/collections/:id/collectibles.
func (h *CatalogHandler) ListCollectibles(c *gin.Context) {
	collectionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	collectibles, err := h.facade.Collectibles(c.Request.Context(), collectionID)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}

	response := make([]dto.CollectibleResponse, 0, len(collectibles))
	for _, col := range collectibles {
		response = append(response, toCollectibleResponse(col))
	}
	c.JSON(http.StatusOK, response)
}

func toCollectionResponse(collection model.Collection) dto.CollectionResponse {
	return dto.CollectionResponse{
		ID:          collection.ID,
		Name:        collection.Name,
		Symbol:      collection.Symbol,
		MintAddress: collection.MintAddress,
		TreeAddress: collection.TreeAddress,
		RoyaltyBps:  collection.RoyaltyBps,
	}
}

func toCollectibleResponse(collectible model.Collectible) dto.CollectibleResponse {
	return dto.CollectibleResponse{
		ID:          collectible.ID,
		Name:        collectible.Name,
		MetadataURI: collectible.MetadataURI,
		PriceUSD:    collectible.PriceUSD,
		SupplyType:  string(collectible.SupplyType),
		MaxSupply:   collectible.MaxSupply,
		MintStart:   collectible.MintStart,
		MintEnd:     collectible.MintEnd,
	}
}
