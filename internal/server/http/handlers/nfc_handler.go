package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/errors"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/pkg/nfc"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/server/http/dto"
)

// NfcHandler verifies chip tap signatures.
type NfcHandler struct {
	facade MintingFacade
}

// NewNfcHandler constructs NfcHandler.
func NewNfcHandler(facade MintingFacade) *NfcHandler {
	return &NfcHandler{facade: facade}
}

// Verify handles POST /api/nfc/verify.
func (h *NfcHandler) Verify(c *gin.Context) {
	var req dto.NfcVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if req.CollectibleID == 0 || req.Nonce == "" || req.Signature == "" {
		c.JSON(http.StatusBadRequest, errorBody("collectibleId, nonce and signature are required"))
		return
	}

	valid, err := h.facade.VerifyNfcTap(c.Request.Context(), req.CollectibleID, req.Nonce, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, errorBody("collectible has no chip key"))
		case errors.Is(err, nfc.ErrInvalidPublicKey), errors.Is(err, nfc.ErrInvalidSignature):
			c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, errorBody("verification failed"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.NfcVerifyResponse{Success: true, Valid: valid})
}
