package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/domain/errors"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/server/http/dto"
	"github.com/CrackedDevs/street-mint-hackathon-demo-sub000/internal/usecase"
)

// MintHandler manages the mint order workflow endpoints.
type MintHandler struct {
	facade MintingFacade
}

// NewMintHandler constructs MintHandler.
func NewMintHandler(facade MintingFacade) *MintHandler {
	return &MintHandler{facade: facade}
}

// Initiate handles POST /api/collection/mint/initiate.
func (h *MintHandler) Initiate(c *gin.Context) {
	var req dto.MintInitiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if req.CollectibleID == 0 || req.WalletAddress == "" {
		c.JSON(http.StatusBadRequest, errorBody("collectibleId and walletAddress are required"))
		return
	}

	result, err := h.facade.InitiateMint(c.Request.Context(), req.CollectibleID, req.WalletAddress, req.DeviceID)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidWallet),
			errors.Is(err, domainErrors.ErrNotFound),
			errors.Is(err, domainErrors.ErrCollectionNotReady),
			errors.Is(err, domainErrors.ErrMintWindowClosed),
			errors.Is(err, domainErrors.ErrAlreadyMinted),
			errors.Is(err, domainErrors.ErrMintInProgress),
			errors.Is(err, domainErrors.ErrSupplyExhausted):
			c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, errorBody("failed to initiate mint"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.MintInitiateResponse{
		Success:  true,
		OrderID:  result.Order.ID,
		IsFree:   result.Order.Free(),
		PriceSol: result.PriceSol,
	})
}

// Process handles POST /api/collection/mint/process.
func (h *MintHandler) Process(c *gin.Context) {
	var req dto.MintProcessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if req.OrderID == "" {
		c.JSON(http.StatusBadRequest, errorBody("orderId is required"))
		return
	}

	result, err := h.facade.ProcessMint(c.Request.Context(), req.OrderID, req.SignedTransaction, req.PriceInSol)
	if err != nil {
		var mismatch *usecase.PaymentMismatchError
		switch {
		case errors.Is(err, domainErrors.ErrNotFound),
			errors.Is(err, domainErrors.ErrOrderNotPending),
			errors.Is(err, domainErrors.ErrPaymentRequired),
			errors.Is(err, domainErrors.ErrNoTransfer),
			errors.As(err, &mismatch):
			c.JSON(http.StatusBadRequest, errorBody(err.Error()))
		default:
			// Failures past validation, confirmation timeouts included,
			// surface as a generic error with the cause in the server log.
			c.JSON(http.StatusInternalServerError, errorBody("failed to process mint"))
		}
		return
	}

	c.JSON(http.StatusOK, dto.MintProcessResponse{
		Success:       true,
		TxSignature:   result.PaymentSig,
		MintSignature: result.MintSig,
		ExplorerURL:   result.ExplorerURL,
	})
}
