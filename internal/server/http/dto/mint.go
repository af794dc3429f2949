package dto

// MintInitiateRequest starts a mint order for one collectible. The
// collection identifier is accepted for wire compatibility; the order
// derives the collection from the collectible itself.
type MintInitiateRequest struct {
	CollectibleID int64   `json:"collectibleId"`
	CollectionID  int64   `json:"collectionId,omitempty"`
	WalletAddress string  `json:"walletAddress"`
	DeviceID      *string `json:"deviceId,omitempty"`
}

// MintInitiateResponse carries the created order and its SOL quote.
type MintInitiateResponse struct {
	Success  bool    `json:"success"`
	OrderID  string  `json:"orderId"`
	IsFree   bool    `json:"isFree"`
	PriceSol float64 `json:"priceSol"`
}

// MintProcessRequest completes a previously initiated order. The signed
// transaction is absent for free mints.
type MintProcessRequest struct {
	OrderID           string  `json:"orderId"`
	SignedTransaction *string `json:"signedTransaction"`
	PriceInSol        float64 `json:"priceInSol"`
}

// MintProcessResponse carries the on-chain signatures of a completed mint.
type MintProcessResponse struct {
	Success       bool    `json:"success"`
	TxSignature   *string `json:"txSignature,omitempty"`
	MintSignature string  `json:"mintSignature"`
	ExplorerURL   string  `json:"explorerUrl"`
}

// ErrorResponse is the uniform error payload.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}
