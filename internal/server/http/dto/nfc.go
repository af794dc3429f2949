package dto

// NfcVerifyRequest checks a chip tap signature.
type NfcVerifyRequest struct {
	CollectibleID int64  `json:"collectibleId"`
	Nonce         string `json:"nonce"`
	Signature     string `json:"signature"`
}

// NfcVerifyResponse reports tap authenticity.
type NfcVerifyResponse struct {
	Success bool `json:"success"`
	Valid   bool `json:"valid"`
}
