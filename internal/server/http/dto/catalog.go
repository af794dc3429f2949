package dto

import "time"

// CollectionCreateRequest registers a new collection.
type CollectionCreateRequest struct {
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	RoyaltyBps int32  `json:"royaltyBps"`
}

// CollectionAddressesRequest stores on-chain addresses for a collection.
type CollectionAddressesRequest struct {
	MintAddress string `json:"mintAddress"`
	TreeAddress string `json:"treeAddress"`
}

// CollectionResponse describes a collection.
type CollectionResponse struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Symbol      string  `json:"symbol"`
	MintAddress *string `json:"mintAddress,omitempty"`
	TreeAddress *string `json:"treeAddress,omitempty"`
	RoyaltyBps  int32   `json:"royaltyBps"`
}

// CollectibleCreateRequest registers a mintable item.
type CollectibleCreateRequest struct {
	Name         string     `json:"name"`
	MetadataURI  string     `json:"metadataUri"`
	PriceUSD     float64    `json:"priceUsd"`
	SupplyType   string     `json:"supplyType"`
	MaxSupply    *int32     `json:"maxSupply,omitempty"`
	NFCPublicKey *string    `json:"nfcPublicKey,omitempty"`
	MintStart    *time.Time `json:"mintStart,omitempty"`
	MintEnd      *time.Time `json:"mintEnd,omitempty"`
}

// CollectibleResponse describes a mintable item.
type CollectibleResponse struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	MetadataURI string     `json:"metadataUri"`
	PriceUSD    float64    `json:"priceUsd"`
	SupplyType  string     `json:"supplyType"`
	MaxSupply   *int32     `json:"maxSupply,omitempty"`
	MintStart   *time.Time `json:"mintStart,omitempty"`
	MintEnd     *time.Time `json:"mintEnd,omitempty"`
}
