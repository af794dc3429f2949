package repository

// Factory describes access to different domain repositories.
type Factory interface {
	Artists() ArtistRepository
	Collections() CollectionRepository
	Collectibles() CollectibleRepository
	Orders() OrderRepository
}
