package interfaces

// Repository defines the interface for data persistence
type Repository interface {
	Graph() GraphRepository

	Close() error
}
