package domain

// Team is the lookup entity agents belong to.
type Team struct {
	ID   int64
	Name string
}
