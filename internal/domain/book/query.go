package book

// Query filters ListBooks. Zero values mean "no filter".
type Query struct {
	LibraryID string
	Search    string // matched against title, author and isbn
	Category  string
	Status    Status
	Limit     int
	Offset    int
}
