package member

type Query struct {
	LibraryID string
	Search    string // name, email or phone
	Status    Status
	Limit     int
	Offset    int
}
