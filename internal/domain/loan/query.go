package loan

type Query struct {
	LibraryID string
	BookID    string
	MemberID  string
	Status    Status
	Limit     int
	Offset    int
}
