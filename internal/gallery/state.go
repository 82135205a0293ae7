package gallery

// QueryState is the query/page counter of one gallery widget
type QueryState struct {
	Query string
	Page  int
}

// NewQueryState returns the initial state: no query, first page
func NewQueryState() QueryState {
	return QueryState{Page: 1}
}

// NextPage advances to the next page of the current query
func (s *QueryState) NextPage() {
	s.Page++
}

// Reset clears the query and rewinds to the first page
func (s *QueryState) Reset() {
	s.Query = ""
	s.Page = 1
}
