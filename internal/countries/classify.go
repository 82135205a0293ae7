package countries

// Branch is the rendering decision for a country lookup
type Branch int

const (
	BranchNone Branch = iota
	BranchNoCountry
	BranchCard
	BranchList
	BranchTooMany
	BranchNotFound
	BranchFailed
)

func (b Branch) String() string {
	switch b {
	case BranchNoCountry:
		return "no-country"
	case BranchCard:
		return "card"
	case BranchList:
		return "list"
	case BranchTooMany:
		return "too-many"
	case BranchNotFound:
		return "not-found"
	case BranchFailed:
		return "failed"
	default:
		return "none"
	}
}

// DefaultMaxMatches is the largest result set rendered as a name list
const DefaultMaxMatches = 10

// Classify picks the branch for n matches: 0 no country, 1 card,
// 2..maxMatches name list, anything above is too many
func Classify(n, maxMatches int) Branch {
	if maxMatches < 1 {
		maxMatches = DefaultMaxMatches
	}
	switch {
	case n <= 0:
		return BranchNoCountry
	case n == 1:
		return BranchCard
	case n <= maxMatches:
		return BranchList
	default:
		return BranchTooMany
	}
}
