package domain

// Image represents a single hit returned by the image search API
type Image struct {
	ID            int
	Tags          string
	PreviewURL    string // thumbnail
	WebformatURL  string // medium size, used for the card
	LargeImageURL string // full resolution, shown in the lightbox and downloaded
	PageURL       string
	Width         int
	Height        int
	Likes         int
	Views         int
	Comments      int
	Downloads     int
	User          string
}

// ImagePage is one page of image search results
type ImagePage struct {
	Query     string
	Page      int
	Total     int // total matches reported by the API
	TotalHits int // matches reachable through paging
	Hits      []Image
}

// Country represents a country record returned by the country API
type Country struct {
	Name       string
	Official   string
	Capital    []string
	Region     string
	Population int
	Flag       string   // emoji flag
	FlagURL    string   // png flag
	Languages  []string // sorted language names
}

// Severity classifies a user-facing notice
type Severity int

const (
	SeverityInfo Severity = iota
	SeveritySuccess
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeveritySuccess:
		return "success"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// Notice is a transient message shown to the user
type Notice struct {
	Severity Severity
	Text     string
}

// Widget identifies one of the two tabs
type Widget string

const (
	WidgetGallery   Widget = "gallery"
	WidgetCountries Widget = "countries"
)
