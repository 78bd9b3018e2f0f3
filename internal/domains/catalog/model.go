package catalog

// Book is the application-shaped view of an Open Library search result.
// IsCustom is always false here; these records never live in the store.
type Book struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Authors       []string `json:"authors"`
	PublishYear   *int     `json:"publishYear"`
	CoverURL      *string  `json:"coverUrl"`
	CoverURLSmall *string  `json:"coverUrlSmall"`
	CoverURLLarge *string  `json:"coverUrlLarge"`
	ISBN          *string  `json:"isbn,omitempty"`
	EditionCount  int      `json:"editionCount,omitempty"`
	IsCustom      bool     `json:"isCustom"`
}

// SearchResult is the paginated search payload served to clients.
type SearchResult struct {
	Books      []Book `json:"books"`
	TotalFound int    `json:"totalFound"`
	Start      int    `json:"start"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"totalPages"`
}

// TrendingResult is a subject-flavored search result.
type TrendingResult struct {
	Books   []Book `json:"books"`
	Subject string `json:"subject"`
}

// Sort options accepted by the search endpoints.
const (
	SortRelevance = "relevance"
	SortNew       = "new"
	SortOld       = "old"
	SortRating    = "rating"
)

// PopularSubjects feed the trending rotation.
var PopularSubjects = []string{
	"fiction",
	"romance",
	"mystery",
	"science fiction",
	"fantasy",
}

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
)
