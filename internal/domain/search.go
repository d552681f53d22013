package domain

// Sort options for search results.
const (
	SortRelevance = "relevance"
	SortPriceAsc  = "price-asc"
	SortPriceDesc = "price-desc"
	SortNewest    = "newest"
	SortNameAsc   = "name-asc"
	SortNameDesc  = "name-desc"
)

// ValidSortOptions returns the list of valid sort options.
func ValidSortOptions() []string {
	return []string{SortRelevance, SortPriceAsc, SortPriceDesc, SortNewest, SortNameAsc, SortNameDesc}
}

// IsValidSort checks whether the given sort string is a valid sort option.
func IsValidSort(sort string) bool {
	for _, s := range ValidSortOptions() {
		if s == sort {
			return true
		}
	}
	return false
}

// Response status values.
const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

// PriceRange bounds a price filter. Both bounds are inclusive; nil means open.
type PriceRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// SearchFilters is the structured part of a search request. Nil or empty
// fields impose no constraint; boolean flags only restrict when true.
type SearchFilters struct {
	Categories  []string    `json:"categories,omitempty"`
	Collections []string    `json:"collections,omitempty"`
	Materials   []string    `json:"materials,omitempty"`
	Brands      []string    `json:"brands,omitempty"`
	PriceRange  *PriceRange `json:"price_range,omitempty"`
	InStock     *bool       `json:"in_stock,omitempty"`
	IsNew       *bool       `json:"is_new,omitempty"`
	IsFeatured  *bool       `json:"is_featured,omitempty"`
}

// SearchParams holds all parameters for a search request.
type SearchParams struct {
	Query    string        `json:"query"`
	Filters  SearchFilters `json:"filters"`
	Sort     string        `json:"sort"`
	Page     int           `json:"page"`
	PageSize int           `json:"page_size"`
}

// FilterOption is one facet value with the number of products carrying it.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// AvailableFilters lists the facet values present in a result set.
type AvailableFilters struct {
	Categories  []FilterOption `json:"categories"`
	Collections []FilterOption `json:"collections"`
	Materials   []FilterOption `json:"materials"`
	Brands      []FilterOption `json:"brands"`
	PriceRange  PriceRange     `json:"price_range"`
}

// SearchResponse holds the paginated search response.
type SearchResponse struct {
	Products         []Product        `json:"products"`
	TotalCount       int              `json:"total_count"`
	Page             int              `json:"page"`
	PageSize         int              `json:"page_size"`
	TotalPages       int              `json:"total_pages"`
	Query            string           `json:"query"`
	AppliedFilters   SearchFilters    `json:"applied_filters"`
	AvailableFilters AvailableFilters `json:"available_filters"`
	Status           string           `json:"status"`
	Reason           string           `json:"reason,omitempty"`
	TookMs           int64            `json:"took_ms"`
}

// Degraded reports whether the response was produced after a failure.
func (r *SearchResponse) Degraded() bool {
	return r.Status == StatusDegraded
}

// Suggestion types.
const (
	SuggestionProduct    = "product"
	SuggestionCategory   = "category"
	SuggestionCollection = "collection"
)

// Suggestion is a single type-ahead entry.
type Suggestion struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
	Text string `json:"text"`
	Slug string `json:"slug,omitempty"`
}
