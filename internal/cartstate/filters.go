package cartstate

import (
	"strings"

	"github.com/Skotchmaster/storefront/pkg/storefrontclient"
)

// Filters is the product search state: a free text term and a category slug.
// Empty values mean no constraint.
type Filters struct {
	searchTerm string
	category   string
}

func (f *Filters) SetSearchTerm(term string) { f.searchTerm = term }

func (f *Filters) SetCategory(slug string) { f.category = slug }

func (f *Filters) Clear() {
	f.searchTerm = ""
	f.category = ""
}

func (f *Filters) SearchTerm() string { return f.searchTerm }

func (f *Filters) Category() string { return f.category }

func (f *Filters) Active() bool {
	return strings.TrimSpace(f.searchTerm) != "" || f.category != ""
}

// Query builds the listing request for the current filters.
func (f *Filters) Query() storefrontclient.ListProductsParams {
	return storefrontclient.ListProductsParams{
		Search:   strings.TrimSpace(f.searchTerm),
		Category: f.category,
	}
}
