// Package view models the dashboard menu as a closed set of views.
package view

// Page labels, in menu order.
const (
	PageGenreDistribution = "Genre Distribution"
	PageMostStreamed      = "Most Streamed"
)

// Pages lists the top-level menu entries.
var Pages = []string{PageGenreDistribution, PageMostStreamed}

// Stat is a sub-choice of the Most Streamed page.
type Stat int

const (
	TopStreamed Stat = iota
	TopPopular
	DescriptiveStats
)

// Stats lists the Most Streamed sub-choices in menu order.
var Stats = []Stat{TopStreamed, TopPopular, DescriptiveStats}

// Label returns the menu text for s.
func (s Stat) Label() string {
	switch s {
	case TopStreamed:
		return "Top 10 Most Streamed"
	case TopPopular:
		return "Top 10 Most Popular"
	case DescriptiveStats:
		return "Descriptive Statistics"
	default:
		return ""
	}
}

// StatLabels returns the sub-menu texts in order.
func StatLabels() []string {
	labels := make([]string, len(Stats))
	for i, s := range Stats {
		labels[i] = s.Label()
	}
	return labels
}

// View is one of GenreDistribution or MostStreamed.
type View interface {
	// Page returns the top-level menu label.
	Page() string
	// Name identifies the view in logs and metrics.
	Name() string

	isView()
}

// GenreDistribution shows titles per genre.
type GenreDistribution struct{}

func (GenreDistribution) Page() string { return PageGenreDistribution }
func (GenreDistribution) Name() string { return PageGenreDistribution }
func (GenreDistribution) isView()      {}

// MostStreamed shows one ranking or statistics panel.
type MostStreamed struct {
	Stat Stat
}

func (MostStreamed) Page() string   { return PageMostStreamed }
func (m MostStreamed) Name() string { return m.Stat.Label() }
func (MostStreamed) isView()        {}

// Default is the view shown before any selection.
func Default() View {
	return GenreDistribution{}
}

// Select maps menu labels to a view. Labels outside the menu fall back to the
// first entry, which is what an untouched select box shows.
func Select(page, stat string) View {
	switch page {
	case PageMostStreamed:
		for _, s := range Stats {
			if s.Label() == stat {
				return MostStreamed{Stat: s}
			}
		}
		return MostStreamed{Stat: TopStreamed}
	default:
		return GenreDistribution{}
	}
}

// StatOf returns the selected sub-choice label, or "" for views without one.
func StatOf(v View) string {
	if m, ok := v.(MostStreamed); ok {
		return m.Stat.Label()
	}
	return ""
}
