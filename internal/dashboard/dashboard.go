// Package dashboard renders one view of a session into a panel of charts
// and tables.
package dashboard

import (
	"fmt"

	"github.com/TobiSchelling/streamdash/internal/analysis"
	"github.com/TobiSchelling/streamdash/internal/dataset"
	"github.com/TobiSchelling/streamdash/internal/metrics"
	"github.com/TobiSchelling/streamdash/internal/present"
	"github.com/TobiSchelling/streamdash/internal/view"
)

// Panel is everything a view displays.
type Panel struct {
	View    string          `json:"view"`
	Heading string          `json:"heading"`
	Caption string          `json:"caption"` // markdown
	Charts  []present.Chart `json:"charts"`
	Tables  []present.Table `json:"tables"`
}

// Render builds the panel for v from the session's records.
func Render(sess *dataset.Session, v view.View) (*Panel, error) {
	titles := sess.Titles()

	var (
		p   *Panel
		err error
	)
	switch v := v.(type) {
	case view.GenreDistribution:
		p = genreDistribution(titles)
	case view.MostStreamed:
		p, err = mostStreamed(titles, v.Stat)
	default:
		return nil, fmt.Errorf("unknown view %T", v)
	}
	if err != nil {
		return nil, err
	}

	p.View = v.Name()
	metrics.RecordViewRender(v.Name())
	return p, nil
}

func genreDistribution(titles []dataset.Title) *Panel {
	summary := analysis.GenreDistribution(titles)
	return &Panel{
		Heading: "Distribution of Genres",
		Caption: fmt.Sprintf("Share of the **%d** titles in each genre.", summary.Total()),
		Charts:  []present.Chart{present.GenrePie(summary)},
		Tables:  []present.Table{present.GenreTable(summary)},
	}
}

func mostStreamed(titles []dataset.Title, stat view.Stat) (*Panel, error) {
	switch stat {
	case view.TopStreamed:
		top := analysis.TopN(titles, analysis.ByVotes, analysis.DefaultTopN)
		return &Panel{
			Heading: "Top 10 Most Streamed Titles",
			Caption: "Ranked by `votes`, used here as the streaming count.",
			Charts:  []present.Chart{present.TopStreamedChart(top)},
			Tables:  []present.Table{present.TopStreamedTable(top)},
		}, nil
	case view.TopPopular:
		top := analysis.TopN(titles, analysis.ByRating, analysis.DefaultTopN)
		return &Panel{
			Heading: "Top 10 Most Popular Titles",
			Caption: "Ranked by `rating`, highest first.",
			Charts:  []present.Chart{present.TopPopularChart(top)},
			Tables:  []present.Table{present.TopPopularTable(top)},
		}, nil
	case view.DescriptiveStats:
		return descriptiveStats(titles)
	default:
		return nil, fmt.Errorf("unknown statistic %d", stat)
	}
}

func descriptiveStats(titles []dataset.Title) (*Panel, error) {
	summaries, err := analysis.Describe(titles, analysis.DescribedColumns...)
	if err != nil {
		return nil, err
	}

	p := &Panel{
		Heading: "Descriptive Statistics",
		Caption: "Summary of the numeric columns `rating` and `votes`.",
		Tables:  []present.Table{present.StatsTable(summaries)},
	}
	for _, col := range analysis.DescribedColumns {
		values, err := analysis.Values(titles, col)
		if err != nil {
			return nil, err
		}
		p.Charts = append(p.Charts, present.HistogramChart(col, analysis.Histogram(values, analysis.HistogramBins)))
	}
	return p, nil
}
