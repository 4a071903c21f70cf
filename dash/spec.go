package dash

import (
	charts "github.com/midbel/titledash"
	"github.com/midbel/titledash/fetch"
)

const (
	ChartLine    = "line-chart"
	ChartBar     = "bar-chart"
	ChartRuntime = "runtime-chart"
	ChartGenres  = "genres-chart"
	ChartIMDb    = "imdb-chart"
	YearSelect   = "year-select"
)

// Spec describes one chart of the dashboard: where its data comes from and
// how it looks.
type Spec struct {
	Id       string
	Field    charts.Field
	Endpoint string
	Section  string
	Sheet    string

	Width   float64
	Height  float64
	Padding charts.Padding
	Labels  charts.Labels
	Style   Style
}

func (s Spec) surface() *charts.Surface {
	return charts.NewSurface(s.Id, s.Width, s.Height, s.Padding)
}

var defaultPadding = charts.Padding{
	Top:    50,
	Right:  30,
	Bottom: 50,
	Left:   50,
}

// DefaultSpecs gives the four charts drawn from the aggregates, in the order
// of the page.
func DefaultSpecs() []Spec {
	runtime := defaultPadding
	runtime.Left = 70
	return []Spec{
		{
			Id:       ChartLine,
			Field:    charts.FieldYear,
			Endpoint: fetch.EndpointData,
			Section:  "graph1",
			Sheet:    "years",
			Width:    595,
			Height:   326,
			Padding:  defaultPadding,
			Labels: charts.Labels{
				Title: "Number of Titles per Release Year",
				X:     "Release Year",
				Y:     "Number of Titles",
			},
			Style: Style{Type: RenderLine},
		},
		{
			Id:       ChartBar,
			Field:    charts.FieldCertification,
			Endpoint: fetch.EndpointRatings,
			Section:  "graph2",
			Sheet:    "ratings",
			Width:    595,
			Height:   326,
			Padding:  defaultPadding,
			Labels: charts.Labels{
				X: "Age Certification",
				Y: "Number of Titles",
			},
			Style: Style{Type: RenderBar, WithValue: true},
		},
		{
			Id:       ChartRuntime,
			Field:    charts.FieldRuntime,
			Endpoint: fetch.EndpointRuntime,
			Section:  "graph3",
			Sheet:    "runtime",
			Width:    595,
			Height:   326,
			Padding:  runtime,
			Labels: charts.Labels{
				X: "Runtime (minutes)",
				Y: "Number of Titles",
			},
			Style: Style{
				Type:      RenderBar,
				Hover:     charts.DefaultHover,
				Rotate:    -45,
				WithValue: true,
			},
		},
		{
			Id:       ChartGenres,
			Field:    charts.FieldGenre,
			Endpoint: fetch.EndpointGenres,
			Section:  "graph4",
			Sheet:    "genres",
			Width:    600,
			Height:   600,
			Padding:  charts.Padding{Top: 50, Right: 50, Bottom: 50, Left: 50},
			Style: Style{
				Type:        RenderPie,
				OuterRadius: 200,
				Legend:      true,
			},
		},
	}
}

// ScoreSpec describes the chart of the IMDb score of the titles of one year.
func ScoreSpec() Spec {
	return Spec{
		Id:     ChartIMDb,
		Field:  charts.FieldTitle,
		Sheet:  "imdb",
		Width:  300,
		Height: 500,
		Padding: charts.Padding{
			Top:    50,
			Right:  10,
			Bottom: 30,
			Left:   120,
		},
		Labels: charts.Labels{
			Title: "IMDb Score per Release year and Title",
		},
		Style: Style{
			Type:     RenderScore,
			MinWidth: 10,
		},
	}
}
