package dash

import (
	"context"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/singleflight"

	charts "github.com/midbel/titledash"
	"github.com/midbel/titledash/decode"
	"github.com/midbel/titledash/fetch"
)

type DataSource interface {
	Aggregate(context.Context, Spec) (charts.Aggregate, error)
	Years(context.Context) ([]int, error)
	Scores(context.Context, int) (charts.Aggregate, error)
}

// HttpSource reads the aggregates from the backend API, either one endpoint
// per chart or a single combined document shared by every chart.
type HttpSource struct {
	client *fetch.Client
	mode   string
	group  singleflight.Group
}

func NewHttpSource(client *fetch.Client, mode string) *HttpSource {
	if mode == "" {
		mode = ModeSplit
	}
	return &HttpSource{
		client: client,
		mode:   mode,
	}
}

func (s *HttpSource) Aggregate(ctx context.Context, spec Spec) (charts.Aggregate, error) {
	if s.mode != ModeCombined {
		return s.client.Aggregate(ctx, spec.Endpoint)
	}
	// concurrent charts share the same request
	v, err, _ := s.group.Do(fetch.EndpointCombined, func() (any, error) {
		return s.client.Combined(ctx)
	})
	if err != nil {
		return charts.Aggregate{}, err
	}
	for _, sec := range v.([]decode.Section) {
		if sec.Name == spec.Section {
			return sec.Aggregate, nil
		}
	}
	return charts.Aggregate{}, nil
}

func (s *HttpSource) Years(ctx context.Context) ([]int, error) {
	return s.client.Years(ctx)
}

func (s *HttpSource) Scores(ctx context.Context, year int) (charts.Aggregate, error) {
	return s.client.Scores(ctx, year)
}

// WorkbookSource reads pre-aggregated sheets from a spreadsheet. Each sheet
// starts with a header row; the value is read from the count column (or the
// second one), the category from the column named after the field (or the
// first one) and the series from the optional type column.
type WorkbookSource struct {
	Path string
}

const (
	columnCount  = "count"
	columnSeries = "type"
	columnYear   = "release_year"
	columnScore  = "imdb_score"
)

func (s WorkbookSource) Aggregate(ctx context.Context, spec Spec) (charts.Aggregate, error) {
	rows, err := s.rows(ctx, spec.Sheet)
	if err != nil {
		return charts.Aggregate{}, err
	}
	return toAggregate(rows, spec.Field.Name, columnCount, nil), nil
}

func (s WorkbookSource) Years(ctx context.Context) ([]int, error) {
	rows, err := s.rows(ctx, ScoreSpec().Sheet)
	if err != nil {
		return nil, err
	}
	var (
		years []int
		col   = columnIndex(rows, columnYear, 0)
	)
	for _, r := range rowsBody(rows) {
		y, err := strconv.Atoi(strings.TrimSpace(cellAt(r, col)))
		if err != nil || slices.Contains(years, y) {
			continue
		}
		years = append(years, y)
	}
	slices.Sort(years)
	return years, nil
}

func (s WorkbookSource) Scores(ctx context.Context, year int) (charts.Aggregate, error) {
	rows, err := s.rows(ctx, ScoreSpec().Sheet)
	if err != nil {
		return charts.Aggregate{}, err
	}
	var (
		col  = columnIndex(rows, columnYear, 0)
		want = strconv.Itoa(year)
	)
	keep := func(r []string) bool {
		return strings.TrimSpace(cellAt(r, col)) == want
	}
	return toAggregate(rows, charts.FieldTitle.Name, columnScore, keep), nil
}

func (s WorkbookSource) rows(ctx context.Context, sheet string) ([][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Mark(err, fetch.ErrFetch)
	}
	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "open workbook %s", s.Path), fetch.ErrFetch)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "%s: read sheet %s", s.Path, sheet), fetch.ErrFetch)
	}
	return rows, nil
}

func toAggregate(rows [][]string, key, value string, keep func([]string) bool) charts.Aggregate {
	var (
		agg    charts.Aggregate
		kcol   = columnIndex(rows, key, 0)
		vcol   = columnIndex(rows, value, 1)
		series = columnIndex(rows, columnSeries, -1)
	)
	for _, r := range rowsBody(rows) {
		if keep != nil && !keep(r) {
			continue
		}
		var v any
		if str := cellAt(r, vcol); str != "" {
			v = str
		}
		agg.AddSerie(cellAt(r, series), cellAt(r, kcol), v)
	}
	return agg
}

func columnIndex(rows [][]string, name string, def int) int {
	if len(rows) == 0 {
		return def
	}
	for i, h := range rows[0] {
		if strings.EqualFold(strings.TrimSpace(h), name) {
			return i
		}
	}
	return def
}

func rowsBody(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}

func cellAt(row []string, ix int) string {
	if ix < 0 || ix >= len(row) {
		return ""
	}
	return row[ix]
}
