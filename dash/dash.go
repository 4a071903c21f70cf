// Package dash assembles the charts of the dashboard, loads their data and
// serves them.
package dash

import (
	"context"
	"slices"
	"sync"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	charts "github.com/midbel/titledash"
	"github.com/midbel/titledash/logger"
)

type Option func(*Dashboard)

func WithLogger(log *zap.SugaredLogger) Option {
	return func(d *Dashboard) {
		d.logger = log
	}
}

// WithYear sets the year of the score chart used when the dashboard is
// refreshed for the first time. 0 selects the latest year.
func WithYear(year int) Option {
	return func(d *Dashboard) {
		d.initial = year
	}
}

// Dashboard holds the charts and their mount points. Every chart is loaded on
// its own: a chart failing to load never prevents the others from being
// drawn.
type Dashboard struct {
	source DataSource
	logger *zap.SugaredLogger

	mounts    []*Mount
	scores    *Mount
	selection *charts.Selection
	tooltip   *charts.Tooltip

	mu       sync.Mutex
	years    []int
	year     int
	initial  int
	selected string
}

func New(source DataSource, options ...Option) (*Dashboard, error) {
	d := Dashboard{
		source:    source,
		logger:    logger.Named("dash"),
		selection: new(charts.Selection),
		tooltip:   charts.NewTooltip(ChartIMDb + "-tooltip"),
	}
	for _, o := range options {
		o(&d)
	}
	for _, spec := range DefaultSpecs() {
		m, err := d.mount(spec)
		if err != nil {
			return nil, err
		}
		d.mounts = append(d.mounts, m)
	}
	m, err := d.mount(ScoreSpec())
	if err != nil {
		return nil, err
	}
	d.scores = m
	return &d, nil
}

func (d *Dashboard) mount(spec Spec) (*Mount, error) {
	var (
		style = spec.Style.merge(GlobalStyle())
		sel   *charts.Selection
	)
	if style.Type == RenderPie {
		sel = d.selection
	}
	rdr, err := style.makeRenderer(sel)
	if err != nil {
		return nil, errors.Wrapf(err, "chart %s", spec.Id)
	}
	chart := charts.NewChart(spec.surface(), rdr, d.logger)
	chart.Labels = spec.Labels
	switch style.Type {
	case RenderPie:
		chart.Use(d.selection)
	case RenderScore:
		chart.Use(d.tooltip)
	default:
	}
	return NewMount(spec, chart), nil
}

// Mounts gives every mount of the dashboard in the order of the page.
func (d *Dashboard) Mounts() []*Mount {
	list := slices.Clone(d.mounts)
	return append(list, d.scores)
}

func (d *Dashboard) Mount(id string) (*Mount, bool) {
	for _, m := range d.Mounts() {
		if m.Id == id {
			return m, true
		}
	}
	return nil, false
}

// Refresh loads again the data of every chart. Charts are loaded and drawn
// concurrently, each one as soon as its data is available. Failures are
// logged and leave the chart empty; only the cancellation of ctx is
// reported.
func (d *Dashboard) Refresh(ctx context.Context) error {
	var g errgroup.Group
	for _, m := range d.mounts {
		m := m
		g.Go(func() error {
			d.load(ctx, m, func(ctx context.Context) (charts.Aggregate, error) {
				return d.source.Aggregate(ctx, m.Spec)
			})
			return nil
		})
	}
	g.Go(func() error {
		d.refreshScores(ctx)
		return nil
	})
	g.Wait()
	return ctx.Err()
}

func (d *Dashboard) refreshScores(ctx context.Context) {
	years, err := d.source.Years(ctx)
	if err != nil {
		d.logger.Warnw("year list not loaded", logger.FieldError, err)
		d.load(ctx, d.scores, func(context.Context) (charts.Aggregate, error) {
			return charts.Aggregate{}, err
		})
		return
	}
	d.mu.Lock()
	d.years = years
	d.year = pickYear(years, d.year, d.initial)
	year := d.year
	d.mu.Unlock()

	if year == 0 {
		d.logger.Warnw("no year to show", logger.FieldCount, len(years))
	}
	d.drawScores(ctx, year)
}

// SelectYear redraws the score chart with the titles of year. A null year
// clears the chart.
func (d *Dashboard) SelectYear(ctx context.Context, year int) error {
	if year < 0 {
		return errors.Newf("%d: invalid year", year)
	}
	d.mu.Lock()
	d.year = year
	d.mu.Unlock()

	d.logger.Debugw("year selected", logger.FieldYear, year)
	d.drawScores(ctx, year)
	return ctx.Err()
}

func (d *Dashboard) drawScores(ctx context.Context, year int) {
	if year == 0 {
		t := d.scores.Begin()
		d.scores.Commit(t, nil)
		return
	}
	d.load(ctx, d.scores, func(ctx context.Context) (charts.Aggregate, error) {
		return d.source.Scores(ctx, year)
	})
}

func (d *Dashboard) load(ctx context.Context, m *Mount, get func(context.Context) (charts.Aggregate, error)) {
	var (
		ticket   = m.Begin()
		raw, err = get(ctx)
	)
	if err != nil {
		if m.Fail(ticket, err) {
			d.logger.Warnw("chart not drawn: fetch failed", logger.FieldChart, m.Id, logger.FieldError, err)
		} else {
			d.logger.Debugw("stale render discarded", logger.FieldChart, m.Id, logger.FieldGeneration, ticket)
		}
		return
	}
	list := charts.Shape(raw, m.Field)
	ok, err := m.Commit(ticket, list)
	if !ok {
		d.logger.Debugw("stale render discarded", logger.FieldChart, m.Id, logger.FieldGeneration, ticket)
		return
	}
	if err == nil {
		d.logger.Infow("chart loaded", logger.FieldChart, m.Id, logger.FieldCount, len(list))
	}
}

func (d *Dashboard) Years() []int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.years)
}

func (d *Dashboard) Year() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.year
}

// Select highlights category in the genres chart. Selecting the same
// category again keeps it highlighted.
func (d *Dashboard) Select(category string) error {
	m, _ := d.Mount(ChartGenres)
	err := m.Apply(func() {
		d.selection.Select(category)
	})
	d.mu.Lock()
	d.selected = category
	d.mu.Unlock()
	return ignoreEmpty(err)
}

func (d *Dashboard) ClearSelection() error {
	m, _ := d.Mount(ChartGenres)
	err := m.Apply(d.selection.Clear)
	d.mu.Lock()
	d.selected = ""
	d.mu.Unlock()
	return ignoreEmpty(err)
}

func (d *Dashboard) Selected() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.selected
}

// Close detaches every mount. Charts are closed and pending loads discarded.
func (d *Dashboard) Close() {
	for _, m := range d.Mounts() {
		m.Detach()
	}
}

func pickYear(years []int, current, initial int) int {
	if len(years) == 0 {
		return 0
	}
	if current > 0 && slices.Contains(years, current) {
		return current
	}
	if initial > 0 && slices.Contains(years, initial) {
		return initial
	}
	return slices.Max(years)
}

func ignoreEmpty(err error) error {
	if errors.Is(err, charts.ErrEmptyDataset) {
		return nil
	}
	return err
}
