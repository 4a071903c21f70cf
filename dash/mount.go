package dash

import (
	"bytes"
	"io"
	"slices"
	"sync"

	charts "github.com/midbel/titledash"
)

// Ticket identifies one render request of a mount. Only the ticket of the
// latest request is allowed to draw.
type Ticket uint64

// Mount binds a chart to its mount point. Draws are serialized and stale
// results are discarded: a render started before a more recent one, or after
// the mount was detached, never reaches the chart.
type Mount struct {
	Spec

	mu       sync.Mutex
	chart    *charts.Chart
	gen      uint64
	detached bool
	records  []charts.Record
	err      error
}

func NewMount(spec Spec, chart *charts.Chart) *Mount {
	return &Mount{
		Spec:  spec,
		chart: chart,
	}
}

// Begin starts a new render request, invalidating every request started
// before.
func (m *Mount) Begin() Ticket {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gen++
	return Ticket(m.gen)
}

// Commit draws the records if the ticket is still the current one. It
// reports whether the records were drawn.
func (m *Mount) Commit(t Ticket, list []charts.Record) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.current(t) {
		return false, nil
	}
	m.records = list
	m.err = m.chart.Draw(list)
	return true, m.err
}

// Fail records the failure of the request if the ticket is still current;
// the chart is left empty.
func (m *Mount) Fail(t Ticket, err error) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.current(t) {
		return false
	}
	m.records = nil
	m.err = err
	m.chart.Reset()
	return true
}

// Apply runs fn while holding the mount and draws again the last records, fn
// being usually a change of the interaction state of the chart.
func (m *Mount) Apply(fn func()) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.detached {
		return charts.ErrClosed
	}
	if fn != nil {
		fn()
	}
	if len(m.records) == 0 {
		return nil
	}
	m.err = m.chart.Draw(m.records)
	return m.err
}

func (m *Mount) current(t Ticket) bool {
	return !m.detached && uint64(t) == m.gen
}

// Detach tears the view down. Pending requests are discarded and the chart is
// closed.
func (m *Mount) Detach() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.detached {
		return
	}
	m.detached = true
	m.gen++
	m.records = nil
	m.chart.Close()
}

func (m *Mount) Detached() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.detached
}

func (m *Mount) State() charts.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chart.State()
}

func (m *Mount) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.err
}

func (m *Mount) Records() []charts.Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.records)
}

func (m *Mount) Render(w io.Writer) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.chart.Render(w)
}

func (m *Mount) String() string {
	var buf bytes.Buffer
	m.Render(&buf)
	return buf.String()
}
