package tui

import (
	"math/rand"
	"os"
	"time"

	list "github.com/charmbracelet/bubbles/list"
	progress "github.com/charmbracelet/bubbles/progress"
	table "github.com/charmbracelet/bubbles/table"
	textarea "github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"parcoords/internal/canvas"
	"parcoords/internal/config"
	"parcoords/internal/debounce"
	"parcoords/internal/frame"
	"parcoords/internal/logging"
	"parcoords/internal/observe"
	"parcoords/internal/params"
	"parcoords/internal/parallel"
	"parcoords/internal/state"
)

const (
	sidebarWidth = 28
	headerHeight = 1
	footerHeight = 2
	// labelRows holds the axis names, staggered over three rows.
	labelRows = 3
)

// session is the mutable engine state shared by every copy of Model.
type session struct {
	cfg     config.Config
	store   *state.Store
	data    *observe.Datasets
	reg     *params.Registry
	colorby *observe.Property[string]
	plot    *parallel.Plot
	fg, hl  *canvas.Braille
	menu    *contextMenu
	frame   *frame.Frame

	brushDeb  *debounce.Debouncer
	resizeDeb *debounce.Debouncer

	// selDirty is set when the selection changed after the table was built.
	selDirty bool
}

// brushing is a brush gesture in progress on one axis.
type brushing struct {
	active bool
	dim    string
	startY float64
	moved  bool
}

type Model struct {
	s *session

	width  int
	height int

	showSidebar bool
	helpVisible bool

	status string

	// File explorer
	cwd     string
	l       list.Model
	items   []list.Item
	selPath string

	// paste mode
	pasteMode bool
	ta        textarea.Model

	// selection table
	showAttrs bool
	tbl       table.Model

	bar progress.Model

	// plot rows in cells, changed with [ and ]
	plotRows int
	// generation the pending render step belongs to
	renderGen uint64

	brush     brushing
	dragLastX int
	hoverCell [2]int
}

// New builds a model around an empty dataset. store may be nil, in which
// case nothing is persisted.
func New(cfg config.Config, store *state.Store) Model {
	if store == nil {
		store = state.New()
	}
	s := &session{
		cfg:       cfg,
		store:     store,
		data:      observe.NewDatasets(),
		reg:       params.NewRegistry(store),
		colorby:   observe.NewProperty[string]("colorby"),
		fg:        canvas.NewBraille(0, 0),
		hl:        canvas.NewBraille(0, 0),
		menu:      newContextMenu(),
		frame:     &frame.Frame{},
		brushDeb:  debounce.New(cfg.BrushDebounce),
		resizeDeb: debounce.New(cfg.ResizeDebounce),
	}
	s.colorby.Set(store.GetString("colorby", ""))
	s.colorby.OnChange(func(v string) {
		if err := store.Set("colorby", v); err != nil {
			logging.Warnf("tui: saving colorby: %v", err)
		}
	}, s)

	opts := parallel.DefaultOptions()
	opts.EdgeThreshold = cfg.EdgeThreshold
	opts.AxisInset = cfg.AxisInset
	opts.Render = parallel.RenderOptions{
		Budget:    cfg.BatchBudget,
		MinBatch:  cfg.BatchMin,
		MaxBatch:  cfg.BatchMax,
		Initial:   cfg.BatchInitial,
		Overshoot: cfg.Overshoot,
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	opts.Rand = rand.New(rand.NewSource(seed))
	s.plot = parallel.New(s.data, s.reg, s.colorby, s.fg, s.hl, opts)
	s.plot.SetContextMenu(s.menu)
	s.menu.AddCallback(axisMenu(s.plot, s.reg, s.colorby), s)
	s.plot.Attach()
	s.data.Selected().OnChange(func([]frame.Row) { s.selDirty = true }, s)

	m := Model{
		s:           s,
		helpVisible: true,
		status:      "parcoords ready",
		plotRows:    cfg.PlotHeight,
	}
	m.cwd, _ = os.Getwd()
	// list setup
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Datasets"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	// textarea setup
	m.ta = textarea.New()
	m.ta.Placeholder = "Paste CSV rows with a header line. Enter appends them; Esc cancels."
	m.ta.CharLimit = 0
	m.ta.SetWidth(50)
	m.ta.SetHeight(6)
	m.tbl = table.New(table.WithFocused(true))
	m.tbl.SetHeight(8)
	m.bar = progress.New(progress.WithSolidFill(string(accentFg)), progress.WithoutPercentage())
	m.refreshDir()
	return m
}

// NewWithPath preloads a dataset at launch.
func NewWithPath(cfg config.Config, store *state.Store, path string) Model {
	m := New(cfg, store)
	m.loadPath(path)
	return m
}

func (m Model) Init() tea.Cmd { return nil }

// Close drops the engine subscriptions.
func (m Model) Close() {
	m.s.menu.RemoveCallbacks(m.s)
	m.s.plot.Detach()
	m.s.data.Off(m.s)
	m.s.colorby.Off(m.s)
}

// ensureColorBy picks a usable color-by dimension when the current one is
// not part of the dataset.
func (m *Model) ensureColorBy() {
	if _, ok := m.s.reg.Get(m.s.colorby.Get()); ok {
		return
	}
	if d := m.s.reg.DefaultColorBy(); d != "" {
		m.s.colorby.Set(d)
	}
}
