package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	list "github.com/charmbracelet/bubbles/list"

	"parcoords/internal/frame"
	"parcoords/internal/logging"
	"parcoords/internal/observe"
)

type fileItem struct {
	title, desc string
	path        string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return f.desc }
func (f fileItem) FilterValue() string { return f.title }

func (m *Model) refreshDir() {
	entries, err := os.ReadDir(m.cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !frame.Supported(name) {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		items = append(items, fileItem{title: name, desc: ext, path: filepath.Join(m.cwd, name)})
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].(fileItem).Title() < items[j].(fileItem).Title() })
	m.items = items
	m.l.SetItems(items)
	if len(items) == 0 {
		m.status = "no supported files in current directory"
	}
}

// loadPath replaces the dataset with the rows of p. Brushes are cleared and
// the axes rebuilt by the plot's subscription to all.
func (m *Model) loadPath(p string) {
	f, err := frame.Load(p)
	if err != nil {
		m.status = "load error: " + err.Error()
		logging.Warnf("tui: %v", err)
		return
	}
	m.selPath = p
	m.setFrame(f)
	m.status = "loaded: " + filepath.Base(p) +
		fmt.Sprintf("  rows=%d columns=%d", len(f.Rows), len(f.Columns))
	logging.Infof("tui: loaded %s (%d rows)", p, len(f.Rows))
}

func (m *Model) setFrame(f *frame.Frame) {
	s := m.s
	s.frame = f
	s.brushDeb.Cancel()
	s.menu.Hide()
	s.reg.SetColumns(f.Columns)
	s.data.Get(observe.ExperimentAll).Set(f.Rows)
	s.data.All().Set(f.Rows)
	m.ensureColorBy()
	// If attributes are currently shown, refresh them for the new dataset
	if m.showAttrs {
		m.refreshAttrs()
	}
}
