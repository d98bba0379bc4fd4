package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// browseExts lists the fields that can be filled from the file browser and
// the extensions each one shows. A nil list shows every file.
var browseExts = map[int][]string{
	fieldCarrier: {".png", ".bmp", ".jpg", ".jpeg", ".gif"},
	fieldSecret:  nil,
	fieldStego:   {".png", ".bmp"},
}

type fileItem struct {
	path  string
	name  string
	isDir bool
}

type browser struct {
	field  int
	path   string
	files  []fileItem
	cursor int
}

// newBrowser opens in the directory of the field's current value, falling
// back to the working directory.
func newBrowser(field int, current string) (*browser, error) {
	dir := "."
	if current != "" {
		if info, err := os.Stat(filepath.Dir(current)); err == nil && info.IsDir() {
			dir = filepath.Dir(current)
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	b := &browser{field: field, path: abs}
	if err := b.loadFiles(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *browser) loadFiles() error {
	entries, err := os.ReadDir(b.path)
	if err != nil {
		return err
	}

	// Parent directory
	b.files = []fileItem{{name: "..", isDir: true, path: filepath.Dir(b.path)}}

	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && !b.accepts(name) {
			continue
		}
		b.files = append(b.files, fileItem{
			name:  name,
			isDir: e.IsDir(),
			path:  filepath.Join(b.path, name),
		})
	}
	b.cursor = 0
	return nil
}

func (b *browser) accepts(name string) bool {
	exts := browseExts[b.field]
	if exts == nil {
		return true
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range exts {
		if ext == e {
			return true
		}
	}
	return false
}

// updateBrowser handles keys while the browser is open. Picking a file
// fills the field the browser was opened from and closes it.
func (m model) updateBrowser(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.browser
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		m.browser = nil

	case "up", "k":
		if b.cursor > 0 {
			b.cursor--
		}

	case "down", "j":
		if b.cursor < len(b.files)-1 {
			b.cursor++
		}

	case "backspace":
		b.path = filepath.Dir(b.path)
		if err := b.loadFiles(); err != nil {
			m.status = "Error: " + err.Error()
		}

	case "enter":
		selected := b.files[b.cursor]
		if selected.isDir {
			b.path = selected.path
			if err := b.loadFiles(); err != nil {
				m.status = "Error: " + err.Error()
			}
			return m, nil
		}
		m.inputs[b.field].SetValue(selected.path)
		m.browser = nil
		m.status = "Selected " + selected.name
	}

	return m, nil
}

func (b *browser) View() string {
	var s strings.Builder
	fmt.Fprintf(&s, "%s\n", titleStyle.Render("Select "+strings.ToLower(fieldLabels[b.field])))
	fmt.Fprintf(&s, "Directory: %s\n\n", b.path)

	for i, file := range b.files {
		cursor := " "
		if b.cursor == i {
			cursor = focusedStyle.Render(">")
		}
		name := file.name
		if file.isDir {
			name += "/"
		}
		fmt.Fprintf(&s, "%s %s\n", cursor, name)
	}

	s.WriteString("\n" + blurredStyle.Render("↑/↓: move | enter: open/select | backspace: up | esc: back"))
	return s.String()
}
