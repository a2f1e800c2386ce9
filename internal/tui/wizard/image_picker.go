package wizard

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
)

// imageExts are the banner formats the backend accepts.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// IsImagePath reports whether a filename has an accepted image
// extension.
func IsImagePath(path string) bool {
	return imageExts[strings.ToLower(filepath.Ext(path))]
}

type pickerEntry struct {
	name  string
	path  string
	isDir bool
}

// ImagePicker is a directory browser filtered to image files. Enter on
// a directory descends; enter on a file emits ImageSelectedMsg.
type ImagePicker struct {
	currentPath string
	entries     []pickerEntry
	selected    int
	offset      int
	width       int
	height      int
}

// ImageSelectedMsg is sent when a file is chosen.
type ImageSelectedMsg struct {
	Path string
}

// NewImagePicker builds a picker rooted at the working directory.
func NewImagePicker() *ImagePicker {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}
	p := &ImagePicker{currentPath: cwd, width: 60, height: 10}
	p.loadDirectory(cwd)
	return p
}

func (p *ImagePicker) loadDirectory(path string) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return
	}
	p.entries = nil

	abs, err := filepath.Abs(path)
	if err == nil && abs != filepath.Dir(abs) {
		p.entries = append(p.entries, pickerEntry{name: "..", path: filepath.Dir(abs), isDir: true})
	}

	var dirs, files []pickerEntry
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".") {
			continue
		}
		full := filepath.Join(path, e.Name())
		if e.IsDir() {
			dirs = append(dirs, pickerEntry{name: e.Name(), path: full, isDir: true})
		} else if IsImagePath(e.Name()) {
			files = append(files, pickerEntry{name: e.Name(), path: full, isDir: false})
		}
	}
	sort.Slice(dirs, func(i, j int) bool { return strings.ToLower(dirs[i].name) < strings.ToLower(dirs[j].name) })
	sort.Slice(files, func(i, j int) bool { return strings.ToLower(files[i].name) < strings.ToLower(files[j].name) })

	p.entries = append(p.entries, dirs...)
	p.entries = append(p.entries, files...)
	p.currentPath = path
	p.selected = 0
	p.offset = 0
}

// SetSize updates the window dimensions.
func (p *ImagePicker) SetSize(width, height int) {
	p.width = width
	if height < 3 {
		height = 3
	}
	p.height = height
}

// Update handles navigation and selection keys.
func (p *ImagePicker) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return nil
	}
	switch key.String() {
	case "up", "k":
		if p.selected > 0 {
			p.selected--
		}
	case "down", "j":
		if p.selected < len(p.entries)-1 {
			p.selected++
		}
	case "enter":
		if p.selected < 0 || p.selected >= len(p.entries) {
			return nil
		}
		entry := p.entries[p.selected]
		if entry.isDir {
			p.loadDirectory(entry.path)
			return nil
		}
		return func() tea.Msg {
			return ImageSelectedMsg{Path: entry.path}
		}
	case "backspace":
		parent := filepath.Dir(p.currentPath)
		if parent != p.currentPath {
			p.loadDirectory(parent)
		}
	}
	p.scrollIntoView()
	return nil
}

func (p *ImagePicker) scrollIntoView() {
	visible := p.height - 3
	if visible < 1 {
		visible = 1
	}
	if p.selected < p.offset {
		p.offset = p.selected
	}
	if p.selected >= p.offset+visible {
		p.offset = p.selected - visible + 1
	}
}

// View renders the current directory listing.
func (p *ImagePicker) View() string {
	var b strings.Builder
	b.WriteString(MutedStyle().Render(p.currentPath))
	b.WriteString("\n\n")

	hasImages := false
	for _, e := range p.entries {
		if !e.isDir {
			hasImages = true
			break
		}
	}

	if len(p.entries) == 0 {
		b.WriteString(MutedStyle().Italic(true).Render("Directory is empty"))
		b.WriteString("\n")
	} else {
		if !hasImages {
			b.WriteString(MutedStyle().Italic(true).Render("No image files here (jpg, png, webp)"))
			b.WriteString("\n\n")
		}
		visible := p.height - 3
		if visible < 1 {
			visible = 1
		}
		end := p.offset + visible
		if end > len(p.entries) {
			end = len(p.entries)
		}
		t := LabelStyle()
		for i := p.offset; i < end; i++ {
			entry := p.entries[i]
			icon := "🖼"
			if entry.isDir {
				icon = "📁"
			}
			line := truncate(icon+" "+entry.name, p.width-2)
			if i == p.selected {
				b.WriteString(t.Render("▸ " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(RenderHintBar(
		"↑↓/j/k", "navigate",
		"enter", "select",
		"backspace", "up",
	))
	return b.String()
}
