package folderlist

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskmaster-tui/internal/keys"
	"taskmaster-tui/internal/model"
	"taskmaster-tui/internal/theme"
)

// SelectedFolderMsg is sent when the user opens a folder.
type SelectedFolderMsg struct {
	Folder model.Folder
}

// Model is the folder grid view.
type Model struct {
	list   list.Model
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates a new folder list model.
func New(k *keys.KeyMap, width, height int) Model {
	l := list.New([]list.Item{}, ItemDelegate{}, width, height-2)
	l.Title = "Folders"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		list:   l,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetFolders replaces the displayed folders.
func (m *Model) SetFolders(folders []model.Folder) tea.Cmd {
	items := make([]list.Item, len(folders))
	for i, f := range folders {
		items[i] = FolderItem{Folder: f}
	}
	return m.list.SetItems(items)
}

// SelectedFolder returns the folder under the cursor, if any.
func (m Model) SelectedFolder() (model.Folder, bool) {
	item, ok := m.list.SelectedItem().(FolderItem)
	if !ok {
		return model.Folder{}, false
	}
	return item.Folder, true
}

// Update handles messages for the folder list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, m.keys.Select) {
			folder, ok := m.SelectedFolder()
			if !ok {
				return m, nil
			}
			return m, func() tea.Msg {
				return SelectedFolderMsg{Folder: folder}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the folder list.
func (m Model) View() string {
	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}
	return m.list.View()
}

// renderEmptyState shows guidance text when no folders exist yet.
func (m Model) renderEmptyState() string {
	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray).
		Render("No folders yet.\n\nPress n to create one.")
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}
