// Package app contains the root application model: a document library list,
// the rich-text editor, and an optional markdown preview, wired to the
// document service and the library file watcher.
package app

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/inkwell/internal/config"
	"github.com/zjrosen/inkwell/internal/document"
	"github.com/zjrosen/inkwell/internal/keys"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/pubsub"
	"github.com/zjrosen/inkwell/internal/richtext"
	"github.com/zjrosen/inkwell/internal/ui/editor"
	"github.com/zjrosen/inkwell/internal/ui/preview"
	"github.com/zjrosen/inkwell/internal/ui/styles"
	"github.com/zjrosen/inkwell/internal/watcher"
)

// focusArea identifies which pane receives key input.
type focusArea int

const (
	focusLibrary focusArea = iota
	focusEditor
)

// promptKind identifies what the title prompt is collecting.
type promptKind int

const (
	promptNone promptKind = iota
	promptNewTitle
	promptRenameTitle
)

const libraryWidth = 30

// docItem adapts a document to the bubbles list.
type docItem struct {
	doc *document.Document
}

func (i docItem) Title() string       { return i.doc.Title() }
func (i docItem) Description() string { return i.doc.UpdatedAt().Format("2006-01-02 15:04") }
func (i docItem) FilterValue() string { return i.doc.Title() }

// Model is the root application state.
type Model struct {
	cfg  config.Config
	svc  *document.Service
	keys keys.KeyMap

	library list.Model
	store   *richtext.Store
	editor  editor.Model
	preview preview.Model
	prompt  textinput.Model

	current     *document.Document
	savedMarkup string

	focus       focusArea
	promptMode  promptKind
	showPreview bool
	status      string

	width  int
	height int

	// File watcher for auto-refresh
	watcherHandle   *watcher.Watcher
	watcherCancel   context.CancelFunc
	watcherListener *pubsub.ContinuousListener[watcher.Change]
}

// Options carries the dependencies of the application model.
type Options struct {
	Config  config.Config
	Service *document.Service
	Table   richtext.Table

	// DBPath is the library database file; empty disables auto-refresh.
	DBPath string
}

// New creates the application model. The pattern table and the theme's
// variant overrides must agree; a theme naming an unknown variant is
// rejected here rather than at paint time.
func New(opts Options) (Model, error) {
	styles.ApplyThemeMode(opts.Config.Theme.Mode)
	variants, err := styles.VariantStyles(opts.Config.Theme.Variants)
	if err != nil {
		return Model{}, fmt.Errorf("building variant styles: %w", err)
	}

	store := richtext.NewStore(opts.Table)
	ed := editor.New(store, variants)

	delegate := list.NewDefaultDelegate()
	library := list.New(nil, delegate, 0, 0)
	library.Title = "Library"
	library.SetShowHelp(false)
	library.DisableQuitKeybindings()

	prompt := textinput.New()
	prompt.CharLimit = 120

	// The watcher is best-effort: the app works without auto-refresh.
	var (
		watcherHandle   *watcher.Watcher
		watcherCancel   context.CancelFunc
		watcherListener *pubsub.ContinuousListener[watcher.Change]
	)
	if opts.Config.AutoRefresh && opts.DBPath != "" {
		if w, err := watcher.New(watcher.DefaultConfig(opts.DBPath)); err == nil {
			ctx, cancel := context.WithCancel(context.Background())
			listener := pubsub.NewContinuousListener(ctx, w.Broker())
			if err := w.Start(); err == nil {
				watcherHandle = w
				watcherCancel = cancel
				watcherListener = listener
			} else {
				cancel()
				_ = w.Stop()
				log.Warn(log.CatWatcher, "Auto-refresh disabled", "error", err)
			}
		}
	}

	return Model{
		cfg:             opts.Config,
		svc:             opts.Service,
		keys:            keys.DefaultKeyMap(),
		library:         library,
		store:           store,
		editor:          ed,
		preview:         preview.New(opts.Config.UI.PreviewStyle),
		prompt:          prompt,
		showPreview:     opts.Config.UI.ShowPreview,
		watcherHandle:   watcherHandle,
		watcherCancel:   watcherCancel,
		watcherListener: watcherListener,
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.loadDocuments(), textinput.Blink}
	if m.watcherListener != nil {
		cmds = append(cmds, m.watcherListener.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case documentsLoadedMsg:
		if msg.err != nil {
			m.status = "failed to load library"
			log.ErrorErr(log.CatUI, "Loading document list", msg.err)
			return m, nil
		}
		items := make([]list.Item, len(msg.docs))
		for i, doc := range msg.docs {
			items[i] = docItem{doc: doc}
		}
		return m, m.library.SetItems(items)

	case documentOpenedMsg:
		if msg.err != nil {
			m.status = "failed to open document"
			log.ErrorErr(log.CatUI, "Opening document", msg.err)
			return m, nil
		}
		m.setDocument(msg.doc, msg.runs)
		return m, nil

	case documentCreatedMsg:
		if msg.err != nil {
			m.status = "failed to create document"
			return m, nil
		}
		m.status = "created " + msg.doc.Title()
		return m, tea.Batch(m.loadDocuments(), m.openDocument(msg.doc.GUID()))

	case documentSavedMsg:
		if msg.err != nil {
			m.status = "save failed"
			log.ErrorErr(log.CatUI, "Saving document", msg.err)
			return m, nil
		}
		m.savedMarkup = msg.markup
		m.status = "saved"
		return m, m.loadDocuments()

	case documentRenamedMsg:
		if msg.err != nil {
			m.status = "rename failed"
			return m, nil
		}
		m.status = "renamed to " + msg.doc.Title()
		return m, m.loadDocuments()

	case documentDeletedMsg:
		if msg.err != nil {
			m.status = "delete failed"
			return m, nil
		}
		if m.current != nil && m.current.GUID() == msg.guid {
			m.clearDocument()
		}
		m.status = "deleted"
		return m, m.loadDocuments()

	case pubsub.Event[watcher.Change]:
		// Another process wrote the library; drop cached parses and
		// reload, but never clobber unsaved edits.
		m.svc.InvalidateAll(context.Background())
		cmds := []tea.Cmd{m.loadDocuments(), m.watcherListener.Listen()}
		if m.current != nil && !m.dirty() {
			cmds = append(cmds, m.openDocument(m.current.GUID()))
		}
		log.Debug(log.CatUI, "Library changed externally, refreshing")
		return m, tea.Batch(cmds...)
	}

	return m.routeToFocused(msg)
}

// handleKey routes one key press: prompt first, then global chords, then the
// focused pane.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.promptMode != promptNone {
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Save):
		if m.current == nil {
			return m, nil
		}
		return m, m.saveDocument(m.current, m.store.RichTextString())

	case key.Matches(msg, m.keys.Refresh):
		m.svc.InvalidateAll(context.Background())
		return m, m.loadDocuments()

	case key.Matches(msg, m.keys.TogglePreview):
		m.showPreview = !m.showPreview
		m.layout()
		m.refreshPreview()
		return m, nil

	case key.Matches(msg, m.keys.FocusNext):
		m.setFocus(nextFocus(m.focus))
		return m, nil

	case key.Matches(msg, m.keys.Escape) && m.focus == focusEditor:
		m.setFocus(focusLibrary)
		return m, nil
	}

	if m.focus == focusLibrary && m.library.FilterState() != list.Filtering {
		switch {
		case key.Matches(msg, m.keys.Open):
			if item, ok := m.library.SelectedItem().(docItem); ok {
				return m, m.openDocument(item.doc.GUID())
			}
			return m, nil

		case key.Matches(msg, m.keys.New):
			m.openPrompt(promptNewTitle, "")
			return m, nil

		case key.Matches(msg, m.keys.Rename):
			if item, ok := m.library.SelectedItem().(docItem); ok {
				m.openPrompt(promptRenameTitle, item.doc.Title())
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if item, ok := m.library.SelectedItem().(docItem); ok {
				return m, m.deleteDocument(item.doc.GUID())
			}
			return m, nil
		}
	}

	return m.routeToFocused(msg)
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.closePrompt()
		return m, nil

	case tea.KeyEnter:
		title := m.prompt.Value()
		mode := m.promptMode
		m.closePrompt()
		if title == "" {
			return m, nil
		}
		switch mode {
		case promptNewTitle:
			return m, m.createDocument(title)
		case promptRenameTitle:
			if item, ok := m.library.SelectedItem().(docItem); ok {
				return m, m.renameDocument(item.doc, title)
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// routeToFocused delegates a message to the focused pane.
func (m Model) routeToFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusLibrary:
		m.library, cmd = m.library.Update(msg)
	case focusEditor:
		m.editor, cmd = m.editor.Update(msg)
		m.refreshPreview()
	}
	return m, cmd
}

// setDocument loads a document into the editor.
func (m *Model) setDocument(doc *document.Document, runs richtext.Runs) {
	m.current = doc
	m.store.SetRuns(runs)
	m.editor.Reset()
	m.savedMarkup = m.store.RichTextString()
	m.refreshPreview()
	m.setFocus(focusEditor)
	m.status = ""
}

func (m *Model) clearDocument() {
	m.current = nil
	m.store.SetValue("")
	m.editor.Reset()
	m.savedMarkup = m.store.RichTextString()
	m.refreshPreview()
	m.setFocus(focusLibrary)
}

func (m *Model) setFocus(f focusArea) {
	m.focus = f
	if f == focusEditor {
		m.editor.Focus()
	} else {
		m.editor.Blur()
	}
}

func nextFocus(f focusArea) focusArea {
	if f == focusLibrary {
		return focusEditor
	}
	return focusLibrary
}

func (m *Model) openPrompt(kind promptKind, initial string) {
	m.promptMode = kind
	m.prompt.SetValue(initial)
	m.prompt.CursorEnd()
	if kind == promptNewTitle {
		m.prompt.Placeholder = "new document title"
	} else {
		m.prompt.Placeholder = "new title"
	}
	m.prompt.Focus()
}

func (m *Model) closePrompt() {
	m.promptMode = promptNone
	m.prompt.Blur()
	m.prompt.SetValue("")
}

// dirty reports whether the editor holds unsaved changes.
func (m Model) dirty() bool {
	return m.current != nil && m.store.RichTextString() != m.savedMarkup
}

func (m *Model) refreshPreview() {
	if m.showPreview {
		m.preview.SetRuns(m.store.Runs(), m.store.Table())
	}
}

// layout distributes the window between the panes.
func (m *Model) layout() {
	frameW := styles.PaneStyle.GetHorizontalFrameSize()
	frameH := styles.PaneStyle.GetVerticalFrameSize()

	statusH := 0
	if m.cfg.UI.ShowStatusBar {
		statusH = 1
	}
	paneH := max(1, m.height-statusH-frameH)

	editorW := m.width - libraryWidth
	if m.showPreview {
		editorW /= 2
	}
	editorW = max(10, editorW)
	previewW := max(10, m.width-libraryWidth-editorW)

	m.library.SetSize(libraryWidth-frameW, paneH)
	m.editor.SetSize(editorW-frameW, paneH)
	if m.showPreview {
		m.preview.SetSize(previewW-frameW, paneH)
	}
}

// View implements tea.Model.
func (m Model) View() string {
	libraryPane := m.paneStyle(focusLibrary).Width(libraryWidth - 2).Render(m.library.View())
	editorPane := m.paneStyle(focusEditor).Render(m.editor.View())

	panes := []string{libraryPane, editorPane}
	if m.showPreview {
		panes = append(panes, styles.PaneStyle.Render(m.preview.View()))
	}
	view := lipgloss.JoinHorizontal(lipgloss.Top, panes...)

	if m.cfg.UI.ShowStatusBar {
		view += "\n" + m.statusBar()
	}
	return view
}

func (m Model) paneStyle(f focusArea) lipgloss.Style {
	if m.focus == f {
		return styles.PaneFocusedStyle
	}
	return styles.PaneStyle
}

// statusBar renders the bottom line: prompt when active, otherwise the
// document title, dirty marker, style badges, and the transient status.
func (m Model) statusBar() string {
	if m.promptMode != promptNone {
		return styles.StatusBarStyle.Render(m.prompt.View())
	}

	title := "no document"
	if m.current != nil {
		title = m.current.Title()
	}
	left := styles.TitleStyle.Render(title)
	if m.dirty() {
		left += styles.DirtyMarkerStyle.Render("*")
	}

	parts := []string{left}
	if badges := m.editor.StatusLine(); badges != "" {
		parts = append(parts, badges)
	}
	if m.status != "" {
		parts = append(parts, styles.StatusBarStyle.Render(m.status))
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, parts...)
}

// Close releases resources held by the application.
func (m *Model) Close() error {
	if m.watcherCancel != nil {
		m.watcherCancel()
	}
	if m.watcherHandle != nil {
		if err := m.watcherHandle.Stop(); err != nil {
			return err
		}
	}
	m.store.Close()
	return nil
}
