package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/inkwell/internal/document"
	"github.com/zjrosen/inkwell/internal/richtext"
)

// serviceTimeout bounds every document service call made from a tea.Cmd so a
// wedged database cannot freeze the UI loop forever.
const serviceTimeout = 5 * time.Second

type documentsLoadedMsg struct {
	docs []*document.Document
	err  error
}

type documentOpenedMsg struct {
	doc  *document.Document
	runs richtext.Runs
	err  error
}

type documentCreatedMsg struct {
	doc *document.Document
	err error
}

type documentSavedMsg struct {
	doc    *document.Document
	markup string
	err    error
}

type documentDeletedMsg struct {
	guid string
	err  error
}

type documentRenamedMsg struct {
	doc *document.Document
	err error
}

func serviceCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), serviceTimeout)
}

func (m Model) loadDocuments() tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := serviceCtx()
		defer cancel()
		docs, err := svc.List(ctx, document.ListFilter{})
		return documentsLoadedMsg{docs: docs, err: err}
	}
}

func (m Model) openDocument(guid string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := serviceCtx()
		defer cancel()
		doc, err := svc.Get(ctx, guid)
		if err != nil {
			return documentOpenedMsg{err: err}
		}
		runs, err := svc.Runs(ctx, guid)
		return documentOpenedMsg{doc: doc, runs: runs, err: err}
	}
}

func (m Model) createDocument(title string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := serviceCtx()
		defer cancel()
		doc, err := svc.Create(ctx, title, "")
		return documentCreatedMsg{doc: doc, err: err}
	}
}

func (m Model) saveDocument(doc *document.Document, markup string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := serviceCtx()
		defer cancel()
		doc.SetMarkup(markup)
		err := svc.Save(ctx, doc)
		return documentSavedMsg{doc: doc, markup: markup, err: err}
	}
}

func (m Model) renameDocument(doc *document.Document, title string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := serviceCtx()
		defer cancel()
		doc.Rename(title)
		err := svc.Save(ctx, doc)
		return documentRenamedMsg{doc: doc, err: err}
	}
}

func (m Model) deleteDocument(guid string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		ctx, cancel := serviceCtx()
		defer cancel()
		err := svc.Delete(ctx, guid)
		return documentDeletedMsg{guid: guid, err: err}
	}
}
