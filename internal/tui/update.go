package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/stitchlog/internal/constants"
	"github.com/julianstephens/stitchlog/internal/models"
	"github.com/julianstephens/stitchlog/internal/tracker"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		m.help.Width = size.Width
	}

	switch m.state {
	case StateSetup, StateNewSession, StateAddEntry, StateConfirmArchive:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		return m.updateKeys(keyMsg)
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" && m.state != StateSetup {
		m.form = nil
		m.state = StateToday
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m.completeForm()
	case huh.StateAborted:
		if m.state == StateSetup {
			m.quitting = true
			return m, tea.Quit
		}
		m.form = nil
		m.state = StateToday
		return m, nil
	}
	return m, cmd
}

func (m Model) completeForm() (tea.Model, tea.Cmd) {
	state := m.state
	m.form = nil
	m.state = StateToday
	m.status = ""

	switch state {
	case StateSetup:
		user, ok := m.mgr.ActiveUser()
		if !ok {
			return m, nil
		}
		name := strings.TrimSpace(m.setupForm.Name)
		lang := m.setupForm.Language
		err := m.mgr.UpdateUser(user.ID, func(u *models.User) {
			if name != "" {
				u.Name = name
			}
			u.Language = lang
		})
		if err == nil {
			err = m.store.SetSetupComplete(true)
		}
		m.reportError(err)

	case StateNewSession:
		rate := 0.0
		if s := strings.TrimSpace(m.sessionForm.Rate); s != "" {
			rate, _ = strconv.ParseFloat(s, 64)
		}
		_, err := m.mgr.StartSession(strings.TrimSpace(m.sessionForm.ClothType), rate)
		m.reportError(err)
		if record, ok := m.mgr.ActiveRecord(); ok {
			m.sessionCursor = len(record.Sessions) - 1
		}

	case StateAddEntry:
		count, _ := strconv.Atoi(strings.TrimSpace(m.entryForm.Count))
		_, err := m.mgr.AddEntry(m.targetSessionID, m.entryForm.Category, count)
		m.reportError(err)

	case StateConfirmArchive:
		if m.confirmText != constants.ArchiveConfirmLiteral {
			m.status = "archive cancelled"
			return m, nil
		}
		err := m.mgr.ArchiveSessions([]models.SessionToDelete{
			{RecordID: m.targetRecordID, SessionID: m.targetSessionID},
		})
		m.reportError(err)
		if m.sessionCursor > 0 {
			m.sessionCursor--
		}
	}
	return m, nil
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y":
		err := m.mgr.PermanentlyDeleteSessions([]models.SessionToDelete{
			{RecordID: m.targetRecordID, SessionID: m.targetSessionID},
		})
		m.reportError(err)
		if m.trashCursor > 0 {
			m.trashCursor--
		}
		m.state = StateTrash
	case "n", "esc", "q":
		m.state = StateTrash
	}
	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.Tab):
		m.state = (m.state + 1) % tabCount
		m.status = ""

	case key.Matches(msg, m.keys.ShiftTab):
		m.state = (m.state - 1 + tabCount) % tabCount
		m.status = ""

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)

	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.New):
		if m.state == StateToday {
			m.startNewSession()
			return m, m.form.Init()
		}

	case key.Matches(msg, m.keys.Add):
		if m.state == StateToday {
			if session, _, ok := m.selectedSession(); ok {
				m.startAddEntry(session)
				return m, m.form.Init()
			}
			m.status = "no session; press n to start one"
		}

	case key.Matches(msg, m.keys.Archive):
		if m.state == StateToday {
			if session, recordID, ok := m.selectedSession(); ok {
				m.startConfirmArchive(recordID, session)
				return m, m.form.Init()
			}
		}

	case key.Matches(msg, m.keys.Restore):
		if m.state == StateTrash {
			if item, ok := m.selectedTrashItem(); ok {
				err := m.mgr.RestoreSessions([]models.SessionToDelete{
					{RecordID: item.RecordID, SessionID: item.Session.ID},
				})
				m.reportError(err)
				if m.trashCursor > 0 {
					m.trashCursor--
				}
			}
		}

	case key.Matches(msg, m.keys.Delete):
		if m.state == StateTrash {
			if item, ok := m.selectedTrashItem(); ok {
				m.targetRecordID = item.RecordID
				m.targetSessionID = item.Session.ID
				m.state = StateConfirmDelete
			}
		}
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	switch m.state {
	case StateToday:
		if record, ok := m.mgr.ActiveRecord(); ok {
			m.sessionCursor = clamp(m.sessionCursor+delta, len(record.Sessions))
		}
	case StateTrash:
		if user, ok := m.mgr.ActiveUser(); ok {
			m.trashCursor = clamp(m.trashCursor+delta, len(tracker.TrashItems(user)))
		}
	}
}

func clamp(i, n int) int {
	if n == 0 {
		return 0
	}
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func (m *Model) selectedSession() (models.ClothSession, string, bool) {
	record, ok := m.mgr.ActiveRecord()
	if !ok || len(record.Sessions) == 0 {
		return models.ClothSession{}, "", false
	}
	i := clamp(m.sessionCursor, len(record.Sessions))
	return record.Sessions[i], record.ID, true
}

func (m *Model) selectedTrashItem() (tracker.TrashItem, bool) {
	user, ok := m.mgr.ActiveUser()
	if !ok {
		return tracker.TrashItem{}, false
	}
	items := tracker.TrashItems(user)
	if len(items) == 0 {
		return tracker.TrashItem{}, false
	}
	return items[clamp(m.trashCursor, len(items))], true
}

func (m *Model) reportError(err error) {
	if err != nil {
		m.status = err.Error()
	}
}
