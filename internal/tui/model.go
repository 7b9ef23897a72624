// Package tui is the interactive numpad-first tracker screen: tabs for
// today's work, the trash, and goal progress, with huh forms for the
// first-run setup and data entry.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/stitchlog/internal/constants"
	"github.com/julianstephens/stitchlog/internal/models"
	"github.com/julianstephens/stitchlog/internal/storage"
	"github.com/julianstephens/stitchlog/internal/tracker"
)

type SessionState int

const (
	StateToday SessionState = iota
	StateTrash
	StateGoal
	StateSetup
	StateNewSession
	StateAddEntry
	StateConfirmArchive
	StateConfirmDelete
)

// tabCount is how many of the states are reachable by tab cycling.
const tabCount = 3

type SetupFormModel struct {
	Name     string
	Language models.Language
}

type SessionFormModel struct {
	ClothType string
	Rate      string
}

type EntryFormModel struct {
	Count    string
	Category string
}

type Model struct {
	mgr   *tracker.Manager
	store *storage.Store

	state    SessionState
	keys     KeyMap
	help     help.Model
	width    int
	height   int
	quitting bool
	status   string

	sessionCursor int
	trashCursor   int

	form        *huh.Form
	setupForm   *SetupFormModel
	sessionForm *SessionFormModel
	entryForm   *EntryFormModel
	confirmText string

	// target of the pending archive/delete/entry action
	targetRecordID  string
	targetSessionID string
}

func NewModel(mgr *tracker.Manager, store *storage.Store) (Model, error) {
	m := Model{
		mgr:   mgr,
		store: store,
		state: StateToday,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}

	if err := mgr.EnsureActiveRecord(); err != nil {
		return Model{}, err
	}

	done, err := store.SetupComplete()
	if err != nil {
		return Model{}, err
	}
	if !done {
		m.startSetup()
	}
	return m, nil
}

func (m Model) Init() tea.Cmd {
	if m.form != nil {
		return m.form.Init()
	}
	return nil
}

// Run drives the program until the user quits.
func Run(mgr *tracker.Manager, store *storage.Store) error {
	m, err := NewModel(mgr, store)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

func (m *Model) startSetup() {
	m.setupForm = &SetupFormModel{Language: models.LanguageEnglish}
	if user, ok := m.mgr.ActiveUser(); ok && user.Name != constants.DefaultUserName {
		m.setupForm.Name = user.Name
	}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("What should we call you?").
			Placeholder(constants.DefaultUserName).
			Value(&m.setupForm.Name),
		huh.NewSelect[models.Language]().
			Title("Language").
			Options(
				huh.NewOption("English", models.LanguageEnglish),
				huh.NewOption("Hinglish", models.LanguageHinglish),
				huh.NewOption("हिन्दी", models.LanguageHindi),
			).
			Value(&m.setupForm.Language),
	))
	m.state = StateSetup
}

func (m *Model) startNewSession() {
	m.sessionForm = &SessionFormModel{}
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Cloth type").
			Validate(requireText).
			Value(&m.sessionForm.ClothType),
		huh.NewInput().
			Title("Rate per piece (₹, optional)").
			Validate(optionalNumber).
			Value(&m.sessionForm.Rate),
	))
	m.state = StateNewSession
}

func (m *Model) startAddEntry(session models.ClothSession) {
	m.targetSessionID = session.ID
	m.entryForm = &EntryFormModel{Category: constants.DefaultCategories[0]}

	categories := append(append([]string{}, constants.DefaultCategories...), session.CustomCategories...)
	options := make([]huh.Option[string], 0, len(categories))
	for _, c := range categories {
		options = append(options, huh.NewOption(c, c))
	}

	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("How many pieces?").
			Validate(requireCount).
			Value(&m.entryForm.Count),
		huh.NewSelect[string]().
			Title("Category").
			Options(options...).
			Value(&m.entryForm.Category),
	))
	m.state = StateAddEntry
}

func (m *Model) startConfirmArchive(recordID string, session models.ClothSession) {
	m.targetRecordID = recordID
	m.targetSessionID = session.ID
	m.confirmText = ""
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Move %q to the trash? Type %s to confirm.", session.ClothType, constants.ArchiveConfirmLiteral)).
			Value(&m.confirmText),
	))
	m.state = StateConfirmArchive
}

func requireText(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("required")
	}
	return nil
}

func optionalNumber(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if _, err := strconv.ParseFloat(s, 64); err != nil {
		return fmt.Errorf("must be a number")
	}
	return nil
}

func requireCount(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	if len(strings.TrimSpace(s)) > constants.MaxEntryDigits {
		return fmt.Errorf("too many digits")
	}
	return nil
}
