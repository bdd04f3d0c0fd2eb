package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"linkloft-admin/internal/config"
	"linkloft-admin/internal/core/bulk"
	"linkloft-admin/internal/lh"
)

// InitialModel builds the console model from the loaded config.
func InitialModel(cfg config.Config, hasRC bool) Model {
	m := Model{
		state:     stateWelcome,
		cfg:       cfg,
		hasRC:     hasRC,
		cache:     lh.NewCollectionCache(),
		selection: bulk.NewSelection(),
		titleByID: make(map[string]string),
	}

	if cfg.Token == "" || cfg.ServerURL == "" {
		m.statusMsg = "No ~/.linkloftrc or incomplete settings – press Enter to configure."
	} else {
		m.statusMsg = "Settings found – Enter to connect, q to quit."
	}

	ti := textinput.New()
	ti.Placeholder = "Linkloft API token"
	ti.Focus()
	ti.EchoMode = textinput.EchoPassword
	ti.CharLimit = 200
	m.ti = ti

	si := textinput.New()
	si.Placeholder = "Fuzzy search…"
	si.CharLimit = 200
	si.Width = 40
	m.search.searchInput = si
	m.filterCfg = FilterConfig{
		MinCoverage: 0.6,
		MaxSpread:   40,
		MaxResults:  200,
	}

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = subtleStyle
	m.spinner = sp

	m.viewport = viewport.New(80, 24) // resized on the first WindowSizeMsg

	return m
}

func (m Model) Init() tea.Cmd { return nil }
