package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tilebot/internal/autoplay"
	"github.com/vovakirdan/tilebot/internal/config"
	"github.com/vovakirdan/tilebot/internal/core"
	"github.com/vovakirdan/tilebot/internal/games/t2048"
	"github.com/vovakirdan/tilebot/internal/registry"
	"github.com/vovakirdan/tilebot/internal/storage"
)

const controlsLine = "WASD move  Space auto  T strategy  H hint  R restart  Q quit"

// GameOptions describes one interactive game.
type GameOptions struct {
	Context  context.Context // parent context, defaults to Background
	Config   config.Config
	Runtime  core.RuntimeConfig
	Store    *storage.Store // nil disables persistence
	Profile  string
	Strategy registry.Tag
	Logger   *log.Logger
}

// Model is the Bubble Tea model for one game of 2048.
// It is the actuator for the game manager and feeds key presses to the session.
type Model struct {
	session   *autoplay.Session
	actuator  *frameActuator
	screen    *core.Screen
	keyMapper *KeyMapper
	ctx       context.Context
	cancel    context.CancelFunc

	frame    FrameMsg
	ready    bool
	quitting bool
	back     bool // user asked to return to the menu
}

// NewModel builds the manager and session for a game and restores any
// persisted state for the profile.
func NewModel(opts GameOptions) (Model, error) {
	parent := opts.Context
	if parent == nil {
		parent = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	profile := opts.Profile
	if profile == "" {
		profile = storage.DefaultProfile
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = registry.Tag(opts.Config.Autoplay.Strategy)
	}
	interval := opts.Runtime.Interval
	if interval <= 0 {
		interval = opts.Config.Interval()
	}

	seed := opts.Runtime.ResolveSeed()
	actuator := newFrameActuator()

	// Assigned only when a store exists, so the manager sees a nil interface.
	var states t2048.StateStore
	if opts.Store != nil {
		states = opts.Store.Profile(profile)
	}

	mgr := t2048.NewManager(t2048.Options{
		Size:       opts.Config.Game.Size,
		Target:     opts.Config.Game.Target,
		StartTiles: opts.Config.Game.StartTiles,
		Seed:       seed,
	}, states, actuator)

	session, err := autoplay.NewSession(mgr, autoplay.Options{
		Strategy:   strategy,
		Strategies: opts.Config.Strategies,
		Interval:   interval,
		Logger:     logger,
		OnFinish:   RunRecorder(opts.Store, profile, seed, logger),
	})
	if err != nil {
		return Model{}, err
	}
	session.Start()

	ctx, cancel := context.WithCancel(parent)
	return Model{
		session:   session,
		actuator:  actuator,
		screen:    core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		keyMapper: NewKeyMapper(),
		ctx:       ctx,
		cancel:    cancel,
	}, nil
}

// RunRecorder returns a finish callback that stores games the strategy took
// part in. Purely manual games only update the best score.
func RunRecorder(store *storage.Store, profile string, seed int64, logger *log.Logger) func(autoplay.Result) {
	if store == nil {
		return nil
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return func(res autoplay.Result) {
		if res.AutoMoves == 0 {
			return
		}
		id, err := store.SaveRun(storage.Run{
			Profile:  profile,
			Strategy: string(res.Strategy),
			Score:    res.Score,
			MaxTile:  res.MaxTile,
			Moves:    res.Moves,
			Won:      res.Won,
			Duration: res.Duration,
			Seed:     seed,
		})
		if err != nil {
			logger.Warn("cannot save run", "err", err)
			return
		}
		logger.Debug("run saved", "id", id, "strategy", res.Strategy, "score", res.Score)
	}
}

// Init starts listening for board updates.
func (m Model) Init() tea.Cmd {
	return waitForFrame(m.ctx, m.actuator.frames)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case FrameMsg:
		m.frame = msg
		m.ready = true
		return m, waitForFrame(m.ctx, m.actuator.frames)

	case AutoplayStoppedMsg, hintReadyMsg:
		// HUD is read from the session on every View.
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		m.close()
		return m, tea.Quit

	case action == core.ActionBack:
		m.back = true
		m.close()
		return m, tea.Quit

	case action == core.ActionHint:
		// Deep searches take a while; keep the UI responsive.
		session, ctx := m.session, m.ctx
		return m, func() tea.Msg {
			session.Hint(ctx)
			return hintReadyMsg{}
		}

	case action == core.ActionAutoSolve:
		if m.session.ToggleAutoplay(m.ctx) {
			return m, waitForAutoplay(m.ctx, m.session.AutoplayDone())
		}
		return m, nil
	}

	m.session.Handle(m.ctx, action)
	return m, nil
}

func (m Model) close() {
	m.session.Close()
	m.cancel()
}

// saveScreenshot saves the current screen to a file.
func (m Model) saveScreenshot() {
	if !m.ready {
		return
	}
	m.render()

	dir := filepath.Join(os.Getenv("HOME"), ".tilebot", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	filename := fmt.Sprintf("2048_%s.txt", time.Now().Format("20060102_150405"))
	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(filepath.Join(dir, filename), []byte(m.screen.String()), 0o600)
}

func (m Model) render() {
	hud := m.session.HUD()
	hud.Controls = controlsLine
	t2048.Render(m.screen, m.frame.Grid, m.frame.Meta, hud)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	m.render()
	return RenderScreen(m.screen)
}

// Snapshot returns the current game state.
func (m Model) Snapshot() t2048.GameSnapshot {
	return m.session.Snapshot()
}

// WantsMenu reports whether the game was left with Back rather than Quit.
func (m Model) WantsMenu() bool {
	return m.back
}

// Run plays one game in the terminal. It reports whether the player asked
// to go back to the menu.
func Run(opts GameOptions) (backToMenu bool, err error) {
	model, err := NewModel(opts)
	if err != nil {
		return false, err
	}
	defer model.close()

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return false, err
	}
	if m, ok := final.(Model); ok {
		return m.WantsMenu(), nil
	}
	return false, nil
}
