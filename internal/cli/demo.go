package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/neophoriac/SimpleDraggable/pkg/draggable"
	"github.com/neophoriac/SimpleDraggable/pkg/errors"
	"github.com/neophoriac/SimpleDraggable/pkg/geometry"
	"github.com/neophoriac/SimpleDraggable/pkg/store"
)

// Card dimensions in cells, including the border.
const (
	cardWidth  = 24
	cardHeight = 5
)

// tickInterval drives periodic repaints while the demo is idle.
const tickInterval = 250 * time.Millisecond

var (
	colorCyan = lipgloss.Color("36")
	colorGray = lipgloss.Color("245")
	colorDim  = lipgloss.Color("240")
)

var (
	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Width(cardWidth - 2).
			Height(cardHeight - 2).
			Padding(0, 1)

	cardDisabledStyle = cardStyle.BorderForeground(colorDim)

	statusStyle = lipgloss.NewStyle().Foreground(colorGray)
	helpStyle   = lipgloss.NewStyle().Foreground(colorDim)
)

// newDemoCmd creates the demo command: an interactive terminal playground
// with a single draggable card wired to the configured store backend.
// Dragging the card and releasing it persists the offset; offsets written
// elsewhere (another demo instance on the same backend, or "offset set")
// move the card live.
func newDemoCmd() *cobra.Command {
	var flags storeFlags
	var id string
	var persist bool

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Interactive terminal playground with a draggable card",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			if id == "" {
				id = "demo-" + uuid.NewString()[:8]
			}
			if err := errors.ValidateIdentifier(id); err != nil {
				return err
			}

			cfg, st, err := flags.open(ctx)
			if err != nil {
				return err
			}
			defer st.Close()

			zone.NewGlobal()
			m := newDemoModel(ctx, id, st, persist)

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
			go func() {
				<-ctx.Done()
				p.Quit()
			}()

			final, err := p.Run()
			if err != nil {
				return err
			}
			if fm, ok := final.(*demoModel); ok && fm.err != nil {
				return fm.err
			}

			logger.Info("Demo finished", "id", id, "backend", cfg.Store.Backend)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&id, "id", "", "element identifier (default: random)")
	cmd.Flags().BoolVar(&persist, "persist", true, "persist offsets to the store")

	return cmd
}

// tickMsg drives periodic repaints so offsets written by other processes
// show up without local input.
type tickMsg struct{}

// demoModel is the bubbletea model for the demo command.
type demoModel struct {
	ctx     context.Context
	id      string
	zoneID  string
	persist bool

	env     *termEnv
	card    *termCard
	pointer *termPointer
	st      store.Store
	drag    *draggable.Draggable

	width  int
	height int
	ready  bool
	err    error
}

func newDemoModel(ctx context.Context, id string, st store.Store, persist bool) *demoModel {
	return &demoModel{
		ctx:     ctx,
		id:      id,
		zoneID:  zone.NewPrefix() + "card",
		persist: persist,
		env:     &termEnv{},
		card:    newTermCard(2, 1, geometry.Size{Width: cardWidth, Height: cardHeight}),
		pointer: newTermPointer(),
		st:      st,
	}
}

func (m *demoModel) Init() tea.Cmd {
	return m.tick()
}

func (m *demoModel) tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg { return tickMsg{} })
}

func (m *demoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.drag != nil {
				m.drag.Close()
			}
			return m, tea.Quit
		case "d":
			m.toggleOverride()
		case "r":
			m.recenter()
		}

	case tea.MouseMsg:
		m.handleMouse(msg)

	case tickMsg:
		return m, m.tick()
	}
	return m, nil
}

// handleResize updates the host geometry and re-enables the engine so the
// stored offset is reclamped against the new canvas.
func (m *demoModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.env.set(msg.Width, msg.Height-2) // two rows reserved for the status bar

	if m.drag == nil {
		d, err := draggable.New(draggable.Config{
			Target:  m.card,
			ID:      m.id,
			Env:     m.env,
			Events:  m.pointer,
			Store:   m.st,
			Persist: m.persist,
		})
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.drag = d
	} else {
		m.drag.Disable()
	}

	if err := m.drag.Enable(m.ctx); err != nil {
		m.err = err
		return m, tea.Quit
	}
	m.ready = true
	return m, nil
}

func (m *demoModel) handleMouse(msg tea.MouseMsg) {
	ev := draggable.PointerEvent{
		Pos:    draggable.Point{X: float64(msg.X), Y: float64(msg.Y)},
		Button: pointerButton(msg.Button),
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if zone.Get(m.zoneID).InBounds(msg) {
			m.pointer.firePress(m.card, ev)
		}
	case tea.MouseActionMotion:
		m.pointer.fireMove(ev)
	case tea.MouseActionRelease:
		m.pointer.fireRelease(ev)
	}
}

// toggleOverride flips the externally writable draggable flag, which the
// engine reads to suppress drags and sync without disabling.
func (m *demoModel) toggleOverride() {
	if v, _ := m.card.Attr(draggable.AttrDraggable); v == "false" {
		m.card.SetAttr(draggable.AttrDraggable, "true")
	} else {
		m.card.SetAttr(draggable.AttrDraggable, "false")
	}
}

// recenter writes a zero offset through the store, letting the normal sync
// path move the card back.
func (m *demoModel) recenter() {
	if m.st == nil {
		return
	}
	payload := geometry.EncodeOffset(geometry.Offset{})
	if err := m.st.Set(m.ctx, m.id, payload); err == nil && !m.persist {
		// Without persistence there is no subscription to react, so reset
		// the rendered translation directly.
		m.card.SetTranslation(geometry.Offset{})
	}
}

func (m *demoModel) View() string {
	if !m.ready {
		return ""
	}

	bounds := m.card.Bounds()
	style := cardStyle
	if v, _ := m.card.Attr(draggable.AttrDraggable); v == "false" || v == "0" {
		style = cardDisabledStyle
	}

	off := m.drag.Offset()
	body := fmt.Sprintf("drag me\nx=%.0f y=%.0f", off.X, off.Y)
	card := zone.Mark(m.zoneID, style.Render(body))

	canvasHeight := m.height - 2
	if canvasHeight < 0 {
		canvasHeight = 0
	}
	canvas := overlay(m.width, canvasHeight, int(bounds.Left), int(bounds.Top), card)

	status := statusStyle.Render(fmt.Sprintf("id=%s  offset=(%.0f, %.0f)", m.id, off.X, off.Y))
	help := helpStyle.Render("drag with the mouse • d toggle draggable • r recenter • q quit")

	return zone.Scan(canvas + "\n" + status + "\n" + help)
}

// overlay places block at cell position (x, y) on a width×height blank
// canvas. Negative positions clip at the canvas edge.
func overlay(width, height, x, y int, block string) string {
	blockLines := strings.Split(block, "\n")
	lines := make([]string, height)
	for i := range lines {
		bi := i - y
		if bi < 0 || bi >= len(blockLines) || x >= width {
			continue
		}
		pad := x
		if pad < 0 {
			pad = 0
		}
		lines[i] = strings.Repeat(" ", pad) + blockLines[bi]
	}
	return strings.Join(lines, "\n")
}

// pointerButton maps terminal mouse buttons onto pointer buttons.
func pointerButton(b tea.MouseButton) draggable.Button {
	switch b {
	case tea.MouseButtonRight:
		return draggable.ButtonSecondary
	case tea.MouseButtonMiddle:
		return draggable.ButtonAuxiliary
	default:
		return draggable.ButtonPrimary
	}
}
