package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bnema/layoutcore/internal/config"
	"github.com/bnema/layoutcore/internal/core/arrange"
	"github.com/bnema/layoutcore/internal/domain/entity"
	"github.com/bnema/layoutcore/internal/logging"
)

func newWatchCmd() *cobra.Command {
	var (
		layoutName string
		children   int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-arrange the sample tree live as the configuration file changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Init(); err != nil {
				return fmt.Errorf("init config: %w", err)
			}
			if err := config.Watch(); err != nil {
				return fmt.Errorf("watch config: %w", err)
			}

			m := newWatchModel(entity.ParseLayout(layoutName), children)
			program := tea.NewProgram(m)

			config.OnConfigChange(func(cfg entity.Config) {
				program.Send(configReloadedMsg{cfg: cfg})
			})

			group, _ := errgroup.WithContext(context.Background())
			group.Go(func() error {
				_, err := program.Run()
				return err
			})
			return group.Wait()
		},
	}

	cmd.Flags().StringVar(&layoutName, "layout", "auto_left", "layout to arrange under")
	cmd.Flags().IntVar(&children, "views", 4, "number of views to place on the workspace")
	return cmd
}

type configReloadedMsg struct{ cfg entity.Config }
type tickMsg time.Time

// watchKeyMap is the keybinding set rendered by the bubbles help component.
type watchKeyMap struct {
	Quit key.Binding
}

func (k watchKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit}
}

func (k watchKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Quit}}
}

func defaultWatchKeyMap() watchKeyMap {
	return watchKeyMap{
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c", "esc"), key.WithHelp("q", "quit")),
	}
}

// watchModel re-arranges the demo tree against the latest loaded config on
// every tick and whenever the config file changes on disk.
type watchModel struct {
	layout   entity.Layout
	children int
	cfg      entity.Config
	rendered string
	keys     watchKeyMap
	help     help.Model
}

func newWatchModel(layout entity.Layout, children int) watchModel {
	m := watchModel{
		layout:   layout,
		children: children,
		cfg:      config.Get(),
		keys:     defaultWatchKeyMap(),
		help:     help.New(),
	}
	m.rendered = m.arrange()
	return m
}

func (m watchModel) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			return m, tea.Quit
		}
	case configReloadedMsg:
		m.cfg = msg.cfg
		m.rendered = m.arrange()
		return m, nil
	case tickMsg:
		m.rendered = m.arrange()
		return m, tick()
	}
	return m, nil
}

func (m watchModel) View() string {
	header := headerStyle.Render(fmt.Sprintf("%s — gap %d", m.layout, m.cfg.Gap))
	return header + "\n" + m.rendered + "\n" + m.help.View(m.keys) + "\n"
}

func (m watchModel) arrange() string {
	root := demoTree(m.layout, m.children)
	views := newRecordingViews()
	deps := arrange.Deps{
		Config:  m.cfg,
		Outputs: demoOutputs{w: 1920, h: 1080},
		Views:   views,
		Panels:  demoPanels{},
	}
	ctx := logging.WithComponent(context.Background(), "cli-watch")
	arrange.Run(ctx, root, -1, -1, deps)
	return renderGeometry(root, views)
}
