package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/bnema/layoutcore/internal/core/arrange"
	"github.com/bnema/layoutcore/internal/domain/entity"
	"github.com/bnema/layoutcore/internal/logging"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))

func newArrangeCmd() *cobra.Command {
	var (
		layoutName string
		children   int
		width      int
		height     int
	)

	cmd := &cobra.Command{
		Use:   "arrange",
		Short: "Build a sample container tree and print its settled geometry",
		RunE: func(cmd *cobra.Command, args []string) error {
			layout := entity.ParseLayout(layoutName)
			root := demoTree(layout, children)
			views := newRecordingViews()
			deps := arrange.Deps{
				Config:  entity.DefaultConfig(),
				Outputs: demoOutputs{w: width, h: height},
				Views:   views,
				Panels:  demoPanels{},
			}

			ctx := logging.WithComponent(context.Background(), "cli-arrange")
			arrange.Run(ctx, root, -1, -1, deps)

			cmd.Println(headerStyle.Render(fmt.Sprintf("%s (%d views, %dx%d)", layout, children, width, height)))
			cmd.Print(renderGeometry(root, views))
			return nil
		},
	}

	cmd.Flags().StringVar(&layoutName, "layout", "horiz", "layout to arrange under (horiz, vert, tabbed, stacked, auto_left, auto_right, auto_top, auto_bottom)")
	cmd.Flags().IntVar(&children, "views", 3, "number of views to place on the workspace")
	cmd.Flags().IntVar(&width, "width", 1920, "synthetic output width")
	cmd.Flags().IntVar(&height, "height", 1080, "synthetic output height")
	return cmd
}
