package cmd

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/marcus/splitview/internal/config"
	"github.com/marcus/splitview/internal/output"
	"github.com/marcus/splitview/internal/store"
	"github.com/marcus/splitview/pkg/preview"
)

var viewCmd = &cobra.Command{
	Use:   "view [id]",
	Short: "Preview a layout in the terminal",
	Long: `Open an interactive terminal preview of a layout. Drag the divider with
the mouse (or nudge it with h/l or the arrow keys) to resize the panes;
the adjusted size is saved back unless persistence is disabled.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := getBaseDir()

		st, err := store.Open(dir)
		if err != nil {
			output.Error("open store: %v", err)
			return err
		}
		defer st.Close()

		cfg, err := config.Load(dir)
		if err != nil {
			output.Error("load config: %v", err)
			return err
		}

		id := cfg.DefaultLayout
		if len(args) == 1 {
			id = args[0]
		}
		if id == "" {
			err := fmt.Errorf("no layout named and no default set (run: splitview layout default <id>)")
			output.Error("%v", err)
			return err
		}

		l, err := st.GetLayout(id)
		if err != nil {
			output.Error("get layout: %v", err)
			return err
		}

		persist := cfg.PersistEnabled()
		if ephemeral, _ := cmd.Flags().GetBool("ephemeral"); ephemeral {
			persist = false
		}

		m, err := preview.New(st, l, persist)
		if err != nil {
			output.Error("build preview: %v", err)
			return err
		}

		p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
		final, err := p.Run()
		if err != nil {
			output.Error("preview: %v", err)
			return err
		}
		if fm, ok := final.(preview.Model); ok && fm.Err() != nil {
			output.Warn("session ended with error: %v", fm.Err())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().Bool("ephemeral", false, "Do not persist drag-adjusted sizes")
}
