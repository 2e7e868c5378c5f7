package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/marcus/splitview/internal/config"
	"github.com/marcus/splitview/internal/output"
	"github.com/marcus/splitview/internal/store"
	"github.com/marcus/splitview/pkg/splitpane"
)

var layoutCmd = &cobra.Command{
	Use:     "layout",
	Aliases: []string{"l"},
	Short:   "Manage stored layouts",
}

var layoutListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored layouts",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(getBaseDir())
		if err != nil {
			output.Error("open store: %v", err)
			return err
		}
		defer st.Close()

		layouts, err := st.ListLayouts()
		if err != nil {
			output.Error("list layouts: %v", err)
			return err
		}
		if len(layouts) == 0 {
			fmt.Println("No layouts. Create one with: splitview layout set <id>")
			return nil
		}

		defaultID, _ := config.GetDefaultLayout(getBaseDir())
		for _, l := range layouts {
			marker := " "
			if l.ID == defaultID {
				marker = "*"
			}
			fmt.Printf("%s %-20s %-10s first=%s second=%s\n",
				marker, l.ID, l.Orientation, orFlex(l.FirstSize), orFlex(l.SecondSize))
		}
		return nil
	},
}

var layoutShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a layout and its computed pane styles",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(getBaseDir())
		if err != nil {
			output.Error("open store: %v", err)
			return err
		}
		defer st.Close()

		l, err := st.GetLayout(args[0])
		if err != nil {
			output.Error("get layout: %v", err)
			return err
		}

		orientation, err := splitpane.ParseOrientation(l.Orientation)
		if err != nil {
			output.Error("stored orientation: %v", err)
			return err
		}
		sp, err := splitpane.New(splitpane.Config{
			ID:                l.ID,
			Orientation:       orientation,
			FirstPaneSize:     l.FirstSize,
			FirstPaneMinSize:  l.FirstMinSize,
			SecondPaneSize:    l.SecondSize,
			SecondPaneMinSize: l.SecondMinSize,
		})
		if err != nil {
			output.Error("build layout: %v", err)
			return err
		}

		fmt.Printf("id:           %s\n", l.ID)
		fmt.Printf("orientation:  %s\n", l.Orientation)
		fmt.Printf("first:        %s (min %s)\n", orFlex(l.FirstSize), orFlex(l.FirstMinSize))
		fmt.Printf("second:       %s (min %s)\n", orFlex(l.SecondSize), orFlex(l.SecondMinSize))
		fmt.Printf("first style:  %s\n", sp.PaneStyle(splitpane.First))
		fmt.Printf("second style: %s\n", sp.PaneStyle(splitpane.Second))
		return nil
	},
}

var layoutSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Create or update a layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(getBaseDir())
		if err != nil {
			output.Error("open store: %v", err)
			return err
		}
		defer st.Close()

		l, err := st.GetLayout(args[0])
		if err != nil {
			cfg, cfgErr := config.Load(getBaseDir())
			if cfgErr != nil {
				output.Error("load config: %v", cfgErr)
				return cfgErr
			}
			l = &store.Layout{
				ID:           args[0],
				Orientation:  cfg.DefaultOrientation,
				FirstSize:    cfg.DefaultFirstPaneSize,
				FirstMinSize: cfg.DefaultFirstPaneMinSize,
			}
		}

		applyFlag := func(name string, dst *string) {
			if cmd.Flags().Changed(name) {
				*dst, _ = cmd.Flags().GetString(name)
			}
		}
		applyFlag("orientation", &l.Orientation)
		applyFlag("first", &l.FirstSize)
		applyFlag("first-min", &l.FirstMinSize)
		applyFlag("second", &l.SecondSize)
		applyFlag("second-min", &l.SecondMinSize)
		if l.Orientation == "" {
			l.Orientation = "vertical"
		}

		if err := st.SaveLayout(l); err != nil {
			output.Error("save layout: %v", err)
			return err
		}
		output.Success("Saved layout %s", l.ID)
		return nil
	},
}

var layoutResizeCmd = &cobra.Command{
	Use:   "resize <id> <first|second> <size>",
	Short: "Set one pane's size expression",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		var pane splitpane.Pane
		switch args[1] {
		case "first":
			pane = splitpane.First
		case "second":
			pane = splitpane.Second
		default:
			err := fmt.Errorf("pane must be \"first\" or \"second\", got %q", args[1])
			output.Error("%v", err)
			return err
		}

		st, err := store.Open(getBaseDir())
		if err != nil {
			output.Error("open store: %v", err)
			return err
		}
		defer st.Close()

		if err := st.SetPaneSize(args[0], pane, args[2]); err != nil {
			output.Error("resize: %v", err)
			return err
		}
		output.Success("Set %s pane of %s to %s", pane, args[0], orFlex(args[2]))
		return nil
	},
}

var layoutDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a layout",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := store.Open(getBaseDir())
		if err != nil {
			output.Error("open store: %v", err)
			return err
		}
		defer st.Close()

		if err := st.DeleteLayout(args[0]); err != nil {
			output.Error("delete layout: %v", err)
			return err
		}
		output.Success("Deleted layout %s", args[0])
		return nil
	},
}

var layoutDefaultCmd = &cobra.Command{
	Use:   "default [id]",
	Short: "Show or set the default layout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			id, err := config.GetDefaultLayout(getBaseDir())
			if err != nil {
				output.Error("load config: %v", err)
				return err
			}
			if id == "" {
				fmt.Println("No default layout set.")
				return nil
			}
			fmt.Println(id)
			return nil
		}

		st, err := store.Open(getBaseDir())
		if err != nil {
			output.Error("open store: %v", err)
			return err
		}
		defer st.Close()
		if _, err := st.GetLayout(args[0]); err != nil {
			output.Error("get layout: %v", err)
			return err
		}

		if err := config.SetDefaultLayout(getBaseDir(), args[0]); err != nil {
			output.Error("set default layout: %v", err)
			return err
		}
		output.Success("Default layout is now %s", args[0])
		return nil
	},
}

// orFlex renders an empty size expression as the word flex.
func orFlex(s string) string {
	if s == "" {
		return "flex"
	}
	return s
}

func init() {
	rootCmd.AddCommand(layoutCmd)
	layoutCmd.AddCommand(layoutListCmd)
	layoutCmd.AddCommand(layoutShowCmd)
	layoutCmd.AddCommand(layoutSetCmd)
	layoutCmd.AddCommand(layoutResizeCmd)
	layoutCmd.AddCommand(layoutDeleteCmd)
	layoutCmd.AddCommand(layoutDefaultCmd)

	layoutSetCmd.Flags().StringP("orientation", "o", "", "vertical (side by side) or horizontal (stacked)")
	layoutSetCmd.Flags().String("first", "", "First pane size expression (empty = flex)")
	layoutSetCmd.Flags().String("first-min", "", "First pane minimum size expression")
	layoutSetCmd.Flags().String("second", "", "Second pane size expression (empty = flex)")
	layoutSetCmd.Flags().String("second-min", "", "Second pane minimum size expression")
}
