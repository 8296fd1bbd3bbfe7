package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rubicon-docs/docsite/internal/nav"
)

var navJSON bool

var navCmd = &cobra.Command{
	Use:   "nav",
	Short: "Inspect the navigation tree",
}

var navShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the navigation tree",
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := navTree()
		if err != nil {
			return err
		}
		if navJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tree)
		}
		tree.Walk(func(e *nav.Entry, depth int) {
			indent := strings.Repeat("  ", depth)
			switch {
			case depth == 0:
				fmt.Printf("%s\n", e.Title)
			case e.IsPage():
				fmt.Printf("%s%s  %s\n", indent, e.Title, e.Href)
			default:
				fmt.Printf("%s%s/\n", indent, e.Title)
			}
		})
		return nil
	},
}

var navCheckCmd = &cobra.Command{
	Use:   "check [file]",
	Short: "Validate a navigation file",
	Long:  `Validates a navigation YAML file (the configured one by default) and lists every malformed node.`,
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		} else {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path = cfg.NavigationFile
		}
		if path == "" {
			fmt.Println("No navigation file configured; the built-in navigation is used.")
			return nil
		}

		tree, err := nav.LoadFile(path)
		var verr *nav.ValidationError
		if errors.As(err, &verr) {
			issues := verr.Issues()
			fmt.Printf("%s: %d problem(s)\n", path, len(issues))
			for _, issue := range issues {
				fmt.Printf("  - %v\n", issue)
			}
			return fmt.Errorf("navigation file %s is invalid", path)
		}
		if err != nil {
			return err
		}

		fmt.Printf("%s: OK (%d sections, %d pages, %d in reading order)\n",
			path, len(tree.Sections), len(tree.Pages()), len(tree.Flatten()))
		return nil
	},
}

var navNeighborsCmd = &cobra.Command{
	Use:   "neighbors <path>",
	Short: "Show the section and previous/next links of a page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tree, err := navTree()
		if err != nil {
			return err
		}
		p := tree.Locate(args[0])
		fmt.Printf("section:  %s\n", entryLabel(p.Section))
		fmt.Printf("previous: %s\n", entryLabel(p.Previous))
		fmt.Printf("next:     %s\n", entryLabel(p.Next))
		return nil
	},
}

func init() {
	navShowCmd.Flags().BoolVar(&navJSON, "json", false, "print the tree as JSON")
	navCmd.AddCommand(navShowCmd, navCheckCmd, navNeighborsCmd)
	rootCmd.AddCommand(navCmd)
}

// navTree loads the configured tree.
func navTree() (*nav.Tree, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return loadNavigation(cfg)
}

func entryLabel(e *nav.Entry) string {
	switch {
	case e == nil:
		return "-"
	case e.IsPage():
		return fmt.Sprintf("%s (%s)", e.Title, e.Href)
	default:
		return e.Title
	}
}
