package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Lilw3n/multisite-platform-sub002/internal/domain/project"
	"github.com/Lilw3n/multisite-platform-sub002/internal/export"
	"github.com/Lilw3n/multisite-platform-sub002/internal/seed"
	"github.com/spf13/cobra"
)

var (
	treeJSON  bool
	exportOut string
	seedOpts  = seed.DefaultOptions()
)

var treeCmd = &cobra.Command{
	Use:   "tree",
	Short: "Print the project forest",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		nodes := a.projects.GetTree(cmd.Context(), nil)
		if treeJSON {
			return writeJSON(cmd.OutOrStdout(), nodes)
		}
		printTree(cmd.OutOrStdout(), nodes)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print store statistics as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()
		return writeJSON(cmd.OutOrStdout(), a.projects.GetStatistics(cmd.Context()))
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export projects and statistics to an Excel workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		f, err := os.Create(exportOut)
		if err != nil {
			return fmt.Errorf("create %s: %w", exportOut, err)
		}
		if err := export.Write(cmd.Context(), a.projects, nil, f); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", exportOut)
		return nil
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Generate random project trees",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		res, err := seed.NewGenerator(a.projects, seedOpts).Generate(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "created %d projects (%d roots) and %d items\n", res.Projects, len(res.RootIDs), res.Items)
		return nil
	},
}

func init() {
	treeCmd.Flags().BoolVar(&treeJSON, "json", false, "print the tree as JSON")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "projects.xlsx", "output file")
	seedCmd.Flags().IntVarP(&seedOpts.Roots, "count", "n", seedOpts.Roots, "number of root projects to generate")
	seedCmd.Flags().IntVar(&seedOpts.MaxDepth, "depth", seedOpts.MaxDepth, "maximum nesting depth below each root")
	seedCmd.Flags().IntVar(&seedOpts.MaxChildren, "children", seedOpts.MaxChildren, "maximum children per project")
	seedCmd.Flags().IntVar(&seedOpts.MaxItems, "items", seedOpts.MaxItems, "maximum items per project")
	seedCmd.Flags().Int64Var(&seedOpts.Seed, "seed", 0, "random seed (0 picks one)")
}

func openApp(cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return newApp(cmd.Context(), cfg, true)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printTree(w io.Writer, nodes []*project.TreeNode) {
	var walk func(nodes []*project.TreeNode, depth int)
	walk = func(nodes []*project.TreeNode, depth int) {
		for _, n := range nodes {
			p := n.Project
			fmt.Fprintf(w, "%s- %s [%s, %s] %d/%d items  %s\n",
				strings.Repeat("  ", depth), p.Name, p.Status, p.Priority, p.CompletedItems, p.TotalItems, p.ID)
			walk(n.Children, depth+1)
		}
	}
	walk(nodes, 0)
}
