package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/lintang-b-s/navigatorx-transit/pkg"
	"github.com/lintang-b-s/navigatorx-transit/pkg/engine"
	"github.com/lintang-b-s/navigatorx-transit/pkg/snapshot"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	snapshotPath string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "routectl",
	Short: "Query a transit network snapshot without running the server",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if snapshotPath == "" {
			return errors.New("--snapshot is required")
		}
		return nil
	},
	SilenceUsage: true,
}

var priority string

var queryCmd = &cobra.Command{
	Use:   "query FROM TO",
	Short: "Best path between two stops, printed as JSON",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := pkg.ParsePriority(priority)
		if err != nil {
			return err
		}

		e, err := loadEngine()
		if err != nil {
			return err
		}

		pr, found := e.FindBestPath(args[0], args[1], p)
		if !found {
			return fmt.Errorf("no path found from %s to %s", args[0], args[1])
		}

		out := queryOutput{
			Path:          pr.GetPath(),
			TotalFare:     pr.GetTotalFare(),
			TotalDistance: pr.GetTotalDistance(),
			TotalStops:    pr.GetTotalStops(),
			Priority:      p.String(),
		}
		for _, l := range pr.GetLegs() {
			out.Legs = append(out.Legs, legOutput{
				From:     l.GetFrom(),
				To:       l.GetTo(),
				Fare:     l.GetFare(),
				Distance: l.GetDistance(),
			})
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

var dotCmd = &cobra.Command{
	Use:   "dot",
	Short: "Export the transit graph in graphviz DOT format",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEngine()
		if err != nil {
			return err
		}
		dot, err := e.GetGraph().ToDOT()
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), dot)
		return err
	},
}

type legOutput struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	Fare     float64 `json:"fare"`
	Distance float64 `json:"distance"`
}

type queryOutput struct {
	Path          []string    `json:"path"`
	Legs          []legOutput `json:"legs"`
	TotalFare     float64     `json:"totalFare"`
	TotalDistance float64     `json:"totalDistance"`
	TotalStops    int         `json:"totalStops"`
	Priority      string      `json:"priority"`
}

func loadEngine() (*engine.Engine, error) {
	snap, err := snapshot.LoadFile(snapshotPath)
	if err != nil {
		return nil, err
	}

	log := zap.NewNop()
	if verbose {
		if log, err = zap.NewDevelopment(); err != nil {
			return nil, err
		}
	}
	return engine.NewEngine(snap.Stops, snap.Routes, log, 1)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&snapshotPath, "snapshot", "s", "", "transit network snapshot (.json, .yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log graph building to stderr")
	queryCmd.Flags().StringVarP(&priority, "priority", "p", "fare", "fare, distance or stops")

	rootCmd.AddCommand(queryCmd, dotCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
