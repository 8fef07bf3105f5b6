package cmd

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-wayout/animation"
	"github.com/beka-birhanu/vinom-wayout/config"
	"github.com/beka-birhanu/vinom-wayout/maze"
	"github.com/beka-birhanu/vinom-wayout/render"
	"github.com/beka-birhanu/vinom-wayout/service"
	"github.com/beka-birhanu/vinom-wayout/traversal"
	"github.com/spf13/cobra"
)

var runFlags struct {
	algorithm  string
	size       int
	seed       int64
	startRow   int
	startCol   int
	timingPath string
	noColor    bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate a maze and animate the search for its exit",
	RunE:  runSearch,
}

func init() {
	f := runCmd.Flags()
	f.StringVarP(&runFlags.algorithm, "algorithm", "a", "", "Search algorithm: bfs, dfs or brute-force (default MAZE_ALGORITHM)")
	f.IntVarP(&runFlags.size, "size", "n", 0, "Number of rows and columns (default MAZE_SIZE)")
	f.Int64Var(&runFlags.seed, "seed", 0, "Seed of the maze generator; 0 picks one from the clock")
	f.IntVar(&runFlags.startRow, "start-row", 0, "Row of the start cell")
	f.IntVar(&runFlags.startCol, "start-col", 0, "Column of the start cell")
	f.StringVar(&runFlags.timingPath, "timing", "", "YAML file overriding the animation timing")
	f.BoolVar(&runFlags.noColor, "no-color", false, "Draw plain glyphs instead of colored cells")
}

func runSearch(cmd *cobra.Command, _ []string) error {
	cfg := config.Load()

	name := runFlags.algorithm
	if name == "" {
		name = cfg.MazeAlgorithm
	}
	algorithm, err := traversal.ParseAlgorithm(name)
	if err != nil {
		return err
	}

	size := runFlags.size
	if size == 0 {
		size = cfg.MazeSize
	}

	timing, err := runTiming(cfg)
	if err != nil {
		return err
	}

	seed := runFlags.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session, err := service.NewMazeSession(service.SessionConfig{
		Algorithm: algorithm,
		Size:      size,
		Start:     maze.CellPosition{Row: runFlags.startRow, Col: runFlags.startCol},
		Rand:      rand.New(rand.NewSource(seed)),
		Timing:    timing,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	terminal, err := render.NewTerminal(out, session.Maze(), !runFlags.noColor)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%s search on a %dx%d maze (seed %d)\n%s", algorithm, size, size, seed, session.Maze())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	run, err := session.CheckWayOut(ctx, terminal)
	if err != nil {
		return err
	}
	result, err := run.Wait()

	fmt.Fprintln(out, service.ResultMessage(result, err))
	if err != nil {
		if errors.Is(err, service.ErrInterrupted) {
			return nil
		}
		return err
	}
	fmt.Fprintf(out, "visited %d cells\n", result.Visited)
	return nil
}

func runTiming(cfg config.Config) (animation.Timing, error) {
	timing := cfg.Timing()
	if runFlags.timingPath == "" {
		return timing, nil
	}
	return config.LoadTiming(runFlags.timingPath, timing)
}
