package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/utakatalp/season-manager/internal/game"
	"github.com/utakatalp/season-manager/internal/league"
	"github.com/utakatalp/season-manager/internal/seed"
)

func newCmd(slot *string) *cobra.Command {
	var club, name string
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new season managing --club",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, e *env) error {
				s := e.slot(*slot)
				m, err := game.NewGame(seed.Default(), club, name, game.NewRNG(e.cfg.Seed), game.Options{
					Logger: e.logger,
					Saver:  e.store,
					Slot:   s,
				})
				if err != nil {
					return err
				}
				if err := m.Save(ctx, s); err != nil {
					return err
				}
				c := m.State().UserClub()
				fmt.Printf("New season %s: %s manages %s (budget %s), saved to %q.\n",
					m.State().Label, m.State().ManagerName, c.Name, league.FormatMoney(c.Budget), s)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&club, "club", "", "Club ID to manage")
	cmd.Flags().StringVar(&name, "name", "", "Manager name")
	cmd.MarkFlagRequired("club")
	return cmd
}

func advanceCmd(slot *string) *cobra.Command {
	var n int
	cmd := &cobra.Command{
		Use:   "advance",
		Short: "Play the next matchday(s)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, e *env) error {
				m, err := e.load(ctx, e.slot(*slot))
				if err != nil {
					return err
				}
				st := m.State()
				for i := 0; i < n; i++ {
					res, out := m.AdvanceMatchday(ctx)
					if !out.Success {
						fmt.Println(out.Message)
						break
					}
					fmt.Printf("Matchday %d\n", res.Matchday)
					for _, r := range res.Matches {
						marker := " "
						if r.Involves(st.UserClubID) {
							marker = "*"
						}
						fmt.Printf(" %s %s\n", marker, r.ScoreLine(st.ClubName))
					}
				}
				if sum, ok := m.Finances(st.UserClubID); ok {
					fmt.Println(sum.Describe())
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&n, "matchdays", "n", 1, "Number of matchdays to play")
	return cmd
}

func tableCmd(slot *string) *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the league table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, e *env) error {
				m, err := e.load(ctx, e.slot(*slot))
				if err != nil {
					return err
				}
				st := m.State()
				league.PrintTable(os.Stdout, fmt.Sprintf("%s after matchday %d", st.Label, st.CurrentMatchday), st.Standings())
				return nil
			})
		},
	}
}

func scheduleCmd(slot *string) *cobra.Command {
	return &cobra.Command{
		Use:   "schedule",
		Short: "Print the full fixture list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, e *env) error {
				m, err := e.load(ctx, e.slot(*slot))
				if err != nil {
					return err
				}
				st := m.State()
				league.PrintSchedule(os.Stdout, st.Label, st.Fixtures, st.ClubName)
				return nil
			})
		},
	}
}

func resultsCmd(slot *string) *cobra.Command {
	var upto int
	var h2h string
	cmd := &cobra.Command{
		Use:   "results",
		Short: "Print stored results of a slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, e *env) error {
				s := e.slot(*slot)
				if h2h != "" {
					a, b, ok := strings.Cut(h2h, ",")
					if !ok {
						return fmt.Errorf("--h2h wants two club IDs, e.g. kes,ald")
					}
					wins, err := e.store.HeadToHead(ctx, s, a, b)
					if err != nil {
						return err
					}
					fmt.Printf("%s %d - %d %s\n", a, wins[a], wins[b], b)
					return nil
				}
				if upto <= 0 {
					upto = math.MaxInt32
				}
				results, err := e.store.Results(ctx, s, upto)
				if err != nil {
					return err
				}
				name := func(id string) string { return id }
				for _, md := range results {
					fmt.Printf("Matchday %d\n", md.Matchday)
					for _, r := range md.Matches {
						fmt.Printf("  %s\n", r.ScoreLine(name))
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&upto, "upto", 0, "Last matchday to print (0 = all)")
	cmd.Flags().StringVar(&h2h, "h2h", "", "Head to head record of two clubs, comma separated")
	return cmd
}

func simulateCmd() *cobra.Command {
	var seedValue int64
	var club string
	var forecastRuns int
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Simulate a whole season in memory and print the final table",
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := game.NewGame(seed.Default(), club, "", game.NewRNG(seedValue), game.Options{})
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if forecastRuns > 0 {
				printForecast(m.Forecast(forecastRuns))
			}
			for !m.State().IsComplete() {
				if _, out := m.AdvanceMatchday(ctx); !out.Success {
					return fmt.Errorf("advance: %s", out.Message)
				}
			}
			st := m.State()
			league.PrintTable(os.Stdout, "Final table "+st.Label, st.Standings())
			return nil
		},
	}
	cmd.Flags().Int64Var(&seedValue, "seed", 0, "Random seed (0 = time based)")
	cmd.Flags().StringVar(&club, "club", "kes", "User club")
	cmd.Flags().IntVar(&forecastRuns, "forecast", 0, "Print a pre-season title forecast from this many runs")
	return cmd
}

func printForecast(preds []game.Prediction) {
	fmt.Println("Title odds")
	for _, p := range preds {
		if p.Probability == 0 {
			continue
		}
		fmt.Printf("  %-24s %6.2f%%\n", p.Name, p.Probability)
	}
}

func savesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "saves",
		Short: "Manage save slots",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List save slots",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, e *env) error {
				slots, err := e.store.List(ctx)
				if err != nil {
					return err
				}
				if len(slots) == 0 {
					fmt.Println("No saves.")
				}
				for _, s := range slots {
					fmt.Printf("%-12s %-8s club %-4s matchday %2d  saved %s\n",
						s.Slot, s.Label, s.UserClubID, s.Matchday, s.SavedAt.Local().Format("2006-01-02 15:04"))
				}
				return nil
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "delete SLOT",
		Short: "Delete a save slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(func(ctx context.Context, e *env) error {
				if err := e.store.Delete(ctx, args[0]); err != nil {
					return err
				}
				fmt.Printf("Deleted %q.\n", args[0])
				return nil
			})
		},
	})
	return cmd
}
