// Command pokerlib-demo is a minimal illustrative host for package engine:
// it seats a handful of bot players at a table, plays a fixed number of
// hands to completion, and prints every event the engine emits. It is not
// a server — no networking, no persistence, no second game variant.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kuco23/pokerlib/internal/util"
	"github.com/kuco23/pokerlib/pkg/engine"
)

var (
	numPlayers int
	numHands   int
	configPath string
	devMode    bool
)

var rootCmd = &cobra.Command{
	Use:   "pokerlib-demo",
	Short: "Plays a few hands of No-Limit Hold'em against simple bots",
	Long:  "pokerlib-demo seats bot players at a single table and drives hands to completion through the public engine.Table API, printing every emitted event.",
	Run:   runDemo,
}

func init() {
	rootCmd.Flags().IntVarP(&numPlayers, "players", "p", 4, "number of bot players to seat")
	rootCmd.Flags().IntVarP(&numHands, "hands", "n", 3, "number of hands to play before stopping")
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to a table config YAML file (uses built-in defaults if omitted)")
	rootCmd.Flags().BoolVar(&devMode, "dev", false, "enable verbose debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runDemo(cmd *cobra.Command, args []string) {
	util.InitLogger(devMode)

	cfg := engine.DefaultTableConfig()
	if configPath != "" {
		loaded, err := engine.LoadTableConfigFromFile(configPath)
		if err != nil {
			logrus.Fatalf("could not load table config: %v", err)
		}
		cfg = *loaded
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	table := engine.NewTable("demo-table", cfg, rng, nil)

	for i := 0; i < numPlayers; i++ {
		name := botName(i)
		table.AddPlayer(engine.NewPlayer(table.ID, name, name, cfg.StartStack), -1)
	}
	printDrained(table)

	for hand := 1; hand <= numHands && enoughPlayersRemain(table); hand++ {
		table.StartRound(fmt.Sprintf("hand-%d", hand))
		printDrained(table)
		driveToCompletion(table, rng)
	}
}

// enoughPlayersRemain mirrors the table's own start_round precondition so
// the demo loop stops gracefully instead of spamming
// INCORRECT_NUMBER_OF_PLAYERS events.
func enoughPlayersRemain(table *engine.Table) bool {
	notBroke := 0
	for _, p := range table.Seats {
		if p != nil && p.Money > 0 {
			notBroke++
		}
	}
	return notBroke >= 2
}

// driveToCompletion feeds bot actions to the active round until it closes,
// answering any show/muck choice with SHOW so the demo never stalls waiting
// on an input nobody will provide.
func driveToCompletion(table *engine.Table, rng *rand.Rand) {
	for i := 0; i < 10000; i++ {
		round := table.CurrentRound()
		if round == nil || round.Closed() {
			return
		}

		if round.Finished() {
			for _, id := range round.PendingChoices() {
				table.PlaceChoice(id, engine.ChoiceShow)
				printDrained(table)
			}
			continue
		}

		cp := round.CurrentPlayer()
		if cp == nil {
			return
		}
		action, raiseBy := botAction(round, cp, rng)
		table.PlaceAction(cp.ID, action, raiseBy)
		printDrained(table)
	}
	logrus.Warnf("demo: round %s did not close within the iteration budget", table.CurrentRound().ID)
}

// botAction is a deliberately simple strategy: call whatever is owed (or
// check if nothing is), and when nothing is owed, raising by one big blind
// about one time in four. It exists to exercise
// the engine end-to-end, not to play well.
func botAction(round *engine.Round, p *engine.Player, rng *rand.Rand) (engine.ActionType, int) {
	toCall := round.ToCall()
	if toCall >= p.Money {
		return engine.ActionAllIn, 0
	}
	if toCall == 0 && rng.Intn(4) == 0 && p.Money > round.BigBlind {
		return engine.ActionRaise, round.BigBlind
	}
	if toCall == 0 {
		return engine.ActionCheck, 0
	}
	return engine.ActionCall, 0
}

func botName(i int) string {
	return fmt.Sprintf("bot-%d", i)
}

func printDrained(table *engine.Table) {
	pub, priv := table.Drain()
	for _, e := range pub {
		fmt.Printf("[public]  %-24s %v\n", e.ID, e.Data)
	}
	for _, e := range priv {
		fmt.Printf("[private] %-24s -> %s %v\n", e.ID, e.PlayerID, e.Data)
	}
}
