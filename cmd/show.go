package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/Uraniumking007/frametracking/internal/feature"
	"github.com/Uraniumking007/frametracking/internal/worldstate"
)

var showPlatform string

var showCmd = &cobra.Command{
	Use:   "show <feature>",
	Short: "Fetch and print one resolved feature as JSON",
	Long: `Fetch and print one resolved feature as JSON.

Features: alerts, events, invasions, sortie, archon-hunt, fissures,
arbitration, incursions, bounties, news, cycles, worldstate`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := newFeatureService()
		ctx := cmd.Context()
		platform := worldstate.ValidatePlatform(showPlatform)

		var (
			v   any
			err error
		)
		switch args[0] {
		case "alerts":
			v, err = svc.Alerts(ctx, platform)
		case "events":
			v, err = svc.Events(ctx, platform)
		case "invasions":
			v, err = svc.Invasions(ctx, platform)
		case "sortie":
			v, err = svc.Sortie(ctx, platform)
		case "archon-hunt":
			v, err = svc.ArchonHunt(ctx, platform)
		case "fissures":
			v, err = svc.Fissures(ctx, platform, feature.FissureAll)
		case "arbitration":
			v, err = svc.Arbitration(ctx)
		case "incursions":
			v, err = svc.Incursions(ctx)
		case "bounties":
			v, err = svc.Bounties(ctx)
		case "news":
			v, err = svc.News(ctx, platform)
		case "cycles":
			v = feature.ZoneCycles(time.Now())
		case "worldstate":
			v, err = svc.World.Fetch(ctx, platform)
		default:
			return fmt.Errorf("unknown feature %q", args[0])
		}
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	},
}

func init() {
	showCmd.Flags().StringVar(&showPlatform, "platform", "pc", "Platform (pc, ps4, xb1, swi)")
	rootCmd.AddCommand(showCmd)
}
