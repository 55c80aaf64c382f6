package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"helldive/client"
	"helldive/galaxy"
	"helldive/internal/config"
)

const version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "helldive",
	Short: "Galactic war status from the community API",
	Long: `helldive renders the state of the galactic war: active campaigns,
in-game news dispatches, the current major order, planets, statistics, and
Steam patch notes. All data comes from the community-run war API.`,
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("HELLDIVE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("config", "c", config.Path("."), "config file path")
	rootCmd.PersistentFlags().String("url", "", "API base URL (overrides config)")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	rootCmd.PersistentFlags().Bool("debug", false, "debug request logging")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("url", rootCmd.PersistentFlags().Lookup("url"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func registerCommands() {
	rootCmd.AddCommand(campaignsCmd())
	rootCmd.AddCommand(newsCmd())
	rootCmd.AddCommand(moCmd())
	rootCmd.AddCommand(planetsCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(updatesCmd())
	rootCmd.AddCommand(versionCmd())
}

func campaignsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "campaigns",
		Short: "List active campaigns",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
				campaigns, err := c.Campaigns(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(campaigns)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.SetTitle("Campaigns")
				tw.AppendHeader(table.Row{"Planet", "Sector", "Type", "Count", "Liberation"})
				for _, campaign := range campaigns {
					planet, err := campaign.Planet(ctx)
					if err != nil {
						return err
					}
					pct, err := campaign.LiberationPercent(ctx)
					if err != nil {
						return err
					}
					tw.AppendRow(table.Row{
						planet.Name, planet.Sector, campaign.Type.String(),
						campaign.Count, fmt.Sprintf("%.2f%%", pct),
					})
				}
				tw.Render()
				return nil
			})
		},
	}
	return cmd
}

func newsCmd() *cobra.Command {
	var latest bool
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Show in-game news dispatches",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
				if latest {
					dispatch, err := c.LatestDispatch(ctx)
					if err != nil {
						return err
					}
					if dispatch == nil {
						panel("News", "No dispatches.")
						return nil
					}
					if viper.GetBool("json") {
						return printJSON(dispatch)
					}
					printDispatch(dispatch)
					return nil
				}
				dispatches, err := c.Dispatches(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(dispatches)
				}
				for _, dispatch := range dispatches {
					printDispatch(dispatch)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&latest, "latest", "l", false, "only the newest dispatch")
	return cmd
}

func moCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mo",
		Short: "Show the current major order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
				mo, err := c.MajorOrder(ctx)
				if err != nil {
					return err
				}
				if mo == nil {
					panel("Major Order", "There is no major order at this time.")
					return nil
				}
				if viper.GetBool("json") {
					return printJSON(mo)
				}
				var lines []string
				if mo.Settings.Brief != "" {
					lines = append(lines, mo.Settings.Brief, "")
				}
				for i, task := range mo.Tasks {
					line, err := describeTask(ctx, mo, i, task)
					if err != nil {
						return err
					}
					lines = append(lines, line)
				}
				lines = append(lines, "", fmt.Sprintf("Reward: %d %s", mo.Settings.Reward.Amount, mo.Settings.Reward.Type))
				lines = append(lines, fmt.Sprintf("Expires: %s", mo.Expires.UTC().Format("2006-01-02 15:04 MST")))
				title := mo.Settings.Title
				if title == "" {
					title = "Major Order"
				}
				panel(title, strings.Join(lines, "\n"))
				return nil
			})
		},
	}
	return cmd
}

func describeTask(ctx context.Context, mo *galaxy.Assignment, i int, task *galaxy.Task) (string, error) {
	mark := "[ ]"
	if mo.TaskComplete(i) {
		mark = "[x]"
	}
	if task.Type == galaxy.TaskEradicate {
		return fmt.Sprintf("%s Eradicate %s %s (%s)",
			mark, prettyNumber(int64(task.Data.TargetCount)), task.Data.Race,
			prettyNumber(int64(mo.Progress[i]))), nil
	}
	planet, err := task.Planet(ctx)
	if err != nil {
		return "", err
	}
	if planet == nil {
		return fmt.Sprintf("%s %s", mark, task.Type), nil
	}
	progress := ""
	if campaign, err := planet.Campaign(ctx); err == nil && campaign != nil {
		if pct, err := campaign.LiberationPercent(ctx); err == nil {
			progress = fmt.Sprintf(" (%.2f%%)", pct)
		}
	}
	return fmt.Sprintf("%s %s %s in the %s sector%s", mark, task.Type, planet.Name, planet.Sector, progress), nil
}

func planetsCmd() *cobra.Command {
	var id int
	cmd := &cobra.Command{
		Use:   "planets",
		Short: "List planets",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
				if cmd.Flags().Changed("id") {
					planet, err := c.Planet(ctx, id)
					if errors.Is(err, client.ErrNotFound) {
						return fmt.Errorf("no planet with index %d", id)
					}
					if err != nil {
						return err
					}
					if viper.GetBool("json") {
						return printJSON(planet)
					}
					status, err := planet.Status(ctx)
					if err != nil {
						return err
					}
					renderPlanetTable(fmt.Sprintf("Planet %d", id), []planetRow{planetToRow(planet, status)})
					return nil
				}
				planets, err := c.Planets(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(planets)
				}
				// One status snapshot for the whole table instead of a lazy
				// resolution per row.
				status, err := c.Status(ctx)
				if err != nil {
					return err
				}
				rows := make([]planetRow, 0, len(planets))
				for _, planet := range planets {
					rows = append(rows, planetToRow(planet, status.PlanetStatus(planet.Index)))
				}
				renderPlanetTable("Planets", rows)
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&id, "id", 0, "planet index")
	return cmd
}

type planetRow struct {
	index   int
	name    string
	sector  string
	biome   string
	hazards string
	owner   string
	players string
}

func planetToRow(planet *galaxy.Planet, status *galaxy.PlanetStatus) planetRow {
	hazards := make([]string, 0, len(planet.Hazards))
	for _, h := range planet.Hazards {
		hazards = append(hazards, h.Name)
	}
	row := planetRow{
		index:   planet.Index,
		name:    planet.Name,
		sector:  planet.Sector,
		biome:   planet.Biome.Name,
		hazards: strings.Join(hazards, ", "),
	}
	if status != nil {
		row.owner = status.Owner.String()
		row.players = prettyNumber(int64(status.Players))
	}
	return row
}

func renderPlanetTable(title string, rows []planetRow) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetTitle(title)
	tw.AppendHeader(table.Row{"ID", "Name", "Sector", "Biome", "Hazards", "Owner", "Players"})
	for _, r := range rows {
		tw.AppendRow(table.Row{r.index, r.name, r.sector, r.biome, r.hazards, r.owner, r.players})
	}
	tw.Render()
}

func statsCmd() *cobra.Command {
	var planetID int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show war statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
				stats, err := c.Statistics(ctx)
				if err != nil {
					return err
				}
				entry := stats.Galaxy
				title := "Galactic Statistics"
				if cmd.Flags().Changed("planet") {
					ps := stats.PlanetStatistics(planetID)
					if ps == nil {
						return fmt.Errorf("no statistics for planet index %d", planetID)
					}
					entry = ps.StatisticsEntry
					if planet, err := ps.Planet(ctx); err == nil {
						title = fmt.Sprintf("Statistics for %s", planet.Name)
					} else {
						title = fmt.Sprintf("Statistics for planet %d", planetID)
					}
				}
				if viper.GetBool("json") {
					return printJSON(entry)
				}
				renderStatsTable(title, entry)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&planetID, "planet", "p", 0, "planet index")
	return cmd
}

func renderStatsTable(title string, e galaxy.StatisticsEntry) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetTitle(title)
	tw.AppendHeader(table.Row{"Statistic", "Value"})
	tw.AppendRow(table.Row{"Missions Won", prettyNumber(e.MissionsWon)})
	tw.AppendRow(table.Row{"Missions Lost", prettyNumber(e.MissionsLost)})
	tw.AppendRow(table.Row{"Mission Time", prettyNumber(e.MissionTime)})
	tw.AppendRow(table.Row{"Terminid Kills", prettyNumber(e.TerminidKills)})
	tw.AppendRow(table.Row{"Automaton Kills", prettyNumber(e.AutomatonKills)})
	tw.AppendRow(table.Row{"Illuminate Kills", prettyNumber(e.IlluminateKills)})
	tw.AppendRow(table.Row{"Bullets Fired", prettyNumber(e.BulletsFired)})
	tw.AppendRow(table.Row{"Bullets Hit", prettyNumber(e.BulletsHit)})
	tw.AppendRow(table.Row{"Time Played", prettyNumber(e.TimePlayed)})
	tw.AppendRow(table.Row{"Deaths", prettyNumber(e.Deaths)})
	tw.AppendRow(table.Row{"Revives", prettyNumber(e.Revives)})
	tw.AppendRow(table.Row{"Friendlies", prettyNumber(e.Friendlies)})
	tw.AppendRow(table.Row{"Mission Success Rate", fmt.Sprintf("%d%%", e.MissionSuccessRate)})
	tw.AppendRow(table.Row{"Accuracy", fmt.Sprintf("%d%%", e.Accuracy)})
	tw.Render()
}

func updatesCmd() *cobra.Command {
	var latest bool
	cmd := &cobra.Command{
		Use:   "updates",
		Short: "Show Steam patch notes",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withClient(cmd.Context(), func(ctx context.Context, c *client.Client) error {
				if latest {
					news, err := c.LatestSteamNews(ctx)
					if err != nil {
						return err
					}
					if news == nil {
						panel("Updates", "No patch notes.")
						return nil
					}
					if viper.GetBool("json") {
						return printJSON(news)
					}
					printSteamNews(news)
					return nil
				}
				items, err := c.SteamNews(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(items)
				}
				for _, news := range items {
					printSteamNews(news)
				}
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&latest, "latest", "l", false, "only the newest patch note")
	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("helldive", version)
		},
	}
}

// --- helpers ---

func withClient(ctx context.Context, fn func(context.Context, *client.Client) error) error {
	cfg, err := config.LoadOptional(viper.GetString("config"))
	if err != nil {
		return err
	}
	if url := viper.GetString("url"); url != "" {
		cfg.API.URL = url
	}
	var logger *slog.Logger
	if viper.GetBool("debug") || cfg.Debug {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	c := client.New(client.Config{
		BaseURL:   cfg.API.URL,
		UserAgent: cfg.API.UserAgent,
		Timeout:   cfg.Timeout(),
		Retries:   cfg.API.Retries,
		Logger:    logger,
	})
	return fn(ctx, c)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printDispatch(d *galaxy.Dispatch) {
	panel(d.Published.UTC().Format("2006-01-02"), d.MessageMarkdown())
}

func printSteamNews(n *galaxy.SteamNews) {
	title := fmt.Sprintf("%s (%s)", n.Title, n.Published.UTC().Format("2006-01-02 15:04 MST"))
	panel(title, n.ContentPlain()+"\n"+n.URL)
}

func panel(title, body string) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetTitle(title)
	tw.AppendRow(table.Row{body})
	tw.Render()
}

func prettyNumber(n int64) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	switch {
	case abs >= 1_000_000_000:
		return fmt.Sprintf("%.1fB", float64(n)/1_000_000_000)
	case abs >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case abs >= 1_000:
		return fmt.Sprintf("%.1fK", float64(n)/1_000)
	}
	return fmt.Sprintf("%d", n)
}
