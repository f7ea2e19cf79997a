package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/codetime-dev/codetime/internal/github"
	"github.com/codetime-dev/codetime/internal/gitlocal"
	"github.com/codetime-dev/codetime/internal/models"
	"github.com/codetime-dev/codetime/internal/service"
)

var statsFlags struct {
	timeout       int
	bonus         int
	timezone      string
	includeMerges bool
	includeBots   bool
	maxCommits    int
	since         string
	until         string
	local         string
	jsonOut       bool
}

var statsCmd = &cobra.Command{
	Use:   "stats [owner/repo]",
	Short: "Compute coding-session stats for a repository",
	Long: `Fetches the repository's commit history (from the GitHub API, or a
local clone with --local), groups it into coding sessions and prints the
aggregated stats.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func init() {
	statsCmd.Flags().IntVar(&statsFlags.timeout, "timeout", models.DefaultSessionTimeoutMinutes,
		"session timeout in minutes")
	statsCmd.Flags().IntVar(&statsFlags.bonus, "bonus", models.DefaultFirstCommitBonusMinutes,
		"first-commit bonus in minutes")
	statsCmd.Flags().StringVar(&statsFlags.timezone, "tz", models.DefaultTimezone,
		"IANA timezone for day bucketing")
	statsCmd.Flags().BoolVar(&statsFlags.includeMerges, "include-merges", false, "count merge commits")
	statsCmd.Flags().BoolVar(&statsFlags.includeBots, "include-bots", false, "count bot commits")
	statsCmd.Flags().IntVar(&statsFlags.maxCommits, "max-commits", 0, "cap on fetched commits (0 = no cap)")
	statsCmd.Flags().StringVar(&statsFlags.since, "since", "", "only commits after this time (RFC3339 or YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsFlags.until, "until", "", "only commits before this time (RFC3339 or YYYY-MM-DD)")
	statsCmd.Flags().StringVar(&statsFlags.local, "local", "", "path to a local clone to analyze instead of the API")
	statsCmd.Flags().BoolVar(&statsFlags.jsonOut, "json", false, "print the raw JSON envelope")
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	opts := models.StatsOptions{
		SessionTimeoutMinutes:   statsFlags.timeout,
		FirstCommitBonusMinutes: statsFlags.bonus,
		Timezone:                statsFlags.timezone,
		IncludeMerges:           statsFlags.includeMerges,
		IncludeBots:             statsFlags.includeBots,
		MaxCommits:              statsFlags.maxCommits,
	}

	var err error
	if opts.Since, err = parseTimeFlag("since", statsFlags.since); err != nil {
		return err
	}
	if opts.Until, err = parseTimeFlag("until", statsFlags.until); err != nil {
		return err
	}

	var source service.CommitSource
	var ref string
	switch {
	case statsFlags.local != "":
		abs, err := filepath.Abs(statsFlags.local)
		if err != nil {
			return err
		}
		source = gitlocal.NewSource(abs, logger)
		ref = "local/" + filepath.Base(abs)
	case len(args) == 1:
		source = github.NewClient(viper.GetString("token"), logger)
		ref = args[0]
	default:
		return fmt.Errorf("a repository reference or --local path is required")
	}

	svc := service.New(source, nil, logger)
	result, err := svc.RepoStats(cmd.Context(), ref, opts)
	if err != nil {
		return err
	}

	if statsFlags.jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return renderRepoStats(os.Stdout, result)
}

func parseTimeFlag(name, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid --%s value %q (want RFC3339 or YYYY-MM-DD)", name, value)
}
