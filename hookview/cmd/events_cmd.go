package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/oniononion36/pytorch/recording"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Dump the recorded hook-scope events",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		reader := recording.NewReader(databasePath(cmd))
		defer reader.Close()

		reader.MapTable(recording.ScopeEventTable, recording.ScopeEvent{})

		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")
		where, _ := cmd.Flags().GetString("where")

		results, totalCount, err := reader.Query(
			context.Background(),
			recording.ScopeEventTable,
			recording.QueryParams{
				Where:  where,
				Limit:  limit,
				Offset: offset,
			})
		dieOnErr(err)

		for _, r := range results {
			event := r.(*recording.ScopeEvent)
			fmt.Printf("%-35s %-12s %-8s %5d  %s\n",
				time.Unix(0, event.Timestamp).Format(time.RFC3339Nano),
				event.StateName,
				event.Action,
				event.Depth,
				event.Reason)
		}

		fmt.Printf("Showing %d of %d events\n", len(results), totalCount)
	},
}

func init() {
	eventsCmd.Flags().Int("limit", 50, "maximum number of events to show")
	eventsCmd.Flags().Int("offset", 0, "number of events to skip")
	eventsCmd.Flags().String("where", "",
		"SQL filter, e.g. \"Action = 'push'\"")
	rootCmd.AddCommand(eventsCmd)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
