package cmd

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of a recording database",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		db, err := sql.Open("sqlite3", databasePath(cmd))
		dieOnErr(err)
		defer db.Close()

		rows, err := db.Query(
			"SELECT name FROM sqlite_master WHERE type='table'")
		dieOnErr(err)
		defer rows.Close()

		for rows.Next() {
			var name string
			dieOnErr(rows.Scan(&name))
			fmt.Println(name)
		}

		dieOnErr(rows.Err())
	},
}

func init() {
	rootCmd.AddCommand(tablesCmd)
}
