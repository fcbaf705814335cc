package db

import (
	"fmt"

	"github.com/dtnitsch/term-ranker/internal/common"
	dbpkg "github.com/dtnitsch/term-ranker/pkg/db"
	"github.com/urfave/cli/v2"
)

// OpenFromFlag opens the database named by --db, or the default one.
func OpenFromFlag(c *cli.Context) (*dbpkg.DB, error) {
	path := c.String("db")
	if path == "" {
		path = dbpkg.DefaultPath()
	}
	database, err := dbpkg.OpenExisting(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

// GetRunIDOrLatest returns the run ID from args, or the latest run if not provided
func GetRunIDOrLatest(c *cli.Context, database *dbpkg.DB) (int64, error) {
	if c.NArg() == 0 {
		runs, err := database.ListRuns(1)
		if err != nil {
			return 0, fmt.Errorf("failed to get latest run: %w", err)
		}
		if len(runs) == 0 {
			return 0, fmt.Errorf("no runs found. Run 'term-ranker count --output %s' first", database.Path())
		}
		return runs[0].RunID, nil
	}
	return common.ParseID(c.Args().First())
}
