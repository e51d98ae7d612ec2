// Package main runs the fitstats MCP server over stdio (for local Cursor use).
// It exposes the workout log and the analytics snapshot signals as tools,
// so an assistant can reason about training without raw SQL access.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/2beens/fitstats/internal/config"
	"github.com/2beens/fitstats/internal/db"
	insightsmcp "github.com/2beens/fitstats/internal/insights/mcp"
	"github.com/2beens/fitstats/internal/workouts"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path to TOML config file")
	flag.Parse()

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         cfg.PostgresHost,
		DBPort:         cfg.PostgresPort,
		DBName:         cfg.PostgresDBName,
		TracingEnabled: false,
	})
	if err != nil {
		log.Fatalf("db pool: %v", err)
	}
	defer dbPool.Close()

	workoutsRepo := workouts.NewRepo(dbPool)
	server := insightsmcp.NewServer(dbPool, workoutsRepo)

	if err := server.Run(context.Background(), &mcp.StdioTransport{}); err != nil {
		log.Fatal(err)
	}
}
