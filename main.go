package main

import (
	"context"
	"flag"

	"github.com/sunxiaojia123/feishu-duowei-crud/internal/app"
	"github.com/sunxiaojia123/feishu-duowei-crud/internal/bitable"
	"github.com/sunxiaojia123/feishu-duowei-crud/internal/record"
	"github.com/sunxiaojia123/feishu-duowei-crud/internal/table"

	"github.com/rs/zerolog/log"
)

func main() {
	app.SetupEnvironment()

	// Parse command line flags
	key := flag.String("key", "display", "Field to filter on")
	value := flag.String("value", string(record.DisplayEffective), "Value to filter for (key or label for display)")
	flag.Parse()

	log.Info().
		Str("key", *key).
		Str("value", *value).
		Msg("Starting Bitable record query")

	// Load configuration
	config, err := app.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx := context.Background()

	// Initialize clients
	transport := bitable.NewClient(config.AppID, config.AppSecret)
	client := table.NewClientWithAPI(config.AppToken, config.TableID, transport)

	records, err := client.QueryRecords(ctx, *key, *value)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to query records")
	}

	for _, rec := range records {
		log.Info().
			Str("record_id", rec.RecordID).
			Str("app_id", rec.Fields.AppID).
			Str("name", rec.Fields.Name).
			Str("display", string(rec.Fields.Display)).
			Str("account", rec.Fields.Account).
			Int64("update_time", rec.Fields.UpdateTime).
			Msg("Record")
	}

	log.Info().
		Int("records", len(records)).
		Int64("api_calls", transport.GetAPICallCount()).
		Msg("Completed record query")
}
