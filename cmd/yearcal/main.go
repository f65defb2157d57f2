package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/sheets/v4"

	"yearcal/internal/auth"
	calclient "yearcal/internal/calendar"
	"yearcal/internal/cli"
	"yearcal/internal/config"
	"yearcal/internal/edit"
	"yearcal/internal/schedule"
	"yearcal/internal/sheet"
	"yearcal/internal/ui"
)

var CLI struct {
	Config                string `help:"Config file path (JSON)." type:"path"`
	SpreadsheetID         string `help:"Google Sheets spreadsheet ID." name:"spreadsheet-id"`
	SheetName             string `help:"Sheet (tab) name holding the schedule." name:"sheet-name"`
	GoogleCredentialsPath string `help:"Path to Google OAuth credentials JSON." name:"google-credentials-path" type:"path"`
	TokenPath             string `help:"Path to the OAuth token file." name:"token-path" type:"path"`

	Sync     cli.SyncCmd     `cmd:"" help:"行事予定をGoogleカレンダーに流し込む。"`
	Holidays cli.HolidaysCmd `cmd:"" help:"祝日表と行事予定の間の一括編集。"`
	Weekly   cli.WeeklyCmd   `cmd:"" help:"毎週の予定の一括追加・削除。"`
	Export   cli.ExportCmd   `cmd:"" help:"行事予定を.icsファイルに書き出す。"`
}

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Optional .env for local runs; absence is not an error.
	_ = godotenv.Load()

	kctx := kong.Parse(&CLI,
		kong.Name("yearcal"),
		kong.Description("年間行事予定表をGoogleカレンダーに流し込むツール"),
		kong.UsageOnError(),
	)

	appCtx, err := buildContext(context.Background())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := kctx.Run(appCtx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func buildContext(ctx context.Context) (*cli.Context, error) {
	cfg, err := config.LoadConfig(CLI.Config, config.Flags{
		SpreadsheetID:         CLI.SpreadsheetID,
		SheetName:             CLI.SheetName,
		GoogleCredentialsPath: CLI.GoogleCredentialsPath,
		TokenPath:             CLI.TokenPath,
	})
	if err != nil {
		return nil, err
	}

	clientID, clientSecret, err := config.LoadGoogleCredentials(cfg.GoogleCredentialsPath)
	if err != nil {
		return nil, err
	}

	oauthConfig := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  "https://accounts.google.com/o/oauth2/auth",
			TokenURL: "https://oauth2.googleapis.com/token",
		},
		RedirectURL: "http://127.0.0.1:8080",
		Scopes:      []string{gcal.CalendarEventsScope, sheets.SpreadsheetsScope},
	}

	tokenStore := auth.NewFileTokenStore(cfg.TokenPath)
	httpClient, err := auth.GetAuthenticatedClient(ctx, oauthConfig, tokenStore)
	if err != nil {
		return nil, fmt.Errorf("authentication failed: %w", err)
	}

	table, err := sheet.NewGoogleStore(ctx, httpClient, cfg.SpreadsheetID, cfg.SheetName)
	if err != nil {
		return nil, err
	}
	events, err := calclient.NewGoogleStore(ctx, httpClient)
	if err != nil {
		return nil, err
	}

	loc, err := time.LoadLocation(schedule.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone: %w", err)
	}

	prompter := ui.NewHuhPrompter()
	throttle := schedule.FixedThrottle{
		DeleteWait: time.Duration(cfg.DeleteWaitMillis) * time.Millisecond,
		CreateWait: time.Duration(cfg.CreateWaitMillis) * time.Millisecond,
	}

	return &cli.Context{
		Syncer:   schedule.NewSyncer(table, events, prompter, throttle, loc),
		Exporter: schedule.NewExporter(table, loc),
		Editor:   edit.NewEditor(table, loc),
		Prompter: prompter,
		Timezone: loc,
	}, nil
}
