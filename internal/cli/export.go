package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"yearcal/internal/grid"
)

// ExportCmd renders the parsed schedule to an iCalendar file without
// touching the remote calendar.
type ExportCmd struct {
	Out    string `short:"o" help:"出力先の.icsファイル。" default:"schedule.ics"`
	Period string `help:"出力範囲。" enum:"all,first-half,second-half" default:"all"`
}

func (c *ExportCmd) Run(appCtx *Context) error {
	var slots []grid.Slot
	switch c.Period {
	case "first-half":
		slots = grid.FirstHalf()
	case "second-half":
		slots = grid.SecondHalf()
	default:
		slots = grid.Slots()
	}

	f, err := os.Create(c.Out)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	count, err := appCtx.Exporter.Export(context.Background(), slots, f)
	if err != nil {
		if errors.Is(err, grid.ErrNoValidDates) {
			printError(msgNoValidDates)
			os.Remove(c.Out)
			return nil
		}
		return fmt.Errorf("エラーが発生しました: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close output file: %w", err)
	}
	printSuccess(fmt.Sprintf("%d件の予定を%sに書き出しました。", count, c.Out))
	return nil
}
