// Package cli defines the kong command structs and maps the sync and
// editor outcomes to the user-facing Japanese messages.
package cli

import (
	"errors"
	"fmt"
	"time"

	"yearcal/internal/edit"
	"yearcal/internal/grid"
	"yearcal/internal/schedule"
	"yearcal/internal/ui"
)

// Context carries the constructed services into the command Run methods.
type Context struct {
	Syncer   *schedule.Syncer
	Exporter *schedule.Exporter
	Editor   *edit.Editor
	Prompter ui.Prompter
	Timezone *time.Location
}

const (
	msgCancelled    = "操作をキャンセルしました。"
	msgNoCalendarID = "カレンダーIDが指定されていません。\nカレンダーIDを入力して再度実行してください。\n操作を終了します"
	msgNoValidDates = "スプレッドシートに有効な日付が見つかりません。処理を中止します。"
	msgNoYear       = "A1セルに有効な西暦を入力してください。"
)

// finishSync prints the outcome of a sync run. The user-level abort
// conditions end the command without an error exit; anything else
// propagates to main.
func finishSync(report *schedule.Report, err error, doneMsg string) error {
	switch {
	case err == nil:
		printSuccess(doneMsg)
		printInfo(fmt.Sprintf("削除: %d件 / 作成: %d件 / スキップ: %d件", report.Deleted, report.Created, report.Skipped))
		return nil
	case errors.Is(err, schedule.ErrCancelled):
		printInfo(msgCancelled)
		return nil
	case errors.Is(err, schedule.ErrNoCalendarID):
		printError(msgNoCalendarID)
		return nil
	case errors.Is(err, grid.ErrNoValidDates):
		printError(msgNoValidDates)
		return nil
	default:
		if report != nil {
			printInfo(fmt.Sprintf("中断までの処理: 削除 %d件 / 作成 %d件 / スキップ %d件", report.Deleted, report.Created, report.Skipped))
		}
		return fmt.Errorf("エラーが発生しました: %w", err)
	}
}

// finishEdit prints the outcome of a batch editor run. zeroMsg is shown
// when no cell changed; doneMsg receives the count.
func finishEdit(updated int, err error, doneMsg, zeroMsg string) error {
	switch {
	case err == nil && updated == 0:
		printInfo(zeroMsg)
		return nil
	case err == nil:
		printSuccess(fmt.Sprintf(doneMsg, updated))
		return nil
	case errors.Is(err, edit.ErrNoYear):
		printError(msgNoYear)
		return nil
	default:
		return fmt.Errorf("エラーが発生しました: %w", err)
	}
}
