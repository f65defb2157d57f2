package cli

import (
	"context"

	"yearcal/internal/grid"
)

// SyncCmd groups the four calendar replay commands.
type SyncCmd struct {
	All        SyncAllCmd        `cmd:"" help:"全年度（4月〜翌3月）を流し込む。"`
	FirstHalf  SyncFirstHalfCmd  `cmd:"" name:"first-half" help:"前期（4-9月）のみ流し込む。"`
	SecondHalf SyncSecondHalfCmd `cmd:"" name:"second-half" help:"後期（10-3月）のみ流し込む。"`
	Month      SyncMonthCmd      `cmd:"" help:"1か月分のみ流し込む。"`
}

type SyncAllCmd struct{}

func (c *SyncAllCmd) Run(appCtx *Context) error {
	report, err := appCtx.Syncer.SyncFullYear(context.Background())
	return finishSync(report, err,
		"年間行事予定のカレンダーへの流し込みが終了しました。\nカレンダーの予定はスプレッドシートの内容で更新されました。")
}

type SyncFirstHalfCmd struct{}

func (c *SyncFirstHalfCmd) Run(appCtx *Context) error {
	report, err := appCtx.Syncer.SyncFirstHalf(context.Background())
	return finishSync(report, err,
		"前期（4-9月）の行事予定のカレンダーへの流し込みが終了しました。\nカレンダーの予定はスプレッドシートの内容で更新されました。")
}

type SyncSecondHalfCmd struct{}

func (c *SyncSecondHalfCmd) Run(appCtx *Context) error {
	report, err := appCtx.Syncer.SyncSecondHalf(context.Background())
	return finishSync(report, err,
		"後期（10-3月）の行事予定のカレンダーへの流し込みが終了しました。\nカレンダーの予定はスプレッドシートの内容で更新されました。")
}

type SyncMonthCmd struct {
	Month string `arg:"" optional:"" help:"対象の月（4月〜3月）。省略時は対話で入力。"`
}

func (c *SyncMonthCmd) Run(appCtx *Context) error {
	name := c.Month
	if name == "" {
		entered, ok, err := appCtx.Prompter.Input(
			"月を選択",
			"カレンダーに流し込む月を入力してください（例：4月、5月、...、3月）:")
		if err != nil {
			return err
		}
		if !ok {
			printInfo(msgCancelled)
			return nil
		}
		name = entered
	}

	if _, ok := grid.SlotByName(name); !ok {
		printError("有効な月を入力してください（例：4月、5月、...、3月）。")
		return nil
	}

	report, err := appCtx.Syncer.SyncMonth(context.Background(), name)
	return finishSync(report, err,
		name+"の行事予定のカレンダーへの流し込みが終了しました。\nカレンダーの予定はスプレッドシートの内容で更新されました。")
}
