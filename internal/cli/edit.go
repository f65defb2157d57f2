package cli

import (
	"context"
	"fmt"

	"yearcal/internal/edit"
)

// HolidaysCmd groups the holiday-table batch editors.
type HolidaysCmd struct {
	Add    HolidaysAddCmd    `cmd:"" help:"祝日表の祝日名を該当日の行事予定に追加する。"`
	Remove HolidaysRemoveCmd `cmd:"" help:"祝日表の祝日名を行事予定から削除する。"`
}

type HolidaysAddCmd struct{}

func (c *HolidaysAddCmd) Run(appCtx *Context) error {
	updated, err := appCtx.Editor.AddHolidays(context.Background())
	return finishEdit(updated, err,
		"%d件の祝日を行事予定に追加しました。",
		"追加する祝日はありませんでした。")
}

type HolidaysRemoveCmd struct{}

func (c *HolidaysRemoveCmd) Run(appCtx *Context) error {
	updated, err := appCtx.Editor.RemoveHolidays(context.Background())
	return finishEdit(updated, err,
		"%d件の祝日を行事予定から削除しました。",
		"削除する祝日はありませんでした。")
}

// WeeklyCmd groups the recurring weekly entry editors.
type WeeklyCmd struct {
	Add    WeeklyAddCmd    `cmd:"" help:"毎週決まった曜日に予定を追加する。"`
	Remove WeeklyRemoveCmd `cmd:"" help:"予定内容の一致するものをすべての日から削除する。"`
}

type WeeklyAddCmd struct {
	Weekday string `help:"曜日（日、月、火、水、木、金、土）。省略時は対話で入力。"`
	Text    string `help:"追加する予定内容。省略時は対話で入力。"`
}

func (c *WeeklyAddCmd) Run(appCtx *Context) error {
	label := c.Weekday
	if label == "" {
		entered, ok, err := appCtx.Prompter.Input(
			"曜日を選択",
			"追加したい曜日を入力してください（日、月、火、水、木、金、土）:")
		if err != nil {
			return err
		}
		if !ok {
			printInfo(msgCancelled)
			return nil
		}
		label = entered
	}

	weekday, ok := edit.WeekdayByLabel(label)
	if !ok {
		printError("有効な曜日を入力してください（日、月、火、水、木、金、土）。")
		return nil
	}

	text := c.Text
	if text == "" {
		entered, ok, err := appCtx.Prompter.Input(
			"予定内容を入力",
			fmt.Sprintf("毎週%s曜日に追加する予定内容を入力してください:", label))
		if err != nil {
			return err
		}
		if !ok || entered == "" {
			printInfo(msgCancelled)
			return nil
		}
		text = entered
	}

	updated, err := appCtx.Editor.AddWeekly(context.Background(), weekday, text)
	return finishEdit(updated, err,
		"%d件の"+label+"曜日に予定を追加しました。",
		"追加する"+label+"曜日の日付はありませんでした。")
}

type WeeklyRemoveCmd struct {
	Text string `help:"削除する予定内容。省略時は対話で入力。"`
}

func (c *WeeklyRemoveCmd) Run(appCtx *Context) error {
	text := c.Text
	if text == "" {
		entered, ok, err := appCtx.Prompter.Input(
			"予定内容を入力",
			"行事予定から削除したい予定内容を入力してください:")
		if err != nil {
			return err
		}
		if !ok || entered == "" {
			printInfo(msgCancelled)
			return nil
		}
		text = entered
	}

	updated, err := appCtx.Editor.RemoveWeekly(context.Background(), text)
	return finishEdit(updated, err,
		"%d件の予定を行事予定から削除しました。",
		"削除する予定はありませんでした。")
}
