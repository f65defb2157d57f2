package schedule

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gcal "google.golang.org/api/calendar/v3"

	"yearcal/internal/grid"
)

// mockTableStore serves ranges from an in-memory map.
type mockTableStore struct {
	data     map[string][][]any
	readErr  map[string]error
	writes   map[string][][]any
}

func newMockTableStore() *mockTableStore {
	return &mockTableStore{
		data:    make(map[string][][]any),
		readErr: make(map[string]error),
		writes:  make(map[string][][]any),
	}
}

func (m *mockTableStore) Read(ctx context.Context, rangeA1 string) ([][]any, error) {
	if err := m.readErr[rangeA1]; err != nil {
		return nil, err
	}
	return m.data[rangeA1], nil
}

func (m *mockTableStore) Write(ctx context.Context, rangeA1 string, values [][]any) error {
	m.writes[rangeA1] = values
	return nil
}

type createdEvent struct {
	title  string
	allDay bool
	start  time.Time
	end    time.Time
}

// mockEventStore records mutations and can fail selected operations.
type mockEventStore struct {
	existing      []*gcal.Event
	listErr       error
	listMin       time.Time
	listMax       time.Time
	deleted       []string
	failDeleteIDs map[string]bool
	created       []createdEvent
	failAfter     int // fail the create once this many events exist; -1 disables
	calendarIDs   []string
}

func newMockEventStore() *mockEventStore {
	return &mockEventStore{failDeleteIDs: make(map[string]bool), failAfter: -1}
}

func (m *mockEventStore) ListEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time) ([]*gcal.Event, error) {
	m.calendarIDs = append(m.calendarIDs, calendarID)
	m.listMin, m.listMax = timeMin, timeMax
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.existing, nil
}

func (m *mockEventStore) DeleteEvent(ctx context.Context, calendarID, eventID string) error {
	if m.failDeleteIDs[eventID] {
		return fmt.Errorf("delete failed for %s", eventID)
	}
	m.deleted = append(m.deleted, eventID)
	return nil
}

func (m *mockEventStore) CreateAllDayEvent(ctx context.Context, calendarID, title string, date time.Time) error {
	if m.failAfter >= 0 && len(m.created) >= m.failAfter {
		return errors.New("create failed")
	}
	m.created = append(m.created, createdEvent{title: title, allDay: true, start: date})
	return nil
}

func (m *mockEventStore) CreateTimedEvent(ctx context.Context, calendarID, title string, start, end time.Time) error {
	if m.failAfter >= 0 && len(m.created) >= m.failAfter {
		return errors.New("create failed")
	}
	m.created = append(m.created, createdEvent{title: title, start: start, end: end})
	return nil
}

// mockPrompter answers prompts with canned values.
type mockPrompter struct {
	confirm      bool
	confirmCalls []string
	inputText    string
	inputOK      bool
}

func (m *mockPrompter) Confirm(message string) (bool, error) {
	m.confirmCalls = append(m.confirmCalls, message)
	return m.confirm, nil
}

func (m *mockPrompter) Input(title, message string) (string, bool, error) {
	return m.inputText, m.inputOK, nil
}

func testDate(m time.Month, d int) time.Time {
	year := 2025
	if m < time.April {
		year = 2026
	}
	return time.Date(year, m, d, 0, 0, 0, 0, jst)
}

// newFixture builds a syncer over an empty sheet with the calendar ID set.
func newFixture() (*Syncer, *mockTableStore, *mockEventStore, *mockPrompter) {
	table := newMockTableStore()
	table.data[grid.CalendarIDCell] = [][]any{{"cal-1"}}
	table.data[grid.ScheduleRange] = grid.Normalize(nil, grid.Rows, grid.Cols)
	events := newMockEventStore()
	prompter := &mockPrompter{confirm: true}
	syncer := NewSyncer(table, events, prompter, NoThrottle{}, jst)
	return syncer, table, events, prompter
}

func setCell(table *mockTableStore, slotName string, row int, date time.Time, text string) {
	slot, ok := grid.SlotByName(slotName)
	if !ok {
		panic("unknown slot " + slotName)
	}
	table.data[grid.ScheduleRange][row][slot.DateCol] = grid.Serial(date)
	table.data[grid.ScheduleRange][row][slot.EventCol] = text
}

func TestSync_NoCalendarID(t *testing.T) {
	syncer, table, events, prompter := newFixture()
	table.data[grid.CalendarIDCell] = [][]any{{""}}

	_, err := syncer.SyncFullYear(context.Background())
	assert.ErrorIs(t, err, ErrNoCalendarID)
	assert.Empty(t, prompter.confirmCalls)
	assert.Empty(t, events.calendarIDs)
}

func TestSync_Declined(t *testing.T) {
	syncer, table, events, prompter := newFixture()
	prompter.confirm = false
	setCell(table, "4月", 0, testDate(time.April, 1), "始業式")

	_, err := syncer.SyncFullYear(context.Background())
	assert.ErrorIs(t, err, ErrCancelled)
	assert.Empty(t, events.calendarIDs)
	assert.Empty(t, events.created)
}

func TestSync_NoValidDates(t *testing.T) {
	syncer, _, events, _ := newFixture()

	_, err := syncer.SyncFullYear(context.Background())
	assert.ErrorIs(t, err, grid.ErrNoValidDates)
	assert.Empty(t, events.calendarIDs)
}

func TestSync_FullYear(t *testing.T) {
	syncer, table, events, _ := newFixture()
	setCell(table, "4月", 0, testDate(time.April, 1), "始業式,会議<10:00-12:00>")
	setCell(table, "3月", 23, testDate(time.March, 24), "修了式")
	events.existing = []*gcal.Event{{Id: "old-1"}, {Id: "old-2"}}

	report, err := syncer.SyncFullYear(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"old-1", "old-2"}, events.deleted)
	require.Len(t, events.created, 3)
	assert.Equal(t, "始業式", events.created[0].title)
	assert.True(t, events.created[0].allDay)
	assert.Equal(t, "会議", events.created[1].title)
	assert.Equal(t, 10, events.created[1].start.Hour())
	assert.Equal(t, "修了式", events.created[2].title)

	assert.Equal(t, 2, report.Deleted)
	assert.Equal(t, 3, report.Created)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, []string{"cal-1"}, events.calendarIDs)
}

func TestSync_WindowBounds(t *testing.T) {
	syncer, table, events, _ := newFixture()
	setCell(table, "4月", 4, testDate(time.April, 5), "遠足")
	setCell(table, "3月", 0, testDate(time.March, 24), "修了式")

	report, err := syncer.SyncFullYear(context.Background())
	require.NoError(t, err)

	assert.Equal(t, testDate(time.April, 5), events.listMin)
	assert.Equal(t, 2026, events.listMax.Year())
	assert.Equal(t, time.March, events.listMax.Month())
	assert.Equal(t, 24, events.listMax.Day())
	assert.Equal(t, 23, events.listMax.Hour())
	assert.Equal(t, report.Start, events.listMin)
	assert.Equal(t, report.End, events.listMax)
}

func TestSync_HalfWindows(t *testing.T) {
	syncer, table, events, _ := newFixture()
	setCell(table, "4月", 0, testDate(time.April, 1), "始業式")
	setCell(table, "10月", 0, testDate(time.October, 1), "衣替え")

	_, err := syncer.SyncFirstHalf(context.Background())
	require.NoError(t, err)
	require.Len(t, events.created, 1)
	assert.Equal(t, "始業式", events.created[0].title)
	assert.Equal(t, time.April, events.listMax.Month())

	events.created = nil
	_, err = syncer.SyncSecondHalf(context.Background())
	require.NoError(t, err)
	require.Len(t, events.created, 1)
	assert.Equal(t, "衣替え", events.created[0].title)
	assert.Equal(t, testDate(time.October, 1), events.listMin)
}

func TestSync_DeleteFailureContinues(t *testing.T) {
	syncer, table, events, _ := newFixture()
	setCell(table, "4月", 0, testDate(time.April, 1), "始業式")
	events.existing = []*gcal.Event{{Id: "a"}, {Id: "b"}, {Id: "c"}}
	events.failDeleteIDs["b"] = true

	report, err := syncer.SyncFullYear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, events.deleted)
	assert.Equal(t, 2, report.Deleted)
	assert.Equal(t, 1, report.Created)
}

func TestSync_ListFailureContinues(t *testing.T) {
	syncer, table, events, _ := newFixture()
	setCell(table, "4月", 0, testDate(time.April, 1), "始業式")
	events.listErr = errors.New("quota exceeded")

	report, err := syncer.SyncFullYear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, report.Deleted)
	assert.Equal(t, 1, report.Created)
}

func TestSync_UnresolvableEntrySkipped(t *testing.T) {
	syncer, table, events, _ := newFixture()
	setCell(table, "4月", 0, testDate(time.April, 1), "会議<25:00-26:00>,授業参観")

	report, err := syncer.SyncFullYear(context.Background())
	require.NoError(t, err)
	require.Len(t, events.created, 1)
	assert.Equal(t, "授業参観", events.created[0].title)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.Created)
}

func TestSync_CreateFailureAborts(t *testing.T) {
	syncer, table, events, _ := newFixture()
	setCell(table, "4月", 0, testDate(time.April, 1), "始業式")
	setCell(table, "4月", 1, testDate(time.April, 2), "会議<10:00-12:00>")
	setCell(table, "4月", 2, testDate(time.April, 3), "遠足")
	events.failAfter = 1

	report, err := syncer.SyncFullYear(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrCancelled)
	require.Len(t, events.created, 1)
	assert.Equal(t, 1, report.Created)
}

func TestSync_Idempotent(t *testing.T) {
	// Running twice over the same sheet deletes the first run's output
	// and recreates it, ending in the same state.
	syncer, table, events, _ := newFixture()
	setCell(table, "4月", 0, testDate(time.April, 1), "始業式")

	_, err := syncer.SyncFullYear(context.Background())
	require.NoError(t, err)
	first := events.created

	events.existing = []*gcal.Event{{Id: "run1-event"}}
	report, err := syncer.SyncFullYear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"run1-event"}, events.deleted)
	assert.Equal(t, first[0], events.created[len(events.created)-1])
	assert.Equal(t, 1, report.Created)
}

func TestSyncMonth(t *testing.T) {
	syncer, table, events, prompter := newFixture()
	setCell(table, "4月", 0, testDate(time.April, 1), "始業式")
	setCell(table, "5月", 0, testDate(time.May, 7), "開校記念日")

	report, err := syncer.SyncMonth(context.Background(), "5月")
	require.NoError(t, err)
	require.Len(t, events.created, 1)
	assert.Equal(t, "開校記念日", events.created[0].title)
	assert.Equal(t, 1, report.Created)
	require.Len(t, prompter.confirmCalls, 1)
	assert.Contains(t, prompter.confirmCalls[0], "5月")
}

func TestSyncMonth_UnknownName(t *testing.T) {
	syncer, _, events, prompter := newFixture()

	_, err := syncer.SyncMonth(context.Background(), "13月")
	require.Error(t, err)
	assert.Empty(t, prompter.confirmCalls)
	assert.Empty(t, events.calendarIDs)
}

func TestSyncMonth_OvernightCorrection(t *testing.T) {
	syncer, table, events, _ := newFixture()
	setCell(table, "4月", 9, testDate(time.April, 10), "宿直<23:00-0:30>")

	report, err := syncer.SyncMonth(context.Background(), "4月")
	require.NoError(t, err)
	require.Len(t, events.created, 1)
	assert.Equal(t, 10, events.created[0].start.Day())
	assert.Equal(t, 11, events.created[0].end.Day())
	assert.Equal(t, 0, report.Skipped)
}

// countingThrottle records how often each pacing hook fires.
type countingThrottle struct {
	deletes int
	creates int
}

func (c *countingThrottle) AfterDelete() { c.deletes++ }
func (c *countingThrottle) AfterCreate() { c.creates++ }

func TestSync_ThrottleOnlyAfterSuccess(t *testing.T) {
	_, table, events, prompter := newFixture()
	throttle := &countingThrottle{}
	syncer := NewSyncer(table, events, prompter, throttle, jst)
	setCell(table, "4月", 0, testDate(time.April, 1), "始業式,会議<25:00-26:00>")
	events.existing = []*gcal.Event{{Id: "a"}, {Id: "b"}, {Id: "c"}}
	events.failDeleteIDs["b"] = true

	report, err := syncer.SyncFullYear(context.Background())
	require.NoError(t, err)
	assert.Equal(t, report.Deleted, throttle.deletes, "failed deletions must not pace")
	assert.Equal(t, 2, throttle.deletes)
	assert.Equal(t, report.Created, throttle.creates, "skipped entries must not pace")
	assert.Equal(t, 1, throttle.creates)
}

func TestSyncFullYear_OvernightNotCorrected(t *testing.T) {
	syncer, table, events, _ := newFixture()
	setCell(table, "4月", 9, testDate(time.April, 10), "宿直<23:00-0:30>")

	_, err := syncer.SyncFullYear(context.Background())
	require.NoError(t, err)
	require.Len(t, events.created, 1)
	assert.True(t, events.created[0].start.After(events.created[0].end))
}
