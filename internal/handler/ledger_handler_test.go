package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"storeroom/internal/model"
	"storeroom/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

type fakeLedger struct {
	movements []model.Movement
}

func (l *fakeLedger) Append(m *model.Movement) error {
	l.movements = append(l.movements, *m)
	return nil
}

func (l *fakeLedger) List(filter repository.MovementFilter) ([]model.Movement, error) {
	out := []model.Movement{}
	for _, m := range l.movements {
		if filter.Type != "" && m.Type != filter.Type {
			continue
		}
		if !filter.From.IsZero() && m.CreatedAt.Before(filter.From) {
			continue
		}
		if !filter.To.IsZero() && !m.CreatedAt.Before(filter.To) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (l *fakeLedger) DeleteOlderThan(cutoff time.Time) (int64, error) {
	kept := l.movements[:0]
	var deleted int64
	for _, m := range l.movements {
		if m.CreatedAt.Before(cutoff) {
			deleted++
			continue
		}
		kept = append(kept, m)
	}
	l.movements = kept
	return deleted, nil
}

func (l *fakeLedger) StockFlow(start, end time.Time) ([]repository.StockFlowPoint, error) {
	return nil, nil
}

func entry(name string, t model.MovementType, age time.Duration) model.Movement {
	m := model.Movement{ItemName: name, Type: t, Quantity: 1, Unit: "KG", Username: "manager"}
	m.CreatedAt = time.Now().Add(-age)
	return m
}

func newLedgerApp(ledger *fakeLedger) *fiber.App {
	h := NewLedgerHandler(ledger, 30)
	app := fiber.New()
	app.Get("/movements", h.GetMovements)
	app.Get("/movements/export", h.Export)
	return app
}

func listMovements(t *testing.T, app *fiber.App, target string) []model.Movement {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest("GET", target, nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	var body struct {
		Movements []model.Movement `json:"movements"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Movements
}

func TestGetMovementsPurgesOldEntries(t *testing.T) {
	ledger := &fakeLedger{movements: []model.Movement{
		entry("Rice", model.MovePurchase, time.Hour),
		entry("Old Rice", model.MovePurchase, 31*24*time.Hour),
	}}
	app := newLedgerApp(ledger)

	movements := listMovements(t, app, "/movements")
	require.Len(t, movements, 1)
	require.Equal(t, "Rice", movements[0].ItemName)
	require.Len(t, ledger.movements, 1)
}

func TestGetMovementsTypeFilter(t *testing.T) {
	ledger := &fakeLedger{movements: []model.Movement{
		entry("Rice", model.MovePurchase, time.Hour),
		entry("Rice", model.MoveKitchen, time.Hour),
		entry("Salt", model.MoveAdjust, time.Hour),
	}}
	app := newLedgerApp(ledger)

	movements := listMovements(t, app, "/movements?type=KITCHEN")
	require.Len(t, movements, 1)
	require.Equal(t, model.MoveKitchen, movements[0].Type)
}

func TestGetMovementsBadDate(t *testing.T) {
	app := newLedgerApp(&fakeLedger{})

	resp, err := app.Test(httptest.NewRequest("GET", "/movements?from_date=garbage", nil))
	require.NoError(t, err)
	require.Equal(t, 400, resp.StatusCode)
}

func TestGetMovementsDateRangeInclusive(t *testing.T) {
	now := time.Now()
	today := now.Format("2006-01-02")
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	rice := entry("Rice", model.MovePurchase, 0)
	rice.CreatedAt = startOfDay.Add(time.Minute)
	ledger := &fakeLedger{movements: []model.Movement{
		rice,
		entry("Flour", model.MovePurchase, 5*24*time.Hour),
	}}
	app := newLedgerApp(ledger)

	movements := listMovements(t, app, "/movements?from_date="+today+"&to_date="+today)
	require.Len(t, movements, 1)
	require.Equal(t, "Rice", movements[0].ItemName)
}

func TestExportEmptyLedger(t *testing.T) {
	app := newLedgerApp(&fakeLedger{})

	resp, err := app.Test(httptest.NewRequest("GET", "/movements/export", nil))
	require.NoError(t, err)
	require.Equal(t, 404, resp.StatusCode)
}

func TestExportWorkbook(t *testing.T) {
	ledger := &fakeLedger{movements: []model.Movement{
		entry("Rice", model.MovePurchase, time.Hour),
	}}
	app := newLedgerApp(ledger)

	resp, err := app.Test(httptest.NewRequest("GET", "/movements/export", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Content-Disposition"), "movements_all_")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NotEmpty(t, body)
	// xlsx files are zip archives.
	require.Equal(t, []byte{'P', 'K'}, body[:2])
}
