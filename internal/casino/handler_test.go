package casino

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) (*fiber.App, *Service) {
	t.Helper()
	s, database := newTestCasino(t)
	seedUser(t, database, "u1", 1000)

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("uid", "u1")
		return c.Next()
	})
	RegisterRoutes(app, s)
	return app, s
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestRouletteRouteRejectsInvalidColor(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := postJSON(t, app, "/casino/roulette",
		`{"bets":[{"color":"green","bet":10}]}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "invalid_color", body["code"])
}

func TestRouletteRouteSettles(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := postJSON(t, app, "/casino/roulette",
		`{"bets":[{"color":"black","bet":10},{"color":"red","bet":10}]}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, float64(20), body["totalBet"])
	assert.Contains(t, []interface{}{"black", "red", "gold", "house"}, body["resultColor"])
}

func TestBlackjackStateRouteInactive(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest("GET", "/casino/blackjack/state", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, false, out["active"])
}

func TestHitRouteWithoutSession(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := postJSON(t, app, "/casino/blackjack/hit", `{}`)
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "no_active_session", body["code"])
}

func TestLeaderboardRoute(t *testing.T) {
	app, s := newTestApp(t)
	s.board.Record("u1", 120)
	s.stats.Record(100, 220)

	req := httptest.NewRequest("GET", "/casino/leaderboard?n=5", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out struct {
		Top   []LeaderboardEntry `json:"top"`
		Stats StatsSnapshot      `json:"stats"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.Len(t, out.Top, 1)
	assert.Equal(t, int64(120), out.Top[0].Profit)
	assert.Equal(t, int64(100), out.Stats.TotalBet)
}
