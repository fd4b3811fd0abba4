// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quixsi/luxeplate/internal/advisor"
	"github.com/quixsi/luxeplate/internal/auth"
	"github.com/quixsi/luxeplate/internal/controller"
	"github.com/quixsi/luxeplate/internal/db"
	"github.com/quixsi/luxeplate/internal/db/jsondb"
	"github.com/quixsi/luxeplate/internal/editor"
	"github.com/quixsi/luxeplate/internal/model"
	"github.com/quixsi/luxeplate/internal/payment"
)

type response struct {
	Code    string           `json:"code"`
	Message string           `json:"message"`
	State   controller.State `json:"state"`
}

type client struct {
	t    *testing.T
	base string
	http *http.Client
}

func newTestServer(t *testing.T, opts Options) *client {
	t.Helper()
	store, err := jsondb.Open(t.TempDir())
	require.NoError(t, err)
	registry := controller.NewRegistry(controller.Deps{
		Store:   store,
		Auth:    auth.NewGate(store, true),
		Advisor: advisor.New(nil, nil),
		Payment: payment.NewSimulator("gbp"),
	})
	t.Cleanup(registry.Wait)

	srv := httptest.NewServer(NewServer("luxeplate-test", registry, sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef")), opts))
	t.Cleanup(srv.Close)
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &client{t: t, base: srv.URL, http: &http.Client{Jar: jar}}
}

func (c *client) do(method, path string, body any) (int, response) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, c.base+path, &buf)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()
	var out response
	require.NoError(c.t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHealthAndNotFound(t *testing.T) {
	c := newTestServer(t, Options{})
	resp, err := c.http.Get(c.base + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	status, out := c.do(http.MethodGet, "/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "PAGE_NOT_FOUND", out.Code)
}

func TestBookingOverHTTP(t *testing.T) {
	c := newTestServer(t, Options{})

	status, out := c.do(http.MethodGet, "/api/state", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, controller.ViewHome, out.State.View)
	assert.Len(t, out.State.Chefs, 3)

	status, out = c.do(http.MethodGet, "/api/search?location=london&cuisine=Japanese&guests=4", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, controller.ViewSearchResults, out.State.View)
	assert.Len(t, out.State.Chefs, 1)
	assert.Equal(t, 4, out.State.Search.Guests)

	status, _ = c.do(http.MethodGet, "/api/search?guests=lots", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, out = c.do(http.MethodPost, "/api/chefs/"+db.ChefKenjiID.String()+"/select", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, controller.ViewChefProfile, out.State.View)

	status, out = c.do(http.MethodPost, "/api/menus/"+db.MenuOmakaseID.String()+"/book", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.True(t, out.State.AuthPrompt)
	assert.Equal(t, controller.ViewChefProfile, out.State.View)

	status, out = c.do(http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Ada", "email": "ada@example.com", "password": "secret",
	})
	require.Equal(t, http.StatusOK, status)
	require.NotNil(t, out.State.Session)
	assert.Empty(t, out.State.Session.PasswordHash)

	status, out = c.do(http.MethodPost, "/api/menus/"+db.MenuOmakaseID.String()+"/book", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, controller.ViewBookingFlow, out.State.View)

	booking := map[string]any{
		"date": "2024-12-24", "time": "19:30", "guests": 4,
		"card": map[string]string{"cardholder": "Ada", "payment_method": payment.DeclinedTestMethod},
	}
	status, out = c.do(http.MethodPost, "/api/booking", booking)
	assert.Equal(t, http.StatusPaymentRequired, status)
	assert.Equal(t, "PAYMENT_FAILED", out.Code)
	assert.Equal(t, controller.ViewBookingFlow, out.State.View)

	booking["card"] = map[string]string{"cardholder": "Ada", "payment_method": "pm_card_visa"}
	status, out = c.do(http.MethodPost, "/api/booking", booking)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, controller.ViewBookingSuccess, out.State.View)
	require.NotNil(t, out.State.Focus.LastBooking)
	assert.Equal(t, 800.0, out.State.Focus.LastBooking.TotalPrice)

	status, out = c.do(http.MethodPost, "/api/tabs/events", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, out.State.Bookings, 1)

	status, out = c.do(http.MethodPost, "/api/auth/logout", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, out.State.Session)
}

func TestAdminOverviewOverHTTP(t *testing.T) {
	c := newTestServer(t, Options{})

	status, _ := c.do(http.MethodGet, "/api/admin/overview", nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = c.do(http.MethodPost, "/api/admin/login-request", nil)
	require.Equal(t, http.StatusOK, status)
	status, out := c.do(http.MethodPost, "/api/admin/login", map[string]string{"email": "julian@luxeplate.com", "password": "pw"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, controller.ViewAdminLogin, out.State.View)

	status, out = c.do(http.MethodPost, "/api/admin/login", map[string]string{"email": auth.AdminEmail, "password": "pw"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, controller.ViewAdmin, out.State.View)

	resp, err := c.http.Get(c.base + "/api/admin/overview?flat=true")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	flat := map[string]any{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&flat))
	assert.Equal(t, 3.0, flat["active_chefs"])
	assert.Equal(t, 1.0, flat["users_by_role.ADMIN"])
	assert.Contains(t, flat, "jobs.0.title")
}

func TestOpsArea(t *testing.T) {
	c := newTestServer(t, Options{OpsUser: "ops", OpsPassword: "secret"})
	c.do(http.MethodGet, "/api/state", nil)

	resp, err := c.http.Get(c.base + "/ops/sessions")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, c.base+"/ops/sessions", nil)
	require.NoError(t, err)
	req.SetBasicAuth("ops", "secret")
	resp, err = c.http.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body struct {
		Sessions int `json:"sessions"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, 1, body.Sessions)
}

func TestReadOnly(t *testing.T) {
	c := newTestServer(t, Options{FreezeAt: time.Now().Add(-time.Minute)})

	status, _ := c.do(http.MethodGet, "/api/state", nil)
	assert.Equal(t, http.StatusOK, status)

	status, out := c.do(http.MethodPost, "/api/chefs/"+db.ChefKenjiID.String()+"/select", nil)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "READ_ONLY", out.Code)
}

func TestMenuEditingOverHTTP(t *testing.T) {
	c := newTestServer(t, Options{})
	status, out := c.do(http.MethodPost, "/api/chef/login", map[string]string{"email": "kenji@luxeplate.com", "password": "pw"})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, controller.ViewChefDashboard, out.State.View)

	menu := "/api/chefs/" + db.ChefKenjiID.String() + "/menus/" + db.MenuOmakaseID.String()
	starter := menu + "/courses/starter/dishes"
	starters := func(out response) []model.Dish {
		t.Helper()
		require.NotNil(t, out.State.MyChef)
		require.Len(t, out.State.MyChef.Menus, 1)
		return out.State.MyChef.Menus[0].Courses.Starter
	}

	status, out = c.do(http.MethodDelete, starter+"/0", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.Equal(t, "INVALID", out.Code)
	assert.Equal(t, editor.ErrLastDish.Error(), out.Message)
	assert.Len(t, starters(out), 1)

	status, out = c.do(http.MethodPost, starter, nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, starters(out), 2)

	status, out = c.do(http.MethodPost, starter+"/1/ingredients", map[string]string{"input": "Miso Paste, ginger, miso paste"})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Miso Paste", "ginger"}, starters(out)[1].Ingredients)

	status, out = c.do(http.MethodPost, starter+"/1/allergens/soy", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Soy"}, starters(out)[1].Allergens)

	status, _ = c.do(http.MethodPost, starter+"/1/allergens/plutonium", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, out = c.do(http.MethodDelete, starter+"/1/ingredients/GINGER", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Miso Paste"}, starters(out)[1].Ingredients)

	status, out = c.do(http.MethodPatch, starter, map[string]int{"from": 1, "to": 0})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Miso Paste"}, starters(out)[0].Ingredients)

	status, out = c.do(http.MethodDelete, starter+"/0", nil)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, starters(out), 1)
	assert.Equal(t, []string{"Tuna"}, starters(out)[0].Ingredients)

	status, _ = c.do(http.MethodDelete, starter+"/5", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, status)

	status, out = c.do(http.MethodPatch, menu+"/courses", map[string]int{"from": 2, "to": 0})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []model.Course{model.CourseDessert, model.CourseStarter, model.CourseMain}, out.State.MyChef.Menus[0].Order())

	elena := "/api/chefs/" + db.ChefElenaID.String() + "/menus/" + db.MenuAmalfiID.String() + "/courses/starter/dishes"
	status, _ = c.do(http.MethodPost, elena, nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestEditorSuggestions(t *testing.T) {
	c := newTestServer(t, Options{})
	for _, tt := range []struct {
		query string
		want  []string
	}{
		{query: "term=sal", want: []string{"Unsalted Butter", "Atlantic Salmon"}},
		{query: "term=sal&tags=Atlantic+Salmon", want: []string{"Unsalted Butter"}},
		{query: "kind=allergens&term=SH", want: []string{"Shellfish", "Fish"}},
		{query: "kind=allergens&term=xyz", want: []string{}},
	} {
		t.Run(tt.query, func(t *testing.T) {
			resp, err := c.http.Get(c.base + "/api/editor/suggestions?" + tt.query)
			require.NoError(t, err)
			defer resp.Body.Close()
			require.Equal(t, http.StatusOK, resp.StatusCode)
			var body struct {
				Options []string `json:"options"`
			}
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.want, body.Options)
		})
	}
}
