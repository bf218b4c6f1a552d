package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yungbote/techverse/internal/data/repos"
	"github.com/yungbote/techverse/internal/data/repos/testutil"
	types "github.com/yungbote/techverse/internal/domain"
	"github.com/yungbote/techverse/internal/domain/catalog"
	httpH "github.com/yungbote/techverse/internal/http/handlers"
	"github.com/yungbote/techverse/internal/http/response"
	"github.com/yungbote/techverse/internal/http/web"
	"github.com/yungbote/techverse/internal/observability"
	"github.com/yungbote/techverse/internal/realtime"
	"github.com/yungbote/techverse/internal/services"
)

type fixedLoader struct{ ds catalog.Dataset }

func (l fixedLoader) Load(context.Context) catalog.Dataset { return l.ds }

func testDataset() catalog.Dataset {
	return catalog.Dataset{
		Books: []catalog.Book{{ID: 1, Title: "Dune", Author: "Herbert"}},
		Techs: []catalog.Tech{{ID: 10, Name: "Stillsuit", Category: "Survival", Subcategory: "Wearable", Description: "desc"}},
		Links: []catalog.BookTechLink{{BookID: 1, TechID: 10}},
	}
}

type testApp struct {
	router *gin.Engine
	items  services.ItemService
	hub    *realtime.SSEHub
}

func newTestApp(t *testing.T, ds *catalog.Dataset) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	log := testutil.Logger(t)
	metrics := observability.NewMetrics()
	hub := realtime.NewSSEHub(log)

	items := services.NewItemService(db, log, repos.NewItemRepo(db, log),
		services.WithEmitter(&services.HubEmitter{Hub: hub, Metrics: metrics}),
		services.WithMetrics(metrics),
	)
	graphSvc := services.NewTechGraphService(log, fixedLoader{})
	if ds != nil {
		graphSvc = services.NewTechGraphService(log, fixedLoader{ds: *ds})
		graphSvc.Reload(context.Background())
	}

	tmpl, err := web.Templates()
	require.NoError(t, err)

	graphHandler := httpH.NewTechGraphHandler(log, graphSvc, metrics)
	r := NewRouter(RouterConfig{
		Log:              log,
		Metrics:          metrics,
		Templates:        tmpl,
		Static:           http.FS(web.Static()),
		RequestTimeout:   5 * time.Second,
		PageHandler:      httpH.NewPageHandler(log, items, graphHandler),
		ItemHandler:      httpH.NewItemHandler(log, items),
		TechGraphHandler: graphHandler,
		RealtimeHandler:  httpH.NewRealtimeHandler(log, hub, metrics),
		HealthHandler:    httpH.NewHealthHandler(nil),
	})
	return &testApp{router: r, items: items, hub: hub}
}

func (a *testApp) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func (a *testApp) postForm(t *testing.T, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.APIError {
	t.Helper()
	var env response.ErrorEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env.Error
}

func TestHealthcheck(t *testing.T) {
	app := newTestApp(t, nil)
	rec := app.do(t, http.MethodGet, "/healthcheck", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestItemRPCRoundTrip(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(t, http.MethodPost, "/api/AddItem", map[string]any{"text": "Buy groceries"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{}`, rec.Body.String())

	rec = app.do(t, http.MethodPost, "/api/GetItems", map[string]any{})
	require.Equal(t, http.StatusOK, rec.Code)
	var list []types.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, "Buy groceries", list[0].Text)

	rec = app.do(t, http.MethodPost, "/api/DeleteItem", map[string]any{"id": list[0].ID})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = app.do(t, http.MethodPost, "/api/DeleteItem", map[string]any{"id": list[0].ID})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "item_not_found", decodeError(t, rec).Code)
}

func TestAddItemValidation(t *testing.T) {
	app := newTestApp(t, nil)

	for _, text := range []string{"", "   ", strings.Repeat("x", 101)} {
		rec := app.do(t, http.MethodPost, "/api/AddItem", map[string]any{"text": text})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		apiErr := decodeError(t, rec)
		assert.Equal(t, "validation_failed", apiErr.Code)
		assert.NotEmpty(t, apiErr.Message)
	}

	rec := app.do(t, http.MethodPost, "/api/AddItem", map[string]any{"text": strings.Repeat("x", 100)})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestItemRPCRejectsMalformedBodies(t *testing.T) {
	app := newTestApp(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/AddItem", strings.NewReader("{not json"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decodeError(t, rec).Code)

	rec = app.do(t, http.MethodPost, "/api/DeleteItem", map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", decodeError(t, rec).Code)
}

func TestItemChangesReachSSESubscribers(t *testing.T) {
	app := newTestApp(t, nil)
	client := app.hub.NewSSEClient()
	app.hub.AddChannel(client, realtime.ChannelItems)
	t.Cleanup(func() { app.hub.CloseClient(client) })

	rec := app.do(t, http.MethodPost, "/api/AddItem", map[string]any{"text": "hello"})
	require.Equal(t, http.StatusOK, rec.Code)

	select {
	case msg := <-client.Outbound:
		assert.Equal(t, realtime.SSEEventItemsChanged, msg.Event)
	case <-time.After(time.Second):
		t.Fatal("no items.changed event")
	}
}

func TestHomePageRendersItems(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No items to display.")

	_, err := app.items.Add(context.Background(), "<b>Read a book</b>")
	require.NoError(t, err)

	rec = app.do(t, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "&lt;b&gt;Read a book&lt;/b&gt;")
	assert.NotContains(t, body, "No items to display.")
	assert.Contains(t, body, `href="/tech-graph"`)
}

func TestFormAddAndDelete(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.postForm(t, "/items", url.Values{"text": {"Learn Go"}})
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))

	list, err := app.items.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	rec = app.postForm(t, "/items", url.Values{"text": {"  "}})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Item text cannot be empty")
	assert.Contains(t, rec.Body.String(), "Learn Go")

	rec = app.postForm(t, "/items/"+jsonNumber(list[0].ID)+"/delete", nil)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	rec = app.postForm(t, "/items/"+jsonNumber(list[0].ID)+"/delete", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = app.postForm(t, "/items/abc/delete", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTechGraphAPI(t *testing.T) {
	ds := testDataset()
	app := newTestApp(t, &ds)

	rec := app.do(t, http.MethodGet, "/api/tech-graph?technology=10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var out struct {
		Nodes []struct {
			ID    string `json:"id"`
			Group string `json:"group"`
		} `json:"nodes"`
		Edges []struct {
			From string `json:"from"`
			To   string `json:"to"`
		} `json:"edges"`
		Filter struct {
			Technology *int `json:"technology"`
		} `json:"filter"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.NotNil(t, out.Filter.Technology)
	assert.Equal(t, 10, *out.Filter.Technology)

	groups := map[string]string{}
	for _, n := range out.Nodes {
		groups[n.ID] = n.Group
	}
	assert.Equal(t, "TechnologyHighlighted", groups["t_10"])
	assert.Equal(t, "BookHighlighted", groups["b_1"])

	rec = app.do(t, http.MethodGet, "/api/tech-graph/options", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"technologies":[{"id":10,"name":"Stillsuit"}],"categories":["Survival"]}`, rec.Body.String())
}

func TestTechGraphPage(t *testing.T) {
	ds := testDataset()
	app := newTestApp(t, &ds)

	rec := app.do(t, http.MethodGet, "/tech-graph?category=Survival", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Technology Graph")
	assert.Contains(t, body, `<option value="Survival" selected>`)
	assert.Contains(t, body, "Clear Filter")
	assert.Contains(t, body, `t_10`)
}

func TestTechGraphCategoryNamedNone(t *testing.T) {
	ds := testDataset()
	ds.Techs = append(ds.Techs, catalog.Tech{ID: 11, Name: "Blank", Category: "none"})
	app := newTestApp(t, &ds)

	rec := app.do(t, http.MethodGet, "/api/tech-graph?category=none", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got struct {
		Filter struct {
			Category *string `json:"category"`
		} `json:"filter"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.NotNil(t, got.Filter.Category)
	assert.Equal(t, "none", *got.Filter.Category)

	rec = app.do(t, http.MethodGet, "/tech-graph?category=none", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `<option value="none" selected>`)
	assert.Contains(t, body, `<option value="" disabled>-- Select a Category --</option>`)
	assert.Contains(t, body, `<option value="" selected disabled>-- Select a Technology --</option>`)
}

func TestTechGraphScriptHandlesFetchFailure(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(t, http.MethodGet, "/static/graph.js", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "if (!res.ok)")
	assert.Contains(t, body, ".catch(")
	assert.Contains(t, body, "No graph data available.")
	assert.NotContains(t, body, `"none"`)
}

func TestTechGraphPagePlaceholders(t *testing.T) {
	app := newTestApp(t, nil)
	rec := app.do(t, http.MethodGet, "/tech-graph", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Loading data...")

	empty := catalog.Dataset{}
	app = newTestApp(t, &empty)
	rec = app.do(t, http.MethodGet, "/tech-graph", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No graph data available.")
}

func TestStaticAndMetrics(t *testing.T) {
	app := newTestApp(t, nil)

	rec := app.do(t, http.MethodGet, "/static/items.js", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	app.do(t, http.MethodPost, "/api/GetItems", map[string]any{})
	rec = app.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `techverse_http_requests_total{method="POST",route="/api/GetItems",status="200"} 1`)
	assert.Contains(t, rec.Body.String(), `techverse_item_operations_total{op="list",outcome="ok"} 1`)
}

func jsonNumber(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
