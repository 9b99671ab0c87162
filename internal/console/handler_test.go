package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/odyssey-erp/odyssey-console/internal/export"
	"github.com/odyssey-erp/odyssey-console/internal/platform/backend"
	"github.com/odyssey-erp/odyssey-console/internal/shared"
	"github.com/odyssey-erp/odyssey-console/internal/view"
)

type widget struct {
	Code   string `json:"Code" validate:"required" wire:"required"`
	Name   string `json:"Name" validate:"required"`
	Status string `json:"Status" validate:"required,oneof=Active Non-Active"`
}

func (w widget) Key() string         { return w.Code }
func (w widget) StatusValue() string { return w.Status }

type part struct {
	ID    int             `json:"Id"`
	Label string          `json:"Label" validate:"required"`
	Qty   decimal.Decimal `json:"Qty"`
}

func (p part) Key() string { return fmt.Sprint(p.ID) }

var widgetEndpoint = backend.Endpoint{Domain: "masterdata", Collection: "widgets"}

// fakeBackend serves the widget collection and its parts from memory.
type fakeBackend struct {
	mu          sync.Mutex
	widgets     []widget
	parts       map[string][]part
	listStatus  int
	deleteErr   string
	partsStatus int
	lastPut     widget
	lastPutPath string

	partErr       string
	partPutBody   string
	partPath      string
	partDeleteHit int
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	path := strings.TrimPrefix(r.URL.Path, backend.APIPrefix+widgetEndpoint.Path())
	reply := func(status int, body any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}

	switch {
	case path == "" && r.Method == http.MethodGet:
		if f.listStatus != 0 {
			reply(f.listStatus, map[string]string{"message": "widget service down"})
			return
		}
		reply(http.StatusOK, map[string]any{"data": append([]widget{}, f.widgets...)})
	case path == "" && r.Method == http.MethodPost:
		var in widget
		_ = json.NewDecoder(r.Body).Decode(&in)
		f.widgets = append(f.widgets, in)
		reply(http.StatusCreated, map[string]any{"data": in})
	case strings.HasSuffix(path, "/details") && r.Method == http.MethodGet:
		if f.partsStatus != 0 {
			reply(f.partsStatus, map[string]any{"status": map[string]string{"message": "parts unavailable"}})
			return
		}
		parent := strings.TrimSuffix(strings.TrimPrefix(path, "/"), "/details")
		reply(http.StatusOK, map[string]any{"data": append([]part{}, f.parts[parent]...)})
	case strings.Contains(path, "/details/") && (r.Method == http.MethodPut || r.Method == http.MethodDelete):
		f.partPath = path
		if r.Method == http.MethodPut {
			raw, _ := io.ReadAll(r.Body)
			f.partPutBody = string(raw)
		} else {
			f.partDeleteHit++
		}
		if f.partErr != "" {
			reply(http.StatusConflict, map[string]string{"message": f.partErr})
			return
		}
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		// Acknowledge without echoing the row.
		reply(http.StatusOK, map[string]string{"message": "updated"})
	case r.Method == http.MethodGet:
		key := strings.TrimPrefix(path, "/")
		for _, item := range f.widgets {
			if item.Code == key {
				reply(http.StatusOK, map[string]any{"data": item})
				return
			}
		}
		reply(http.StatusNotFound, map[string]string{"message": "not found"})
	case r.Method == http.MethodPut:
		_ = json.NewDecoder(r.Body).Decode(&f.lastPut)
		f.lastPutPath = path
		reply(http.StatusOK, map[string]any{"data": f.lastPut})
	case r.Method == http.MethodDelete:
		if f.deleteErr != "" {
			reply(http.StatusInternalServerError, map[string]any{"status": map[string]string{"message": f.deleteErr}})
			return
		}
		key := strings.TrimPrefix(path, "/")
		for i, item := range f.widgets {
			if item.Code == key {
				f.widgets = append(f.widgets[:i], f.widgets[i+1:]...)
				break
			}
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func widgets(n int) []widget {
	out := make([]widget, n)
	for i := range out {
		out[i] = widget{Code: fmt.Sprintf("W-%02d", i+1), Name: fmt.Sprintf("Widget %d", i+1), Status: "Active"}
	}
	return out
}

type harness struct {
	router  http.Handler
	fake    *fakeBackend
	session *shared.Session
}

func newHarness(t *testing.T, fake *fakeBackend) *harness {
	t.Helper()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	sm := shared.NewSessionManager(rdb, "console_session", "secret", time.Hour, false)
	sess, err := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)

	engine, err := view.NewEngine()
	require.NoError(t, err)

	deps := Deps{
		Templates: engine,
		CSRF:      shared.NewCSRFManager("secret"),
		PageSize:  5,
	}
	client := backend.NewClient(srv.URL)
	res := Resource[widget]{
		Name:     "Widgets",
		Singular: "Widget",
		Columns: []Column[widget]{
			{Header: "Code", Value: func(w widget) string { return w.Code }},
			{Header: "Name", Value: func(w widget) string { return w.Name }},
		},
		Fields: []Field{
			{Name: "Code", Label: "Code", Type: InputText, Required: true, Immutable: true},
			{Name: "Name", Label: "Name", Type: InputText, Required: true},
			{Name: "Status", Label: "Status", Type: InputStatus},
		},
		Decode: func(f Form) widget {
			return widget{Code: f.String("Code"), Name: f.String("Name"), Status: f.Status("Status")}
		},
		Encode: func(w widget) map[string]string {
			return map[string]string{"Code": w.Code, "Name": w.Name, "Status": w.Status}
		},
		SetKey: func(w widget, key string) widget { w.Code = key; return w },
	}
	parts := DetailResource[part]{
		Name:     "Widget Parts",
		Singular: "Part",
		Columns: []Column[part]{
			{Header: "Label", Value: func(p part) string { return p.Label }},
			{Header: "Qty", Value: func(p part) string { return export.Number(p.Qty, 0) }, Align: export.AlignRight},
		},
		Fields: []Field{
			{Name: "Label", Label: "Label", Type: InputText, Required: true},
			{Name: "Qty", Label: "Qty", Type: InputNumber},
		},
		Decode:     func(f Form) part { return part{Label: f.String("Label"), Qty: f.Decimal("Qty")} },
		Encode:     func(p part) map[string]string { return map[string]string{"Label": p.Label, "Qty": Dec(p.Qty)} },
		SetKey:     func(p part, key string) part {
			p.ID, _ = strconv.Atoi(key)
			return p
		},
		FilePrefix: "widget-parts",
	}

	details := NewDetailHandler[part](deps, "/widgets", backend.NewDetails[part](client, widgetEndpoint), parts)
	h := NewResourceHandler[widget](deps, "/widgets", backend.NewCollection[widget](client, widgetEndpoint), res).WithDetails(details)

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(w, req.WithContext(shared.ContextWithSession(req.Context(), sess)))
		})
	})
	r.Route("/widgets", h.MountRoutes)
	return &harness{router: r, fake: fake, session: sess}
}

func (h *harness) do(method, target string, form url.Values) *httptest.ResponseRecorder {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	rr := httptest.NewRecorder()
	h.router.ServeHTTP(rr, req)
	return rr
}

func TestListShowsLastPartialPage(t *testing.T) {
	h := newHarness(t, &fakeBackend{widgets: widgets(12)})

	rr := h.do(http.MethodGet, "/widgets?offset=10", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "W-11")
	assert.Contains(t, body, "W-12")
	assert.NotContains(t, body, "W-10")
	assert.Contains(t, body, "Page 3 of 3")
}

func TestListClampsOffsetPastTheEnd(t *testing.T) {
	h := newHarness(t, &fakeBackend{widgets: widgets(12)})

	body := h.do(http.MethodGet, "/widgets?offset=99", nil).Body.String()
	assert.Contains(t, body, "W-11")
	assert.Contains(t, body, "Page 3 of 3")
}

func TestListEmptyCollection(t *testing.T) {
	h := newHarness(t, &fakeBackend{})

	body := h.do(http.MethodGet, "/widgets", nil).Body.String()
	assert.Contains(t, body, "No Widgets yet")
	assert.Contains(t, body, "Page 0 of 0")
}

func TestListFiltersByStatus(t *testing.T) {
	items := widgets(3)
	items[1].Status = "Non-Active"
	h := newHarness(t, &fakeBackend{widgets: items})

	body := h.do(http.MethodGet, "/widgets?status=Non-Active", nil).Body.String()
	assert.Contains(t, body, "W-02")
	assert.NotContains(t, body, "W-01")
}

func TestListBackendFailureRendersInlineError(t *testing.T) {
	h := newHarness(t, &fakeBackend{listStatus: http.StatusServiceUnavailable})

	rr := h.do(http.MethodGet, "/widgets", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "widget service down")
	assert.NotContains(t, rr.Body.String(), "<dialog")
}

func TestDeleteRejectedRaisesAlert(t *testing.T) {
	h := newHarness(t, &fakeBackend{widgets: widgets(2), deleteErr: "Widget is referenced by orders"})

	rr := h.do(http.MethodPost, "/widgets/W-01/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/widgets", rr.Header().Get("Location"))

	flash := h.session.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, shared.FlashAlert, flash.Kind)
	assert.Equal(t, "Widget is referenced by orders", flash.Message)
	assert.Len(t, h.fake.widgets, 2)
}

func TestAlertFlashRendersDialog(t *testing.T) {
	h := newHarness(t, &fakeBackend{widgets: widgets(1)})
	h.session.Alert("Widget is referenced by orders")

	body := h.do(http.MethodGet, "/widgets", nil).Body.String()
	assert.Contains(t, body, `<dialog class="alert" open>`)
	assert.Contains(t, body, "Widget is referenced by orders")
}

func TestDeleteKeepsWindow(t *testing.T) {
	h := newHarness(t, &fakeBackend{widgets: widgets(12)})

	rr := h.do(http.MethodPost, "/widgets/W-11/delete?offset=10", url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/widgets?offset=10", rr.Header().Get("Location"))

	flash := h.session.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, shared.FlashSuccess, flash.Kind)
	assert.Equal(t, "Widget W-11 deleted", flash.Message)
	assert.Len(t, h.fake.widgets, 11)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	h := newHarness(t, &fakeBackend{})

	rr := h.do(http.MethodPost, "/widgets/", url.Values{"Code": {"W-01"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Name is required")
	assert.Empty(t, h.fake.widgets)
}

func TestCreateRejectsDuplicateCode(t *testing.T) {
	h := newHarness(t, &fakeBackend{widgets: widgets(1)})

	rr := h.do(http.MethodPost, "/widgets/", url.Values{"Code": {"W-01"}, "Name": {"Again"}})
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Code W-01 already exists")
	assert.Len(t, h.fake.widgets, 1)
}

func TestCreateRedirectsWithSuccess(t *testing.T) {
	h := newHarness(t, &fakeBackend{})

	rr := h.do(http.MethodPost, "/widgets/", url.Values{"Code": {"W-09"}, "Name": {"Nine"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	require.Len(t, h.fake.widgets, 1)
	assert.Equal(t, "Active", h.fake.widgets[0].Status)

	flash := h.session.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "Widget W-09 created", flash.Message)
}

func TestUpdateKeepsPathKey(t *testing.T) {
	h := newHarness(t, &fakeBackend{widgets: widgets(1)})

	rr := h.do(http.MethodPost, "/widgets/W-01/edit", url.Values{"Code": {"HIJACK"}, "Name": {"Renamed"}, "Status": {"Non-Active"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/W-01", h.fake.lastPutPath)
	assert.Equal(t, "W-01", h.fake.lastPut.Code)
	assert.Equal(t, "Non-Active", h.fake.lastPut.Status)
}

func slashedWidgets() *fakeBackend {
	return &fakeBackend{
		widgets: []widget{{Code: "W/02", Name: "Slashed", Status: "Active"}},
		parts:   map[string][]part{"W/02": {{ID: 7, Label: "Gear", Qty: decimal.NewFromInt(2)}}},
	}
}

func TestListEscapesKeysInLinks(t *testing.T) {
	h := newHarness(t, slashedWidgets())

	rr := h.do(http.MethodGet, "/widgets", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `href="/widgets/W%2F02/edit"`)
	assert.Contains(t, body, `action="/widgets/W%2F02/delete`)
	assert.NotContains(t, body, `href="/widgets/W/02/edit"`)
}

func TestPanelEscapesParentKey(t *testing.T) {
	h := newHarness(t, slashedWidgets())

	rr := h.do(http.MethodGet, "/widgets?details=W%2F02", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Gear")
	assert.Contains(t, body, `href="/widgets/W%2F02/details/7/edit"`)
	assert.Contains(t, body, `action="/widgets/W%2F02/details/7/delete"`)
}

func TestUpdateUnescapesSlashedKey(t *testing.T) {
	h := newHarness(t, slashedWidgets())

	rr := h.do(http.MethodPost, "/widgets/W%2F02/edit", url.Values{"Name": {"Renamed"}, "Status": {"Active"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/W/02", h.fake.lastPutPath)
	assert.Equal(t, "W/02", h.fake.lastPut.Code)

	flash := h.session.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "Widget W/02 updated", flash.Message)
}

func TestDetailDeleteUnderSlashedParent(t *testing.T) {
	h := newHarness(t, slashedWidgets())

	rr := h.do(http.MethodPost, "/widgets/W%2F02/details/7/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/W/02/details/7", h.fake.partPath)
	assert.Equal(t, 1, h.fake.partDeleteHit)
}

func TestEditFormLocksCode(t *testing.T) {
	h := newHarness(t, &fakeBackend{widgets: widgets(1)})

	rr := h.do(http.MethodGet, "/widgets/W-01/edit", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `name="Code" type="text" value="W-01" readonly`)
	assert.Contains(t, body, `action="/widgets/W-01/edit"`)
}

func TestEditFormMissingRecord(t *testing.T) {
	h := newHarness(t, &fakeBackend{widgets: widgets(1)})

	rr := h.do(http.MethodGet, "/widgets/W-99/edit", nil)
	require.Equal(t, http.StatusSeeOther, rr.Code)
	flash := h.session.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "Widget W-99 not found", flash.Message)
}

func TestDetailOverlayEmptyOnNotFound(t *testing.T) {
	h := newHarness(t, &fakeBackend{widgets: widgets(1), partsStatus: http.StatusNotFound})

	body := h.do(http.MethodGet, "/widgets?details=W-01", nil).Body.String()
	assert.Contains(t, body, "panel-empty")
	assert.Contains(t, body, "No details")
	assert.Contains(t, body, "Add Detail")
	assert.NotContains(t, body, "parts unavailable")
}

func TestDetailOverlayErrored(t *testing.T) {
	h := newHarness(t, &fakeBackend{widgets: widgets(1), partsStatus: http.StatusInternalServerError})

	body := h.do(http.MethodGet, "/widgets?details=W-01", nil).Body.String()
	assert.Contains(t, body, "panel-errored")
	assert.Contains(t, body, "No details")
	assert.Contains(t, body, "parts unavailable")
}

func TestDetailOverlayRows(t *testing.T) {
	h := newHarness(t, &fakeBackend{
		widgets: widgets(1),
		parts:   map[string][]part{"W-01": {{ID: 7, Label: "Gear", Qty: decimal.NewFromInt(1200)}}},
	})

	body := h.do(http.MethodGet, "/widgets?details=W-01", nil).Body.String()
	assert.Contains(t, body, "Gear")
	assert.Contains(t, body, "1,200")
	assert.Contains(t, body, "/widgets/W-01/details/7/edit")
	assert.Contains(t, body, "/widgets/W-01/details/export/pdf")
}

func TestDetailExportCSV(t *testing.T) {
	h := newHarness(t, &fakeBackend{
		widgets: widgets(1),
		parts:   map[string][]part{"W-01": {{ID: 1, Label: "Gear", Qty: decimal.NewFromInt(3)}}},
	})

	rr := h.do(http.MethodGet, "/widgets/W-01/details/export/csv", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="widget-parts-w-01.csv"`, rr.Header().Get("Content-Disposition"))
	assert.Contains(t, rr.Body.String(), "Label,Qty")
	assert.Contains(t, rr.Body.String(), "Gear,3")
}

func TestDetailExportPDFWithoutRows(t *testing.T) {
	h := newHarness(t, &fakeBackend{widgets: widgets(1)})

	rr := h.do(http.MethodGet, "/widgets/W-01/details/export/pdf", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), "%PDF"))
}

func TestDetailExportUnknownFormat(t *testing.T) {
	h := newHarness(t, &fakeBackend{widgets: widgets(1)})

	rr := h.do(http.MethodGet, "/widgets/W-01/details/export/docx", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDetailAddValidates(t *testing.T) {
	h := newHarness(t, &fakeBackend{widgets: widgets(1)})

	rr := h.do(http.MethodPost, "/widgets/W-01/details/", url.Values{"Qty": {"2"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Label is required")
}

func partsFixture() *fakeBackend {
	return &fakeBackend{
		widgets: widgets(1),
		parts:   map[string][]part{"W-01": {{ID: 7, Label: "Gear", Qty: decimal.NewFromInt(2)}}},
	}
}

func TestDetailEditSendsPathKey(t *testing.T) {
	h := newHarness(t, partsFixture())

	rr := h.do(http.MethodPost, "/widgets/W-01/details/7/edit?offset=5", url.Values{"Label": {"Cog"}, "Qty": {"4"}})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/widgets?details=W-01&offset=5", rr.Header().Get("Location"))
	assert.Equal(t, "/W-01/details/7", h.fake.partPath)

	var sent map[string]any
	require.NoError(t, json.Unmarshal([]byte(h.fake.partPutBody), &sent))
	assert.EqualValues(t, 7, sent["Id"])
	assert.Equal(t, "Cog", sent["Label"])

	flash := h.session.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, shared.FlashSuccess, flash.Kind)
	assert.Equal(t, "Part 7 updated", flash.Message)
}

func TestDetailEditRejectedShowsAlert(t *testing.T) {
	fake := partsFixture()
	fake.partErr = "Line is locked by a receipt"
	h := newHarness(t, fake)

	rr := h.do(http.MethodPost, "/widgets/W-01/details/7/edit", url.Values{"Label": {"Cog"}})
	assert.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, `<dialog class="alert" open>`)
	assert.Contains(t, body, "Line is locked by a receipt")
	assert.Contains(t, body, `value="Cog"`)
}

func TestDetailEditValidates(t *testing.T) {
	h := newHarness(t, partsFixture())

	rr := h.do(http.MethodPost, "/widgets/W-01/details/7/edit", url.Values{"Qty": {"1"}})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "Label is required")
	assert.Empty(t, h.fake.partPutBody)
}

func TestDetailDeleteRedirectsToOverlay(t *testing.T) {
	h := newHarness(t, partsFixture())

	rr := h.do(http.MethodPost, "/widgets/W-01/details/7/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/widgets?details=W-01", rr.Header().Get("Location"))
	assert.Equal(t, "/W-01/details/7", h.fake.partPath)
	assert.Equal(t, 1, h.fake.partDeleteHit)

	flash := h.session.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, "Part 7 deleted", flash.Message)
}

func TestDetailDeleteRejectedRaisesAlert(t *testing.T) {
	fake := partsFixture()
	fake.partErr = "Line already received"
	h := newHarness(t, fake)

	rr := h.do(http.MethodPost, "/widgets/W-01/details/7/delete", url.Values{})
	require.Equal(t, http.StatusSeeOther, rr.Code)
	assert.Equal(t, "/widgets?details=W-01", rr.Header().Get("Location"))

	flash := h.session.PopFlash()
	require.NotNil(t, flash)
	assert.Equal(t, shared.FlashAlert, flash.Kind)
	assert.Equal(t, "Line already received", flash.Message)
}
