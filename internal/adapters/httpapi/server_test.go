package httpapi_test

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"sortable/internal/adapters/httpapi"
	"sortable/internal/adapters/sqlite"
	"sortable/internal/application/commands"
	"sortable/internal/domain"
)

type fixture struct {
	store   *sqlite.Store
	handler http.Handler
	ids     []string // ids[i] is the entry created at rank i+1
}

func newFixture(t *testing.T, n int, opts httpapi.Options) *fixture {
	t.Helper()
	store := sqlite.NewStore()
	require.NoError(t, store.Open(filepath.Join(t.TempDir(), "http.db")))
	t.Cleanup(func() { _ = store.Close() })

	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		res, err := commands.NewCreateCommand(store, domain.TableScope, "row "+strconv.Itoa(i)).Execute(context.Background())
		require.NoError(t, err)
		ids = append(ids, res.Entry.ID)
	}

	opts.Store = store
	if opts.PageSize == 0 {
		opts.PageSize = 12
	}
	srv, err := httpapi.NewServer(opts)
	require.NoError(t, err)
	return &fixture{store: store, handler: srv.Handler(), ids: ids}
}

func (f *fixture) rank(t *testing.T, id string) int {
	t.Helper()
	e, err := f.store.Get(context.Background(), domain.TableScope, id)
	require.NoError(t, err)
	require.NotNil(t, e)
	return e.Rank
}

func (f *fixture) do(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

func formRequest(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestUpdate_Form(t *testing.T) {
	f := newFixture(t, 20, httpapi.Options{})

	rec := f.do(formRequest("/scopes/_/sortable/update", url.Values{"startorder": {"7"}, "endorder": {"2"}}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, "application/json;charset=UTF-8", rec.Header().Get("Content-Type"))

	var changes []domain.RankChange
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &changes))
	require.Len(t, changes, 6)
	require.Equal(t, f.ids[6], changes[0].ID)
	require.Equal(t, 2, changes[0].NewRank)
	for i, c := range changes {
		require.Equal(t, i+2, c.NewRank)
	}
	require.Equal(t, 3, f.rank(t, f.ids[1]))
}

func TestUpdate_JSON(t *testing.T) {
	f := newFixture(t, 5, httpapi.Options{})

	req := httptest.NewRequest(http.MethodPost, "/scopes/_/sortable/update", strings.NewReader(`{"startorder": 1, "endorder": 5}`))
	req.Header.Set("Content-Type", "application/json")
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 5, f.rank(t, f.ids[0]))
	require.Equal(t, 1, f.rank(t, f.ids[1]))
}

func TestUpdate_Errors(t *testing.T) {
	f := newFixture(t, 5, httpapi.Options{})

	tests := []struct {
		name string
		req  *http.Request
		want int
	}{
		{
			name: "get is not allowed",
			req:  httptest.NewRequest(http.MethodGet, "/scopes/_/sortable/update", nil),
			want: http.StatusMethodNotAllowed,
		},
		{
			name: "missing startorder",
			req:  formRequest("/scopes/_/sortable/update", url.Values{"endorder": {"1"}}),
			want: http.StatusBadRequest,
		},
		{
			name: "not a number",
			req:  formRequest("/scopes/_/sortable/update", url.Values{"startorder": {"three"}}),
			want: http.StatusBadRequest,
		},
		{
			name: "negative endorder",
			req:  formRequest("/scopes/_/sortable/update", url.Values{"startorder": {"3"}, "endorder": {"-1"}}),
			want: http.StatusBadRequest,
		},
		{
			name: "stale startorder",
			req:  formRequest("/scopes/_/sortable/update", url.Values{"startorder": {"9"}, "endorder": {"1"}}),
			want: http.StatusNotFound,
		},
		{
			name: "unknown scope has no entries",
			req:  formRequest("/scopes/book-1/sortable/update", url.Values{"startorder": {"1"}, "endorder": {"2"}}),
			want: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(tt.req)
			require.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	for i, id := range f.ids {
		require.Equal(t, i+1, f.rank(t, id))
	}
}

func TestUpdate_CrossOriginRejected(t *testing.T) {
	f := newFixture(t, 5, httpapi.Options{})

	req := formRequest("/scopes/_/sortable/update", url.Values{"startorder": {"3"}, "endorder": {"1"}})
	req.Header.Set("Sec-Fetch-Site", "cross-site")
	rec := f.do(req)
	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, 3, f.rank(t, f.ids[2]))
}

func TestUpdate_BearerToken(t *testing.T) {
	f := newFixture(t, 5, httpapi.Options{Authorizer: httpapi.NewTokenAuthorizer("s3cret")})
	form := url.Values{"startorder": {"3"}, "endorder": {"1"}}

	rec := f.do(formRequest("/scopes/_/sortable/update", form))
	require.Equal(t, http.StatusForbidden, rec.Code)

	req := formRequest("/scopes/_/sortable/update", form)
	req.Header.Set("Authorization", "Bearer wrong")
	require.Equal(t, http.StatusForbidden, f.do(req).Code)

	req = formRequest("/scopes/_/sortable/update", form)
	req.Header.Set("Authorization", "Bearer s3cret")
	rec = f.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Equal(t, 1, f.rank(t, f.ids[2]))
}

func TestUpdate_RateLimited(t *testing.T) {
	f := newFixture(t, 5, httpapi.Options{RateLimit: 0.001, RateBurst: 1})
	form := url.Values{"startorder": {"1"}, "endorder": {"2"}}

	require.Equal(t, http.StatusOK, f.do(formRequest("/scopes/_/sortable/update", form)).Code)
	rec := f.do(formRequest("/scopes/_/sortable/update", form))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "1", rec.Header().Get("Retry-After"))

	// reads are not limited
	require.Equal(t, http.StatusOK, f.do(httptest.NewRequest(http.MethodGet, "/scopes/_/entries", nil)).Code)
}

type listBody struct {
	Page     int      `json:"p"`
	NumPages int      `json:"num_pages"`
	Count    int      `json:"count"`
	Actions  []string `json:"actions"`
	Entries  []struct {
		ID   string `json:"id"`
		Rank int    `json:"rank"`
	} `json:"entries"`
	Flash *httpapi.Flash `json:"flash"`
}

func (f *fixture) list(t *testing.T, target string, cookies []*http.Cookie) (listBody, *httptest.ResponseRecorder) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := f.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body listBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body, rec
}

func TestEntries(t *testing.T) {
	f := newFixture(t, 29, httpapi.Options{})

	body, _ := f.list(t, "/scopes/_/entries?p=2", nil)
	require.Equal(t, 2, body.Page)
	require.Equal(t, 3, body.NumPages)
	require.Equal(t, 29, body.Count)
	require.Len(t, body.Entries, 5)
	require.Equal(t, 25, body.Entries[0].Rank)
	require.Equal(t, []string{domain.ActionExactPage, domain.ActionFirstPage, domain.ActionBackPage}, body.Actions)

	desc, _ := f.list(t, "/scopes/_/entries?o=-1.2", nil)
	require.Equal(t, 29, desc.Entries[0].Rank)

	rec := f.do(httptest.NewRequest(http.MethodGet, "/scopes/_/entries?p=3", nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestActions_PreviousPage(t *testing.T) {
	f := newFixture(t, 29, httpapi.Options{})
	form := url.Values{
		"action":           {domain.ActionBackPage},
		"_selected_action": {f.ids[16], f.ids[17], f.ids[18]},
	}

	rec := f.do(formRequest("/scopes/_/sortable/actions?p=1", form))
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/scopes/_/entries?p=1", rec.Header().Get("Location"))

	require.Equal(t, 1, f.rank(t, f.ids[16]))
	require.Equal(t, 2, f.rank(t, f.ids[17]))
	require.Equal(t, 3, f.rank(t, f.ids[18]))

	cookies := rec.Result().Cookies()
	body, next := f.list(t, rec.Header().Get("Location"), cookies)
	require.NotNil(t, body.Flash)
	require.Equal(t, httpapi.FlashSuccess, body.Flash.Level)
	require.Equal(t, "Moved 3 entries to page 1", body.Flash.Message)

	// the flash is cleared once read
	cleared := next.Result().Cookies()
	require.Len(t, cleared, 1)
	require.Less(t, cleared[0].MaxAge, 0)
	again, _ := f.list(t, "/scopes/_/entries?p=1", nil)
	require.Nil(t, again.Flash)
}

func TestActions_Rejected(t *testing.T) {
	f := newFixture(t, 29, httpapi.Options{})

	tests := []struct {
		name   string
		target string
		form   url.Values
		level  string
		msg    string
	}{
		{
			name:   "back from the first page",
			target: "/scopes/_/sortable/actions?p=0",
			form:   url.Values{"action": {domain.ActionBackPage}, "_selected_action": {f.ids[13], f.ids[14]}},
			level:  httpapi.FlashError,
			msg:    "Page 0 does not exist",
		},
		{
			name:   "selection larger than the last page",
			target: "/scopes/_/sortable/actions?p=0",
			form: url.Values{
				"action":           {domain.ActionLastPage},
				"_selected_action": f.ids[:6],
			},
			level: httpapi.FlashError,
			msg:   "Page 3 holds only 5 entries, 6 were selected",
		},
		{
			name:   "same page",
			target: "/scopes/_/sortable/actions?p=0",
			form:   url.Values{"action": {domain.ActionExactPage}, "page": {"1"}, "_selected_action": {f.ids[2]}},
			level:  httpapi.FlashInfo,
			msg:    "Selection is already on page 1",
		},
		{
			name:   "unknown action",
			target: "/scopes/_/sortable/actions",
			form:   url.Values{"action": {"delete_selected"}, "_selected_action": {f.ids[2]}},
			level:  httpapi.FlashError,
			msg:    `unknown bulk action: "delete_selected"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(formRequest(tt.target, tt.form))
			require.Equal(t, http.StatusSeeOther, rec.Code)

			body, _ := f.list(t, rec.Header().Get("Location"), rec.Result().Cookies())
			require.NotNil(t, body.Flash)
			require.Equal(t, tt.level, body.Flash.Level)
			require.Equal(t, tt.msg, body.Flash.Message)
		})
	}

	for i, id := range f.ids {
		require.Equal(t, i+1, f.rank(t, id))
	}
}

func TestHistory(t *testing.T) {
	store := sqlite.NewStore()
	require.NoError(t, store.Open(filepath.Join(t.TempDir(), "history.db")))
	t.Cleanup(func() { _ = store.Close() })
	for i := 0; i < 3; i++ {
		_, err := commands.NewCreateCommand(store, "", "row").Execute(context.Background())
		require.NoError(t, err)
	}

	srv, err := httpapi.NewServer(httpapi.Options{Store: store, Observer: store.AuditLog(), History: store.AuditLog()})
	require.NoError(t, err)
	h := srv.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, formRequest("/scopes/_/sortable/update", url.Values{"startorder": {"3"}, "endorder": {"1"}}))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/scopes/_/history?limit=2", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var records []struct {
		Rank  int  `json:"rank"`
		Moved bool `json:"moved"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &records))
	require.Len(t, records, 2)
}

func TestNewServer_RejectsBadOrigin(t *testing.T) {
	store := sqlite.NewStore()
	require.NoError(t, store.Open(filepath.Join(t.TempDir(), "o.db")))
	t.Cleanup(func() { _ = store.Close() })

	_, err := httpapi.NewServer(httpapi.Options{Store: store, Origins: []string{"not a url"}})
	require.Error(t, err)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	f := newFixture(t, 1, httpapi.Options{})
	srv, err := httpapi.NewServer(httpapi.Options{Store: f.store})
	require.NoError(t, err)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	require.NoError(t, err)
	_ = resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
