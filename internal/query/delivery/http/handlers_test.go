package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casebem/internal/middleware"
	"casebem/internal/model"
	"casebem/internal/query"
	queryHTTP "casebem/internal/query/delivery/http"
	"casebem/pkg/log"
	"casebem/pkg/paginator"
	"casebem/pkg/scope"
)

type mockUseCase struct {
	demandPage query.DemandPage
	quotePage  query.QuotePage
	demand     model.Demand
	quote      model.Quote
	counters   query.Counters
	err        error

	called    string
	gotCouple query.DemandsByCoupleInput
	gotOpen   query.OpenDemandsInput
	gotForDem query.QuotesForDemandInput
	gotBySupp query.QuotesBySupplierInput
	gotID     string
}

func (m *mockUseCase) DemandsByCouple(ctx context.Context, sc model.Scope, input query.DemandsByCoupleInput) (query.DemandPage, error) {
	m.called, m.gotCouple = "DemandsByCouple", input
	return m.demandPage, m.err
}
func (m *mockUseCase) OpenDemands(ctx context.Context, sc model.Scope, input query.OpenDemandsInput) (query.DemandPage, error) {
	m.called, m.gotOpen = "OpenDemands", input
	return m.demandPage, m.err
}
func (m *mockUseCase) GetDemand(ctx context.Context, sc model.Scope, demandID string) (model.Demand, error) {
	m.called, m.gotID = "GetDemand", demandID
	return m.demand, m.err
}
func (m *mockUseCase) QuotesForDemand(ctx context.Context, sc model.Scope, input query.QuotesForDemandInput) (query.QuotePage, error) {
	m.called, m.gotForDem = "QuotesForDemand", input
	return m.quotePage, m.err
}
func (m *mockUseCase) QuotesBySupplier(ctx context.Context, sc model.Scope, input query.QuotesBySupplierInput) (query.QuotePage, error) {
	m.called, m.gotBySupp = "QuotesBySupplier", input
	return m.quotePage, m.err
}
func (m *mockUseCase) GetQuote(ctx context.Context, sc model.Scope, quoteID string) (model.Quote, error) {
	m.called, m.gotID = "GetQuote", quoteID
	return m.quote, m.err
}
func (m *mockUseCase) CountersForCouple(ctx context.Context, sc model.Scope) (query.Counters, error) {
	m.called = "CountersForCouple"
	return m.counters, m.err
}
func (m *mockUseCase) CountersForSupplier(ctx context.Context, sc model.Scope) (query.Counters, error) {
	m.called = "CountersForSupplier"
	return m.counters, m.err
}

func setup(t *testing.T) (*gin.Engine, *mockUseCase, func(role model.Role) string) {
	gin.SetMode(gin.TestMode)
	l := log.NewNop()
	jwt := scope.New("secret", time.Hour, "casebem")
	uc := &mockUseCase{}

	r := gin.New()
	queryHTTP.RegisterRoutes(r.Group("/api/v1"), queryHTTP.New(l, uc), middleware.New(l, jwt))

	token := func(role model.Role) string {
		tok, err := jwt.CreateToken(model.Scope{UserID: "u1", Role: role})
		require.NoError(t, err)
		return "Bearer " + tok
	}
	return r, uc, token
}

func get(r *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouting(t *testing.T) {
	r, uc, token := setup(t)

	tests := []struct {
		path   string
		role   model.Role
		called string
	}{
		{path: "/api/v1/demands/mine", role: model.RoleCouple, called: "DemandsByCouple"},
		{path: "/api/v1/demands/open", role: model.RoleSupplier, called: "OpenDemands"},
		{path: "/api/v1/demands/d9", role: model.RoleCouple, called: "GetDemand"},
		{path: "/api/v1/demands/d9/quotes", role: model.RoleCouple, called: "QuotesForDemand"},
		{path: "/api/v1/quotes/mine", role: model.RoleSupplier, called: "QuotesBySupplier"},
		{path: "/api/v1/quotes/q9", role: model.RoleSupplier, called: "GetQuote"},
		{path: "/api/v1/dashboard/counters", role: model.RoleCouple, called: "CountersForCouple"},
		{path: "/api/v1/dashboard/counters", role: model.RoleSupplier, called: "CountersForSupplier"},
	}
	for _, tc := range tests {
		t.Run(tc.called, func(t *testing.T) {
			w := get(r, tc.path, token(tc.role))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, tc.called, uc.called)
		})
	}
}

func TestUnauthenticated(t *testing.T) {
	r, uc, _ := setup(t)
	w := get(r, "/api/v1/demands/open", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, uc.called)
}

func TestOpenDemandsFilters(t *testing.T) {
	r, uc, token := setup(t)
	uc.demandPage = query.DemandPage{
		Demands:   []model.Demand{{ID: "d1", Status: model.DemandOpen}},
		Paginator: paginator.Paginator{Total: 13, Count: 1, PerPage: 12, CurrentPage: 2, LastPage: 2},
	}

	w := get(r, "/api/v1/demands/open?city=Hanoi&kind=VENUE&category_id=hall&q=garden&page=2", token(model.RoleSupplier))

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, query.OpenDemandsInput{
		City:       "Hanoi",
		CategoryID: "hall",
		Kind:       model.KindVenue,
		Search:     "garden",
		Paginate:   paginator.PaginateQuery{Page: 2},
	}, uc.gotOpen)

	var body struct {
		Data struct {
			Demands   []json.RawMessage   `json:"demands"`
			Paginator paginator.Paginator `json:"paginator"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data.Demands, 1)
	assert.Equal(t, 2, body.Data.Paginator.CurrentPage)
	assert.Equal(t, 13, body.Data.Paginator.Total)
}

func TestBadQuery(t *testing.T) {
	r, uc, token := setup(t)
	for _, path := range []string{
		"/api/v1/demands/open?kind=GIFT",
		"/api/v1/demands/mine?status=DRAFT",
		"/api/v1/quotes/mine?page=-1",
		"/api/v1/quotes/mine?limit=abc",
	} {
		w := get(r, path, token(model.RoleSupplier))
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
	assert.Empty(t, uc.called)
}

func TestNotFound(t *testing.T) {
	r, uc, token := setup(t)
	uc.err = query.ErrQuoteNotFound

	w := get(r, "/api/v1/quotes/q1", token(model.RoleCouple))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"NOT_FOUND"`)
}

func TestCountersBody(t *testing.T) {
	r, uc, token := setup(t)
	uc.counters = query.Counters{
		Demands: map[model.DemandStatus]int{},
		Quotes:  map[model.QuoteStatus]int{model.QuotePending: 2, model.QuoteAccepted: 1},
	}

	w := get(r, "/api/v1/dashboard/counters", token(model.RoleSupplier))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"error_code":0,"message":"Success","data":{"quotes":{"PENDING":2,"ACCEPTED":1}}}`, w.Body.String())
}
