// Package api exposes the ledger over a REST JSON interface. Handlers
// are thin: they decode, delegate to a service with the resolved
// principal, and encode. All validation and authorization lives in the
// service layer.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/centsplit/centsplit/internal/auth"
	"github.com/centsplit/centsplit/internal/middleware"
	"github.com/centsplit/centsplit/internal/service"
)

// API wires the application services to HTTP handlers.
type API struct {
	auth        *service.AuthService
	contacts    *service.ContactService
	expenses    *service.ExpenseService
	groups      *service.GroupService
	balances    *service.BalanceService
	settlements *service.SettlementService
}

// New creates the API surface over the given services.
func New(
	authSvc *service.AuthService,
	contactSvc *service.ContactService,
	expenseSvc *service.ExpenseService,
	groupSvc *service.GroupService,
	balanceSvc *service.BalanceService,
	settlementSvc *service.SettlementService,
) *API {
	return &API{
		auth:        authSvc,
		contacts:    contactSvc,
		expenses:    expenseSvc,
		groups:      groupSvc,
		balances:    balanceSvc,
		settlements: settlementSvc,
	}
}

// Router builds the route table. Everything under /api/v1 except auth
// requires a resolved principal.
func (a *API) Router(resolver *auth.Resolver) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.Metrics, middleware.Logging)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	router.HandleFunc("/api/v1/auth/register", a.handleRegister).Methods("POST")
	router.HandleFunc("/api/v1/auth/login", a.handleLogin).Methods("POST")

	protected := router.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.RequireAuth(resolver))

	protected.HandleFunc("/contacts", a.handleListContacts).Methods("GET")

	protected.HandleFunc("/expenses", a.handleRecordExpense).Methods("POST")
	protected.HandleFunc("/expenses/{expenseId}", a.handleGetExpense).Methods("GET")

	protected.HandleFunc("/settlements", a.handleRecordSettlement).Methods("POST")
	protected.HandleFunc("/balances/{userId}", a.handleNetBalance).Methods("GET")

	protected.HandleFunc("/groups", a.handleCreateGroup).Methods("POST")
	protected.HandleFunc("/groups/{groupId}", a.handleGetGroup).Methods("GET")
	protected.HandleFunc("/groups/{groupId}", a.handleDeleteGroup).Methods("DELETE")
	protected.HandleFunc("/groups/{groupId}/members", a.handleAddMembers).Methods("POST")
	protected.HandleFunc("/groups/{groupId}/members/{userId}", a.handleRemoveMember).Methods("DELETE")
	protected.HandleFunc("/groups/{groupId}/expenses", a.handleListGroupExpenses).Methods("GET")
	protected.HandleFunc("/groups/{groupId}/balances", a.handleGroupBalances).Methods("GET")

	return router
}
