package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/centsplit/centsplit/internal/middleware"
	"github.com/centsplit/centsplit/internal/models"
	"github.com/centsplit/centsplit/internal/money"
	"github.com/centsplit/centsplit/internal/service"
)

type splitRequest struct {
	UserID    string `json:"userId"`
	OwedShare string `json:"owedShare"`
}

type expenseRequest struct {
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
	Amount      string `json:"amount"`
	PaidBy      string `json:"paidBy,omitempty"`
	GroupID     string `json:"groupId,omitempty"`
	// Either explicit splits or a participant list for an equal split.
	Splits       []splitRequest `json:"splits,omitempty"`
	Participants []string       `json:"participants,omitempty"`
}

type splitResponse struct {
	UserID    string `json:"userId"`
	OwedShare string `json:"owedShare"`
}

type expenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Category    string          `json:"category,omitempty"`
	Amount      string          `json:"amount"`
	PaidBy      string          `json:"paidBy"`
	GroupID     string          `json:"groupId,omitempty"`
	Splits      []splitResponse `json:"splits"`
	CreatedAt   int64           `json:"createdAt"`
}

func toExpenseResponse(expense *models.Expense) expenseResponse {
	resp := expenseResponse{
		ID:          expense.ID,
		Description: expense.Description,
		Category:    expense.Category,
		Amount:      money.FormatCents(expense.AmountCents),
		PaidBy:      expense.PaidBy,
		GroupID:     expense.GroupID,
		CreatedAt:   expense.CreatedAt,
		Splits:      make([]splitResponse, len(expense.Splits)),
	}
	for i, s := range expense.Splits {
		resp.Splits[i] = splitResponse{UserID: s.UserID, OwedShare: money.FormatCents(s.OwedCents)}
	}
	return resp
}

func (a *API) handleRecordExpense(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r.Context())

	var req expenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	amountCents, err := money.ParseCents(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}
	splits := make([]models.Split, len(req.Splits))
	for i, s := range req.Splits {
		owed, err := money.ParseCents(s.OwedShare)
		if err != nil {
			writeError(w, err)
			return
		}
		splits[i] = models.Split{UserID: s.UserID, OwedCents: owed}
	}

	expense, err := a.expenses.RecordExpense(r.Context(), principal, service.ExpenseInput{
		Description:  req.Description,
		Category:     req.Category,
		AmountCents:  amountCents,
		PaidBy:       req.PaidBy,
		GroupID:      req.GroupID,
		Splits:       splits,
		Participants: req.Participants,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseResponse(expense))
}

func (a *API) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r.Context())
	expenseID := mux.Vars(r)["expenseId"]

	expense, err := a.expenses.GetExpense(r.Context(), principal, expenseID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toExpenseResponse(expense))
}

func (a *API) handleListGroupExpenses(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r.Context())
	groupID := mux.Vars(r)["groupId"]

	expenses, err := a.expenses.ListGroupExpenses(r.Context(), principal, groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := make([]expenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		resp = append(resp, toExpenseResponse(expense))
	}
	writeJSON(w, http.StatusOK, map[string]any{"expenses": resp})
}
