package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/centsplit/centsplit/internal/middleware"
	"github.com/centsplit/centsplit/internal/money"
	"github.com/centsplit/centsplit/internal/service"
)

type settlementRequest struct {
	ToUserID string `json:"toUserId"`
	Amount   string `json:"amount"`
	GroupID  string `json:"groupId,omitempty"`
	Note     string `json:"note,omitempty"`
}

type settlementResponse struct {
	ID         string `json:"id"`
	FromUserID string `json:"fromUserId"`
	ToUserID   string `json:"toUserId"`
	Amount     string `json:"amount"`
	GroupID    string `json:"groupId,omitempty"`
	Note       string `json:"note,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
}

func (a *API) handleRecordSettlement(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r.Context())

	var req settlementRequest
	if !decodeBody(w, r, &req) {
		return
	}

	amountCents, err := money.ParseCents(req.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	settlement, err := a.settlements.RecordSettlement(r.Context(), principal, service.SettlementInput{
		ToUserID:    req.ToUserID,
		AmountCents: amountCents,
		GroupID:     req.GroupID,
		Note:        req.Note,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, settlementResponse{
		ID:         settlement.ID,
		FromUserID: settlement.FromUserID,
		ToUserID:   settlement.ToUserID,
		Amount:     money.FormatCents(settlement.AmountCents),
		GroupID:    settlement.GroupID,
		Note:       settlement.Note,
		CreatedAt:  settlement.CreatedAt,
	})
}

type netBalanceResponse struct {
	UserID  string `json:"userId"`
	Balance string `json:"balance"`
}

func (a *API) handleNetBalance(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r.Context())
	counterpartyID := mux.Vars(r)["userId"]

	net, err := a.balances.NetBalance(r.Context(), principal, counterpartyID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, netBalanceResponse{
		UserID:  counterpartyID,
		Balance: money.FormatCents(net),
	})
}
