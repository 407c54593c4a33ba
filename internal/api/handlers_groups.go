package api

import (
	"net/http"
	"sort"

	"github.com/gorilla/mux"

	"github.com/centsplit/centsplit/internal/middleware"
	"github.com/centsplit/centsplit/internal/models"
	"github.com/centsplit/centsplit/internal/money"
)

type createGroupRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Members     []string `json:"members"`
}

type memberResponse struct {
	UserID   string `json:"userId"`
	Role     string `json:"role"`
	JoinedAt int64  `json:"joinedAt"`
}

type groupResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	CreatedBy   string           `json:"createdBy"`
	Members     []memberResponse `json:"members"`
	CreatedAt   int64            `json:"createdAt"`
}

func toGroupResponse(group *models.Group) groupResponse {
	resp := groupResponse{
		ID:          group.ID,
		Name:        group.Name,
		Description: group.Description,
		CreatedBy:   group.CreatedBy,
		CreatedAt:   group.CreatedAt,
		Members:     make([]memberResponse, len(group.Members)),
	}
	for i, m := range group.Members {
		resp.Members[i] = memberResponse{UserID: m.UserID, Role: m.Role, JoinedAt: m.JoinedAt}
	}
	return resp
}

func (a *API) handleCreateGroup(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r.Context())

	var req createGroupRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := a.groups.CreateGroup(r.Context(), principal, req.Name, req.Description, req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGroupResponse(group))
}

func (a *API) handleGetGroup(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r.Context())
	groupID := mux.Vars(r)["groupId"]

	group, err := a.groups.GetGroup(r.Context(), principal, groupID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (a *API) handleDeleteGroup(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r.Context())
	groupID := mux.Vars(r)["groupId"]

	if err := a.groups.DeleteGroup(r.Context(), principal, groupID); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type addMembersRequest struct {
	Members []string `json:"members"`
}

func (a *API) handleAddMembers(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r.Context())
	groupID := mux.Vars(r)["groupId"]

	var req addMembersRequest
	if !decodeBody(w, r, &req) {
		return
	}

	group, err := a.groups.AddMembers(r.Context(), principal, groupID, req.Members)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGroupResponse(group))
}

func (a *API) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r.Context())
	vars := mux.Vars(r)

	if err := a.groups.RemoveMember(r.Context(), principal, vars["groupId"], vars["userId"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type memberBalanceResponse struct {
	UserID  string `json:"userId"`
	Balance string `json:"balance"`
}

type transferResponse struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount string `json:"amount"`
}

type groupBalancesResponse struct {
	Balances  []memberBalanceResponse `json:"balances"`
	Transfers []transferResponse      `json:"suggestedTransfers"`
}

func (a *API) handleGroupBalances(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r.Context())
	groupID := mux.Vars(r)["groupId"]

	sheet, err := a.balances.GroupBalances(r.Context(), principal, groupID)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := groupBalancesResponse{
		Balances:  make([]memberBalanceResponse, 0, len(sheet.Balances)),
		Transfers: make([]transferResponse, 0, len(sheet.Transfers)),
	}
	for userID, bal := range sheet.Balances {
		resp.Balances = append(resp.Balances, memberBalanceResponse{
			UserID:  userID,
			Balance: money.FormatCents(bal),
		})
	}
	sort.Slice(resp.Balances, func(i, j int) bool {
		return resp.Balances[i].UserID < resp.Balances[j].UserID
	})
	for _, tr := range sheet.Transfers {
		resp.Transfers = append(resp.Transfers, transferResponse{
			From:   tr.FromUserID,
			To:     tr.ToUserID,
			Amount: money.FormatCents(tr.AmountCents),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
