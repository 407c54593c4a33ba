package api

import (
	"net/http"

	"github.com/centsplit/centsplit/internal/middleware"
)

type contactGroupResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	MemberCount int    `json:"memberCount"`
}

type contactsResponse struct {
	Users  []userResponse         `json:"users"`
	Groups []contactGroupResponse `json:"groups"`
}

func (a *API) handleListContacts(w http.ResponseWriter, r *http.Request) {
	principal := middleware.Principal(r.Context())

	contacts, err := a.contacts.ListContacts(r.Context(), principal)
	if err != nil {
		writeError(w, err)
		return
	}

	// Empty lists, not nulls, when there is no data.
	resp := contactsResponse{
		Users:  make([]userResponse, 0, len(contacts.Users)),
		Groups: make([]contactGroupResponse, 0, len(contacts.Groups)),
	}
	for _, u := range contacts.Users {
		resp.Users = append(resp.Users, userResponse{
			ID: u.ID, Name: u.Name, Email: u.Email, ImageURL: u.ImageURL,
		})
	}
	for _, g := range contacts.Groups {
		resp.Groups = append(resp.Groups, contactGroupResponse{
			ID: g.ID, Name: g.Name, Description: g.Description, MemberCount: g.MemberCount,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}
