package handler

import (
	"github.com/nolivos/client-registry/internal/core/domain"
	"github.com/nolivos/client-registry/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createClientRequest, actor string) ports.CreateClientInput {
	in := ports.CreateClientInput{
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Email:      req.Email,
		Phone:      req.Phone,
		State:      req.State,
		DOB:        req.DOB,
		Status:     req.Status,
		CaseStatus: req.CaseStatus,
		MoreInfo:   req.MoreInfo,
		Actor:      actor,
	}
	if req.Age != nil {
		in.Age = *req.Age
	}
	return in
}

// --- Service result → HTTP response ---

func toNotificationResponse(n domain.Notification) notificationResponse {
	return notificationResponse{
		Title:       n.Title,
		Description: n.Description,
		Variant:     string(n.Variant),
	}
}

func toUserResponse(id domain.Identity) userResponse {
	return userResponse{Username: id.Username, DisplayName: id.DisplayName}
}

func toClientResponse(c *domain.Client) clientResponse {
	created := c.CreatedAt.UTC()
	resp := toDraftResponse(*c)
	resp.CreatedAt = &created
	resp.Links = &clientLinks{
		Self:      "/v1/clients/" + c.ID,
		Dashboard: "/client/" + c.ID,
	}
	return resp
}

// toDraftResponse renders a form draft: no creation time and no links.
func toDraftResponse(c domain.Client) clientResponse {
	return clientResponse{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		State:      c.State,
		Age:        c.Age,
		DOB:        c.DOB,
		Status:     string(c.Status),
		CaseStatus: c.CaseStatus,
		MoreInfo:   c.MoreInfo,
	}
}

func toClientList(clients []*domain.Client) []clientResponse {
	out := make([]clientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, toClientResponse(c))
	}
	return out
}

func toStatsResponse(s domain.Stats) statsResponse {
	return statsResponse{
		TotalClients:  s.TotalClients,
		ActiveClients: s.ActiveClients,
		PendingCases:  s.PendingCases,
	}
}

func toCreateResponse(r *ports.CreateClientResult) createClientResponse {
	return createClientResponse{
		Client:       toClientResponse(r.Client),
		Next:         toDraftResponse(r.Next),
		Stats:        toStatsResponse(r.Stats),
		Notification: toNotificationResponse(r.Notification),
	}
}

func toSearchResponse(query string, r *ports.SearchResult) searchClientsResponse {
	resp := searchClientsResponse{
		Query: query,
		Data:  toClientList(r.Clients),
		Count: len(r.Clients),
	}
	if r.Notification != nil {
		n := toNotificationResponse(*r.Notification)
		resp.Notification = &n
	}
	return resp
}

func toActivityList(entries []*domain.Activity) []activityItemResponse {
	out := make([]activityItemResponse, 0, len(entries))
	for _, a := range entries {
		out = append(out, activityItemResponse{
			Kind:        string(a.Kind),
			Actor:       a.Actor,
			Title:       a.Title,
			Description: a.Description,
			Variant:     string(a.Variant),
			OccurredAt:  a.OccurredAt.UTC(),
		})
	}
	return out
}
