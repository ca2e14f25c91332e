package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/nolivos/client-registry/internal/core/domain"
	"github.com/nolivos/client-registry/internal/core/ports"
)

const validClientBody = `{
	"first_name": "Ana",
	"last_name": "Diaz",
	"email": "ana@x.com",
	"phone": "555-0100",
	"state": "FL",
	"age": 40,
	"dob": "1985-04-12",
	"case_status": "intake"
}`

func TestClientHandler_Create_Success(t *testing.T) {
	var got ports.CreateClientInput
	stub := &stubClientService{
		createFn: func(_ context.Context, in ports.CreateClientInput) (*ports.CreateClientResult, error) {
			got = in
			c := sampleClient("1", in.FirstName, in.LastName, domain.ClientActive)
			return &ports.CreateClientResult{
				Client:       c,
				Next:         domain.NewDraft(2),
				Stats:        domain.Stats{TotalClients: 1, ActiveClients: 1},
				Notification: domain.ClientCreated(c),
			}, nil
		},
	}
	h := NewClientHandler(stub)

	c, rec := newContext(http.MethodPost, "/v1/clients", validClientBody, true)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if got.Actor != "hjnolivos" || got.Age != 40 || got.Status != "" {
		t.Fatalf("unexpected service input: %+v", got)
	}

	var resp createClientResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Client.ID != "1" || resp.Client.Links == nil || resp.Client.Links.Dashboard != "/client/1" {
		t.Fatalf("unexpected client payload: %+v", resp.Client)
	}
	if resp.Next.ID != "2" || resp.Next.FirstName != "" || resp.Next.Status != "active" || resp.Next.CreatedAt != nil {
		t.Fatalf("unexpected next draft: %+v", resp.Next)
	}
	if resp.Stats.TotalClients != 1 || resp.Stats.PendingCases != 0 {
		t.Fatalf("unexpected stats: %+v", resp.Stats)
	}
	if resp.Notification.Description != "New client Ana Diaz (ID: 1) has been added successfully." {
		t.Fatalf("unexpected notification: %+v", resp.Notification)
	}
}

func TestClientHandler_Create_ValidationErrors(t *testing.T) {
	h := NewClientHandler(&stubClientService{
		createFn: func(context.Context, ports.CreateClientInput) (*ports.CreateClientResult, error) {
			t.Fatal("service must not be called on invalid input")
			return nil, nil
		},
	})

	cases := map[string]struct {
		body string
		want string
	}{
		"missing age":   {strings.Replace(validClientBody, `"age": 40,`, "", 1), "age is required"},
		"bad email":     {strings.Replace(validClientBody, "ana@x.com", "not-an-email", 1), "email must be a valid email"},
		"negative age":  {strings.Replace(validClientBody, `"age": 40`, `"age": -1`, 1), "age must be at least 0"},
		"bad dob":       {strings.Replace(validClientBody, "1985-04-12", "12/04/1985", 1), "dob must be a date"},
		"bad status":    {strings.Replace(validClientBody, `"case_status"`, `"status": "pending", "case_status"`, 1), "status must be one of"},
		"missing names": {strings.Replace(validClientBody, `"first_name": "Ana",`, "", 1), "first_name is required"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			c, _ := newContext(http.MethodPost, "/v1/clients", tc.body, true)
			err := h.Create(c)

			var he *echo.HTTPError
			if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %v", err)
			}
			if msg, _ := he.Message.(string); !strings.Contains(msg, tc.want) {
				t.Fatalf("expected message containing %q, got %q", tc.want, msg)
			}
		})
	}
}

func TestClientHandler_Create_ZeroAgeAllowed(t *testing.T) {
	stub := &stubClientService{
		createFn: func(_ context.Context, in ports.CreateClientInput) (*ports.CreateClientResult, error) {
			c := sampleClient("1", in.FirstName, in.LastName, domain.ClientActive)
			return &ports.CreateClientResult{Client: c, Next: domain.NewDraft(2)}, nil
		},
	}
	h := NewClientHandler(stub)

	body := strings.Replace(validClientBody, `"age": 40`, `"age": 0`, 1)
	c, rec := newContext(http.MethodPost, "/v1/clients", body, true)
	if err := h.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestClientHandler_Create_ServiceError(t *testing.T) {
	h := NewClientHandler(&stubClientService{
		createFn: func(context.Context, ports.CreateClientInput) (*ports.CreateClientResult, error) {
			return nil, domain.ErrInvalidClient
		},
	})

	c, _ := newContext(http.MethodPost, "/v1/clients", validClientBody, true)
	if err := h.Create(c); !errors.Is(err, domain.ErrInvalidClient) {
		t.Fatalf("expected ErrInvalidClient, got %v", err)
	}
}

func TestClientHandler_List(t *testing.T) {
	stub := &stubClientService{clients: []*domain.Client{
		sampleClient("1", "Ana", "Diaz", domain.ClientActive),
		sampleClient("2", "Bo", "Lee", domain.ClientInactive),
	}}
	h := NewClientHandler(stub)

	c, rec := newContext(http.MethodGet, "/v1/clients", "", true)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp listClientsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Total != 2 || resp.Data[0].ID != "1" || resp.Data[1].Status != "inactive" {
		t.Fatalf("unexpected list: %+v", resp)
	}
}

func TestClientHandler_List_EmptyIsArray(t *testing.T) {
	h := NewClientHandler(&stubClientService{})

	c, rec := newContext(http.MethodGet, "/v1/clients", "", true)
	if err := h.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), `"data":[]`) {
		t.Fatalf("expected empty data array, got %s", rec.Body.String())
	}
}

func TestClientHandler_Draft(t *testing.T) {
	h := NewClientHandler(&stubClientService{clients: []*domain.Client{sampleClient("1", "Ana", "Diaz", domain.ClientActive)}})

	c, rec := newContext(http.MethodGet, "/v1/clients/draft", "", true)
	if err := h.Draft(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp clientResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "2" || resp.Status != "active" || resp.Links != nil {
		t.Fatalf("unexpected draft: %+v", resp)
	}
}

func TestClientHandler_Get(t *testing.T) {
	h := NewClientHandler(&stubClientService{clients: []*domain.Client{sampleClient("1", "Ana", "Diaz", domain.ClientActive)}})

	c, rec := newContext(http.MethodGet, "/v1/clients/1", "", true)
	c.SetParamNames("id")
	c.SetParamValues("1")
	if err := h.Get(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, _ = newContext(http.MethodGet, "/v1/clients/7", "", true)
	c.SetParamNames("id")
	c.SetParamValues("7")
	if err := h.Get(c); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestClientHandler_Search(t *testing.T) {
	var gotActor, gotQuery string
	stub := &stubClientService{
		searchFn: func(_ context.Context, actor, query string) (*ports.SearchResult, error) {
			gotActor, gotQuery = actor, query
			return &ports.SearchResult{Clients: []*domain.Client{sampleClient("1", "Ana", "Diaz", domain.ClientActive)}}, nil
		},
	}
	h := NewClientHandler(stub)

	c, rec := newContext(http.MethodGet, "/v1/clients/search?q=ana", "", true)
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if gotActor != "hjnolivos" || gotQuery != "ana" {
		t.Fatalf("unexpected args: %q %q", gotActor, gotQuery)
	}

	var resp searchClientsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 1 || resp.Notification != nil {
		t.Fatalf("unexpected search payload: %+v", resp)
	}
}

func TestClientHandler_Search_NoResults(t *testing.T) {
	n := domain.SearchEmpty()
	stub := &stubClientService{
		searchFn: func(context.Context, string, string) (*ports.SearchResult, error) {
			return &ports.SearchResult{Notification: &n}, nil
		},
	}
	h := NewClientHandler(stub)

	c, rec := newContext(http.MethodGet, "/v1/clients/search?q=zzz", "", true)
	if err := h.Search(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp searchClientsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Count != 0 || resp.Notification == nil || resp.Notification.Title != "No Results" {
		t.Fatalf("expected No Results notification, got %+v", resp)
	}
}

func TestClientHandler_Search_BlankQuery(t *testing.T) {
	h := NewClientHandler(&stubClientService{
		searchFn: func(context.Context, string, string) (*ports.SearchResult, error) {
			t.Fatal("service must not be called on blank query")
			return nil, nil
		},
	})

	c, _ := newContext(http.MethodGet, "/v1/clients/search", "", true)
	err := h.Search(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %v", err)
	}
}

func TestClientHandler_Stats(t *testing.T) {
	h := NewClientHandler(&stubClientService{stats: domain.Stats{TotalClients: 2, ActiveClients: 1}})

	c, rec := newContext(http.MethodGet, "/v1/stats", "", true)
	if err := h.Stats(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp statsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp != (statsResponse{TotalClients: 2, ActiveClients: 1, PendingCases: 0}) {
		t.Fatalf("unexpected stats: %+v", resp)
	}
}
