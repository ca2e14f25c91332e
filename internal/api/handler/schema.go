package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// notificationResponse is a toast-style message for the dashboard.
type notificationResponse struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Variant     string `json:"variant"`
}

// --- Session ---

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type userResponse struct {
	Username    string `json:"username"`
	DisplayName string `json:"display_name"`
}

type loginResponse struct {
	Token        string               `json:"token"`
	ExpiresAt    time.Time            `json:"expires_at"`
	User         userResponse         `json:"user"`
	Notification notificationResponse `json:"notification"`
}

// loginFailedResponse carries the failure notification alongside the error.
type loginFailedResponse struct {
	Error        string               `json:"error"`
	Notification notificationResponse `json:"notification"`
}

type logoutResponse struct {
	Notification notificationResponse `json:"notification"`
}

type sessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          userResponse `json:"user"`
	ExpiresAt     time.Time    `json:"expires_at"`
}

// --- Clients ---

type createClientRequest struct {
	FirstName  string `json:"first_name"  validate:"required"`
	LastName   string `json:"last_name"   validate:"required"`
	Email      string `json:"email"       validate:"required,email"`
	Phone      string `json:"phone"       validate:"required"`
	State      string `json:"state"       validate:"required"`
	Age        *int   `json:"age"         validate:"required,gte=0"`
	DOB        string `json:"dob"         validate:"required,datetime=2006-01-02"`
	Status     string `json:"status"      validate:"omitempty,oneof=active inactive"`
	CaseStatus string `json:"case_status" validate:"required"`
	MoreInfo   string `json:"more_info"`
}

type searchRequest struct {
	Query string `query:"q" validate:"required"`
}

type clientLinks struct {
	Self      string `json:"self"`
	Dashboard string `json:"dashboard"`
}

type clientResponse struct {
	ID         string       `json:"id"`
	FirstName  string       `json:"first_name"`
	LastName   string       `json:"last_name"`
	Email      string       `json:"email"`
	Phone      string       `json:"phone"`
	State      string       `json:"state"`
	Age        int          `json:"age"`
	DOB        string       `json:"dob"`
	Status     string       `json:"status"`
	CaseStatus string       `json:"case_status"`
	MoreInfo   string       `json:"more_info"`
	CreatedAt  *time.Time   `json:"created_at,omitempty"`
	Links      *clientLinks `json:"_links,omitempty"`
}

type statsResponse struct {
	TotalClients  int64 `json:"total_clients"`
	ActiveClients int64 `json:"active_clients"`
	PendingCases  int64 `json:"pending_cases"`
}

type createClientResponse struct {
	Client       clientResponse       `json:"client"`
	Next         clientResponse       `json:"next"`
	Stats        statsResponse        `json:"stats"`
	Notification notificationResponse `json:"notification"`
}

type listClientsResponse struct {
	Data  []clientResponse `json:"data"`
	Total int              `json:"total"`
}

type searchClientsResponse struct {
	Query        string                `json:"query"`
	Data         []clientResponse      `json:"data"`
	Count        int                   `json:"count"`
	Notification *notificationResponse `json:"notification,omitempty"`
}

// --- Activity ---

type activityItemResponse struct {
	Kind        string    `json:"kind"`
	Actor       string    `json:"actor"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Variant     string    `json:"variant"`
	OccurredAt  time.Time `json:"occurred_at"`
}

type listActivityResponse struct {
	Data []activityItemResponse `json:"data"`
}
