package domain

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// ClientStatus is the engagement state of a client.
type ClientStatus string

const (
	ClientActive   ClientStatus = "active"
	ClientInactive ClientStatus = "inactive"
)

var ErrClientNotFound = errors.New("client not found")
var ErrInvalidClient = errors.New("invalid client")

// Valid reports whether s is one of the known statuses.
func (s ClientStatus) Valid() bool {
	return s == ClientActive || s == ClientInactive
}

// Client is a single record of the registry.
type Client struct {
	ID         string       `json:"id" bson:"_id"`
	FirstName  string       `json:"first_name" bson:"first_name"`
	LastName   string       `json:"last_name" bson:"last_name"`
	Email      string       `json:"email" bson:"email"`
	Phone      string       `json:"phone" bson:"phone"`
	State      string       `json:"state" bson:"state"`
	Age        int          `json:"age" bson:"age"`
	DOB        string       `json:"dob" bson:"dob"`
	Status     ClientStatus `json:"status" bson:"status"`
	CaseStatus string       `json:"case_status" bson:"case_status"`
	MoreInfo   string       `json:"more_info" bson:"more_info"`
	CreatedAt  time.Time    `json:"created_at" bson:"created_at"`
	// Seq is the numeric form of ID, used for ordering.
	Seq int64 `json:"-" bson:"seq"`
}

// FullName returns "First Last".
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}

// Matches reports whether query occurs in the client's full name or email,
// ignoring case.
func (c *Client) Matches(query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(c.FullName()), q) ||
		strings.Contains(strings.ToLower(c.Email), q)
}

// NewDraft returns the empty record the create form starts from.
func NewDraft(seq int64) Client {
	return Client{ID: FormatClientID(seq), Seq: seq, Status: ClientActive}
}

// FormatClientID renders a sequence number as a client identifier.
func FormatClientID(seq int64) string {
	return strconv.FormatInt(seq, 10)
}

// Stats are the dashboard counters.
// PendingCases is never incremented; it is kept for the dashboard payload.
type Stats struct {
	TotalClients  int64 `json:"total_clients"`
	ActiveClients int64 `json:"active_clients"`
	PendingCases  int64 `json:"pending_cases"`
}

// Record applies the effect of inserting c.
func (s *Stats) Record(c *Client) {
	s.TotalClients++
	if c.Status == ClientActive {
		s.ActiveClients++
	}
}
