// Package clerk decodes Clerk webhook events into typed payloads.
package clerk

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Event types Spotlight acts on. Anything else is acknowledged and ignored.
const (
	EventUserCreated = "user.created"
)

// Event is the tagged envelope of a Clerk webhook delivery. Data stays
// raw until the type tag has been inspected; payload shapes differ per
// event type and must not be assumed.
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// UserCreated is the payload of a user.created event.
type UserCreated struct {
	ID             string         `json:"id"`
	FirstName      string         `json:"first_name"`
	LastName       string         `json:"last_name"`
	ImageURL       string         `json:"image_url"`
	EmailAddresses []EmailAddress `json:"email_addresses"`
}

// EmailAddress is one entry of a user's email address list.
type EmailAddress struct {
	EmailAddress string `json:"email_address"`
}

// ParseEvent decodes the envelope of a verified webhook body.
func ParseEvent(body []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("malformed webhook event: %w", err)
	}
	if ev.Type == "" {
		return nil, fmt.Errorf("webhook event has no type")
	}
	return &ev, nil
}

// UserCreated decodes and validates the event's payload as a
// user.created event. Clerk payloads are loosely typed, so the required
// fields are checked explicitly before use.
func (e *Event) UserCreated() (*UserCreated, error) {
	if e.Type != EventUserCreated {
		return nil, fmt.Errorf("event type is %q, not %q", e.Type, EventUserCreated)
	}

	var data UserCreated
	if err := json.Unmarshal(e.Data, &data); err != nil {
		return nil, fmt.Errorf("malformed user.created payload: %w", err)
	}
	if data.ID == "" {
		return nil, fmt.Errorf("user.created payload has no user id")
	}
	if len(data.EmailAddresses) == 0 || data.EmailAddresses[0].EmailAddress == "" {
		return nil, fmt.Errorf("user.created payload has no email address")
	}
	return &data, nil
}

// Email returns the user's primary email address.
func (u *UserCreated) Email() string {
	return u.EmailAddresses[0].EmailAddress
}

// Username derives the local username from the email local-part.
func (u *UserCreated) Username() string {
	email := u.Email()
	if at := strings.Index(email, "@"); at >= 0 {
		return email[:at]
	}
	return email
}

// Fullname joins first and last name, tolerating either being absent.
func (u *UserCreated) Fullname() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
