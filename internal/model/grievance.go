package model

import (
	"encoding/json"
	"fmt"
)

// UserType identifies which population raised a grievance.
type UserType string

// Grievance sources.
const (
	UserTypeCustomer UserType = "Customer"
	UserTypeGuest    UserType = "Guest"
)

// Valid reports whether the user type is one of the known sources.
func (u UserType) Valid() bool {
	return u == UserTypeCustomer || u == UserTypeGuest
}

// GrievanceStatus is the lifecycle state of a grievance.
type GrievanceStatus string

// Grievance statuses. A grievance only ever moves from pending to resolved.
const (
	StatusPending  GrievanceStatus = "PENDING"
	StatusResolved GrievanceStatus = "RESOLVED"
)

// Grievance is a complaint raised by a customer or a guest.
// Customer and guest grievances share this shape once decoded.
type Grievance struct {
	UserType  UserType        `json:"userType"`
	Name      string          `json:"name"`
	Email     string          `json:"email"`
	Phone     string          `json:"phone"`
	Timestamp string          `json:"timestamp"`
	Subject   string          `json:"subject"`
	Message   string          `json:"message,omitempty"`
	Status    GrievanceStatus `json:"status"`
	ID        int             `json:"grievanceId"`
}

// Ref identifies a grievance across both sources. Customer and guest
// grievances are numbered independently, so the ID alone is ambiguous.
type Ref struct {
	UserType UserType
	ID       int
}

// Ref returns the reference for this grievance.
func (g Grievance) Ref() Ref {
	return Ref{UserType: g.UserType, ID: g.ID}
}

// IsPending returns true if the grievance still awaits resolution.
func (g Grievance) IsPending() bool {
	return g.Status == StatusPending
}

// Lookup returns the raw value stored under a JSON field name.
func (g Grievance) Lookup(key string) (any, bool) {
	switch key {
	case "grievanceId":
		return g.ID, true
	case "userType":
		return string(g.UserType), true
	case "name":
		return g.Name, true
	case "email":
		return g.Email, true
	case "phone":
		return g.Phone, true
	case "timestamp":
		return g.Timestamp, true
	case "subject":
		return g.Subject, true
	case "message":
		return g.Message, true
	case "status":
		return string(g.Status), true
	}
	return nil, false
}

func (r Ref) String() string {
	return fmt.Sprintf("%s#%d", r.UserType, r.ID)
}

// grievanceWire accepts every contact field spelling the schedule service
// emits: plain, customer-prefixed and guest-prefixed.
type grievanceWire struct {
	UserType      UserType        `json:"userType"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone"`
	GuestName     string          `json:"guestName"`
	GuestEmail    string          `json:"guestEmail"`
	GuestPhone    string          `json:"guestPhone"`
	Timestamp     string          `json:"timestamp"`
	Subject       string          `json:"subject"`
	Message       string          `json:"message"`
	Status        GrievanceStatus `json:"status"`
	ID            int             `json:"grievanceId"`
}

// UnmarshalJSON normalizes the per-source contact fields into Name, Email
// and Phone.
func (g *Grievance) UnmarshalJSON(data []byte) error {
	var w grievanceWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*g = Grievance{
		ID:        w.ID,
		UserType:  w.UserType,
		Name:      firstNonEmpty(w.Name, w.CustomerName, w.GuestName),
		Email:     firstNonEmpty(w.Email, w.CustomerEmail, w.GuestEmail),
		Phone:     firstNonEmpty(w.Phone, w.CustomerPhone, w.GuestPhone),
		Timestamp: w.Timestamp,
		Subject:   w.Subject,
		Message:   w.Message,
		Status:    w.Status,
	}
	if g.Status == "" {
		g.Status = StatusPending
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
