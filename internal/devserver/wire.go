package devserver

import "github.com/Veraticus/backoffice/internal/model"

// customerWire and guestWire reproduce the field names the real schedule
// service uses for each source.
type customerWire struct {
	UserType      model.UserType        `json:"userType"`
	CustomerName  string                `json:"customerName"`
	CustomerEmail string                `json:"customerEmail"`
	CustomerPhone string                `json:"customerPhone"`
	Timestamp     string                `json:"timestamp"`
	Subject       string                `json:"subject"`
	Message       string                `json:"message,omitempty"`
	Status        model.GrievanceStatus `json:"status"`
	GrievanceID   int                   `json:"grievanceId"`
}

type guestWire struct {
	UserType    model.UserType        `json:"userType"`
	GuestName   string                `json:"guestName"`
	GuestEmail  string                `json:"guestEmail"`
	GuestPhone  string                `json:"guestPhone"`
	Timestamp   string                `json:"timestamp"`
	Subject     string                `json:"subject"`
	Message     string                `json:"message,omitempty"`
	Status      model.GrievanceStatus `json:"status"`
	GrievanceID int                   `json:"grievanceId"`
}

// Encode renders g in its source's wire shape.
func Encode(g model.Grievance) any {
	if g.UserType == model.UserTypeGuest {
		return guestWire{
			GrievanceID: g.ID,
			UserType:    g.UserType,
			GuestName:   g.Name,
			GuestEmail:  g.Email,
			GuestPhone:  g.Phone,
			Timestamp:   g.Timestamp,
			Subject:     g.Subject,
			Message:     g.Message,
			Status:      g.Status,
		}
	}
	return customerWire{
		GrievanceID:   g.ID,
		UserType:      g.UserType,
		CustomerName:  g.Name,
		CustomerEmail: g.Email,
		CustomerPhone: g.Phone,
		Timestamp:     g.Timestamp,
		Subject:       g.Subject,
		Message:       g.Message,
		Status:        g.Status,
	}
}

// EncodeAll renders a listing; the result is never nil.
func EncodeAll(userType model.UserType, grievances []model.Grievance) []any {
	out := make([]any, 0, len(grievances))
	for _, g := range grievances {
		g.UserType = userType
		out = append(out, Encode(g))
	}
	return out
}
