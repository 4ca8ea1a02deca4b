package service

import "github.com/google/uuid"

// Actor is the authenticated user performing an operation.
type Actor struct {
	ID    uuid.UUID
	Email string
}

func (a Actor) auditID() string {
	if a.ID == uuid.Nil {
		return "system"
	}
	return a.ID.String()
}

func (a Actor) summary() map[string]interface{} {
	return map[string]interface{}{"id": a.ID, "email": a.Email}
}
