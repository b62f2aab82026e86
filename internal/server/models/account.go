// Package models defines server-side data models persisted in the database.
package models

// Account is a user identity. Name is globally unique and matched exactly.
type Account struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
