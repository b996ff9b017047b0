package models

import (
	"time"
)

// Admin represents an administrator account
type Admin struct {
	ID           string    `json:"adminId"`
	AdminName    string    `json:"adminName"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Never returned in JSON
	AdminType    string    `json:"adminType"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// AdminRegister holds data needed for registration
type AdminRegister struct {
	AdminName string `json:"adminName"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	AdminType string `json:"adminType"`
}

// AdminLogin holds data needed for login
type AdminLogin struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
