// Package handlers exposes the item catalog and admin accounts over HTTP.
package handlers

import (
	"context"

	"github.com/JuzzThyne/ERI-backend/admin"
	"github.com/JuzzThyne/ERI-backend/catalog"
	"github.com/JuzzThyne/ERI-backend/utils"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps is everything the router needs. UploadDir, when set, is served under
// /uploads for the local image host.
type Deps struct {
	Items          *catalog.Service
	Admins         *admin.Service
	Tokens         *utils.TokenManager
	Health         Pinger
	CORSOrigins    []string
	MaxUploadBytes int64
	UploadDir      string
}

type Handler struct {
	items  *catalog.Service
	admins *admin.Service
	health Pinger
}

func New(d Deps) *Handler {
	return &Handler{items: d.Items, admins: d.Admins, health: d.Health}
}
