package server

import (
	"github.com/rs/zerolog/log"

	"github.com/surveykit/sp1conv/assets"
	"github.com/surveykit/sp1conv/internal/config"
)

// ServerContext holds dependencies for request handlers.
type ServerContext struct {
	Config    *config.Config
	IndexHTML []byte
	Favicon   []byte
}

// NewServerContext initializes the context with the embedded web assets.
func NewServerContext(cfg *config.Config) *ServerContext {
	log.Info().
		Int64("max_upload", cfg.MaxUpload).
		Bool("strict", cfg.Strict).
		Msg("Initializing server context")

	return &ServerContext{
		Config:    cfg,
		IndexHTML: assets.IndexHTML,
		Favicon:   assets.Favicon,
	}
}
