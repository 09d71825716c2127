package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"

	tgDelivery "kairos/internal/delivery/telegram"
	webchatDelivery "kairos/internal/delivery/webchat"
	"kairos/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	ratePerMin  int

	telegramHandler tgDelivery.Handler
	webchatHandler  webchatDelivery.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Port        int
	Mode        string
	Environment string

	// RatePerMin bounds inbound requests per client IP; zero disables
	// rate limiting.
	RatePerMin int

	TelegramHandler tgDelivery.Handler
	WebchatHandler  webchatDelivery.Handler
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.Default(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		ratePerMin:      cfg.RatePerMin,
		telegramHandler: cfg.TelegramHandler,
		webchatHandler:  cfg.WebchatHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
