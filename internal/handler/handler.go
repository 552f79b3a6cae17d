package handlers

import (
	"reflect"
	"strings"

	"blogstarter/internal/config"
	"blogstarter/internal/metrics"
	"blogstarter/internal/service"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type Handlers struct {
	AuthService   service.AuthService
	UserService   service.UserService
	PostService   service.PostService
	HealthService service.HealthService
	Metrics       *metrics.Metrics
	Log           *zap.Logger
	Cfg           *config.Config
	Validate      *validator.Validate
}

func NewHandlers(services *service.Service, cfg *config.Config, m *metrics.Metrics, log *zap.Logger) *Handlers {
	return &Handlers{
		AuthService:   services.Auth,
		UserService:   services.User,
		PostService:   services.Post,
		HealthService: services.Health,
		Metrics:       m,
		Log:           log,
		Cfg:           cfg,
		Validate:      NewValidator(),
	}
}

// NewValidator reports fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}
