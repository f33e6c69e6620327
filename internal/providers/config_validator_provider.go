package providers

import (
	"fmt"

	"github.com/StormKing969/movie-review-app/internal/structures"
	"github.com/gookit/validate"
)

type CnfValidator struct {
	conf *structures.Config
}

func NewCnfValidator(conf *structures.Config) *CnfValidator {
	return &CnfValidator{conf: conf}
}

func (cv *CnfValidator) Validate() error {
	v := validate.Struct(cv.conf)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %s", v.Errors.One())
	}
	return cv.validateBackend()
}

// validateBackend checks the settings the chosen popularity backend needs.
func (cv *CnfValidator) validateBackend() error {
	p := cv.conf.Popularity
	switch p.Backend {
	case structures.BackendMongo:
		if p.Mongo.URI == "" || p.Mongo.Database == "" || p.Mongo.Collection == "" {
			return fmt.Errorf("invalid config: popularity.mongo requires uri, database and collection")
		}
	case structures.BackendRedis:
		if p.Redis.Addr == "" {
			return fmt.Errorf("invalid config: popularity.redis requires addr")
		}
	}
	return nil
}
