// Package sandbox assembles the REST API contract double: the same routes,
// bodies and error shapes the booking client talks to, backed by gorm.
package sandbox

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gorm.io/gorm"

	dbpkg "github.com/BruksfildServices01/barber-booking/internal/db"
	"github.com/BruksfildServices01/barber-booking/internal/records"
	"github.com/BruksfildServices01/barber-booking/internal/routes"
	ucAppointment "github.com/BruksfildServices01/barber-booking/internal/usecase/appointment"
	"github.com/BruksfildServices01/barber-booking/internal/validators"
)

var bindingOnce sync.Once

// registerBinding teaches gin's validator the request tags the client
// checks before sending.
func registerBinding() {
	bindingOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := validators.Register(v); err != nil {
			zap.L().Warn("binding tags not registered", zap.Error(err))
		}
	})
}

// OpenDB connects and migrates the sandbox tables.
func OpenDB(dsn string) (*gorm.DB, error) {
	return dbpkg.Open(dsn, records.All()...)
}

// NewRouter builds the gin engine. emitter may be nil.
func NewRouter(db *gorm.DB, jwtSecret string, emitter ucAppointment.Emitter) *gin.Engine {
	registerBinding()

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, jwtSecret, emitter)
	return r
}
