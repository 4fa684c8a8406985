package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap/zaptest"

	"github.com/foodiee/recipes/internal/domain/recipe"
	"github.com/foodiee/recipes/internal/infrastructure/config"
	"github.com/foodiee/recipes/internal/infrastructure/http/client"
	"github.com/foodiee/recipes/internal/infrastructure/http/server"
	"github.com/foodiee/recipes/internal/ports/inbound"
	"github.com/foodiee/recipes/pkg/healthcheck"
)

type ContainerTestSuite struct {
	suite.Suite
	cfg *config.Config
}

func (suite *ContainerTestSuite) SetupSubTest() {
	cfg, err := config.Load("")
	require.NoError(suite.T(), err)
	cfg.App.LogLevel = "error"
	cfg.Server.Host = "127.0.0.1"
	cfg.Server.Port = 0
	cfg.Storage.Driver = config.DriverMemory
	suite.cfg = cfg
}

func (suite *ContainerTestSuite) TestCoreModule() {
	suite.Run("MemoryDriver_ShouldServeEmbeddedCatalog", func() {
		// Arrange
		var service inbound.CollectionService
		app := fxtest.New(suite.T(), fx.Supply(suite.cfg), CoreModule, fx.Populate(&service))

		// Act
		app.RequireStart()
		defer app.RequireStop()
		result, err := service.FetchCollection(context.Background(), recipe.Query{Search: "ramen"})

		// Assert
		require.NoError(suite.T(), err)
		require.NotEmpty(suite.T(), result.Items)
		assert.Equal(suite.T(), "umami-miso-ramen", result.Items[0].ID)
	})

	suite.Run("SQLiteDriver_ShouldPersistFavorites", func() {
		suite.cfg.Storage.Driver = config.DriverSQLite
		suite.cfg.Storage.SQLitePath = ""
		var service inbound.CollectionService
		app := fxtest.New(suite.T(), fx.Supply(suite.cfg), CoreModule, fx.Populate(&service))
		app.RequireStart()
		defer app.RequireStop()

		require.NoError(suite.T(), service.ToggleFavorite(context.Background(), "shakshuka", true))
		detail, err := service.FetchDetail(context.Background(), "shakshuka")

		require.NoError(suite.T(), err)
		assert.True(suite.T(), detail.Favorite)
		assert.Equal(suite.T(), []string{"shakshuka"}, service.Favorites(context.Background()))
	})

	suite.Run("FailingRemote_ShouldFallBackAndDegradeHealth", func() {
		// Arrange
		var hits atomic.Int32
		backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer backend.Close()
		suite.cfg.Remote.BaseURL = backend.URL
		suite.cfg.Remote.Breaker.FailureThreshold = 1
		suite.cfg.Remote.Breaker.Cooldown = time.Hour

		var (
			service inbound.CollectionService
			remote  *client.RecipeClient
			health  *healthcheck.HealthCheck
		)
		app := fxtest.New(suite.T(), fx.Supply(suite.cfg), CoreModule, fx.Populate(&service, &remote, &health))
		app.RequireStart()
		defer app.RequireStop()

		// Act
		first, err1 := service.FetchCollection(context.Background(), recipe.Query{})
		second, err2 := service.FetchCollection(context.Background(), recipe.Query{})

		// Assert
		require.NoError(suite.T(), err1)
		require.NoError(suite.T(), err2)
		assert.Equal(suite.T(), first.Total, second.Total)
		assert.Equal(suite.T(), int32(1), hits.Load(), "open breaker skips the backend")
		assert.Equal(suite.T(), client.StateOpen, remote.Breaker().State())
		assert.Equal(suite.T(), healthcheck.StatusDegraded, health.Check(context.Background()).Status)
	})

	suite.Run("NoRemote_ShouldNotBuildClient", func() {
		var remote *client.RecipeClient
		app := fxtest.New(suite.T(), fx.Supply(suite.cfg), CoreModule, fx.Populate(&remote))
		app.RequireStart()
		defer app.RequireStop()

		assert.Nil(suite.T(), remote)
	})
}

func (suite *ContainerTestSuite) TestServerModule() {
	suite.Run("Start_ShouldServeHealth", func() {
		var srv *server.Server
		app := fxtest.New(suite.T(), fx.Supply(suite.cfg), ServerModule, fx.Populate(&srv))
		app.RequireStart()
		defer app.RequireStop()

		resp, err := http.Get("http://" + srv.Addr() + "/health")

		require.NoError(suite.T(), err)
		defer resp.Body.Close()
		assert.Equal(suite.T(), http.StatusOK, resp.StatusCode)
	})
}

func TestBreakerChecker(t *testing.T) {
	b := client.NewBreaker(client.BreakerConfig{FailureThreshold: 1, Cooldown: time.Hour})
	checker := BreakerChecker(b)

	healthy := checker.Check(context.Background())
	b.Failure()
	degraded := checker.Check(context.Background())

	assert.Equal(t, healthcheck.StatusHealthy, healthy.Status)
	assert.Equal(t, healthcheck.StatusDegraded, degraded.Status)
	assert.Equal(t, map[string]string{"breaker": "open"}, degraded.Metadata)
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	cfg := &config.Config{Storage: config.StorageConfig{Driver: "cassandra"}}

	_, err := OpenStorage(context.Background(), cfg, nil, zaptest.NewLogger(t))

	assert.Error(t, err)
}

func TestContainerTestSuite(t *testing.T) {
	suite.Run(t, new(ContainerTestSuite))
}
