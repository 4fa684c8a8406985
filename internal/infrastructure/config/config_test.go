package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
)

type ConfigTestSuite struct {
	suite.Suite
	dir string
}

func (suite *ConfigTestSuite) SetupSubTest() {
	suite.dir = suite.T().TempDir()
}

func (suite *ConfigTestSuite) write(name, content string) string {
	path := filepath.Join(suite.dir, name)
	require.NoError(suite.T(), os.WriteFile(path, []byte(content), 0o600))
	return path
}

func (suite *ConfigTestSuite) TestLoad() {
	suite.Run("NoFile_ShouldUseDefaults", func() {
		// Act
		cfg, err := Load(suite.write("empty.yaml", "{}\n"))

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "Foodiee", cfg.App.Name)
		assert.Equal(suite.T(), 8080, cfg.Server.Port)
		assert.Equal(suite.T(), DriverMemory, cfg.Storage.Driver)
		assert.Equal(suite.T(), "foodiee.favorites", cfg.Storage.FavoritesKey)
		assert.Equal(suite.T(), 5*time.Second, cfg.Remote.Timeout)
		assert.Equal(suite.T(), 5, cfg.Remote.Breaker.FailureThreshold)
		assert.Equal(suite.T(), 30*time.Second, cfg.Remote.Breaker.Cooldown)
		assert.False(suite.T(), cfg.Remote.Enabled())
	})

	suite.Run("DotEnv_ShouldFeedEnvironment", func() {
		// Arrange
		suite.write(".env", "FOODIEE_APP_ENVIRONMENT=staging\n")
		wd, err := os.Getwd()
		require.NoError(suite.T(), err)
		require.NoError(suite.T(), os.Chdir(suite.dir))
		suite.T().Cleanup(func() {
			_ = os.Chdir(wd)
			_ = os.Unsetenv("FOODIEE_APP_ENVIRONMENT")
		})

		// Act
		cfg, err := Load(suite.write("empty.yaml", "{}\n"))

		// Assert
		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), "staging", cfg.App.Environment)
	})

	suite.Run("File_ShouldOverrideDefaults", func() {
		path := suite.write("config.yaml", `
server:
  port: 9000
remote:
  base_url: http://api.example.test
  use_mocks: true
storage:
  driver: sqlite
  sqlite_path: /tmp/foodiee-test.db
`)

		cfg, err := Load(path)

		require.NoError(suite.T(), err)
		assert.Equal(suite.T(), 9000, cfg.Server.Port)
		assert.Equal(suite.T(), "http://api.example.test", cfg.Remote.BaseURL)
		assert.True(suite.T(), cfg.Remote.UseMocks)
		assert.Equal(suite.T(), DriverSQLite, cfg.Storage.Driver)
	})

	suite.Run("Environment_ShouldOverrideFile", func() {
		path := suite.write("config.yaml", "remote:\n  use_mocks: false\n")
		suite.T().Setenv("FOODIEE_REMOTE_USE_MOCKS", "true")
		suite.T().Setenv("FOODIEE_SERVER_PORT", "7070")

		cfg, err := Load(path)

		require.NoError(suite.T(), err)
		assert.True(suite.T(), cfg.Remote.UseMocks)
		assert.Equal(suite.T(), 7070, cfg.Server.Port)
	})

	suite.Run("UnknownDriver_ShouldFailValidation", func() {
		path := suite.write("config.yaml", "storage:\n  driver: cassandra\n")

		_, err := Load(path)

		require.Error(suite.T(), err)
		assert.Contains(suite.T(), err.Error(), "storage.driver")
	})

	suite.Run("RelativeBaseURL_ShouldFailValidation", func() {
		path := suite.write("config.yaml", "remote:\n  base_url: api/recipes\n")

		_, err := Load(path)

		require.Error(suite.T(), err)
		assert.Contains(suite.T(), err.Error(), "remote.base_url")
	})

	suite.Run("BadPort_ShouldFailValidation", func() {
		path := suite.write("config.yaml", "server:\n  port: 70000\n")

		_, err := Load(path)

		assert.Error(suite.T(), err)
	})
}

func (suite *ConfigTestSuite) TestMockSwitch() {
	suite.Run("NoOverrideFile_ShouldUseEnvironmentDefault", func() {
		m := NewMockSwitch(RemoteConfig{UseMocks: true}, zaptest.NewLogger(suite.T()))

		assert.True(suite.T(), m.UseMocks())
	})

	suite.Run("MissingOverrideFile_ShouldUseEnvironmentDefault", func() {
		m := NewMockSwitch(RemoteConfig{
			UseMocks:     false,
			OverrideFile: filepath.Join(suite.dir, "absent.json"),
		}, zaptest.NewLogger(suite.T()))

		assert.False(suite.T(), m.UseMocks())
	})

	suite.Run("OverrideFile_ShouldTakePrecedence", func() {
		path := suite.write("mode.json", `{"use-mocks": true}`)

		m := NewMockSwitch(RemoteConfig{UseMocks: false, OverrideFile: path}, zaptest.NewLogger(suite.T()))

		assert.True(suite.T(), m.UseMocks())
	})

	suite.Run("OverrideWithoutKey_ShouldFallBack", func() {
		path := suite.write("mode.json", `{"theme": "dark"}`)

		m := NewMockSwitch(RemoteConfig{UseMocks: true, OverrideFile: path}, zaptest.NewLogger(suite.T()))

		assert.True(suite.T(), m.UseMocks())
	})

	suite.Run("Reload_ShouldPickUpChangesAndRemoval", func() {
		path := suite.write("mode.json", `{"use-mocks": false}`)
		m := NewMockSwitch(RemoteConfig{UseMocks: true, OverrideFile: path}, zaptest.NewLogger(suite.T()))
		require.False(suite.T(), m.UseMocks())

		suite.write("mode.json", `{"use-mocks": true}`)
		require.NoError(suite.T(), m.Reload())
		assert.True(suite.T(), m.UseMocks())

		require.NoError(suite.T(), os.Remove(path))
		require.NoError(suite.T(), m.Reload())
		assert.True(suite.T(), m.UseMocks(), "falls back to the environment default")
	})

	suite.Run("CorruptOverride_ShouldFallBackAndReportError", func() {
		path := suite.write("mode.json", `{"use-mocks": `)
		m := NewMockSwitch(RemoteConfig{UseMocks: false, OverrideFile: path}, zaptest.NewLogger(suite.T()))

		assert.False(suite.T(), m.UseMocks())
		assert.Error(suite.T(), m.Reload())
	})

	suite.Run("Watch_ShouldApplyFileWrites", func() {
		path := suite.write("mode.json", `{"use-mocks": false}`)
		// the watcher goroutine outlives the subtest, so it must not log to t
		m := NewMockSwitch(RemoteConfig{OverrideFile: path}, zap.NewNop())
		require.NoError(suite.T(), m.Watch())
		suite.T().Cleanup(func() { _ = m.Close() })

		suite.write("mode.json", `{"use-mocks": true}`)

		assert.Eventually(suite.T(), m.UseMocks, 5*time.Second, 20*time.Millisecond)
	})

	suite.Run("Watch_ShouldFollowRemovalAndRecreation", func() {
		// Arrange
		path := suite.write("mode.json", `{"use-mocks": true}`)
		m := NewMockSwitch(RemoteConfig{UseMocks: false, OverrideFile: path}, zap.NewNop())
		require.NoError(suite.T(), m.Watch())
		suite.T().Cleanup(func() { _ = m.Close() })
		require.True(suite.T(), m.UseMocks())

		// Act: removal falls back to the environment default
		require.NoError(suite.T(), os.Remove(path))

		// Assert
		assert.Eventually(suite.T(), func() bool { return !m.UseMocks() }, 5*time.Second, 20*time.Millisecond)

		// Act: a recreated file is picked up again
		suite.write("mode.json", `{"use-mocks": true}`)

		// Assert
		assert.Eventually(suite.T(), m.UseMocks, 5*time.Second, 20*time.Millisecond)
	})

	suite.Run("Watch_WithoutOverrideFile_ShouldBeNoop", func() {
		m := NewMockSwitch(RemoteConfig{UseMocks: true}, zap.NewNop())

		assert.NoError(suite.T(), m.Watch())
		assert.NoError(suite.T(), m.Close())
		assert.True(suite.T(), m.UseMocks())
	})
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
