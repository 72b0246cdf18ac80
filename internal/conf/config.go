// config.go: settings struct and loading for the kiosk application.
package conf

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/agrovision/kiosk-go/internal/logging"
)

// LogConfig defines the configuration for the main log file.
type LogConfig struct {
	Enabled    bool   // true to enable file logging
	Path       string // path to log file
	MaxSizeMB  int    // rotate after this many megabytes
	MaxBackups int    // rotated files to keep
	MaxAgeDays int    // days to keep rotated files
}

// MainSettings contains general application settings.
type MainSettings struct {
	Name string    // kiosk node name
	Log  LogConfig // main log file settings
}

// SessionSettings configures the session authority.
type SessionSettings struct {
	MaxDuration time.Duration // maximum lifetime of one scan session
	IdleTimeout time.Duration // idle-within-session timeout
	MaxEntries  int           // cap on catalog entries per session
}

// IdleSettings configures the kiosk-level idle controller.
type IdleSettings struct {
	Timeout time.Duration // inactivity duration before the kiosk goes idle
}

// VisionSettings configures detection and the stability gate.
type VisionSettings struct {
	MinConfidence  float64       // minimum detection confidence fed to the gate
	MinIoU         float64       // anchor overlap required to count as stable
	StableDuration time.Duration // sustained overlap required before trusting a detection
}

// MatchSettings configures the text-matching engine.
type MatchSettings struct {
	MinConfidence      float64 // minimum fuzzy similarity to accept a match
	PromotionThreshold float64 // similarity at/above which fuzzy is reported as exact
	LowConfidence      float64 // fuzzy matches below this are flagged low confidence
}

// QueueSettings configures one task lane.
type QueueSettings struct {
	Capacity int // queue capacity of the lane
}

// QueuesSettings holds per-lane queue settings.
type QueuesSettings struct {
	Detection   QueueSettings
	Recognition QueueSettings
	IO          QueueSettings
}

// CatalogSettings configures the product catalog source.
type CatalogSettings struct {
	Path string // optional YAML catalog file; seed data is used when empty or missing
}

// DatastoreSettings configures the sqlite datastore.
type DatastoreSettings struct {
	Enabled bool   // true to persist catalog and analytics
	Path    string // sqlite database path
}

// MQTTSettings configures optional telemetry publishing.
type MQTTSettings struct {
	Enabled bool   // true to enable MQTT telemetry
	Broker  string // broker URI, e.g. tcp://localhost:1883
	Topic   string // base topic for kiosk events
}

// TelemetrySettings configures the Prometheus endpoint.
type TelemetrySettings struct {
	Enabled bool   // true to expose metrics
	Listen  string // listen address for the metrics endpoint
}

// KioskSettings groups the kiosk pipeline configuration.
type KioskSettings struct {
	Session   SessionSettings
	Idle      IdleSettings
	Vision    VisionSettings
	Match     MatchSettings
	Queues    QueuesSettings
	Catalog   CatalogSettings
	Datastore DatastoreSettings
	MQTT      MQTTSettings
	Telemetry TelemetrySettings
}

// Settings is the root configuration object.
type Settings struct {
	Debug bool // true to enable debug logging

	Main  MainSettings
	Kiosk KioskSettings
}

var (
	settingsInstance *Settings
	once             sync.Once
	settingsMutex    sync.RWMutex
)

// Load reads the configuration exactly once and returns the settings.
func Load() (*Settings, error) {
	var loadErr error
	once.Do(func() {
		settings, err := load()
		if err != nil {
			loadErr = err
			return
		}
		settingsMutex.Lock()
		settingsInstance = settings
		settingsMutex.Unlock()
	})
	if loadErr != nil {
		return nil, loadErr
	}
	return Setting(), nil
}

// Setting returns the current settings instance, loading it if needed.
func Setting() *Settings {
	settingsMutex.RLock()
	s := settingsInstance
	settingsMutex.RUnlock()
	if s == nil {
		_, _ = Load()
		settingsMutex.RLock()
		s = settingsInstance
		settingsMutex.RUnlock()
	}
	return s
}

func load() (*Settings, error) {
	setDefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	for _, path := range configPaths() {
		viper.AddConfigPath(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !asConfigNotFound(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		logging.Info("no config file found, using defaults")
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	normalizeSettings(settings)
	return settings, nil
}

func asConfigNotFound(err error, target *viper.ConfigFileNotFoundError) bool {
	if e, ok := err.(viper.ConfigFileNotFoundError); ok {
		*target = e
		return true
	}
	return false
}

// configPaths returns the directories searched for config.yaml.
func configPaths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "agrovision"))
	}
	paths = append(paths, "/etc/agrovision")
	return paths
}
