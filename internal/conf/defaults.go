// defaults.go: default values for settings.
package conf

import (
	"time"

	"github.com/spf13/viper"
)

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)

	viper.SetDefault("main.name", "AgroVision")
	viper.SetDefault("main.log.enabled", true)
	viper.SetDefault("main.log.path", "kiosk.log")
	viper.SetDefault("main.log.maxsizemb", 100)
	viper.SetDefault("main.log.maxbackups", 3)
	viper.SetDefault("main.log.maxagedays", 28)

	viper.SetDefault("kiosk.session.maxduration", 30*time.Second)
	viper.SetDefault("kiosk.session.idletimeout", 15*time.Second)
	viper.SetDefault("kiosk.session.maxentries", 4)

	viper.SetDefault("kiosk.idle.timeout", 90*time.Second)

	viper.SetDefault("kiosk.vision.minconfidence", 0.5)
	viper.SetDefault("kiosk.vision.miniou", 0.6)
	viper.SetDefault("kiosk.vision.stableduration", 500*time.Millisecond)

	viper.SetDefault("kiosk.match.minconfidence", 0.60)
	viper.SetDefault("kiosk.match.promotionthreshold", 0.999)
	viper.SetDefault("kiosk.match.lowconfidence", 0.75)

	viper.SetDefault("kiosk.queues.detection.capacity", 1)
	viper.SetDefault("kiosk.queues.recognition.capacity", 1)
	viper.SetDefault("kiosk.queues.io.capacity", 20)

	viper.SetDefault("kiosk.catalog.path", "")

	viper.SetDefault("kiosk.datastore.enabled", false)
	viper.SetDefault("kiosk.datastore.path", "kiosk.db")

	viper.SetDefault("kiosk.mqtt.enabled", false)
	viper.SetDefault("kiosk.mqtt.broker", "tcp://localhost:1883")
	viper.SetDefault("kiosk.mqtt.topic", "agrovision/kiosk")

	viper.SetDefault("kiosk.telemetry.enabled", false)
	viper.SetDefault("kiosk.telemetry.listen", "0.0.0.0:8090")
}
