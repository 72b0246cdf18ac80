// validate.go: best-effort normalization of loaded settings.
//
// Invalid values never crash the kiosk. Each out-of-range value is logged and
// replaced with the shipped default so a broken config file degrades to the
// stock behavior instead of taking the device down.
package conf

import (
	"time"

	"github.com/agrovision/kiosk-go/internal/logging"
)

const (
	defaultSessionMaxDuration = 30 * time.Second
	defaultSessionIdleTimeout = 15 * time.Second
	defaultSessionMaxEntries  = 4

	defaultIdleTimeout = 90 * time.Second

	defaultVisionMinConfidence  = 0.5
	defaultVisionMinIoU         = 0.6
	defaultVisionStableDuration = 500 * time.Millisecond

	defaultMatchMinConfidence      = 0.60
	defaultMatchPromotionThreshold = 0.999
	defaultMatchLowConfidence      = 0.75

	defaultDetectionQueueCapacity   = 1
	defaultRecognitionQueueCapacity = 1
	defaultIOQueueCapacity          = 20
)

// normalizeSettings replaces invalid values with defaults in place.
func normalizeSettings(s *Settings) {
	log := logging.ForService("conf")

	fixDuration := func(name string, v *time.Duration, def time.Duration) {
		if *v <= 0 {
			log.Warn("invalid duration in config, using default", "setting", name, "value", *v, "default", def)
			*v = def
		}
	}
	fixUnitInterval := func(name string, v *float64, def float64) {
		if *v <= 0 || *v > 1 {
			log.Warn("threshold out of range in config, using default", "setting", name, "value", *v, "default", def)
			*v = def
		}
	}
	fixPositive := func(name string, v *int, def int) {
		if *v <= 0 {
			log.Warn("invalid count in config, using default", "setting", name, "value", *v, "default", def)
			*v = def
		}
	}

	fixDuration("kiosk.session.maxduration", &s.Kiosk.Session.MaxDuration, defaultSessionMaxDuration)
	fixDuration("kiosk.session.idletimeout", &s.Kiosk.Session.IdleTimeout, defaultSessionIdleTimeout)
	fixPositive("kiosk.session.maxentries", &s.Kiosk.Session.MaxEntries, defaultSessionMaxEntries)

	fixDuration("kiosk.idle.timeout", &s.Kiosk.Idle.Timeout, defaultIdleTimeout)

	fixUnitInterval("kiosk.vision.minconfidence", &s.Kiosk.Vision.MinConfidence, defaultVisionMinConfidence)
	fixUnitInterval("kiosk.vision.miniou", &s.Kiosk.Vision.MinIoU, defaultVisionMinIoU)
	fixDuration("kiosk.vision.stableduration", &s.Kiosk.Vision.StableDuration, defaultVisionStableDuration)

	fixUnitInterval("kiosk.match.minconfidence", &s.Kiosk.Match.MinConfidence, defaultMatchMinConfidence)
	fixUnitInterval("kiosk.match.promotionthreshold", &s.Kiosk.Match.PromotionThreshold, defaultMatchPromotionThreshold)
	fixUnitInterval("kiosk.match.lowconfidence", &s.Kiosk.Match.LowConfidence, defaultMatchLowConfidence)

	fixPositive("kiosk.queues.detection.capacity", &s.Kiosk.Queues.Detection.Capacity, defaultDetectionQueueCapacity)
	fixPositive("kiosk.queues.recognition.capacity", &s.Kiosk.Queues.Recognition.Capacity, defaultRecognitionQueueCapacity)
	fixPositive("kiosk.queues.io.capacity", &s.Kiosk.Queues.IO.Capacity, defaultIOQueueCapacity)
}
