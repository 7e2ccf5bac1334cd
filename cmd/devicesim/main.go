// Command devicesim emulates the external proximity sensor: it pushes a
// reading to the API every interval until interrupted.
package main

import (
	"log"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"example.com/wearable/internal/config"
)

type proximityReading struct {
	SensorID   string  `json:"sensor_id"`
	DistanceCM float64 `json:"distancia_cm"`
}

func main() {
	cfg := config.Load()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	client := resty.New().
		SetTimeout(5 * time.Second).
		SetHeader("Content-Type", "application/json")

	runID := uuid.NewString()
	log.Printf("device simulator started (run=%s, target=%s, interval=%s)", runID, cfg.DeviceAPIURL, cfg.DeviceInterval)

	ticker := time.NewTicker(cfg.DeviceInterval)
	defer ticker.Stop()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	for {
		sendReading(client, cfg, rng)

		select {
		case <-stop:
			log.Printf("device simulator stopped (run=%s)", runID)
			return
		case <-ticker.C:
		}
	}
}

func sendReading(client *resty.Client, cfg config.Config, rng *rand.Rand) {
	reading := proximityReading{
		SensorID:   cfg.DeviceSensorID,
		DistanceCM: roundHundredth(5.0 + rng.Float64()*35.0),
	}

	resp, err := client.R().
		SetBody(reading).
		Post(cfg.DeviceAPIURL)
	if err != nil {
		log.Printf("push failed: %v", err)
		return
	}
	log.Printf("pushed distance=%.2fcm status=%d", reading.DistanceCM, resp.StatusCode())
}

func roundHundredth(v float64) float64 {
	return math.Round(v*100) / 100
}
