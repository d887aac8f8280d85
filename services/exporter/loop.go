package exporter

import (
	"context"
	"sync"
	"time"

	foundation "github.com/estafette/estafette-foundation"
	"github.com/estafette/teamcity-build-status-exporter/api"
	"github.com/rs/zerolog/log"
)

// PollLoop drives poll cycles on the configured interval until stopped
type PollLoop interface {
	Run(stopChannel <-chan struct{}, waitGroup *sync.WaitGroup)
}

// NewPollLoop returns a loop running cycles of the passed service; pass the
// fully decorated service so every cycle is logged, measured and traced
func NewPollLoop(config *api.APIConfig, service Service) PollLoop {
	return &pollLoop{
		config:  config,
		service: service,
	}
}

type pollLoop struct {
	config  *api.APIConfig
	service Service
}

func (l *pollLoop) Run(stopChannel <-chan struct{}, waitGroup *sync.WaitGroup) {
	go func() {
		log.Debug().Msg("Polling TeamCity for build statuses...")

		for {
			// check for stop before starting a new cycle
			select {
			case <-stopChannel:
				log.Debug().Msg("Stopping TeamCity poll loop...")
				return
			default:
			}

			// the cycle joins the waitgroup so graceful shutdown lets it finish;
			// its context is independent of the stop signal, a cycle is never
			// canceled halfway through building a snapshot
			waitGroup.Add(1)
			err := l.service.PollCycle(context.Background())
			waitGroup.Done()
			if err != nil {
				log.Warn().Err(err).Msg("Poll cycle failed, retrying next interval")
			}

			// sleep random time around the configured interval
			sleepTime := foundation.ApplyJitter(int(l.config.Poller.Interval.Seconds()))
			log.Debug().Msgf("Sleeping for %v seconds...", sleepTime)

			select {
			case <-stopChannel:
				log.Debug().Msg("Stopping TeamCity poll loop...")
				return
			case <-time.After(time.Duration(sleepTime) * time.Second):
			}
		}
	}()
}
