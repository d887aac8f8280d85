package exporter

import (
	"context"
)

type MockService struct {
	PollCycleFunc func(ctx context.Context) (err error)
}

func (s MockService) PollCycle(ctx context.Context) (err error) {
	if s.PollCycleFunc == nil {
		return
	}
	return s.PollCycleFunc(ctx)
}
