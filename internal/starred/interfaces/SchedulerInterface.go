package interfaces

import "context"

type SchedulerInterface interface {
	Init()
	Stop()
	Restore(ctx context.Context) error
	Persist() error
}
