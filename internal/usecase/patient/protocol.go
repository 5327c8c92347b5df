package patient

import (
	"context"
	"errors"
	"time"

	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/patient"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/httperr"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/infra/lock"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/observability/metrics"
	"github.com/IsacFSC/nutri-mobile-sub001/pkg/logging"
)

// ProtocolAssigner serialises read-max / increment / write per month prefix.
// A unique violation on protocol_number (expired lock, writer without the
// lock) is retried up to maxRetries.
type ProtocolAssigner struct {
	repo       domain.Repository
	locker     lock.Locker
	metrics    *metrics.SchedulingMetrics
	log        *logging.Logger
	prefix     string
	maxRetries int
}

func NewProtocolAssigner(
	repo domain.Repository,
	locker lock.Locker,
	m *metrics.SchedulingMetrics,
	log *logging.Logger,
	prefix string,
	maxRetries int,
) *ProtocolAssigner {
	if log == nil {
		log = logging.Default()
	}
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	if maxRetries < 0 {
		maxRetries = 0
	}

	return &ProtocolAssigner{
		repo:       repo,
		locker:     locker,
		metrics:    m,
		log:        log,
		prefix:     prefix,
		maxRetries: maxRetries,
	}
}

// Assign generates the next number of at's month and hands it to write.
// write must persist it and return the driver error on a duplicate.
func (a *ProtocolAssigner) Assign(
	ctx context.Context,
	at time.Time,
	write func(ctx context.Context, protocol string) error,
) (string, error) {

	monthPrefix := domain.MonthPrefix(a.prefix, at)

	var assigned string
	err := a.locker.WithLock(ctx, "protocol:"+monthPrefix, func(ctx context.Context) error {
		for attempt := 0; attempt <= a.maxRetries; attempt++ {
			latest, err := a.repo.LatestProtocol(ctx, monthPrefix)
			if err != nil {
				return err
			}

			next, err := domain.NextProtocolNumber(a.prefix, at, latest)
			if err != nil {
				return err
			}

			err = write(ctx, next)
			if err == nil {
				assigned = next
				return nil
			}
			if !httperr.IsUniqueViolation(err) {
				return err
			}

			a.metrics.ObserveProtocolRetry()
			a.log.Warn("protocol number taken, retrying", "protocol", next, "attempt", attempt+1)
		}
		return httperr.ErrBusiness(httperr.CodeProtocolBusy)
	})

	if errors.Is(err, lock.ErrNotAcquired) {
		return "", httperr.ErrBusiness(httperr.CodeProtocolBusy)
	}
	if err != nil {
		return "", err
	}
	return assigned, nil
}
