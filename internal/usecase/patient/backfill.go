package patient

import (
	"context"
	"errors"

	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/patient"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/observability/metrics"
	"github.com/IsacFSC/nutri-mobile-sub001/pkg/logging"
)

var errAlreadyNumbered = errors.New("patient already has a protocol number")

// BackfillProtocols numbers legacy patients, oldest first, using the month
// each one was created in.
type BackfillProtocols struct {
	repo     domain.Repository
	assigner *ProtocolAssigner
	metrics  *metrics.SchedulingMetrics
	log      *logging.Logger
}

func NewBackfillProtocols(
	repo domain.Repository,
	assigner *ProtocolAssigner,
	m *metrics.SchedulingMetrics,
	log *logging.Logger,
) *BackfillProtocols {
	if log == nil {
		log = logging.Default()
	}
	return &BackfillProtocols{
		repo:     repo,
		assigner: assigner,
		metrics:  m,
		log:      log,
	}
}

// Execute runs until no patient is left without a number and returns how many it assigned.
func (uc *BackfillProtocols) Execute(ctx context.Context, batchSize int) (int, error) {
	if batchSize <= 0 {
		batchSize = 100
	}

	assigned := 0
	for {
		if err := ctx.Err(); err != nil {
			return assigned, err
		}

		batch, err := uc.repo.ListWithoutProtocol(ctx, batchSize)
		if err != nil {
			return assigned, err
		}
		if len(batch) == 0 {
			return assigned, nil
		}

		for _, p := range batch {
			patientID := p.ID

			protocol, err := uc.assigner.Assign(ctx, p.CreatedAt, func(ctx context.Context, protocol string) error {
				ok, err := uc.repo.AssignProtocol(ctx, patientID, protocol)
				if err != nil {
					return err
				}
				if !ok {
					return errAlreadyNumbered
				}
				return nil
			})
			if errors.Is(err, errAlreadyNumbered) {
				uc.log.Info("patient numbered concurrently, skipping", "patient_id", patientID)
				continue
			}
			if err != nil {
				return assigned, err
			}

			assigned++
			uc.metrics.ObserveProtocolAssigned("backfill")
			uc.log.Info("protocol assigned", "patient_id", patientID, "protocol", protocol)
		}
	}
}
