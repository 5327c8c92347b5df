package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"

	"github.com/IsacFSC/nutri-mobile-sub001/internal/config"
	dbpkg "github.com/IsacFSC/nutri-mobile-sub001/internal/db"
	domain "github.com/IsacFSC/nutri-mobile-sub001/internal/domain/appointment"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/infra/lock"
	infraRepo "github.com/IsacFSC/nutri-mobile-sub001/internal/infra/repository"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/models"
	"github.com/IsacFSC/nutri-mobile-sub001/internal/timezone"
	ucAppointment "github.com/IsacFSC/nutri-mobile-sub001/internal/usecase/appointment"
	ucPatient "github.com/IsacFSC/nutri-mobile-sub001/internal/usecase/patient"
	"github.com/IsacFSC/nutri-mobile-sub001/pkg/logging"
)

var plans = []string{"FREE", "BASIC", "PREMIUM"}

func main() {
	nutritionists := flag.Int("nutritionists", 5, "nutritionists to create")
	patients := flag.Int("patients", 20, "patients per nutritionist")
	appointments := flag.Int("appointments", 10, "appointments per nutritionist")
	flag.Parse()

	cfg := config.Load()
	log := logging.New(cfg.LogLevel)

	if err := run(cfg, log, *nutritionists, *patients, *appointments); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
	log.Info("seed complete")
}

type seeder struct {
	log          *logging.Logger
	nutritionist *infraRepo.NutritionistGormRepository
	availability *ucAppointment.UpdateAvailability
	slots        *ucAppointment.GetSlots
	appointment  *ucAppointment.CreateAppointment
	patient      *ucPatient.CreatePatient
}

func run(cfg *config.Config, log *logging.Logger, nCount, pCount, aCount int) error {
	ctx := context.Background()

	if err := timezone.SetDefault(cfg.DefaultTimezone); err != nil {
		return err
	}

	db, err := dbpkg.NewDB(cfg, log)
	if err != nil {
		return err
	}

	locker, rdb, err := lock.FromConfig(ctx, cfg)
	if err != nil {
		return err
	}
	if rdb != nil {
		defer rdb.Close()
	}

	appointmentRepo := infraRepo.NewAppointmentGormRepository(db)
	patientRepo := infraRepo.NewPatientGormRepository(db)
	settings := ucAppointment.Settings{
		SlotMinutes:      cfg.SlotMinutes,
		VideoCallBaseURL: cfg.VideoCallBaseURL,
	}
	assigner := ucPatient.NewProtocolAssigner(patientRepo, locker, nil, log, cfg.ProtocolPrefix, cfg.ProtocolMaxRetries)

	s := seeder{
		log:          log,
		nutritionist: infraRepo.NewNutritionistGormRepository(db),
		availability: ucAppointment.NewUpdateAvailability(appointmentRepo, nil),
		slots:        ucAppointment.NewGetSlots(appointmentRepo, nil, settings),
		appointment:  ucAppointment.NewCreateAppointment(appointmentRepo, nil, nil, settings),
		patient:      ucPatient.NewCreatePatient(patientRepo, assigner, nil, nil, nil),
	}

	for i := 0; i < nCount; i++ {
		if err := s.seedNutritionist(ctx, cfg.DefaultTimezone, pCount, aCount); err != nil {
			return err
		}
	}
	return nil
}

// workweek is Monday to Friday, 08:00-17:00 with lunch at 12:00.
func workweek() domain.Availability {
	av := domain.NewAvailability()
	for wd := time.Monday; wd <= time.Friday; wd++ {
		av[wd] = domain.DayAvailability{
			Weekday:     wd,
			IsAvailable: true,
			Slots: []domain.TimeRange{
				{Start: domain.TimeOfDay{Hour: 8}, End: domain.TimeOfDay{Hour: 17}},
			},
			Break: &domain.TimeRange{Start: domain.TimeOfDay{Hour: 12}, End: domain.TimeOfDay{Hour: 13}},
		}
	}
	return av
}

func (s seeder) seedNutritionist(ctx context.Context, tz string, pCount, aCount int) error {
	n := &models.Nutritionist{
		Name:     gofakeit.Name(),
		Email:    gofakeit.Email(),
		Phone:    gofakeit.Phone(),
		Timezone: tz,
	}
	if err := s.nutritionist.Create(ctx, n); err != nil {
		return fmt.Errorf("create nutritionist: %w", err)
	}

	if _, err := s.availability.Execute(ctx, n.ID, workweek()); err != nil {
		return fmt.Errorf("availability %s: %w", n.ID, err)
	}

	patientIDs := make([]uuid.UUID, 0, pCount)
	for i := 0; i < pCount; i++ {
		p, err := s.patient.Execute(ctx, ucPatient.CreatePatientInput{
			NutritionistID: n.ID,
			Name:           gofakeit.Name(),
			Phone:          gofakeit.Phone(),
			Email:          gofakeit.Email(),
			PlanType:       plans[gofakeit.Number(0, len(plans)-1)],
		})
		if err != nil {
			return fmt.Errorf("create patient: %w", err)
		}
		patientIDs = append(patientIDs, p.ID)
	}

	created := 0
	if len(patientIDs) > 0 {
		created = s.seedAppointments(ctx, n.ID, patientIDs, aCount)
	}

	s.log.Info("nutritionist seeded",
		"nutritionist_id", n.ID,
		"patients", len(patientIDs),
		"appointments", created,
	)
	return nil
}

// seedAppointments books free slots over the next two weeks.
func (s seeder) seedAppointments(ctx context.Context, nutritionistID uuid.UUID, patientIDs []uuid.UUID, want int) int {
	created := 0
	day := time.Now().AddDate(0, 0, 1)

	for d := 0; d < 14 && created < want; d++ {
		date := day.AddDate(0, 0, d).Format("2006-01-02")

		free, err := s.slots.Execute(ctx, nutritionistID, date)
		if err != nil {
			s.log.Warn("slots unavailable", "date", date, "error", err)
			continue
		}

		for _, slot := range free {
			if created >= want {
				break
			}
			if gofakeit.Number(0, 2) != 0 {
				continue
			}

			_, err := s.appointment.Execute(ctx, ucAppointment.CreateAppointmentInput{
				NutritionistID: nutritionistID,
				PatientID:      patientIDs[gofakeit.Number(0, len(patientIDs)-1)],
				DateTime:       slot.Start,
				Duration:       int(slot.End.Sub(slot.Start) / time.Minute),
			})
			if err != nil {
				s.log.Warn("appointment skipped", "start", slot.Start, "error", err)
				continue
			}
			created++
		}
	}
	return created
}
