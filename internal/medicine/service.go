package medicine

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/montanaflynn/stats"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// timePattern matches 24-hour HH:mm dose times, e.g. "09:00" or "21:30".
var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

const defaultReminderTime = "08:00"

type MedicineService struct {
	repo *MedicineRepository
}

func NewMedicineService(repo *MedicineRepository) *MedicineService {
	return &MedicineService{repo: repo}
}

func validateFrequency(frequency []Frequency) error {
	if len(frequency) == 0 {
		return errors.New("At least one frequency time must be specified")
	}
	for _, f := range frequency {
		if !timePattern.MatchString(f.Time) {
			return errors.New(f.Time + " is not a valid time format, use HH:mm")
		}
	}
	return nil
}

func validatePreferences(prefs NotificationPreferences) error {
	if prefs.Email.Enabled && prefs.Email.Address == "" {
		return errors.New("Email address is required when notifications are enabled")
	}
	if prefs.Email.ReminderTime != "" && !timePattern.MatchString(prefs.Email.ReminderTime) {
		return errors.New(prefs.Email.ReminderTime + " is not a valid time format, use HH:mm")
	}
	return nil
}

func (s *MedicineService) AddMedicine(ctx context.Context, req AddMedicineRequest) (*Medicine, error) {
	name := strings.TrimSpace(req.Name)
	dosage := strings.TrimSpace(req.Dosage)
	if name == "" || dosage == "" || req.UserID == "" {
		return nil, errors.New("Missing required fields: name, dosage and user_id")
	}
	if err := validateFrequency(req.Frequency); err != nil {
		return nil, err
	}

	frequency := make([]Frequency, len(req.Frequency))
	for i, f := range req.Frequency {
		frequency[i] = Frequency{Time: f.Time, Taken: false}
	}

	reminderTime := req.ReminderTime
	if reminderTime == "" {
		reminderTime = defaultReminderTime
	}
	prefs := NotificationPreferences{
		Email: EmailPreferences{
			Enabled:      true,
			Address:      req.Email,
			ReminderTime: reminderTime,
		},
	}
	if err := validatePreferences(prefs); err != nil {
		return nil, err
	}

	now := time.Now()
	m := &Medicine{
		ID:                      primitive.NewObjectID(),
		Name:                    name,
		Dosage:                  dosage,
		Frequency:               frequency,
		Notes:                   strings.TrimSpace(req.Notes),
		UserID:                  req.UserID,
		NotificationPreferences: prefs,
		Active:                  true,
		CreatedAt:               now,
		UpdatedAt:               now,
	}
	if err := s.repo.CreateMedicine(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *MedicineService) ListMedicines(ctx context.Context, userID string) ([]*Medicine, error) {
	if userID == "" {
		return nil, errors.New("User ID is required")
	}
	return s.repo.FindByUser(ctx, userID)
}

// UpdateMedicine applies a partial update to an existing record.
func (s *MedicineService) UpdateMedicine(ctx context.Context, id primitive.ObjectID, req UpdateMedicineRequest) (*Medicine, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, errors.New("Medicine not found")
	}

	if req.Name != "" {
		m.Name = strings.TrimSpace(req.Name)
	}
	if req.Dosage != "" {
		m.Dosage = strings.TrimSpace(req.Dosage)
	}
	if req.Notes != nil {
		m.Notes = strings.TrimSpace(*req.Notes)
	}
	if req.Frequency != nil {
		if err := validateFrequency(req.Frequency); err != nil {
			return nil, err
		}
		m.Frequency = req.Frequency
	}
	if req.NotificationPreferences != nil {
		prefs := m.NotificationPreferences
		if req.NotificationPreferences.Email.Enabled != nil {
			prefs.Email.Enabled = *req.NotificationPreferences.Email.Enabled
		}
		if req.NotificationPreferences.Email.Address != "" {
			prefs.Email.Address = req.NotificationPreferences.Email.Address
		}
		if req.NotificationPreferences.Email.ReminderTime != "" {
			prefs.Email.ReminderTime = req.NotificationPreferences.Email.ReminderTime
		}
		if err := validatePreferences(prefs); err != nil {
			return nil, err
		}
		m.NotificationPreferences = prefs
	}

	m.UpdatedAt = time.Now()
	if err := s.repo.UpdateMedicine(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

// DeleteMedicine performs a soft delete: the record stays in the collection
// with active=false and drops out of lists and reminders.
func (s *MedicineService) DeleteMedicine(ctx context.Context, id primitive.ObjectID) error {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if m == nil {
		return errors.New("Medicine not found")
	}
	m.Active = false
	m.UpdatedAt = time.Now()
	return s.repo.UpdateMedicine(ctx, m)
}

// AdherenceSummary describes how consistently a user's doses are marked taken.
type AdherenceSummary struct {
	Medicines   int     `json:"medicines"`
	MeanPercent float64 `json:"mean_percent"`
	MinPercent  float64 `json:"min_percent"`
	MaxPercent  float64 `json:"max_percent"`
}

// Adherence computes per-medicine taken percentages over the user's active
// medicines and summarizes them.
func (s *MedicineService) Adherence(ctx context.Context, userID string) (*AdherenceSummary, error) {
	medicines, err := s.ListMedicines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarizeAdherence(medicines)
}

func summarizeAdherence(medicines []*Medicine) (*AdherenceSummary, error) {
	if len(medicines) == 0 {
		return &AdherenceSummary{}, nil
	}

	percents := make([]float64, 0, len(medicines))
	for _, m := range medicines {
		if len(m.Frequency) == 0 {
			continue
		}
		taken := 0
		for _, f := range m.Frequency {
			if f.Taken {
				taken++
			}
		}
		percents = append(percents, float64(taken)/float64(len(m.Frequency))*100)
	}
	if len(percents) == 0 {
		return &AdherenceSummary{Medicines: len(medicines)}, nil
	}

	mean, err := stats.Mean(percents)
	if err != nil {
		return nil, err
	}
	min, err := stats.Min(percents)
	if err != nil {
		return nil, err
	}
	max, err := stats.Max(percents)
	if err != nil {
		return nil, err
	}
	return &AdherenceSummary{
		Medicines:   len(medicines),
		MeanPercent: mean,
		MinPercent:  min,
		MaxPercent:  max,
	}, nil
}
