package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/avvvet/gym-services/internal/comm"
	"github.com/avvvet/gym-services/internal/gymsvc/models"
	"github.com/avvvet/gym-services/internal/gymsvc/store"
	log "github.com/sirupsen/logrus"
)

type attendanceStore interface {
	AdminStore
	ClientStore
	AttendanceStore
}

// MarkInput records one client's status for one day.
type MarkInput struct {
	ClientID   string
	AdminID    string
	Date       string
	Status     models.AttendanceStatus
	ClientName string
}

// AttendanceService keeps one attendance row per client per day.
type AttendanceService struct {
	store  attendanceStore
	events Events
	now    func() time.Time
}

func NewAttendanceService(store attendanceStore, events Events) *AttendanceService {
	if events == nil {
		events = NoopEvents{}
	}
	return &AttendanceService{store: store, events: events, now: time.Now}
}

// Mark sets the status of (client, date), replacing the row of that day when one exists.
func (s *AttendanceService) Mark(ctx context.Context, in MarkInput) (*models.Attendance, error) {
	if strings.TrimSpace(in.ClientID) == "" || strings.TrimSpace(in.AdminID) == "" ||
		strings.TrimSpace(in.Date) == "" || in.Status == "" {
		return nil, validationf("All fields are required")
	}
	if !in.Status.Valid() {
		return nil, validationf("Invalid status value. Use 'Present' or 'Absent'.")
	}
	day, err := models.ParseDay(in.Date)
	if err != nil {
		return nil, validationf("%v", err)
	}
	clientID, err := parseID("clientId", in.ClientID)
	if err != nil {
		return nil, err
	}
	adminID, err := parseID("adminId", in.AdminID)
	if err != nil {
		return nil, err
	}

	client, err := s.store.GetClientByID(ctx, clientID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Client not found")
	}
	if err != nil {
		return nil, storeErr("Failed to load client", err)
	}
	if _, err := s.store.GetAdminByID(ctx, adminID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Gym Owner not found")
		}
		return nil, storeErr("Failed to load admin", err)
	}
	if client.AdminID != adminID {
		return nil, validationf("Client does not belong to this Gym Owner")
	}

	name := strings.TrimSpace(in.ClientName)
	if name == "" {
		name = client.Name
	}
	entry := &models.Attendance{
		ClientID:   clientID,
		AdminID:    adminID,
		Date:       day,
		Status:     in.Status,
		ClientName: name,
	}
	if err := s.store.UpsertAttendance(ctx, entry); err != nil {
		return nil, storeErr("Failed to record attendance", err)
	}
	return entry, nil
}

// SweepAbsent gives every client of the admin an Absent row for today unless the client
// already has a row for today. Re-running it on the same day inserts nothing new.
// Not atomic across clients: a failure part-way leaves the rows written so far.
func (s *AttendanceService) SweepAbsent(ctx context.Context, adminID string) (*comm.SweepResult, error) {
	if strings.TrimSpace(adminID) == "" {
		return nil, validationf("Gym Owner ID is required")
	}
	id, err := parseID("adminId", adminID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetAdminByID(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, notFound("Gym Owner not found")
		}
		return nil, storeErr("Failed to load admin", err)
	}

	clients, err := s.store.ListClientsByAdmin(ctx, id)
	if err != nil {
		return nil, storeErr("Failed to list clients", err)
	}
	if len(clients) == 0 {
		return nil, notFound("No clients found for this Gym Owner")
	}

	today := models.FormatDay(s.now())
	entries := make([]models.Attendance, 0, len(clients))
	for _, c := range clients {
		entries = append(entries, models.Attendance{
			ClientID:   c.ID,
			AdminID:    id,
			Date:       today,
			Status:     models.Absent,
			ClientName: c.Name,
		})
	}

	marked, err := s.store.InsertMissingAttendance(ctx, entries)
	if err != nil {
		log.WithFields(log.Fields{"admin_id": adminID, "marked": marked}).Errorf("attendance sweep interrupted: %v", err)
		return nil, storeErr("Failed to mark attendance", err)
	}

	result := &comm.SweepResult{TotalClients: len(clients), Marked: marked}
	log.WithFields(log.Fields{"admin_id": adminID, "date": today, "total": result.TotalClients, "marked": marked}).
		Info("attendance sweep done")
	s.events.Publish(comm.EventAttendanceSwept, comm.AttendanceSwept{AdminID: adminID, Date: today, SweepResult: *result})
	return result, nil
}

// Correct overwrites the status of a single attendance row kept by adminID.
func (s *AttendanceService) Correct(ctx context.Context, adminID, attendanceID string, status models.AttendanceStatus) (*models.Attendance, error) {
	if !status.Valid() {
		return nil, validationf("Invalid status value. Use 'Present' or 'Absent'.")
	}
	owner, err := parseID("adminId", adminID)
	if err != nil {
		return nil, err
	}
	id, err := parseID("attendanceId", attendanceID)
	if err != nil {
		return nil, err
	}
	entry, err := s.store.SetAttendanceStatus(ctx, owner, id, status)
	if errors.Is(err, store.ErrNotFound) {
		return nil, notFound("Attendance record not found")
	}
	if err != nil {
		return nil, storeErr("Failed to update attendance", err)
	}
	return entry, nil
}

func (s *AttendanceService) ListByClient(ctx context.Context, clientID string) ([]models.Attendance, error) {
	id, err := parseID("clientId", clientID)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListAttendanceByClient(ctx, id)
	if err != nil {
		return nil, storeErr("Failed to list attendance", err)
	}
	if len(entries) == 0 {
		return nil, notFound("No attendance records found")
	}
	return entries, nil
}

func (s *AttendanceService) ListByAdmin(ctx context.Context, adminID string) ([]models.Attendance, error) {
	id, err := parseID("adminId", adminID)
	if err != nil {
		return nil, err
	}
	entries, err := s.store.ListAttendanceByAdmin(ctx, id)
	if err != nil {
		return nil, storeErr("Failed to list attendance", err)
	}
	if len(entries) == 0 {
		return nil, notFound("No attendance records found")
	}
	return entries, nil
}
