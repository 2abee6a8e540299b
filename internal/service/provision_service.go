package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"hexaboard-service/internal/email"
	"hexaboard-service/internal/event"
	"hexaboard-service/internal/models"
	"hexaboard-service/internal/repository"
	"hexaboard-service/internal/utils"
)

type ProvisionService struct {
	Users       *repository.UserRepository
	Departments *DepartmentService
	Mailer      email.Mailer
	Publisher   *event.Publisher
}

func NewProvisionService(users *repository.UserRepository, departments *DepartmentService, mailer email.Mailer, publisher *event.Publisher) *ProvisionService {
	return &ProvisionService{Users: users, Departments: departments, Mailer: mailer, Publisher: publisher}
}

type ProvisionInput struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
}

// ProvisionReport is the per-row outcome of a provisioning run. A failed
// row never aborts the run; the report says what happened to each entry.
type ProvisionReport struct {
	Email     string `json:"email"`
	UserID    string `json:"user_id,omitempty"`
	Status    string `json:"status"`
	Error     string `json:"error,omitempty"`
	EmailSent bool   `json:"email_sent"`
}

const (
	provisionCreated = "created"
	provisionFailed  = "failed"
)

// ProvisionOne creates a fresher account with a generated temporary
// password, places it in its department (created on demand), and sends
// the welcome email. A mail delivery failure is reported but does not
// undo the account.
func (s *ProvisionService) ProvisionOne(ctx context.Context, input ProvisionInput) ProvisionReport {
	report := ProvisionReport{Email: input.Email, Status: provisionFailed}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	report.Email = input.Email
	if input.Name == "" || input.Email == "" || !strings.Contains(input.Email, "@") {
		report.Error = "name and a valid email are required"
		return report
	}

	if _, err := s.Users.FindByEmail(ctx, input.Email); err == nil {
		report.Error = "email already registered"
		return report
	} else if !errors.Is(err, repository.ErrNotFound) {
		report.Error = err.Error()
		return report
	}

	password := utils.GeneratePassword()
	hash, err := utils.HashPassword(password)
	if err != nil {
		report.Error = fmt.Sprintf("failed to hash password: %v", err)
		return report
	}

	user := &models.User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         models.RoleFresher,
		StartDate:    strings.TrimSpace(input.StartDate),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		report.Error = err.Error()
		return report
	}
	report.UserID = user.ID
	report.Status = provisionCreated

	if name := strings.TrimSpace(input.Department); name != "" {
		dept, err := s.Departments.FindOrCreate(ctx, &models.Department{Name: name})
		if err != nil {
			log.Printf("Failed to resolve department %q for %s: %v", name, input.Email, err)
		} else if err := s.Departments.AssignUser(ctx, dept.ID, user.ID); err != nil {
			log.Printf("Failed to assign %s to department %q: %v", input.Email, name, err)
		}
	}

	if err := s.Mailer.SendWelcome(user.Name, user.Email, password); err != nil {
		log.Printf("Failed to send welcome email to %s: %v", user.Email, err)
	} else {
		report.EmailSent = true
	}

	if s.Publisher != nil {
		s.Publisher.Publish(event.FresherProvisioned, map[string]interface{}{
			"user_id": user.ID,
			"email":   user.Email,
		})
	}
	return report
}

// ProvisionMany runs ProvisionOne per row and collects the reports.
func (s *ProvisionService) ProvisionMany(ctx context.Context, inputs []ProvisionInput) []ProvisionReport {
	reports := make([]ProvisionReport, 0, len(inputs))
	for _, input := range inputs {
		reports = append(reports, s.ProvisionOne(ctx, input))
	}
	return reports
}

// ParseProvisionCSV reads provisioning rows from a CSV stream. The first
// record is a header; name and email columns are required, department and
// start_date optional, in any column order.
func ParseProvisionCSV(r io.Reader) ([]ProvisionInput, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %v", err)
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}
	if _, ok := columns["name"]; !ok {
		return nil, errors.New("CSV is missing a name column")
	}
	if _, ok := columns["email"]; !ok {
		return nil, errors.New("CSV is missing an email column")
	}

	field := func(record []string, column string) string {
		idx, ok := columns[column]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var inputs []ProvisionInput
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %v", err)
		}
		inputs = append(inputs, ProvisionInput{
			Name:       field(record, "name"),
			Email:      field(record, "email"),
			Department: field(record, "department"),
			StartDate:  field(record, "start_date"),
		})
	}
	return inputs, nil
}
