package service

import (
	"context"
	"errors"
	"log"

	"hexaboard-service/internal/event"
	"hexaboard-service/internal/models"
	"hexaboard-service/internal/repository"
)

type DepartmentService struct {
	Departments *repository.DepartmentRepository
	Users       *repository.UserRepository
	Publisher   *event.Publisher
}

func NewDepartmentService(departments *repository.DepartmentRepository, users *repository.UserRepository, publisher *event.Publisher) *DepartmentService {
	return &DepartmentService{Departments: departments, Users: users, Publisher: publisher}
}

func (s *DepartmentService) List(ctx context.Context) ([]models.Department, error) {
	return s.Departments.FindAll(ctx)
}

func (s *DepartmentService) Get(ctx context.Context, id string) (*models.Department, error) {
	return s.Departments.FindByID(ctx, id)
}

// FindOrCreate returns the department with the given name, creating it if
// it does not exist. Provisioning relies on this so a CSV naming a new
// department does not need a separate setup step.
func (s *DepartmentService) FindOrCreate(ctx context.Context, dept *models.Department) (*models.Department, error) {
	existing, err := s.Departments.FindByName(ctx, dept.Name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	if err := s.Departments.Create(ctx, dept); err != nil {
		return nil, err
	}
	return dept, nil
}

func (s *DepartmentService) Members(ctx context.Context, departmentID string) ([]models.User, error) {
	if _, err := s.Departments.FindByID(ctx, departmentID); err != nil {
		return nil, err
	}
	return s.Users.ListByDepartment(ctx, departmentID)
}

// AssignUser moves a user into a department, adjusting the member counter
// on both the old and new department in the same flow as the membership
// change itself.
func (s *DepartmentService) AssignUser(ctx context.Context, departmentID, userID string) error {
	if _, err := s.Departments.FindByID(ctx, departmentID); err != nil {
		return err
	}
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.DepartmentID == departmentID {
		return nil
	}

	if err := s.Users.SetDepartment(ctx, userID, departmentID); err != nil {
		return err
	}
	if user.DepartmentID != "" {
		if err := s.Departments.IncrementMembers(ctx, user.DepartmentID, -1); err != nil {
			log.Printf("Failed to decrement members of department %s: %v", user.DepartmentID, err)
		}
	}
	if err := s.Departments.IncrementMembers(ctx, departmentID, 1); err != nil {
		log.Printf("Failed to increment members of department %s: %v", departmentID, err)
	}

	s.publishMembership(userID, user.DepartmentID, departmentID)
	return nil
}

// RemoveUser clears a user's department membership.
func (s *DepartmentService) RemoveUser(ctx context.Context, departmentID, userID string) error {
	user, err := s.Users.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.DepartmentID != departmentID {
		return repository.ErrNotFound
	}

	if err := s.Users.SetDepartment(ctx, userID, ""); err != nil {
		return err
	}
	if err := s.Departments.IncrementMembers(ctx, departmentID, -1); err != nil {
		log.Printf("Failed to decrement members of department %s: %v", departmentID, err)
	}

	s.publishMembership(userID, departmentID, "")
	return nil
}

// Recount rewrites the member counter from the ground-truth user count,
// repairing any drift the incremental updates accumulated.
func (s *DepartmentService) Recount(ctx context.Context, departmentID string) (int64, error) {
	if _, err := s.Departments.FindByID(ctx, departmentID); err != nil {
		return 0, err
	}
	count, err := s.Users.CountByDepartment(ctx, departmentID)
	if err != nil {
		return 0, err
	}
	if err := s.Departments.SetMemberCount(ctx, departmentID, count); err != nil {
		return 0, err
	}
	return count, nil
}

func (s *DepartmentService) publishMembership(userID, from, to string) {
	if s.Publisher == nil {
		return
	}
	s.Publisher.Publish(event.MembershipChanged, map[string]interface{}{
		"user_id": userID,
		"from":    from,
		"to":      to,
	})
}
