package service

import (
	"context"

	"github.com/deppfellow/crm/internal/entity"
	"github.com/deppfellow/crm/internal/errs"
	"github.com/deppfellow/crm/internal/repository"
	"github.com/deppfellow/crm/internal/server"
	"github.com/deppfellow/crm/internal/validation"
)

const (
	invalidIDMessage = "User ID must be a positive integer."
	notFoundMessage  = "User not found"
)

var userNotFoundCode = "USER_NOT_FOUND"

// UserInput carries the four business fields of a user as the client sent them.
type UserInput struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	BirthDate string `json:"birthdate" validate:"required,calendardate"`
}

func (in *UserInput) Validate() error {
	return validation.Struct(in)
}

// toEntity assumes Validate passed.
func (in *UserInput) toEntity() (*entity.User, error) {
	birthDate, err := entity.ParseDate(in.BirthDate)
	if err != nil {
		return nil, err
	}

	return &entity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		BirthDate: birthDate,
	}, nil
}

type UserService struct {
	server *server.Server
	repo   repository.UserRepository
}

func NewUserService(s *server.Server, repo repository.UserRepository) *UserService {
	return &UserService{
		server: s,
		repo:   repo,
	}
}

// Create validates input and inserts a new user. The stored birth date is
// normalized to YYYY-MM-DD.
func (s *UserService) Create(ctx context.Context, input UserInput) (*entity.User, error) {
	user, err := s.prepare(&input)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Search never validates term; "" matches every user.
func (s *UserService) Search(ctx context.Context, term string) ([]entity.User, error) {
	return s.repo.Search(ctx, term)
}

// Update overwrites user id with input.
//
// An id that matches no row is a silent no-op unless users.report_missing
// is set, in which case it is a 404.
func (s *UserService) Update(ctx context.Context, id int64, input UserInput) error {
	if err := checkID(id); err != nil {
		return err
	}

	user, err := s.prepare(&input)
	if err != nil {
		return err
	}

	rows, err := s.repo.UpdateByID(ctx, id, user)
	if err != nil {
		return err
	}

	return s.checkFound(rows)
}

// Delete removes user id. Missing ids behave as in Update.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := checkID(id); err != nil {
		return err
	}

	rows, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}

	return s.checkFound(rows)
}

func (s *UserService) prepare(input *UserInput) (*entity.User, error) {
	if err := validation.Check(input); err != nil {
		return nil, err
	}

	user, err := input.toEntity()
	if err != nil {
		return nil, validation.AsHTTPError(validation.ValidationFailedMessage, validation.CustomValidationErrors{
			{Field: "birthdate", Message: "must be a valid date in YYYY-MM-DD format"},
		})
	}

	return user, nil
}

func (s *UserService) checkFound(rows int64) error {
	if rows == 0 && s.server.Config.Users.ReportMissing {
		return errs.NewNotFoundError(notFoundMessage, &userNotFoundCode)
	}
	return nil
}

func checkID(id int64) error {
	return validation.AsHTTPError(invalidIDMessage, validation.PositiveID("id", id))
}
