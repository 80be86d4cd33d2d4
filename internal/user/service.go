package user

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/oltecnologia/analyst-management/internal"
	userDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/user"
)

// Repository defines the data access the user service needs.
type Repository interface {
	GetByID(id int64) (*userDatamodel.User, error)
	GetByUsername(username string) (*userDatamodel.User, error)
	GetByEmail(email string) (*userDatamodel.User, error)
	Create(u *userDatamodel.User) error
}

type Service struct {
	repo       Repository
	bcryptCost int
	logger     *slog.Logger
}

func NewService(repo Repository, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

func (s *Service) GetByID(id int64) (*User, error) {
	account, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to load user", "error", err, "user_id", id)
		return nil, internal.NewInternalError("failed to load user", err)
	}
	if account == nil {
		return nil, internal.ErrUserNotFound
	}
	return FromDataModel(account), nil
}

// Create provisions an account. Username and email must be unique within the
// store.
func (s *Service) Create(dto CreateUserDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetByUsername(dto.Username); err != nil {
		return nil, internal.NewInternalError("failed to check username", err)
	} else if existing != nil {
		return nil, internal.ErrDuplicateUsername
	}

	if existing, err := s.repo.GetByEmail(dto.Email); err != nil {
		return nil, internal.NewInternalError("failed to check email", err)
	} else if existing != nil {
		return nil, internal.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), s.bcryptCost)
	if err != nil {
		return nil, internal.NewInternalError("failed to hash password", err)
	}

	account := &userDatamodel.User{
		Username:     dto.Username,
		PasswordHash: string(hash),
		Role:         dto.Role,
		Name:         dto.Name,
		Email:        dto.Email,
	}

	if err := s.repo.Create(account); err != nil {
		s.logger.Error("failed to create user", "error", err, "username", dto.Username)
		return nil, internal.NewInternalError("failed to create user", err)
	}

	s.logger.Info("user created", "user_id", account.ID, "role", account.Role)

	return FromDataModel(account), nil
}

// EnsureAdmin seeds the bootstrap admin account when it is missing, so a
// fresh (or restarted in-memory) store always has one way in.
func (s *Service) EnsureAdmin(username, password, name, email string) error {
	existing, err := s.repo.GetByUsername(username)
	if err != nil {
		return internal.NewInternalError("failed to check admin account", err)
	}
	if existing != nil {
		return nil
	}

	_, err = s.Create(CreateUserDTO{
		Username: username,
		Password: password,
		Role:     "admin",
		Name:     name,
		Email:    email,
	})
	return err
}
