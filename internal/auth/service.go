package auth

import (
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/oltecnologia/analyst-management/internal"
	userDatamodel "github.com/oltecnologia/analyst-management/internal/core/datamodel/user"
)

// UserRepository is the credential lookup the auth service needs from the
// user store.
type UserRepository interface {
	GetByUsername(username string) (*userDatamodel.User, error)
}

// Service owns the session registry and performs login/logout. The registry
// is injected so tests can run isolated instances.
type Service struct {
	userRepo UserRepository
	sessions *Registry
	logger   *slog.Logger
}

func NewService(userRepo UserRepository, sessions *Registry, logger *slog.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		sessions: sessions,
		logger:   logger,
	}
}

// Login verifies credentials and opens a session. Unknown usernames and wrong
// passwords are indistinguishable to the caller.
func (s *Service) Login(dto LoginDTO) (*LoginResponse, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	account, err := s.userRepo.GetByUsername(dto.Username)
	if err != nil || account == nil {
		s.logger.Warn("login failed: unknown username", "username", dto.Username)
		return nil, internal.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(dto.Password)); err != nil {
		s.logger.Warn("login failed: password mismatch", "username", dto.Username)
		return nil, internal.ErrInvalidCredentials
	}

	snapshot := SessionUser{
		ID:       account.ID,
		Role:     account.Role,
		Username: account.Username,
		Name:     account.Name,
		Email:    account.Email,
	}

	token, err := s.sessions.Create(snapshot)
	if err != nil {
		s.logger.Error("failed to create session", "error", err)
		return nil, internal.NewInternalError("failed to create session", err)
	}

	s.logger.Info("user logged in", "user_id", snapshot.ID, "role", snapshot.Role)

	return &LoginResponse{Token: token, User: snapshot}, nil
}

// Logout invalidates the caller's token. Always succeeds.
func (s *Service) Logout(token string) {
	s.sessions.Destroy(token)
}

// ResolveSession returns the snapshot bound to a live token.
func (s *Service) ResolveSession(token string) (SessionUser, bool) {
	return s.sessions.Resolve(token)
}
