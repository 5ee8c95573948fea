package userapp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"blogpost/internal/config"
	"blogpost/internal/core/apperror"
	userEntity "blogpost/internal/core/user"
	userPort "blogpost/internal/ports/user"

	"github.com/dgrijalva/jwt-go"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gofrs/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenIssuer = "blogpost"

// UserService registers identities and manages their sessions.
type UserService struct {
	UserRepository userPort.UserRepository
	Sessions       userPort.SessionStore
	HashCost       int
	jwtKey         []byte
	ttl            time.Duration
	now            func() time.Time
}

func NewUserService(repo userPort.UserRepository, sessions userPort.SessionStore, jwtKey []byte, ttl time.Duration) *UserService {
	return &UserService{
		UserRepository: repo,
		Sessions:       sessions,
		HashCost:       bcrypt.DefaultCost,
		jwtKey:         jwtKey,
		ttl:            ttl,
		now:            time.Now,
	}
}

// RegisterUser creates a new identity. Last name is the only optional field.
func (s *UserService) RegisterUser(ctx context.Context, in userPort.SignupInput) (*userPort.UserDTO, error) {
	if err := validateSignup(in); err != nil {
		return nil, err
	}

	exists, err := s.UserRepository.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if exists {
		return nil, apperror.ErrDuplicateUsername
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.HashCost)
	if err != nil {
		return nil, err
	}

	user := &userEntity.User{
		ID:        uuid.Must(uuid.NewV4()),
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(hashedPassword),
		FirstName: in.FirstName,
		LastName:  in.LastName,
	}

	u, err := s.UserRepository.Create(ctx, user)
	if err != nil {
		// a concurrent signup can still win the unique index
		if errors.Is(err, apperror.ErrDuplicateUsername) {
			return nil, err
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	config.Logger.Info("user registered", zap.String("userID", u.ID.String()), zap.String("username", u.Username))
	return userPort.ToDTO(u), nil
}

func validateSignup(in userPort.SignupInput) error {
	err := validation.ValidateStruct(&in,
		validation.Field(&in.FirstName, validation.Required),
		validation.Field(&in.Username, validation.Required),
		validation.Field(&in.Email, validation.Required),
		validation.Field(&in.Password, validation.Required),
	)
	if err != nil {
		return apperror.NewValidationError("Please fill in all required fields.")
	}
	err = validation.ValidateStruct(&in,
		validation.Field(&in.FirstName, maxLength(userEntity.MaxNameLength)),
		validation.Field(&in.LastName, maxLength(userEntity.MaxNameLength)),
		validation.Field(&in.Username, maxLength(userEntity.MaxUsernameLength)),
		validation.Field(&in.Email, maxLength(userEntity.MaxEmailLength)),
	)
	if err != nil {
		return apperror.NewValidationError(err.Error())
	}
	return nil
}

func maxLength(n int) validation.Rule {
	return validation.RuneLength(0, n).Error(fmt.Sprintf("must be at most %d characters", n))
}

// Authenticate checks a username/password pair. Unknown users and wrong passwords fail the same way.
func (s *UserService) Authenticate(ctx context.Context, username, password string) (*userPort.UserDTO, error) {
	user, err := s.UserRepository.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			config.Logger.Error("Error finding user", zap.Error(err))
		}
		return nil, apperror.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperror.ErrInvalidCredentials
	}
	return userPort.ToDTO(user), nil
}

// LoginUser authenticates and issues a signed session token.
func (s *UserService) LoginUser(ctx context.Context, username, password string) (*userPort.LoginResponse, error) {
	identity, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return s.IssueToken(identity)
}

// IssueToken signs a session token for an identity that is already authenticated.
func (s *UserService) IssueToken(identity *userPort.UserDTO) (*userPort.LoginResponse, error) {
	now := s.now()
	expiresAt := now.Add(s.ttl).Unix()
	claims := &jwt.StandardClaims{
		Id:        uuid.Must(uuid.NewV4()).String(),
		Subject:   identity.ID,
		Issuer:    tokenIssuer,
		IssuedAt:  now.Unix(),
		ExpiresAt: expiresAt,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtKey)
	if err != nil {
		return nil, fmt.Errorf("could not generate token: %w", err)
	}

	return &userPort.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *UserService) parseToken(token string) (*jwt.StandardClaims, error) {
	claims := &jwt.StandardClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtKey, nil
	})
	if err != nil || !parsed.Valid {
		return nil, apperror.ErrUnauthenticated
	}
	if claims.Issuer != tokenIssuer || claims.Id == "" || claims.Subject == "" {
		return nil, apperror.ErrUnauthenticated
	}
	return claims, nil
}

// ResolveToken turns a session token back into the identity it was issued for.
func (s *UserService) ResolveToken(ctx context.Context, token string) (*userPort.UserDTO, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, err
	}

	revoked, err := s.Sessions.IsRevoked(ctx, claims.Id)
	if err != nil {
		return nil, fmt.Errorf("check session: %w", err)
	}
	if revoked {
		return nil, apperror.ErrUnauthenticated
	}

	user, err := s.UserRepository.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.ErrUnauthenticated
		}
		return nil, fmt.Errorf("load identity: %w", err)
	}
	return userPort.ToDTO(user), nil
}

// LogoutUser revokes the token for the rest of its lifetime. Invalid tokens are ignored.
func (s *UserService) LogoutUser(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil
	}
	ttl := time.Unix(claims.ExpiresAt, 0).Sub(s.now())
	if err := s.Sessions.Revoke(ctx, claims.Id, ttl); err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	config.Logger.Info("user logged out", zap.String("userID", claims.Subject))
	return nil
}

// ChangePassword rotates the credential after checking the current one.
func (s *UserService) ChangePassword(ctx context.Context, identity *userPort.UserDTO, oldPassword, newPassword string) error {
	if identity == nil {
		return apperror.ErrUnauthenticated
	}
	if err := validation.Validate(newPassword, validation.Required); err != nil {
		return apperror.NewValidationError("New password is required.")
	}

	user, err := s.UserRepository.FindByID(ctx, identity.ID)
	if err != nil {
		return fmt.Errorf("load identity: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return apperror.ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.HashCost)
	if err != nil {
		return err
	}
	return s.UserRepository.UpdatePassword(ctx, identity.ID, string(hashed))
}
