package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/auth"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/jwt"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	employeeNoLength   = 6
	employeeNoAttempts = 5
)

type AuthServiceImpl struct {
	tx database.Transactor
	user.UserRepository
	employee.EmployeeRepository
	jwt.Service
	bcryptCost int
}

func NewAuthService(tx database.Transactor, userRepository user.UserRepository, employeeRepository employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		tx:                 tx,
		UserRepository:     userRepository,
		EmployeeRepository: employeeRepository,
		Service:            jwtService,
		bcryptCost:         bcrypt.DefaultCost,
	}
}

func (a *AuthServiceImpl) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), a.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// newEmployeeNo draws the first six hex digits of a random UUID until it
// finds one not yet taken.
func (a *AuthServiceImpl) newEmployeeNo(ctx context.Context) (string, error) {
	for range employeeNoAttempts {
		candidate := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:employeeNoLength])
		exists, err := a.EmployeeRepository.ExistsByEmployeeNo(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check employee number: %w", err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", employee.ErrEmployeeNoExhausted
}

// Register implements auth.AuthService.
func (a *AuthServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.RegisterResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.RegisterResponse{}, err
	}

	taken, err := a.UserRepository.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return auth.RegisterResponse{}, user.ErrUsernameTaken
	}

	passwordHash, err := a.hashPassword(req.Password)
	if err != nil {
		return auth.RegisterResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	var (
		newEmployee employee.Employee
		newUser     user.User
	)
	err = a.tx.WithinTx(ctx, func(ctx context.Context) error {
		employeeNo, err := a.newEmployeeNo(ctx)
		if err != nil {
			return err
		}

		newEmployee, err = a.EmployeeRepository.Create(ctx, employee.Employee{
			EmployeeNo: employeeNo,
			FirstName:  req.FirstName,
			LastName:   req.LastName,
			Gender:     req.Gender,
		})
		if err != nil {
			return fmt.Errorf("failed to create employee: %w", err)
		}

		// The first account becomes the administrator.
		count, err := a.UserRepository.Count(ctx)
		if err != nil {
			return fmt.Errorf("failed to count users: %w", err)
		}
		role := user.RoleEmployee
		if count == 0 {
			role = user.RoleAdmin
		}

		newUser, err = a.UserRepository.Create(ctx, user.User{
			EmployeeID:   newEmployee.ID,
			Username:     req.Username,
			PasswordHash: passwordHash,
			Role:         role,
			Status:       req.Status,
		})
		return err
	})
	if err != nil {
		return auth.RegisterResponse{}, err
	}

	slog.Info("user registered", "username", newUser.Username, "employee_no", newEmployee.EmployeeNo, "role", newUser.Role)

	return auth.RegisterResponse{
		Username:   newUser.Username,
		EmployeeNo: newEmployee.EmployeeNo,
		Role:       string(newUser.Role),
	}, nil
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.UserRepository.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !userData.IsActive() {
		return auth.TokenResponse{}, auth.ErrAccountInactive
	}

	emp, err := a.EmployeeRepository.GetByID(ctx, userData.EmployeeID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}

	accessToken, expiresAt, err := a.Service.GenerateAccessToken(jwt.AccessClaims{
		UserID:     userData.ID,
		Username:   userData.Username,
		EmployeeID: emp.ID,
		EmployeeNo: emp.EmployeeNo,
		FirstName:  emp.FirstName,
		LastName:   emp.LastName,
		Role:       userData.Role,
	})
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	slog.Info("user logged in", "username", userData.Username, "employee_no", emp.EmployeeNo)

	return auth.TokenResponse{
		AccessToken: accessToken,
		TokenType:   "Bearer",
		ExpiresAt:   expiresAt,
		Role:        string(userData.Role),
		Employee:    employee.NewEmployeeResponse(emp),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, token string, expiresAt int64) error {
	if token == "" {
		return auth.ErrInvalidToken
	}
	return a.Service.RevokeToken(ctx, token, time.Unix(expiresAt, 0))
}
