package user

import (
	"Hostel-Food-Ordering/domain"
	"Hostel-Food-Ordering/entities"
	"Hostel-Food-Ordering/internal/utils/mailing"
	"Hostel-Food-Ordering/pkg/jwt"
	"Hostel-Food-Ordering/pkg/university"
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.UserResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
		Me(ctx context.Context, userID string) (*domain.UserResponse, error)
		GetUsers(ctx context.Context, actor domain.Actor, filter domain.UserFilter) ([]*domain.UserResponse, int64, error)
		UpdateUserStatus(ctx context.Context, actor domain.Actor, userID string, req domain.UpdateUserStatusRequest) (*domain.UserResponse, error)
		CreateStaff(ctx context.Context, actor domain.Actor, req domain.CreateStaffRequest) (*domain.UserResponse, error)
		EnsureAdmin(ctx context.Context, email string, password string) error
	}

	userService struct {
		userRepository       UserRepository
		universityRepository university.UniversityRepository
		jwtService           jwt.JWTService
		mailer               mailing.Mailer
		appURL               string
	}
)

func NewUserService(
	userRepository UserRepository,
	universityRepository university.UniversityRepository,
	jwtService jwt.JWTService,
	mailer mailing.Mailer,
	appURL string,
) UserService {
	return &userService{
		userRepository:       userRepository,
		universityRepository: universityRepository,
		jwtService:           jwtService,
		mailer:               mailer,
		appURL:               appURL,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.UserResponse, error) {
	uni, err := s.universityRepository.GetUniversityByID(ctx, req.UniversityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUniversityNotFound
		}
		return nil, err
	}

	user, err := s.newUser(ctx, req.Name, req.Email, req.Password, domain.RoleStudent, domain.UserStatusPending, &uni.ID)
	if err != nil {
		return nil, err
	}
	user.Phone = req.Phone
	user.RoomNumber = req.RoomNumber

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) newUser(ctx context.Context, name, email, password, role, status string, universityID *uuid.UUID) (*entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := s.userRepository.GetUserByEmail(ctx, email); err == nil {
		return nil, domain.ErrEmailAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.ErrHashPassword
	}

	return &entities.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Password:     string(hashed),
		Role:         role,
		Status:       status,
		UniversityID: universityID,
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	switch user.Status {
	case domain.UserStatusApproved:
	case domain.UserStatusPending:
		return nil, domain.ErrAccountPending
	case domain.UserStatusRejected:
		return nil, domain.ErrAccountRejected
	case domain.UserStatusSuspended:
		return nil, domain.ErrAccountSuspended
	default:
		return nil, domain.ErrInvalidUserStatus
	}

	universityID := ""
	if user.UniversityID != nil {
		universityID = user.UniversityID.String()
	}
	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role, universityID)

	return &domain.LoginResponse{
		Token: token,
		Role:  user.Role,
		User:  *toUserResponse(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.UserResponse, error) {
	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toUserResponse(user), nil
}

func (s *userService) GetUsers(ctx context.Context, actor domain.Actor, filter domain.UserFilter) ([]*domain.UserResponse, int64, error) {
	// managers only ever see their own university
	if actor.Role == domain.RoleManager {
		filter.UniversityID = actor.UniversityID
	}

	users, count, err := s.userRepository.GetUsers(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	result := make([]*domain.UserResponse, 0, len(users))
	for _, u := range users {
		result = append(result, toUserResponse(u))
	}
	return result, count, nil
}

func (s *userService) UpdateUserStatus(ctx context.Context, actor domain.Actor, userID string, req domain.UpdateUserStatusRequest) (*domain.UserResponse, error) {
	switch req.Status {
	case domain.UserStatusApproved, domain.UserStatusRejected, domain.UserStatusSuspended:
	default:
		return nil, domain.ErrInvalidUserStatus
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	if err := canManage(actor, user); err != nil {
		return nil, err
	}

	if err := s.userRepository.UpdateUserStatus(ctx, userID, req.Status, req.Reason); err != nil {
		return nil, err
	}
	previous := user.Status
	user.Status = req.Status
	user.StatusReason = req.Reason

	if previous != req.Status {
		s.notifyStatus(user)
	}
	return toUserResponse(user), nil
}

func canManage(actor domain.Actor, user *entities.User) error {
	if actor.UserID == user.ID.String() {
		return domain.ErrCannotManageUser
	}
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleManager:
		if user.Role != domain.RoleStudent && user.Role != domain.RoleCaterer {
			return domain.ErrCannotManageUser
		}
		if user.UniversityID == nil || user.UniversityID.String() != actor.UniversityID {
			return domain.ErrUnauthorizedUserScope
		}
		return nil
	default:
		return domain.ErrUserNotAllowed
	}
}

func (s *userService) notifyStatus(user *entities.User) {
	if s.mailer == nil {
		return
	}
	subject, body := mailing.AccountStatusMail(user.Name, user.Status, user.StatusReason, s.appURL)
	if err := s.mailer.Send(user.Email, subject, body); err != nil {
		// status is already persisted, the mail is best effort
		log.Warnf("failed to send %s mail to %s: %v", user.Status, user.Email, err)
	}
}

func (s *userService) CreateStaff(ctx context.Context, actor domain.Actor, req domain.CreateStaffRequest) (*domain.UserResponse, error) {
	if actor.Role != domain.RoleAdmin {
		return nil, domain.ErrUserNotAllowed
	}

	var universityID *uuid.UUID
	switch req.Role {
	case domain.RoleManager, domain.RoleCaterer:
		if req.UniversityID == "" {
			return nil, domain.ErrUniversityRequired
		}
		uni, err := s.universityRepository.GetUniversityByID(ctx, req.UniversityID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrUniversityNotFound
			}
			return nil, err
		}
		universityID = &uni.ID
	case domain.RoleAdmin:
	default:
		return nil, domain.ErrInvalidStaffRole
	}

	user, err := s.newUser(ctx, req.Name, req.Email, req.Password, req.Role, domain.UserStatusApproved, universityID)
	if err != nil {
		return nil, err
	}
	user.Phone = req.Phone

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// EnsureAdmin creates the bootstrap admin account when it does not exist yet.
func (s *userService) EnsureAdmin(ctx context.Context, email string, password string) error {
	user, err := s.newUser(ctx, "Administrator", email, password, domain.RoleAdmin, domain.UserStatusApproved, nil)
	if err != nil {
		if errors.Is(err, domain.ErrEmailAlreadyExists) {
			return nil
		}
		return err
	}
	return s.userRepository.CreateUser(ctx, user)
}

func toUserResponse(u *entities.User) *domain.UserResponse {
	res := &domain.UserResponse{
		ID:           u.ID.String(),
		Name:         u.Name,
		Email:        u.Email,
		Phone:        u.Phone,
		RoomNumber:   u.RoomNumber,
		Role:         u.Role,
		Status:       u.Status,
		StatusReason: u.StatusReason,
		CreatedAt:    u.CreatedAt,
	}
	if u.UniversityID != nil {
		res.UniversityID = u.UniversityID.String()
	}
	return res
}
