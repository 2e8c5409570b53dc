package user

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/presensi-kampus/presensi-backend-go/internal/domain/user"
	"github.com/presensi-kampus/presensi-backend-go/internal/pkg/validator"
)

// DefaultAnnualLeaveDays is the yearly allowance assigned when the creation
// form leaves it blank.
const DefaultAnnualLeaveDays = 12

type UserServiceImpl struct {
	user.UserRepository
}

func NewUserService(userRepo user.UserRepository) user.UserService {
	return &UserServiceImpl{UserRepository: userRepo}
}

// Create implements user.UserService.
func (s *UserServiceImpl) Create(ctx context.Context, req user.CreateUserRequest) (user.UserResponse, error) {
	var errs validator.ValidationErrors
	if validator.IsEmpty(req.NIP) || !validator.IsNumeric(req.NIP) {
		errs = append(errs, validator.ValidationError{Field: "nip", Message: "must be numeric"})
	}
	if len(req.Password) < 6 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 6 characters"})
	}
	if validator.IsEmpty(req.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "is required"})
	}
	if len(errs) > 0 {
		return user.UserResponse{}, errs
	}

	role := user.Role(req.Role)
	if !role.IsValid() {
		return user.UserResponse{}, user.ErrInvalidRole
	}

	var superiorNIP *string
	if req.SuperiorNIP != "" {
		superior, err := s.UserRepository.GetByNIP(ctx, req.SuperiorNIP)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return user.UserResponse{}, user.ErrSuperiorNotFound
			}
			return user.UserResponse{}, fmt.Errorf("failed to get superior: %w", err)
		}
		if !superior.Role.CanBeSuperior() {
			return user.UserResponse{}, user.ErrInvalidSuperior
		}
		if err := s.checkNoCycle(ctx, req.NIP, superior); err != nil {
			return user.UserResponse{}, err
		}
		superiorNIP = &superior.NIP
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.UserResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	allowance := DefaultAnnualLeaveDays
	if req.AnnualLeaveDays != nil {
		allowance = *req.AnnualLeaveDays
	}

	u := user.User{
		NIP:              req.NIP,
		Password:         string(hashed),
		FullName:         req.FullName,
		Department:       req.Department,
		DepartmentDetail: req.DepartmentDetail,
		Role:             role,
		SuperiorNIP:      superiorNIP,
		AnnualLeaveDays:  allowance,
	}

	if err := s.UserRepository.Create(ctx, u); err != nil {
		return user.UserResponse{}, err
	}

	return toUserResponse(u), nil
}

// checkNoCycle walks the superior chain upward from the proposed superior
// and rejects the assignment if it would lead back to the new user.
func (s *UserServiceImpl) checkNoCycle(ctx context.Context, nip string, superior user.User) error {
	visited := map[string]bool{nip: true}
	current := superior
	for {
		if visited[current.NIP] {
			return user.ErrSuperiorCycle
		}
		visited[current.NIP] = true
		if current.SuperiorNIP == nil {
			return nil
		}
		next, err := s.UserRepository.GetByNIP(ctx, *current.SuperiorNIP)
		if err != nil {
			if errors.Is(err, user.ErrUserNotFound) {
				return nil
			}
			return fmt.Errorf("failed to walk superior chain: %w", err)
		}
		current = next
	}
}

// Get implements user.UserService.
func (s *UserServiceImpl) Get(ctx context.Context, nip string) (user.UserResponse, error) {
	u, err := s.UserRepository.GetByNIP(ctx, nip)
	if err != nil {
		return user.UserResponse{}, err
	}
	return toUserResponse(u), nil
}

// ListSubordinates implements user.UserService.
func (s *UserServiceImpl) ListSubordinates(ctx context.Context, nip string, role user.Role) ([]user.UserResponse, error) {
	if !role.IsApprover() {
		return nil, user.ErrApproverAccessRequired
	}

	scopeNIP := nip
	if role == user.RoleSekjur {
		caller, err := s.UserRepository.GetByNIP(ctx, nip)
		if err != nil {
			return nil, err
		}
		if caller.SuperiorNIP != nil {
			scopeNIP = *caller.SuperiorNIP
		}
	}

	subordinates, err := s.UserRepository.ListSubordinates(ctx, scopeNIP)
	if err != nil {
		return nil, fmt.Errorf("failed to list subordinates: %w", err)
	}
	return toUserResponses(subordinates), nil
}

// ListPotentialSuperiors implements user.UserService.
func (s *UserServiceImpl) ListPotentialSuperiors(ctx context.Context) ([]user.UserResponse, error) {
	roles := []user.Role{user.RoleKajur, user.RoleWadir1, user.RoleWadir2, user.RoleWadir3, user.RoleDirektur}
	superiors, err := s.UserRepository.ListByRoles(ctx, roles)
	if err != nil {
		return nil, fmt.Errorf("failed to list potential superiors: %w", err)
	}
	return toUserResponses(superiors), nil
}

func toUserResponse(u user.User) user.UserResponse {
	return user.UserResponse{
		NIP:              u.NIP,
		FullName:         u.FullName,
		Department:       u.Department,
		DepartmentDetail: u.DepartmentDetail,
		Role:             string(u.Role),
		SuperiorNIP:      u.SuperiorNIP,
		AnnualLeaveDays:  u.AnnualLeaveDays,
	}
}

func toUserResponses(users []user.User) []user.UserResponse {
	responses := make([]user.UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, toUserResponse(u))
	}
	return responses
}
