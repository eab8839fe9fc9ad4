package service

import (
	"backend/internal/auth"
	"backend/internal/model"
	"backend/internal/repository"
	"backend/pkg/apperr"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"backend/internal/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DTOs for Request validation
type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required,oneof=SUPER_ADMIN SPA_ADMIN BRANCH_ADMIN MANICURIST CLIENT"`
	SpaID    string `json:"spa_id"`
	BranchID string `json:"branch_id"`
}

type UpdateUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"omitempty,email"`
	Phone    string `json:"phone"`
	Role     string `json:"role" binding:"omitempty,oneof=SUPER_ADMIN SPA_ADMIN BRANCH_ADMIN MANICURIST CLIENT"`
	BranchID string `json:"branch_id"`
	IsActive *bool  `json:"is_active"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

// DTO for returning User without exposing sensitive data (e.g. password)
type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	SpaID     *uuid.UUID `json:"spa_id"`
	BranchID  *uuid.UUID `json:"branch_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone"`
	Role      model.Role `json:"role"`
	IsActive  bool       `json:"is_active"`
	CreatedAt string     `json:"created_at"`
	UpdatedAt string     `json:"updated_at"`
}

// UserService defines the interface for business logic related to User
type UserService interface {
	Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*UserResponse, error)
	CreateUser(ctx context.Context, ident auth.Identity, req CreateUserRequest) (*UserResponse, error)
	ListUsers(ctx context.Context, ident auth.Identity, spaID uuid.UUID, page, limit int) ([]UserResponse, int64, error)
	UpdateUser(ctx context.Context, ident auth.Identity, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error)
	DeleteUser(ctx context.Context, ident auth.Identity, id uuid.UUID) error
}

type userService struct {
	repo  repository.UserRepository
	audit AuditWriter
}

// NewUserService returns a new instance of UserService
func NewUserService(repo repository.UserRepository, audit AuditWriter) UserService {
	return &userService{repo: repo, audit: audit}
}

// Helper: parse model to standard json API response
func mapToResponse(user *model.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		SpaID:     user.SpaID,
		BranchID:  user.BranchID,
		Name:      user.Name,
		Email:     user.Email,
		Phone:     user.Phone,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

// buildUserTenancy validates the role/spa/branch invariants: every role but
// SUPER_ADMIN needs a spa, branch-scoped roles need a branch. Non-super
// callers can only mint users into their own spa.
func buildUserTenancy(ident auth.Identity, role model.Role, spaIDStr, branchIDStr string) (*uuid.UUID, *uuid.UUID, error) {
	var spaID, branchID *uuid.UUID

	if spaIDStr != "" {
		parsed, err := uuid.Parse(spaIDStr)
		if err != nil {
			return nil, nil, apperr.Validation("invalid spa_id", apperr.FieldError{Field: "spa_id", Message: "must be a UUID"})
		}
		spaID = &parsed
	}
	if branchIDStr != "" {
		parsed, err := uuid.Parse(branchIDStr)
		if err != nil {
			return nil, nil, apperr.Validation("invalid branch_id", apperr.FieldError{Field: "branch_id", Message: "must be a UUID"})
		}
		branchID = &parsed
	}

	if role.RequiresSpa() {
		if spaID == nil {
			// Default to the caller's own spa
			spaID = ident.SpaID
		}
		if spaID == nil {
			return nil, nil, apperr.Validation("spa_id is required for this role",
				apperr.FieldError{Field: "spa_id", Message: "required for role " + string(role)})
		}
		if !auth.CanAccessSpa(ident, *spaID) {
			return nil, nil, apperr.Forbidden("cannot create users outside your spa")
		}
	} else {
		spaID = nil
		branchID = nil
	}

	if role.RequiresBranch() && branchID == nil {
		return nil, nil, apperr.Validation("branch_id is required for this role",
			apperr.FieldError{Field: "branch_id", Message: "required for role " + string(role)})
	}

	return spaID, branchID, nil
}

func (s *userService) CreateUser(ctx context.Context, ident auth.Identity, req CreateUserRequest) (*UserResponse, error) {
	if !auth.CanManageUsers(ident) {
		return nil, apperr.Forbidden("only spa admins may manage users")
	}

	role := model.Role(req.Role)
	if role == model.RoleSuperAdmin && !ident.IsSuperAdmin {
		return nil, apperr.Forbidden("only super admins may create super admins")
	}

	spaID, branchID, err := buildUserTenancy(ident, role, req.SpaID, req.BranchID)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
		return nil, apperr.Conflict("email already exists")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	user := &model.User{
		SpaID:        spaID,
		BranchID:     branchID,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Password:     string(hashedPassword),
		Role:         role,
		IsSuperAdmin: role == model.RoleSuperAdmin,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	s.audit.Write(ctx, spaID, &ident.UserID, model.ActionCreateUser, user.ID.String(), user.Email, req)

	return mapToResponse(user), nil
}

func (s *userService) Login(ctx context.Context, req LoginUserRequest) (*TokenResponse, error) {
	user, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, apperr.Unauthenticated("invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthenticated("invalid email or password")
	}

	if !user.IsActive {
		return nil, apperr.Unauthenticated("account is deactivated")
	}

	return s.issueTokens(ctx, user)
}

func (s *userService) RefreshToken(ctx context.Context, req RefreshTokenRequest) (*TokenResponse, error) {
	stored, err := s.repo.GetRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return nil, apperr.Unauthenticated("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.repo.DeleteRefreshToken(ctx, req.RefreshToken)
		return nil, apperr.Unauthenticated("refresh token expired")
	}

	user, err := s.repo.GetByID(ctx, stored.UserID)
	if err != nil || !user.IsActive {
		return nil, apperr.Unauthenticated("account unavailable")
	}

	// Rotate: old token is single-use
	_ = s.repo.DeleteRefreshToken(ctx, req.RefreshToken)

	return s.issueTokens(ctx, user)
}

func (s *userService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		_ = s.repo.DeleteRefreshToken(ctx, refreshToken)
	}
	return nil
}

// issueTokens signs a short-lived access token carrying the full identity
// claims and persists a rotated refresh token.
func (s *userService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	claims := jwt.MapClaims{
		"sub":    user.ID.String(),
		"role":   string(user.Role),
		"super":  user.IsSuperAdmin,
		"active": user.IsActive,
		"exp":    time.Now().Add(24 * time.Hour).Unix(),
	}
	if user.SpaID != nil {
		claims["spa_id"] = user.SpaID.String()
	}
	if user.BranchID != nil {
		claims["branch_id"] = user.BranchID.String()
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(middleware.GetJWTSecret())
	if err != nil {
		return nil, apperr.Internal(err)
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return nil, apperr.Internal(err)
	}
	refresh := hex.EncodeToString(raw)

	rt := &model.RefreshToken{
		UserID:    user.ID,
		Token:     refresh,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}
	if err := s.repo.SaveRefreshToken(ctx, rt); err != nil {
		return nil, apperr.Internal(err)
	}

	return &TokenResponse{Token: tokenString, RefreshToken: refresh}, nil
}

func (s *userService) GetUserByID(ctx context.Context, id uuid.UUID) (*UserResponse, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}
	return mapToResponse(user), nil
}

func (s *userService) ListUsers(ctx context.Context, ident auth.Identity, spaID uuid.UUID, page, limit int) ([]UserResponse, int64, error) {
	if !auth.CanManageUsers(ident) {
		return nil, 0, apperr.Forbidden("only spa admins may list users")
	}

	users, total, err := s.repo.ListBySpa(ctx, spaID, page, limit)
	if err != nil {
		return nil, 0, apperr.Internal(err)
	}

	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, *mapToResponse(&u))
	}

	return responses, total, nil
}

func (s *userService) UpdateUser(ctx context.Context, ident auth.Identity, id uuid.UUID, req UpdateUserRequest) (*UserResponse, error) {
	if !auth.CanManageUsers(ident) {
		return nil, apperr.Forbidden("only spa admins may manage users")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, apperr.Internal(err)
	}

	if user.SpaID != nil && !auth.CanAccessSpa(ident, *user.SpaID) {
		// Wrong tenant looks identical to absent
		return nil, apperr.NotFound("user not found")
	}

	if req.Role != "" {
		role := model.Role(req.Role)
		if role == model.RoleSuperAdmin && !ident.IsSuperAdmin {
			return nil, apperr.Forbidden("only super admins may grant super admin")
		}
		user.Role = role
		user.IsSuperAdmin = role == model.RoleSuperAdmin
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" && req.Email != user.Email {
		if _, err := s.repo.GetByEmail(ctx, req.Email); err == nil {
			return nil, apperr.Conflict("email already exists")
		}
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.BranchID != "" {
		branchID, err := uuid.Parse(req.BranchID)
		if err != nil {
			return nil, apperr.Validation("invalid branch_id", apperr.FieldError{Field: "branch_id", Message: "must be a UUID"})
		}
		user.BranchID = &branchID
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, apperr.Internal(err)
	}

	s.audit.Write(ctx, user.SpaID, &ident.UserID, model.ActionUpdateUser, user.ID.String(), user.Email, req)

	return mapToResponse(user), nil
}

func (s *userService) DeleteUser(ctx context.Context, ident auth.Identity, id uuid.UUID) error {
	if !auth.CanManageUsers(ident) {
		return apperr.Forbidden("only spa admins may manage users")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("user not found")
		}
		return apperr.Internal(err)
	}
	if user.SpaID != nil && !auth.CanAccessSpa(ident, *user.SpaID) {
		return apperr.NotFound("user not found")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperr.Internal(err)
	}

	s.audit.Write(ctx, user.SpaID, &ident.UserID, model.ActionDeleteUser, id.String(), user.Email, nil)

	return nil
}
