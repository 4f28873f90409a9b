package account

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/auth"
	"github.com/ahmed-n-abdeltwab/tennis-coach-platform-sub002/internal/storage"
)

var (
	ErrEmailExists             = errors.New("email already exists")
	ErrInvalidCredentials      = errors.New("invalid credentials")
	ErrAccountNotFound         = errors.New("account not found")
	ErrDisabilityCauseRequired = errors.New("disability cause is required when disability is set")
	ErrSelfRoleChange          = errors.New("cannot change your own role")
	ErrForbidden               = errors.New("not authorized for this account")
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Account, string, string, error)
	Login(ctx context.Context, req LoginRequest) (*Account, string, string, error)
	Logout(ctx context.Context, userID int) error
	RefreshToken(ctx context.Context, refreshToken string) (string, *Account, error)
	GetByID(ctx context.Context, id int) (*Account, error)
	UpdateProfile(ctx context.Context, userID int, req UpdateProfileRequest) (*Account, error)
	ChangeRole(ctx context.Context, caller auth.Identity, targetID int, role string) (*Account, error)
	Delete(ctx context.Context, caller auth.Identity, targetID int) error
	ProfileImageUploadURL(ctx context.Context, userID int, contentType string) (*UploadURLResponse, error)
	ProfileImageDownloadURL(ctx context.Context, userID int) (string, error)
}

type service struct {
	repo      Repository
	files     storage.FileStorage
	jwtSecret string
}

func NewService(repo Repository, files storage.FileStorage, jwtSecret string) Service {
	return &service{
		repo:      repo,
		files:     files,
		jwtSecret: jwtSecret,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Account, string, string, error) {
	if req.Disability && (req.DisabilityCause == nil || strings.TrimSpace(*req.DisabilityCause) == "") {
		return nil, "", "", ErrDisabilityCauseRequired
	}

	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, "", "", err
	}
	if exists {
		return nil, "", "", ErrEmailExists
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, "", "", err
	}

	role := req.Role
	if role == "" {
		role = auth.RoleUser
	}

	acct, err := s.repo.Create(ctx, &Account{
		Email:           req.Email,
		PasswordHash:    passwordHash,
		Name:            req.Name,
		Role:            role,
		Disability:      req.Disability,
		DisabilityCause: req.DisabilityCause,
	})
	if err != nil {
		return nil, "", "", err
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		acct.ID, acct.Email, acct.Role, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	return acct, accessToken, refreshToken, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest) (*Account, string, string, error) {
	acct, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, "", "", ErrInvalidCredentials
	}

	if !acct.IsActive {
		return nil, "", "", ErrInvalidCredentials
	}

	if !auth.CheckPassword(acct.PasswordHash, req.Password) {
		return nil, "", "", ErrInvalidCredentials
	}

	accessToken, refreshToken, err := auth.GenerateTokens(
		acct.ID, acct.Email, acct.Role, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return nil, "", "", err
	}

	if err := s.repo.SetOnline(ctx, acct.ID, true); err != nil {
		return nil, "", "", err
	}
	acct.IsOnline = true

	return acct, accessToken, refreshToken, nil
}

func (s *service) Logout(ctx context.Context, userID int) error {
	return s.repo.SetOnline(ctx, userID, false)
}

func (s *service) RefreshToken(ctx context.Context, refreshToken string) (string, *Account, error) {
	_, claims, err := auth.RefreshAccessToken(refreshToken, s.jwtSecret, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	acct, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		return "", nil, ErrAccountNotFound
	}

	newAccessToken, err := auth.GenerateAccessToken(acct.ID, acct.Email, acct.Role, s.jwtSecret)
	if err != nil {
		return "", nil, err
	}

	return newAccessToken, acct, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Account, error) {
	acct, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrAccountNotFound
	}
	return acct, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID int, req UpdateProfileRequest) (*Account, error) {
	acct, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrAccountNotFound
	}

	if req.Name != nil {
		acct.Name = *req.Name
	}
	if req.Gender != nil {
		acct.Gender = req.Gender
	}
	if req.Age != nil {
		acct.Age = req.Age
	}
	if req.HeightCm != nil {
		acct.HeightCm = req.HeightCm
	}
	if req.WeightKg != nil {
		acct.WeightKg = req.WeightKg
	}
	if req.Disability != nil {
		acct.Disability = *req.Disability
	}
	if req.DisabilityCause != nil {
		acct.DisabilityCause = req.DisabilityCause
	}
	if req.Country != nil {
		acct.Country = req.Country
	}
	if req.Address != nil {
		acct.Address = req.Address
	}
	if req.Notes != nil {
		acct.Notes = req.Notes
	}
	if req.Bio != nil {
		acct.Bio = req.Bio
	}
	if req.Credentials != nil {
		acct.Credentials = req.Credentials
	}
	if req.Philosophy != nil {
		acct.Philosophy = req.Philosophy
	}

	if acct.Disability && (acct.DisabilityCause == nil || strings.TrimSpace(*acct.DisabilityCause) == "") {
		return nil, ErrDisabilityCauseRequired
	}

	return s.repo.UpdateProfile(ctx, acct)
}

func (s *service) ChangeRole(ctx context.Context, caller auth.Identity, targetID int, role string) (*Account, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	if caller.UserID == targetID {
		return nil, ErrSelfRoleChange
	}

	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		return nil, ErrAccountNotFound
	}

	if err := s.repo.UpdateRole(ctx, targetID, role); err != nil {
		return nil, err
	}

	return s.repo.FindByID(ctx, targetID)
}

func (s *service) Delete(ctx context.Context, caller auth.Identity, targetID int) error {
	if !caller.CanActOnOwned(targetID) {
		return ErrForbidden
	}

	if _, err := s.repo.FindByID(ctx, targetID); err != nil {
		return ErrAccountNotFound
	}

	return s.repo.Delete(ctx, targetID)
}

func (s *service) ProfileImageUploadURL(ctx context.Context, userID int, contentType string) (*UploadURLResponse, error) {
	objectKey := fmt.Sprintf("profile-images/%d/%d", userID, time.Now().UnixNano())

	url, err := s.files.GeneratePresignedUploadURL(ctx, objectKey, contentType, storage.DefaultPresignedURLExpiry)
	if err != nil {
		return nil, err
	}

	if err := s.repo.SetProfileImage(ctx, userID, objectKey); err != nil {
		return nil, err
	}

	return &UploadURLResponse{UploadURL: url, ObjectKey: objectKey}, nil
}

func (s *service) ProfileImageDownloadURL(ctx context.Context, userID int) (string, error) {
	acct, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return "", ErrAccountNotFound
	}

	if acct.ProfileImage == nil || *acct.ProfileImage == "" {
		return "", ErrAccountNotFound
	}

	return s.files.GeneratePresignedDownloadURL(ctx, *acct.ProfileImage, storage.DefaultPresignedURLExpiry)
}
