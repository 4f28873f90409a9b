package account

import "time"

// Account is an identity record. The password hash never leaves the API.
type Account struct {
	ID           int    `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	Name         string `db:"name" json:"name"`
	Role         string `db:"role" json:"role"`

	Gender          *string  `db:"gender" json:"gender,omitempty"`
	Age             *int     `db:"age" json:"age,omitempty"`
	HeightCm        *float64 `db:"height_cm" json:"height_cm,omitempty"`
	WeightKg        *float64 `db:"weight_kg" json:"weight_kg,omitempty"`
	Disability      bool     `db:"disability" json:"disability"`
	DisabilityCause *string  `db:"disability_cause" json:"disability_cause,omitempty"`
	Country         *string  `db:"country" json:"country,omitempty"`
	Address         *string  `db:"address" json:"address,omitempty"`
	Notes           *string  `db:"notes" json:"notes,omitempty"`

	// Coach-facing profile fields.
	Bio          *string `db:"bio" json:"bio,omitempty"`
	Credentials  *string `db:"credentials" json:"credentials,omitempty"`
	Philosophy   *string `db:"philosophy" json:"philosophy,omitempty"`
	ProfileImage *string `db:"profile_image" json:"profile_image,omitempty"`

	IsActive  bool      `db:"is_active" json:"is_active"`
	IsOnline  bool      `db:"is_online" json:"is_online"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Role     string `json:"role" binding:"omitempty,oneof=user coach"`

	Disability      bool    `json:"disability"`
	DisabilityCause *string `json:"disability_cause"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	User         Account `json:"user"`
}

type UpdateProfileRequest struct {
	Name *string `json:"name"`

	Gender          *string  `json:"gender"`
	Age             *int     `json:"age" binding:"omitempty,gte=0,lte=130"`
	HeightCm        *float64 `json:"height_cm"`
	WeightKg        *float64 `json:"weight_kg"`
	Disability      *bool    `json:"disability"`
	DisabilityCause *string  `json:"disability_cause"`
	Country         *string  `json:"country"`
	Address         *string  `json:"address"`
	Notes           *string  `json:"notes"`

	Bio         *string `json:"bio"`
	Credentials *string `json:"credentials"`
	Philosophy  *string `json:"philosophy"`
}

type ChangeRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user premium_user coach admin"`
}

type UploadURLRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

type UploadURLResponse struct {
	UploadURL string `json:"upload_url"`
	ObjectKey string `json:"object_key"`
}
