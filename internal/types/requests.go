package types

// RegisterRequest is the auth registration payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest is the auth login payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RateRequest is the rating payload. The 1..5 bound lives here, at the HTTP
// binding; the service layer accepts any value.
type RateRequest struct {
	Value   int    `json:"value" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// UpdateProfileRequest carries partial profile updates.
type UpdateProfileRequest struct {
	Username            *string   `json:"username"`
	FullName            *string   `json:"fullName"`
	Cuisines            *[]string `json:"cuisines"`
	DietaryRestrictions *[]string `json:"dietaryRestrictions"`
	SkillLevel          *string   `json:"skillLevel" binding:"omitempty,oneof=beginner intermediate advanced"`
}
