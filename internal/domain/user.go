package domain

// User is a back-office account record.
type User struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	CPF                 string `json:"cpf"`
	AcceptPrivacyPolicy bool   `json:"acceptPrivacyPolicy"`
	AcceptTermsOfUse    bool   `json:"acceptTermsOfUse"`
	IsActive            bool   `json:"isActive"`
	Role                Role   `json:"role"`
}

// RegisterUserRequest creates an account. The backend enforces password
// policy and CPF validity; the client submits the fields as entered.
type RegisterUserRequest struct {
	Name                string `json:"name"`
	Email               string `json:"email"`
	CPF                 string `json:"cpf"`
	Password            string `json:"password"`
	ConfirmPassword     string `json:"confirmPassword"`
	AcceptPrivacyPolicy bool   `json:"acceptPrivacyPolicy"`
	AcceptTermsOfUse    bool   `json:"acceptTermsOfUse"`
	IsActive            bool   `json:"isActive"`
	Role                Role   `json:"roles"`
}

// UpdateUserRequest replaces an account record.
type UpdateUserRequest struct {
	ID                  int    `json:"id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	CPF                 string `json:"cpf"`
	Password            string `json:"password"`
	ConfirmPassword     string `json:"confirmPassword"`
	AcceptPrivacyPolicy bool   `json:"acceptPrivacyPolicy"`
	AcceptTermsOfUse    bool   `json:"acceptTermsOfUse"`
	IsActive            bool   `json:"isActive"`
	Role                Role   `json:"roles"`
}

// UserSearchParams filters the paginated user listing.
type UserSearchParams struct {
	NamePrefix  string
	EmailPrefix string
	CPFPrefix   string
	PageParams
}
