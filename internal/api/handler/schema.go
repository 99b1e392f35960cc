package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// --- Auth ---

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// userSummary is the identity block returned by login and /auth/me.
type userSummary struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name,omitempty"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  userSummary `json:"user"`
}

type meResponse struct {
	User userSummary `json:"user"`
}

// --- Users ---

type registerRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

// updateUserRequest has no password field: a password in the body is
// dropped by the binder.
type updateUserRequest struct {
	Email *string `json:"email"`
	Name  *string `json:"name"`
	Role  *string `json:"role"`
}

// --- Products ---

type imageRequest struct {
	Thumbnail string `json:"thumbnail" validate:"required"`
	Mobile    string `json:"mobile"    validate:"required"`
	Tablet    string `json:"tablet"    validate:"required"`
	Desktop   string `json:"desktop"   validate:"required"`
}

type createProductRequest struct {
	Name        string        `json:"name"     validate:"required"`
	Category    string        `json:"category" validate:"required"`
	Price       float64       `json:"price"    validate:"required,gt=0"`
	Description string        `json:"description"`
	Image       *imageRequest `json:"image"    validate:"required"`
}

type updateProductRequest struct {
	Name        *string       `json:"name"`
	Category    *string       `json:"category"`
	Price       *float64      `json:"price"`
	Description *string       `json:"description"`
	Image       *imageRequest `json:"image"`
}

// --- Cart ---

type addToCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity"  validate:"required,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=1"`
}
