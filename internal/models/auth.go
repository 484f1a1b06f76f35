package models

// LoginRequest is the payload for password login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse describes the authenticated account so the client can
// route to the right dashboard (or the forced password-change form)
type LoginResponse struct {
	UserID             string `json:"userId"`
	Email              string `json:"email"`
	Role               Role   `json:"role"`
	MustChangePassword bool   `json:"mustChangePassword"`
	ProfileCompleted   bool   `json:"profileCompleted"`
}

// ChangePasswordRequest is the payload for changing the account password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

// UserSession is the request-scoped identity extracted from the JWT
// session cookie
type UserSession struct {
	UserID    string `json:"userId"`
	Email     string `json:"email"`
	Role      Role   `json:"role"`
	IssuedAt  int64  `json:"issuedAt"`
	ExpiresAt int64  `json:"expiresAt"`
}

// DashboardSummary aggregates the counts shown on a dashboard tab
type DashboardSummary struct {
	Role             Role     `json:"role"`
	IncomingRequests int      `json:"incomingRequests"`
	PendingRequests  int      `json:"pendingRequests"`
	TotalSessions    int      `json:"totalSessions"`
	Profile          *Profile `json:"profile,omitempty"`
}
