package manager

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ManagerSummary struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
	Role Role   `json:"role"`
}

type LoginResponse struct {
	Success     bool           `json:"success"`
	Message     string         `json:"message"`
	Manager     ManagerSummary `json:"manager"`
	AccessToken string         `json:"access_token"`
	ExpiresAt   int64          `json:"expires_at"`
}

type CreateManagerRequest struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=8"`
	Name        string `json:"name" binding:"required"`
	Role        Role   `json:"role" binding:"required,oneof=MANAGER DEPARTMENT_MANAGER"`
	PhoneNumber string `json:"phone_number" binding:"required"`
}

type ManagerResponse struct {
	ID        uint   `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Role      Role   `json:"role"`
	CreatedAt string `json:"created_at"`
}
