package dto

type VerifyAccountRequest struct {
	Decision string `json:"decision" binding:"required,oneof=approved rejected"`
	Reason   string `json:"reason" binding:"max=500"`
}

type SetRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin super_admin"`
}
