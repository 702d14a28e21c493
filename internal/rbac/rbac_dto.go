package rbac

type EnforceRequest struct {
	UserID    int64  `json:"user_id"`
	AccountID int64  `json:"account_id"`
	CompanyID int64  `json:"company_id"`
	Resource  string `json:"resource"`
	Action    string `json:"action"`
}

type EnforceResponse struct {
	Allowed bool `json:"allowed"`
}

type RoleResponse struct {
	Slug        string   `json:"slug"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
}

type PermissionResponse struct {
	ID       int64  `json:"id"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Label    string `json:"label"`
	Category string `json:"category"`
}

type UpdateRolePermissionsRequest struct {
	PermissionIDs []int64 `json:"permission_ids" binding:"required"`
}
