package rbac

// EnforceRequest asks whether Role may perform Action on Resource inside
// CompanyID.
type EnforceRequest struct {
	Role      string `json:"role"`
	CompanyID string `json:"company_id"`
	Resource  string `json:"resource"`
	Action    string `json:"action"`
}
