package subcontract

// MonthlyAmount accepts formatted currency ("3,000,000"); TaxRate accepts a
// fraction or a percentage ("0.033", "3.3%").
type CreateSubcontractRequest struct {
	Kind          string  `json:"kind" binding:"required,oneof=INDIVIDUAL COMPANY"`
	Code          string  `json:"code"`
	Name          string  `json:"name" binding:"required"`
	MonthlyAmount string  `json:"monthly_amount" binding:"required"`
	TaxRate       string  `json:"tax_rate"`
	StartPeriod   string  `json:"start_period" binding:"required"`
	EndPeriod     *string `json:"end_period"`
}

type UpdateSubcontractRequest struct {
	Name          string  `json:"name" binding:"required"`
	MonthlyAmount string  `json:"monthly_amount" binding:"required"`
	TaxRate       string  `json:"tax_rate"`
	StartPeriod   string  `json:"start_period" binding:"required"`
	EndPeriod     *string `json:"end_period"`
	Status        string  `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
}

type SubcontractFilterRequest struct {
	Kind   string `form:"kind" binding:"omitempty,oneof=INDIVIDUAL COMPANY"`
	Status string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
	Q      string `form:"q"`
}

type SubcontractResponse struct {
	ID            string  `json:"id"`
	CompanyID     string  `json:"company_id"`
	Code          string  `json:"code"`
	Kind          string  `json:"kind"`
	Name          string  `json:"name"`
	MonthlyAmount int64   `json:"monthly_amount"`
	TaxRate       string  `json:"tax_rate"`
	StartPeriod   string  `json:"start_period"`
	EndPeriod     *string `json:"end_period,omitempty"`
	Status        string  `json:"status"`
}
