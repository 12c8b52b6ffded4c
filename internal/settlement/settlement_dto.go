package settlement

type GenerateRequest struct {
	Period   string `json:"period" binding:"required"`
	Category string `json:"category" binding:"omitempty,oneof=REGULAR DAILY SUBCONTRACT_INDIVIDUAL SUBCONTRACT_COMPANY"`
}

type GenerationResultResponse struct {
	Category     string               `json:"category"`
	Period       string               `json:"period"`
	CreatedCount int                  `json:"created_count"`
	SkippedCount int                  `json:"skipped_count"`
	Records      []SettlementResponse `json:"records"`
}

type PendingRequest struct {
	Period   string `form:"period" binding:"required"`
	Category string `form:"category"`
}

type PendingResponse struct {
	Period     string         `json:"period"`
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
}

type ListFilterRequest struct {
	Period   string `form:"period"`
	Category string `form:"category"`
	Status   string `form:"status"`
	Q        string `form:"q"`
}

// CreateSettlementRequest is a single manual entry. Amount fields accept
// formatted input such as "1,000,000".
type CreateSettlementRequest struct {
	Category   string  `json:"category" binding:"required,oneof=REGULAR DAILY SUBCONTRACT_INDIVIDUAL SUBCONTRACT_COMPANY"`
	Period     string  `json:"period" binding:"required"`
	WorkerID   *string `json:"worker_id" binding:"omitempty,uuid"`
	WorkerName string  `json:"worker_name" binding:"required"`
	Amount     string  `json:"amount"`
	DailyWage  string  `json:"daily_wage"`
	Days       int     `json:"days" binding:"gte=0"`
	TaxRate    string  `json:"tax_rate"`
	Memo       *string `json:"memo"`
}

type DailyEntryRequest struct {
	WorkerID   *string `json:"worker_id" binding:"omitempty,uuid"`
	WorkerName string  `json:"worker_name" binding:"required"`
	DailyWage  string  `json:"daily_wage" binding:"required"`
	Days       int     `json:"days" binding:"required,gte=1"`
	TaxRate    string  `json:"tax_rate"`
	Memo       *string `json:"memo"`
}

type BulkDailyRequest struct {
	Period  string              `json:"period" binding:"required"`
	Entries []DailyEntryRequest `json:"entries" binding:"required,dive"`
}

type BulkDailyResponse struct {
	CreatedCount   int                  `json:"created_count"`
	SkippedCount   int                  `json:"skipped_count"`
	SkippedWorkers []string             `json:"skipped_workers"`
	Records        []SettlementResponse `json:"records"`
}

type MarkPaidRequest struct {
	PaidAt  *string `json:"paid_at"`
	Version int64   `json:"version" binding:"gte=0"`
}

type OverrideRequest struct {
	Amount  *string `json:"amount"`
	PaidAt  *string `json:"paid_at"`
	Status  *string `json:"status" binding:"omitempty,oneof=SCHEDULED PAID"`
	Memo    *string `json:"memo"`
	Version int64   `json:"version" binding:"gte=0"`
}

type SettlementResponse struct {
	ID               string  `json:"id"`
	CompanyID        string  `json:"company_id"`
	Category         string  `json:"category"`
	WorkerID         *string `json:"worker_id,omitempty"`
	WorkerName       string  `json:"worker_name"`
	Period           string  `json:"period"`
	BaseAmount       int64   `json:"base_amount"`
	DeductionAmount  int64   `json:"deduction_amount"`
	FinalAmount      int64   `json:"final_amount"`
	TaxRate          string  `json:"tax_rate"`
	Status           string  `json:"status"`
	PaidAt           *string `json:"paid_at,omitempty"`
	Memo             *string `json:"memo,omitempty"`
	Origin           string  `json:"origin"`
	AmountOverridden bool    `json:"amount_overridden"`
	Version          int64   `json:"version"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}
