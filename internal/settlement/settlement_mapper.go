package settlement

import "time"

func mapToResponse(s Settlement) SettlementResponse {
	var workerID *string
	if s.WorkerID != nil {
		v := s.WorkerID.String()
		workerID = &v
	}
	var paidAt *string
	if s.PaidAt != nil {
		v := s.PaidAt.UTC().Format(time.RFC3339)
		paidAt = &v
	}
	return SettlementResponse{
		ID:               s.ID.String(),
		CompanyID:        s.CompanyID.String(),
		Category:         string(s.Category),
		WorkerID:         workerID,
		WorkerName:       s.WorkerName,
		Period:           string(s.Period),
		BaseAmount:       s.BaseAmount,
		DeductionAmount:  s.DeductionAmount,
		FinalAmount:      s.FinalAmount,
		TaxRate:          s.TaxRate.String(),
		Status:           string(s.Status),
		PaidAt:           paidAt,
		Memo:             s.Memo,
		Origin:           string(s.Origin),
		AmountOverridden: s.AmountOverridden,
		Version:          s.Version,
		CreatedAt:        s.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        s.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToListResponse(items []Settlement) []SettlementResponse {
	out := make([]SettlementResponse, 0, len(items))
	for _, s := range items {
		out = append(out, mapToResponse(s))
	}
	return out
}

func mapToGenerationResponse(r GenerationResult) GenerationResultResponse {
	return GenerationResultResponse{
		Category:     string(r.Category),
		Period:       string(r.Period),
		CreatedCount: r.CreatedCount,
		SkippedCount: r.SkippedCount,
		Records:      mapToListResponse(r.Records),
	}
}
