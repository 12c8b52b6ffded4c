package employee

type CreateEmployeeRequest struct {
	FullName       string `json:"full_name" binding:"required"`
	Email          string `json:"email" binding:"omitempty,email"`
	EmployeeNumber string `json:"employee_number"`
	EmploymentType string `json:"employment_type" binding:"required,oneof=REGULAR DAILY"`
	HireDate       string `json:"hire_date" binding:"required"`
}

type UpdateEmployeeRequest struct {
	FullName         string  `json:"full_name" binding:"required"`
	Email            string  `json:"email" binding:"omitempty,email"`
	EmploymentType   string  `json:"employment_type" binding:"required,oneof=REGULAR DAILY"`
	EmploymentStatus string  `json:"employment_status" binding:"required,oneof=ACTIVE INACTIVE TERMINATED"`
	HireDate         string  `json:"hire_date" binding:"required"`
	TerminationDate  *string `json:"termination_date"`
}

type EmployeeFilterRequest struct {
	Q                string `form:"q"`
	EmploymentType   string `form:"employment_type" binding:"omitempty,oneof=REGULAR DAILY"`
	EmploymentStatus string `form:"employment_status" binding:"omitempty,oneof=ACTIVE INACTIVE TERMINATED"`
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	CompanyID        string  `json:"company_id"`
	EmployeeNumber   string  `json:"employee_number"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email,omitempty"`
	EmploymentType   string  `json:"employment_type"`
	EmploymentStatus string  `json:"employment_status"`
	HireDate         string  `json:"hire_date"`
	TerminationDate  *string `json:"termination_date,omitempty"`
}

type EmployeeOptionResponse struct {
	ID             string `json:"id"`
	FullName       string `json:"full_name"`
	EmploymentType string `json:"employment_type"`
}
