package employeesalary

// BaseSalary is a currency string such as "5,000,000" or "5000000".
type CreateEmployeeSalaryRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	BaseSalary    string `json:"base_salary" binding:"required"`
	EffectiveDate string `json:"effective_date" binding:"required"`
}

type EmployeeSalaryResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	BaseSalary    int64  `json:"base_salary"`
	EffectiveDate string `json:"effective_date"`
}
