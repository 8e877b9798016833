package model

// Customer is a card-upgrade applicant as handed to the review screen.
// It is a read-only snapshot; views never modify it.
type Customer struct {
	CustomerID          string `json:"customerId"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	MobileNumber        string `json:"mobileNumber"`
	AadhaarNumber       string `json:"aadhaarNumber"`
	PanID               string `json:"panId"`
	Address             string `json:"address"`
	DOB                 string `json:"dob"`
	CompanyName         string `json:"companyName"`
	AnnualIncome        string `json:"annualIncome"`
	IncomeProofFilePath string `json:"incomeProofFilePath"`
	EmploymentYears     int    `json:"employmentYears"`
	IsPresentlyEmployed bool   `json:"isPresentlyEmployed"`
}

// Lookup returns the raw value stored under a JSON field name.
// A nil customer has no fields.
func (c *Customer) Lookup(key string) (any, bool) {
	if c == nil {
		return nil, false
	}

	switch key {
	case "customerId":
		return c.CustomerID, true
	case "name":
		return c.Name, true
	case "email":
		return c.Email, true
	case "mobileNumber":
		return c.MobileNumber, true
	case "aadhaarNumber":
		return c.AadhaarNumber, true
	case "panId":
		return c.PanID, true
	case "address":
		return c.Address, true
	case "dob":
		return c.DOB, true
	case "employmentYears":
		return c.EmploymentYears, true
	case "isPresentlyEmployed":
		return c.IsPresentlyEmployed, true
	case "companyName":
		return c.CompanyName, true
	case "annualIncome":
		return c.AnnualIncome, true
	case "incomeProofFilePath":
		return c.IncomeProofFilePath, true
	}
	return nil, false
}
