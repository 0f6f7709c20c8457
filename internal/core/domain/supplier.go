package domain

// Supplier is a counterparty registered for a company. Suppliers are managed elsewhere;
// this service only reads them.
type Supplier struct {
	SupplierID   string `json:"supplierID"`
	CompanyID    string `json:"companyID"`
	RUC          string `json:"ruc"` // Peruvian taxpayer number
	BusinessName string `json:"businessName"`
}
