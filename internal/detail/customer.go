package detail

import "github.com/Veraticus/backoffice/internal/model"

// ActivePendingUpgrades is the navigation item highlighted on the
// card-upgrade application screen.
const ActivePendingUpgrades = "All Pending Customer Upgrade Applications"

// View is a fully declared detail screen.
type View struct {
	Details    Record
	ActiveItem string
	Fields     []Field
	Downloads  []DownloadFile
}

// Rows resolves the view's fields against its details.
func (v View) Rows() []Row {
	return Rows(v.Details, v.Fields)
}

// Files resolves the view's downloads against its details.
func (v View) Files() []Download {
	return Downloads(v.Details, v.Downloads)
}

// CardUpgradeApplicationFields lists the fields shown for a customer card
// upgrade application, in display order.
func CardUpgradeApplicationFields(dates DateFormatter) []Field {
	return []Field{
		{Label: "Customer ID", Key: "customerId"},
		{Label: "Name", Key: "name"},
		{Label: "Email", Key: "email"},
		{Label: "Mobile Number", Key: "mobileNumber"},
		{Label: "Aadhaar Number", Key: "aadhaarNumber"},
		{Label: "PAN ID", Key: "panId"},
		{Label: "Address", Key: "address"},
		{Label: "Date of Birth", Key: "dob", Format: dates.Format},
		{Label: "Employment Years", Key: "employmentYears"},
		{Label: "Is Presently Employed", Key: "isPresentlyEmployed", Format: YesNo},
		{Label: "Company Name", Key: "companyName"},
		{Label: "Annual Income", Key: "annualIncome"},
	}
}

// CardUpgradeDownloads lists the files attached to an upgrade application.
func CardUpgradeDownloads() []DownloadFile {
	return []DownloadFile{
		{Label: "Download Employment Proof", Key: "incomeProofFilePath"},
	}
}

// CardUpgradeApplicationView builds the upgrade application screen for c.
// A nil customer still yields every row, each with a nil value.
func CardUpgradeApplicationView(c *model.Customer, dates DateFormatter) View {
	v := View{
		ActiveItem: ActivePendingUpgrades,
		Fields:     CardUpgradeApplicationFields(dates),
		Downloads:  CardUpgradeDownloads(),
	}
	if c != nil {
		v.Details = c
	}
	return v
}

// GrievanceFields lists the fields shown when a grievance is open for
// resolution.
func GrievanceFields(dates DateFormatter) []Field {
	return []Field{
		{Label: "Grievance ID", Key: "grievanceId"},
		{Label: "User Type", Key: "userType"},
		{Label: "Name", Key: "name"},
		{Label: "Email", Key: "email"},
		{Label: "Phone", Key: "phone"},
		{Label: "Raised On", Key: "timestamp", Format: dates.Format},
		{Label: "Subject", Key: "subject"},
		{Label: "Message", Key: "message"},
		{Label: "Status", Key: "status"},
	}
}

// GrievanceView builds the detail screen for g.
func GrievanceView(g model.Grievance, dates DateFormatter) View {
	return View{
		Details: g,
		Fields:  GrievanceFields(dates),
	}
}
