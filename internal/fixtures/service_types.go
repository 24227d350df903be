package fixtures

// ==========================================
// DEFAULT SERVICE TYPES
// ==========================================

// ServiceType describes a suggested category for time exchanges and bounties
type ServiceType struct {
	Code        string
	Name        string
	Description string
}

// GetDefaultServiceTypes returns the suggested service categories shown when
// logging time or posting a bounty. Free-text service types are still accepted;
// these only drive autocomplete and feed filters.
func GetDefaultServiceTypes() []ServiceType {
	return []ServiceType{
		{Code: "design", Name: "Design", Description: "Product, brand, and visual design work"},
		{Code: "engineering", Name: "Engineering", Description: "Software development and technical reviews"},
		{Code: "writing", Name: "Writing", Description: "Copywriting, editing, and documentation"},
		{Code: "legal", Name: "Legal", Description: "Contract reviews and legal guidance"},
		{Code: "finance", Name: "Finance", Description: "Bookkeeping, modeling, and fundraising help"},
		{Code: "marketing", Name: "Marketing", Description: "Growth, content, and campaign support"},
		{Code: "mentorship", Name: "Mentorship", Description: "Career advice and coaching sessions"},
		{Code: "research", Name: "Research", Description: "User interviews, market and academic research"},
		{Code: "operations", Name: "Operations", Description: "Process, hiring, and administrative support"},
		{Code: "introductions", Name: "Introductions", Description: "Warm intros to people worth knowing"},
	}
}
