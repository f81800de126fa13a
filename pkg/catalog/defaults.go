package catalog

// Defaults returns the built-in baseline catalog. It mirrors the standard
// workspace schema and is served until the first successful refresh when no
// cached snapshot exists.
func Defaults() *Catalog {
	return New(map[ResourceType][]AttributeDescriptor{
		ResourceCompanies: {
			{Slug: "name", DisplayName: "Name", Kind: KindText},
			{Slug: "domains", DisplayName: "Domains", Kind: KindMultiSelect},
			{Slug: "description", DisplayName: "Description", Kind: KindText},
			{Slug: "categories", DisplayName: "Categories", Kind: KindMultiSelect, Options: []Option{
				{Value: "technology", Title: "Technology"},
				{Value: "healthcare", Title: "Healthcare"},
				{Value: "finance", Title: "Finance"},
				{Value: "retail", Title: "Retail"},
				{Value: "education", Title: "Education"},
				{Value: "manufacturing", Title: "Manufacturing"},
				{Value: "media", Title: "Media"},
				{Value: "energy", Title: "Energy"},
				{Value: "real-estate", Title: "Real Estate"},
				{Value: "transportation", Title: "Transportation"},
				{Value: "hospitality", Title: "Hospitality"},
				{Value: "agriculture", Title: "Agriculture"},
			}},
			{Slug: "employee_range", DisplayName: "Employee range", Kind: KindSelect, Options: []Option{
				{Value: "1-10", Title: "1-10"},
				{Value: "11-50", Title: "11-50"},
				{Value: "51-200", Title: "51-200"},
				{Value: "201-1000", Title: "201-1000"},
				{Value: "1000+", Title: "1000+"},
			}},
			{Slug: "linkedin", DisplayName: "LinkedIn", Kind: KindText},
			{Slug: "twitter", DisplayName: "Twitter", Kind: KindText},
			{Slug: "foundation_date", DisplayName: "Foundation date", Kind: KindDate},
			{Slug: "created_at", DisplayName: "Created at", Kind: KindDate},
		},
		ResourcePeople: {
			{Slug: "name", DisplayName: "Name", Kind: KindText},
			{Slug: "email_addresses", DisplayName: "Email addresses", Kind: KindMultiSelect},
			{Slug: "phone_numbers", DisplayName: "Phone numbers", Kind: KindMultiSelect},
			{Slug: "job_title", DisplayName: "Job title", Kind: KindText},
			{Slug: "company", DisplayName: "Company", Kind: KindRecordReference},
			{Slug: "lead_type", DisplayName: "Lead type", Kind: KindMultiSelect, Options: []Option{
				{Value: "enterprise", Title: "Enterprise"},
				{Value: "smb", Title: "SMB"},
				{Value: "consumer", Title: "Consumer"},
				{Value: "partner", Title: "Partner"},
			}},
			{Slug: "linkedin", DisplayName: "LinkedIn", Kind: KindText},
			{Slug: "twitter", DisplayName: "Twitter", Kind: KindText},
			{Slug: "description", DisplayName: "Description", Kind: KindText},
			{Slug: "created_at", DisplayName: "Created at", Kind: KindDate},
		},
		ResourceDeals: {
			{Slug: "name", DisplayName: "Name", Kind: KindText},
			{Slug: "stage", DisplayName: "Deal stage", Kind: KindStatus, Options: []Option{
				{Value: "lead", Title: "Lead"},
				{Value: "in-progress", Title: "In Progress"},
				{Value: "won", Title: "Won"},
				{Value: "lost", Title: "Lost"},
			}},
			{Slug: "value", DisplayName: "Deal value", Kind: KindNumber},
			{Slug: "owner", DisplayName: "Owner", Kind: KindRecordReference},
			{Slug: "associated_company", DisplayName: "Associated company", Kind: KindRecordReference},
			{Slug: "associated_people", DisplayName: "Associated people", Kind: KindMultiSelect},
			{Slug: "created_at", DisplayName: "Created at", Kind: KindDate},
		},
		ResourceTasks: {
			{Slug: "content", DisplayName: "Content", Kind: KindText},
			{Slug: "status", DisplayName: "Status", Kind: KindSelect, Options: []Option{
				{Value: "pending", Title: "Pending"},
				{Value: "completed", Title: "Completed"},
			}},
			{Slug: "assigneeId", DisplayName: "Assignee", Kind: KindRecordReference},
			{Slug: "dueDate", DisplayName: "Due date", Kind: KindDate},
			{Slug: "recordIds", DisplayName: "Linked records", Kind: KindMultiSelect},
		},
		ResourceLists: {
			{Slug: "name", DisplayName: "Name", Kind: KindText},
			{Slug: "parent_object", DisplayName: "Parent object", Kind: KindSelect, Options: []Option{
				{Value: "companies", Title: "Companies"},
				{Value: "people", Title: "People"},
				{Value: "deals", Title: "Deals"},
			}},
			{Slug: "workspace_access", DisplayName: "Workspace access", Kind: KindSelect, Options: []Option{
				{Value: "full-access", Title: "Full access"},
				{Value: "read-and-write", Title: "Read and write"},
				{Value: "read-only", Title: "Read only"},
			}},
		},
		ResourceNotes: {
			{Slug: "title", DisplayName: "Title", Kind: KindText},
			{Slug: "content", DisplayName: "Content", Kind: KindText},
			{Slug: "format", DisplayName: "Format", Kind: KindSelect, Options: []Option{
				{Value: "plaintext", Title: "Plaintext"},
				{Value: "markdown", Title: "Markdown"},
			}},
			{Slug: "parent_object", DisplayName: "Parent object", Kind: KindSelect, Options: []Option{
				{Value: "companies", Title: "Companies"},
				{Value: "people", Title: "People"},
				{Value: "deals", Title: "Deals"},
			}},
			{Slug: "parent_record_id", DisplayName: "Parent record", Kind: KindRecordReference},
		},
		// Generic record access for custom objects. The schema refresh
		// replaces this with the workspace's real custom-object attributes.
		ResourceRecords: {
			{Slug: "name", DisplayName: "Name", Kind: KindText},
			{Slug: "description", DisplayName: "Description", Kind: KindText},
			{Slug: "owner", DisplayName: "Owner", Kind: KindRecordReference},
			{Slug: "tags", DisplayName: "Tags", Kind: KindMultiSelect},
		},
	})
}
