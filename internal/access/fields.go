package access

// Field names used in mutability decisions. They match the API field
// names, not the storage columns.
const (
	// User fields
	FieldRole    = "role"
	FieldManager = "manager"

	// Report fields
	FieldReportName   = "report_name"
	FieldProjectName  = "project_name"
	FieldAddress      = "address"
	FieldPhoneNumber  = "phone_number"
	FieldIDProof      = "id_proof"
	FieldComment      = "comment"
	FieldDate         = "date"
	FieldStatus       = "status"
	FieldStaff        = "staff"
	FieldApprovedDate = "approved_date"
)

// FieldSet is a set of read-only field names
type FieldSet map[string]bool

// Has reports whether name is in the set
func (s FieldSet) Has(name string) bool {
	return s[name]
}

func fieldSet(names ...string) FieldSet {
	s := make(FieldSet, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

func allReportFields() FieldSet {
	return fieldSet(
		FieldReportName, FieldProjectName, FieldAddress, FieldPhoneNumber,
		FieldIDProof, FieldComment, FieldDate, FieldStatus, FieldStaff,
		FieldApprovedDate,
	)
}
