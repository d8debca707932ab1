package qaps

// Department identifies a group responsible for acting on a mismatch.
type Department string

// Departments that can be assigned to a mismatched item.
const (
	DepartmentProduction Department = "production"
	DepartmentQuality    Department = "quality"
	DepartmentTechnical  Department = "technical"
)

// Valid reports whether d names a known department.
func (d Department) Valid() bool {
	switch d {
	case DepartmentProduction, DepartmentQuality, DepartmentTechnical:
		return true
	}
	return false
}

// Assignment records which departments must act on a mismatched item.
// All flags start false when the assignment stage is entered.
type Assignment struct {
	Production bool `json:"production"`
	Quality    bool `json:"quality"`
	Technical  bool `json:"technical"`
}

// Set updates the named department flag.
func (a *Assignment) Set(dept Department, value bool) error {
	switch dept {
	case DepartmentProduction:
		a.Production = value
	case DepartmentQuality:
		a.Quality = value
	case DepartmentTechnical:
		a.Technical = value
	default:
		return ErrUnknownDepartment
	}
	return nil
}

// AssignmentMap keys assignments by item sequence number. Every key present
// corresponds to an item currently in the does-not-match state.
type AssignmentMap map[int]Assignment

func cloneAssignments(m AssignmentMap) AssignmentMap {
	out := make(AssignmentMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
