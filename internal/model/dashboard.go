package model

// DashboardStats are the headline counters of the admin dashboard.
type DashboardStats struct {
	Schools            int          `json:"schools"`
	Students           int          `json:"students"`
	Teachers           int          `json:"teachers"`
	Staff              int          `json:"staff"`
	Classes            int          `json:"classes"`
	Rombels            int          `json:"rombels"`
	Subjects           int          `json:"subjects"`
	// Accounts are not tied to a school, so this always counts every account.
	UsersByRole        map[Role]int `json:"users_by_role"`
	ActiveAcademicYear *string      `json:"active_academic_year"`
}
