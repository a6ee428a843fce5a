package model

// Permission represents a string code for a specific system action.
type Permission string

// PermissionArea groups permissions by the feature they belong to.
type PermissionArea string

// PermissionScope tells whether a permission only reaches the caller's own data
// (or their class's/child's) or reaches administrative, cross-user data.
type PermissionScope int

const (
	ScopeAdministrative PermissionScope = iota
	ScopeSelf
)

const (
	AreaDashboard  PermissionArea = "dashboard"
	AreaSchool     PermissionArea = "school"
	AreaUsers      PermissionArea = "users"
	AreaStudents   PermissionArea = "students"
	AreaTeachers   PermissionArea = "teachers"
	AreaStaff      PermissionArea = "staff"
	AreaClasses    PermissionArea = "classes"
	AreaSubjects   PermissionArea = "subjects"
	AreaAttendance PermissionArea = "attendance"
	AreaGrades     PermissionArea = "grades"
	AreaFinance    PermissionArea = "finance"
	AreaAssets     PermissionArea = "assets"
	AreaScheduling PermissionArea = "scheduling"
	AreaReports    PermissionArea = "reports"
	AreaSettings   PermissionArea = "settings"
	AreaNetwork    PermissionArea = "network"
	AreaHelpdesk   PermissionArea = "helpdesk"
	AreaMobile     PermissionArea = "mobile"
	AreaGeneral    PermissionArea = "general"
	AreaStudent    PermissionArea = "student"
	AreaTeacher    PermissionArea = "teacher"
	AreaParent     PermissionArea = "parent"
)

// ─── Dashboard ─────────────────────────────────────────────────────────
const (
	PermissionDashboardView          Permission = "dashboard:view"
	PermissionDashboardViewAnalytics Permission = "dashboard:view_analytics"
)

// ─── School structure ──────────────────────────────────────────────────
const (
	PermissionSchoolView          Permission = "school:view"
	PermissionSchoolCreate        Permission = "school:create"
	PermissionSchoolUpdate        Permission = "school:update"
	PermissionSchoolDelete        Permission = "school:delete"
	PermissionAcademicYearsView   Permission = "academic_years:view"
	PermissionAcademicYearsManage Permission = "academic_years:manage"
	PermissionMajorsView          Permission = "majors:view"
	PermissionMajorsManage        Permission = "majors:manage"
	PermissionDepartmentsView     Permission = "departments:view"
	PermissionDepartmentsManage   Permission = "departments:manage"
)

// ─── Users ─────────────────────────────────────────────────────────────
const (
	PermissionUsersView   Permission = "users:view"
	PermissionUsersCreate Permission = "users:create"
	PermissionUsersUpdate Permission = "users:update"
	PermissionUsersDelete Permission = "users:delete"

	// PermissionAdminsManage is required on top of the users:* permission whenever
	// the target account holds, or is given, the ADMIN or SUPER_ADMIN role.
	PermissionAdminsManage Permission = "admins:manage"
	PermissionRolesView    Permission = "roles:view"
)

// ─── People ────────────────────────────────────────────────────────────
const (
	PermissionStudentsView   Permission = "students:view"
	PermissionStudentsCreate Permission = "students:create"
	PermissionStudentsUpdate Permission = "students:update"
	PermissionStudentsDelete Permission = "students:delete"
	PermissionStudentsImport Permission = "students:import"

	PermissionTeachersView   Permission = "teachers:view"
	PermissionTeachersCreate Permission = "teachers:create"
	PermissionTeachersUpdate Permission = "teachers:update"
	PermissionTeachersDelete Permission = "teachers:delete"

	PermissionStaffView   Permission = "staff:view"
	PermissionStaffCreate Permission = "staff:create"
	PermissionStaffUpdate Permission = "staff:update"
	PermissionStaffDelete Permission = "staff:delete"
)

// ─── Classes & subjects ────────────────────────────────────────────────
const (
	PermissionClassesView   Permission = "classes:view"
	PermissionClassesCreate Permission = "classes:create"
	PermissionClassesUpdate Permission = "classes:update"
	PermissionClassesDelete Permission = "classes:delete"
	PermissionRombelsView   Permission = "rombels:view"
	PermissionRombelsManage Permission = "rombels:manage"

	PermissionSubjectsView   Permission = "subjects:view"
	PermissionSubjectsCreate Permission = "subjects:create"
	PermissionSubjectsUpdate Permission = "subjects:update"
	PermissionSubjectsDelete Permission = "subjects:delete"
)

// ─── Academic operations ───────────────────────────────────────────────
const (
	PermissionAttendanceView   Permission = "attendance:view"
	PermissionAttendanceRecord Permission = "attendance:record"
	PermissionAttendanceManage Permission = "attendance:manage"

	PermissionGradesView   Permission = "grades:view"
	PermissionGradesInput  Permission = "grades:input"
	PermissionGradesManage Permission = "grades:manage"

	PermissionSchedulesView   Permission = "schedules:view"
	PermissionSchedulesManage Permission = "schedules:manage"
)

// ─── Finance & assets ──────────────────────────────────────────────────
const (
	PermissionFinanceView           Permission = "finance:view"
	PermissionFinanceManage         Permission = "finance:manage"
	PermissionFinanceRecordPayments Permission = "finance:record_payments"
	PermissionFinanceReports        Permission = "finance:reports"

	PermissionAssetsView   Permission = "assets:view"
	PermissionAssetsManage Permission = "assets:manage"
)

// ─── Reports, settings, infrastructure ─────────────────────────────────
const (
	PermissionReportsView   Permission = "reports:view"
	PermissionReportsExport Permission = "reports:export"

	PermissionSettingsView Permission = "settings:view"
	PermissionSystemManage Permission = "system:manage"

	PermissionNetworkView   Permission = "network:view"
	PermissionNetworkManage Permission = "network:manage"

	PermissionHelpdeskView         Permission = "helpdesk:view"
	PermissionHelpdeskCreateTicket Permission = "helpdesk:create_ticket"
	PermissionHelpdeskManage       Permission = "helpdesk:manage"

	PermissionMobileAccess        Permission = "mobile:access"
	PermissionMobileManageDevices Permission = "mobile:manage_devices"
)

// ─── General (every signed-in principal, including guests) ─────────────
const (
	PermissionAnnouncementsView Permission = "announcements:view"
	PermissionProfileViewOwn    Permission = "profile:view_own"
	PermissionProfileUpdateOwn  Permission = "profile:update_own"
)

// ─── Student self-service ──────────────────────────────────────────────
const (
	PermissionStudentViewOwnGrades     Permission = "student:view_own_grades"
	PermissionStudentViewOwnAttendance Permission = "student:view_own_attendance"
	PermissionStudentViewOwnSchedule   Permission = "student:view_own_schedule"
	PermissionStudentViewOwnWallet     Permission = "student:view_own_wallet"
	PermissionStudentViewOwnBills      Permission = "student:view_own_bills"
)

// ─── Teacher self-service (own classes only) ───────────────────────────
const (
	PermissionTeacherViewOwnClasses        Permission = "teacher:view_own_classes"
	PermissionTeacherViewOwnSchedule       Permission = "teacher:view_own_schedule"
	PermissionTeacherInputClassGrades      Permission = "teacher:input_class_grades"
	PermissionTeacherRecordClassAttendance Permission = "teacher:record_class_attendance"
	PermissionTeacherViewClassStudents     Permission = "teacher:view_class_students"
)

// ─── Parent self-service (own children only) ───────────────────────────
const (
	PermissionParentViewChildGrades     Permission = "parent:view_child_grades"
	PermissionParentViewChildAttendance Permission = "parent:view_child_attendance"
	PermissionParentViewChildSchedule   Permission = "parent:view_child_schedule"
	PermissionParentViewChildWallet     Permission = "parent:view_child_wallet"
	PermissionParentPayChildBills       Permission = "parent:pay_child_bills"
)

// PermissionInfo is the catalog metadata attached to a permission.
type PermissionInfo struct {
	Permission Permission      `json:"permission"`
	Area       PermissionArea  `json:"area"`
	Scope      PermissionScope `json:"-"`
}

// SelfScoped reports whether the permission only reaches the caller's own data.
func (i PermissionInfo) SelfScoped() bool {
	return i.Scope == ScopeSelf
}

// catalog lists every permission in declaration order. Append only: removing or
// renaming an entry breaks every stored token and UI build that references it.
var catalog = []PermissionInfo{
	{PermissionDashboardView, AreaDashboard, ScopeAdministrative},
	{PermissionDashboardViewAnalytics, AreaDashboard, ScopeAdministrative},

	{PermissionSchoolView, AreaSchool, ScopeAdministrative},
	{PermissionSchoolCreate, AreaSchool, ScopeAdministrative},
	{PermissionSchoolUpdate, AreaSchool, ScopeAdministrative},
	{PermissionSchoolDelete, AreaSchool, ScopeAdministrative},
	{PermissionAcademicYearsView, AreaSchool, ScopeAdministrative},
	{PermissionAcademicYearsManage, AreaSchool, ScopeAdministrative},
	{PermissionMajorsView, AreaSchool, ScopeAdministrative},
	{PermissionMajorsManage, AreaSchool, ScopeAdministrative},
	{PermissionDepartmentsView, AreaSchool, ScopeAdministrative},
	{PermissionDepartmentsManage, AreaSchool, ScopeAdministrative},

	{PermissionUsersView, AreaUsers, ScopeAdministrative},
	{PermissionUsersCreate, AreaUsers, ScopeAdministrative},
	{PermissionUsersUpdate, AreaUsers, ScopeAdministrative},
	{PermissionUsersDelete, AreaUsers, ScopeAdministrative},
	{PermissionAdminsManage, AreaUsers, ScopeAdministrative},
	{PermissionRolesView, AreaUsers, ScopeAdministrative},

	{PermissionStudentsView, AreaStudents, ScopeAdministrative},
	{PermissionStudentsCreate, AreaStudents, ScopeAdministrative},
	{PermissionStudentsUpdate, AreaStudents, ScopeAdministrative},
	{PermissionStudentsDelete, AreaStudents, ScopeAdministrative},
	{PermissionStudentsImport, AreaStudents, ScopeAdministrative},
	{PermissionTeachersView, AreaTeachers, ScopeAdministrative},
	{PermissionTeachersCreate, AreaTeachers, ScopeAdministrative},
	{PermissionTeachersUpdate, AreaTeachers, ScopeAdministrative},
	{PermissionTeachersDelete, AreaTeachers, ScopeAdministrative},
	{PermissionStaffView, AreaStaff, ScopeAdministrative},
	{PermissionStaffCreate, AreaStaff, ScopeAdministrative},
	{PermissionStaffUpdate, AreaStaff, ScopeAdministrative},
	{PermissionStaffDelete, AreaStaff, ScopeAdministrative},

	{PermissionClassesView, AreaClasses, ScopeAdministrative},
	{PermissionClassesCreate, AreaClasses, ScopeAdministrative},
	{PermissionClassesUpdate, AreaClasses, ScopeAdministrative},
	{PermissionClassesDelete, AreaClasses, ScopeAdministrative},
	{PermissionRombelsView, AreaClasses, ScopeAdministrative},
	{PermissionRombelsManage, AreaClasses, ScopeAdministrative},
	{PermissionSubjectsView, AreaSubjects, ScopeAdministrative},
	{PermissionSubjectsCreate, AreaSubjects, ScopeAdministrative},
	{PermissionSubjectsUpdate, AreaSubjects, ScopeAdministrative},
	{PermissionSubjectsDelete, AreaSubjects, ScopeAdministrative},

	{PermissionAttendanceView, AreaAttendance, ScopeAdministrative},
	{PermissionAttendanceRecord, AreaAttendance, ScopeAdministrative},
	{PermissionAttendanceManage, AreaAttendance, ScopeAdministrative},
	{PermissionGradesView, AreaGrades, ScopeAdministrative},
	{PermissionGradesInput, AreaGrades, ScopeAdministrative},
	{PermissionGradesManage, AreaGrades, ScopeAdministrative},
	{PermissionSchedulesView, AreaScheduling, ScopeAdministrative},
	{PermissionSchedulesManage, AreaScheduling, ScopeAdministrative},

	{PermissionFinanceView, AreaFinance, ScopeAdministrative},
	{PermissionFinanceManage, AreaFinance, ScopeAdministrative},
	{PermissionFinanceRecordPayments, AreaFinance, ScopeAdministrative},
	{PermissionFinanceReports, AreaFinance, ScopeAdministrative},
	{PermissionAssetsView, AreaAssets, ScopeAdministrative},
	{PermissionAssetsManage, AreaAssets, ScopeAdministrative},

	{PermissionReportsView, AreaReports, ScopeAdministrative},
	{PermissionReportsExport, AreaReports, ScopeAdministrative},
	{PermissionSettingsView, AreaSettings, ScopeAdministrative},
	{PermissionSystemManage, AreaSettings, ScopeAdministrative},
	{PermissionNetworkView, AreaNetwork, ScopeAdministrative},
	{PermissionNetworkManage, AreaNetwork, ScopeAdministrative},
	{PermissionHelpdeskView, AreaHelpdesk, ScopeAdministrative},
	{PermissionHelpdeskCreateTicket, AreaHelpdesk, ScopeSelf},
	{PermissionHelpdeskManage, AreaHelpdesk, ScopeAdministrative},
	{PermissionMobileAccess, AreaMobile, ScopeSelf},
	{PermissionMobileManageDevices, AreaMobile, ScopeAdministrative},

	{PermissionAnnouncementsView, AreaGeneral, ScopeSelf},
	{PermissionProfileViewOwn, AreaGeneral, ScopeSelf},
	{PermissionProfileUpdateOwn, AreaGeneral, ScopeSelf},

	{PermissionStudentViewOwnGrades, AreaStudent, ScopeSelf},
	{PermissionStudentViewOwnAttendance, AreaStudent, ScopeSelf},
	{PermissionStudentViewOwnSchedule, AreaStudent, ScopeSelf},
	{PermissionStudentViewOwnWallet, AreaStudent, ScopeSelf},
	{PermissionStudentViewOwnBills, AreaStudent, ScopeSelf},

	{PermissionTeacherViewOwnClasses, AreaTeacher, ScopeSelf},
	{PermissionTeacherViewOwnSchedule, AreaTeacher, ScopeSelf},
	{PermissionTeacherInputClassGrades, AreaTeacher, ScopeSelf},
	{PermissionTeacherRecordClassAttendance, AreaTeacher, ScopeSelf},
	{PermissionTeacherViewClassStudents, AreaTeacher, ScopeSelf},

	{PermissionParentViewChildGrades, AreaParent, ScopeSelf},
	{PermissionParentViewChildAttendance, AreaParent, ScopeSelf},
	{PermissionParentViewChildSchedule, AreaParent, ScopeSelf},
	{PermissionParentViewChildWallet, AreaParent, ScopeSelf},
	{PermissionParentPayChildBills, AreaParent, ScopeSelf},
}

var catalogIndex = func() map[Permission]PermissionInfo {
	idx := make(map[Permission]PermissionInfo, len(catalog))
	for _, info := range catalog {
		idx[info.Permission] = info
	}
	return idx
}()

// AllPermissions returns every catalogued permission in declaration order.
// The returned slice is a copy.
func AllPermissions() []Permission {
	perms := make([]Permission, len(catalog))
	for i, info := range catalog {
		perms[i] = info.Permission
	}
	return perms
}

// PermissionCatalog returns the metadata of every permission in declaration order.
func PermissionCatalog() []PermissionInfo {
	out := make([]PermissionInfo, len(catalog))
	copy(out, catalog)
	return out
}

// LookupPermission returns the catalog metadata for p.
func LookupPermission(p Permission) (PermissionInfo, bool) {
	info, ok := catalogIndex[p]
	return info, ok
}

// IsValid reports whether p is part of the catalog.
func (p Permission) IsValid() bool {
	_, ok := catalogIndex[p]
	return ok
}

func (p Permission) String() string {
	return string(p)
}
