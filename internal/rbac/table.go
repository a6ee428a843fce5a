package rbac

import "github.com/stemsi/sekolah-backend/internal/model"

// Table maps every role to the permissions it is granted. It is plain data;
// NewResolver validates it and freezes it into immutable sets.
type Table map[model.Role][]model.Permission

// general is what every signed-in principal gets.
var general = []model.Permission{
	model.PermissionAnnouncementsView,
	model.PermissionProfileViewOwn,
	model.PermissionProfileUpdateOwn,
	model.PermissionHelpdeskCreateTicket,
	model.PermissionMobileAccess,
}

// DefaultTable returns the built-in role table. Each call returns a fresh
// copy, so callers may tweak it (in tests, for instance) before handing it to
// NewResolver.
func DefaultTable() Table {
	return Table{
		model.RoleUser: {
			model.PermissionAnnouncementsView,
			model.PermissionProfileViewOwn,
		},

		model.RoleStudent: with(general,
			model.PermissionStudentViewOwnGrades,
			model.PermissionStudentViewOwnAttendance,
			model.PermissionStudentViewOwnSchedule,
			model.PermissionStudentViewOwnWallet,
			model.PermissionStudentViewOwnBills,
		),

		model.RoleTeacher: with(general,
			model.PermissionTeacherViewOwnClasses,
			model.PermissionTeacherViewOwnSchedule,
			model.PermissionTeacherInputClassGrades,
			model.PermissionTeacherRecordClassAttendance,
			model.PermissionTeacherViewClassStudents,
		),

		model.RoleParent: with(general,
			model.PermissionParentViewChildGrades,
			model.PermissionParentViewChildAttendance,
			model.PermissionParentViewChildSchedule,
			model.PermissionParentViewChildWallet,
			model.PermissionParentPayChildBills,
		),

		model.RoleStaff: with(general,
			model.PermissionDashboardView,
			model.PermissionSchoolView,
			model.PermissionAcademicYearsView,
			model.PermissionMajorsView,
			model.PermissionDepartmentsView,
			model.PermissionStudentsView,
			model.PermissionTeachersView,
			model.PermissionStaffView,
			model.PermissionClassesView,
			model.PermissionRombelsView,
			model.PermissionSubjectsView,
			model.PermissionAttendanceView,
			model.PermissionAttendanceRecord,
			model.PermissionSchedulesView,
			model.PermissionFinanceView,
			model.PermissionFinanceRecordPayments,
			model.PermissionFinanceReports,
			model.PermissionAssetsView,
			model.PermissionAssetsManage,
			model.PermissionReportsView,
			model.PermissionHelpdeskView,
		),

		// ADMIN runs the school day to day. School creation/deletion, admin
		// accounts, system settings, the network and device fleet stay with
		// SUPER_ADMIN.
		model.RoleAdmin: with(general,
			model.PermissionDashboardView,
			model.PermissionDashboardViewAnalytics,
			model.PermissionSchoolView,
			model.PermissionSchoolUpdate,
			model.PermissionAcademicYearsView,
			model.PermissionAcademicYearsManage,
			model.PermissionMajorsView,
			model.PermissionMajorsManage,
			model.PermissionDepartmentsView,
			model.PermissionDepartmentsManage,
			model.PermissionUsersView,
			model.PermissionUsersCreate,
			model.PermissionUsersUpdate,
			model.PermissionUsersDelete,
			model.PermissionRolesView,
			model.PermissionStudentsView,
			model.PermissionStudentsCreate,
			model.PermissionStudentsUpdate,
			model.PermissionStudentsDelete,
			model.PermissionStudentsImport,
			model.PermissionTeachersView,
			model.PermissionTeachersCreate,
			model.PermissionTeachersUpdate,
			model.PermissionTeachersDelete,
			model.PermissionStaffView,
			model.PermissionStaffCreate,
			model.PermissionStaffUpdate,
			model.PermissionStaffDelete,
			model.PermissionClassesView,
			model.PermissionClassesCreate,
			model.PermissionClassesUpdate,
			model.PermissionClassesDelete,
			model.PermissionRombelsView,
			model.PermissionRombelsManage,
			model.PermissionSubjectsView,
			model.PermissionSubjectsCreate,
			model.PermissionSubjectsUpdate,
			model.PermissionSubjectsDelete,
			model.PermissionAttendanceView,
			model.PermissionAttendanceRecord,
			model.PermissionAttendanceManage,
			model.PermissionGradesView,
			model.PermissionGradesInput,
			model.PermissionGradesManage,
			model.PermissionSchedulesView,
			model.PermissionSchedulesManage,
			model.PermissionFinanceView,
			model.PermissionFinanceManage,
			model.PermissionFinanceRecordPayments,
			model.PermissionFinanceReports,
			model.PermissionAssetsView,
			model.PermissionAssetsManage,
			model.PermissionReportsView,
			model.PermissionReportsExport,
			model.PermissionSettingsView,
			model.PermissionNetworkView,
			model.PermissionHelpdeskView,
			model.PermissionHelpdeskManage,
		),

		model.RoleSuperAdmin: model.AllPermissions(),
	}
}

func with(base []model.Permission, extra ...model.Permission) []model.Permission {
	out := make([]model.Permission, 0, len(base)+len(extra))
	out = append(out, base...)
	return append(out, extra...)
}
