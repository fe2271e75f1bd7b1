package models

// Permission constants
const (
	// Checkout permissions
	PermissionSettlementRead  = "settlement:read"
	PermissionSettlementWrite = "settlement:write"

	// Fee schedule permissions
	PermissionFeeScheduleRead  = "feeschedule:read"
	PermissionFeeScheduleWrite = "feeschedule:write"

	// Audit permissions
	PermissionAuditRead = "audit:read"

	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"
)

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case "admin":
		return []string{
			PermissionReadAdmin,
			PermissionWriteAdmin,
			PermissionSettlementRead,
			PermissionSettlementWrite,
			PermissionFeeScheduleRead,
			PermissionFeeScheduleWrite,
			PermissionAuditRead,
		}
	case "checkout":
		return []string{
			PermissionSettlementRead,
			PermissionSettlementWrite,
			PermissionFeeScheduleRead,
		}
	case "auditor":
		return []string{
			PermissionSettlementRead,
			PermissionFeeScheduleRead,
			PermissionAuditRead,
		}
	case "organizer":
		return []string{
			PermissionSettlementRead,
			PermissionFeeScheduleRead,
		}
	default:
		return []string{}
	}
}
