package entity

// AuditLogFilter is a domain-level filter for listing audit logs.
// Used by repository layer to avoid coupling with delivery DTOs.
type AuditLogFilter struct {
	TenantID *uint  // nil lists every tenant
	Action   string // exact match, e.g. "appointment.create"
	Limit    int
	Offset   int
}
