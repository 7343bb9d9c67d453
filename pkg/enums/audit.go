package enums

// AuditEvent enumerates the operations the audit trail records.
type AuditEvent string

const (
	AuditEventCreateSubscription AuditEvent = "create_subscription"
	AuditEventUpdateSubscription AuditEvent = "update_subscription"
	AuditEventUpdateBag          AuditEvent = "update_bag"
	AuditEventRemoveBag          AuditEvent = "remove_bag"
	AuditEventCheckItem          AuditEvent = "check_item"
	AuditEventCheckBag           AuditEvent = "check_bag"
	AuditEventUpdateHoliday      AuditEvent = "update_holiday"
)

func (e AuditEvent) Valid() bool {
	switch e {
	case AuditEventCreateSubscription, AuditEventUpdateSubscription,
		AuditEventUpdateBag, AuditEventRemoveBag,
		AuditEventCheckItem, AuditEventCheckBag, AuditEventUpdateHoliday:
		return true
	default:
		return false
	}
}

// AuditStatus flags whether the recorded operation succeeded.
type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFail    AuditStatus = "fail"
)
