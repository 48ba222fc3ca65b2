package convert

var (
	ToResultCode         = toResultCode
	ToResultCodeProto    = toResultCodeProto
	ToAbandonReason      = toAbandonReason
	ToAbandonReasonProto = toAbandonReasonProto
	ToUUID               = toUUID
)
