package message

/*
ResultCode は、要求の処理結果を表す識別コードです。
*/
type ResultCode int32

/*
ResultCode は、以下の値を取ります。
*/
const (
	_ ResultCode = iota

	ResultCodeSucceeded           // 処理が正常に成功したことを表します。
	ResultCodeNormalClosure       // 正常にコネクションが閉じられたことを表します。
	ResultCodeIncompatibleVersion // 呼び出し側とプロバイダーのバージョンに互換性が無いことを表します。
	ResultCodeUnspecifiedError    // 種類を規定しないエラーです。予期しないエラーが発生した場合に使用されます。
	ResultCodeAuthFailed          // 認証や認可の処理に失敗したことを表します。
	ResultCodeCapabilityNotFound  // 要求された機能をプロバイダーが提供していないことを表します。
	ResultCodeMalformedMessage    // 不正な形式のメッセージを受信したことを表します。
	ResultCodeProtocolError       // プロトコル違反を表します。
	ResultCodePingTimeout         // Pingのタイムアウトが発生したことを表します。
	ResultCodeTooLargeMessageSize // メッセージのサイズが大きすぎることを表します。
)
